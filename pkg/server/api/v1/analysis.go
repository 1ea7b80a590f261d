package v1

import (
	"encoding/json"
	"net/http"

	"github.com/lurelight/lurelight/pkg/engine"
	"github.com/lurelight/lurelight/pkg/server/api"
	"github.com/lurelight/lurelight/pkg/urlfeat"
)

// URLFeaturesRequest is the body for POST /api/v1/url/features.
type URLFeaturesRequest struct {
	URL string `json:"url"`
}

// URLFeaturesResponse pairs the contractual column names with the extracted
// values, in the same order.
type URLFeaturesResponse struct {
	URL     string                       `json:"url"`
	Columns [urlfeat.NumFeatures]string  `json:"columns"`
	Values  [urlfeat.NumFeatures]float64 `json:"values"`
}

// URLFeaturesHandler handles POST /api/v1/url/features.
//
// Extraction is total: any string yields a vector, so the only failure mode
// is a malformed request body.
func URLFeaturesHandler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req URLFeaturesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteJSONError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body: "+err.Error())
			return
		}

		api.WriteJSON(w, http.StatusOK, URLFeaturesResponse{
			URL:     req.URL,
			Columns: urlfeat.Columns(),
			Values:  deps.Engine.ExtractURLFeatures(req.URL),
		})
	}
}

// VisualMatchRequest is the body for POST /api/v1/visual/match.
type VisualMatchRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// VisualMatchHandler handles POST /api/v1/visual/match.
//
// Undecodable images are reported as a no-match result with 200, never as
// an error status: the endpoint answers "did it match", not "was the input
// pretty".
func VisualMatchHandler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VisualMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteJSONError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body: "+err.Error())
			return
		}

		api.WriteJSON(w, http.StatusOK, deps.Engine.FindVisualMatch(req.ImageBase64))
	}
}

// LegitimacyRequest is the body for POST /api/v1/legitimacy.
type LegitimacyRequest struct {
	MatchedID string `json:"matched_id"`
	URL       string `json:"url"`
}

// LegitimacyHandler handles POST /api/v1/legitimacy.
//
// An unknown brand identifier or an URL with no registrable domain is a 422:
// the question cannot be answered, and refusing beats a fabricated verdict.
func LegitimacyHandler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LegitimacyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteJSONError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body: "+err.Error())
			return
		}

		verdict, err := deps.Engine.CheckURLLegitimacy(req.MatchedID, req.URL)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, verdict)
	}
}

// AnalyzeHandler handles POST /api/v1/analyze, the full pipeline over a
// URL plus optional screenshot and e-mail text.
func AnalyzeHandler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in engine.AnalyzeInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			api.WriteJSONError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body: "+err.Error())
			return
		}

		report, err := deps.Engine.Analyze(r.Context(), in)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, report)
	}
}
