package httpx

import (
	"net/http"

	"github.com/lurelight/lurelight/pkg/server/api"
	v1 "github.com/lurelight/lurelight/pkg/server/api/v1"
)

// NewRouter creates and configures the main HTTP router.
//
// The router uses Go 1.22+ enhanced pattern matching for cleaner routes.
// Health endpoints are always mounted for liveness/readiness checks.
func NewRouter(deps *api.Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", HealthzHandler)
	mux.HandleFunc("GET /readyz", v1.ReadyzHandler(deps.Ready))
	mux.HandleFunc("GET /api/v1/version", v1.VersionHandler())

	mux.HandleFunc("POST /api/v1/url/features", v1.URLFeaturesHandler(deps))
	mux.HandleFunc("POST /api/v1/visual/match", v1.VisualMatchHandler(deps))
	mux.HandleFunc("POST /api/v1/legitimacy", v1.LegitimacyHandler(deps))
	mux.HandleFunc("POST /api/v1/analyze", v1.AnalyzeHandler(deps))

	return mux
}

// HealthzHandler responds with 200 OK if the server process is alive.
// This endpoint is used by load balancers and orchestrators for liveness
// checks. It does not touch the engine; for readiness use /readyz instead.
func HealthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
