package v1

import (
	"net/http"
	"sync/atomic"

	"github.com/lurelight/lurelight/pkg/server/api"
	"github.com/lurelight/lurelight/pkg/version"
)

// ReadyzHandler returns 200 when the server is ready, 503 otherwise.
//
// Unlike /healthz (liveness), this reports whether initialization finished:
// the fingerprint store warm-up has run and the HTTP server accepts traffic.
func ReadyzHandler(ready *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("Ready"))
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Not Ready"))
		}
	}
}

// VersionHandler handles GET /api/v1/version.
func VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, version.Get())
	}
}
