package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/api/handlers"
)

// NewRouter wires every dashboard endpoint.
//
//	GET  /health
//	GET  /api/meta
//	GET  /api/load
//	GET  /api/summary
//	GET  /api/states?q=
//	GET  /api/records
//	GET  /api/bar
//	GET  /api/trend
//	GET  /api/table
//	GET  /api/chart/{bar,trend}.{png,svg}
//	POST /api/reload
//
// Selection parameters: state (repeatable) or states=a,b or states=all,
// year, indicator, columns=a,b, order=asc|desc.
func NewRouter(h *handlers.DashboardHandler, log zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/meta", h.GetMeta).Methods("GET")
	api.HandleFunc("/load", h.GetLoad).Methods("GET")
	api.HandleFunc("/summary", h.GetSummary).Methods("GET")
	api.HandleFunc("/states", h.SearchStates).Methods("GET")
	api.HandleFunc("/records", h.GetRecords).Methods("GET")
	api.HandleFunc("/bar", h.GetBar).Methods("GET")
	api.HandleFunc("/trend", h.GetTrend).Methods("GET")
	api.HandleFunc("/table", h.GetTable).Methods("GET")
	api.HandleFunc("/chart/{kind:bar|trend}.{format:png|svg}", h.GetChart).Methods("GET")
	api.HandleFunc("/reload", h.Reload).Methods("POST")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "healthdash",
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}

func recoveryMiddleware(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Interface("panic", err).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
