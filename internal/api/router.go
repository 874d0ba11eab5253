package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(sessionHandler *SessionHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request.
	r.Use(middleware.Recoverer) // Turns panics into a 500 response.

	// --- Public Routes ---

	// Health check for container liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1/session", func(r chi.Router) {

		// Short JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Session ---
			r.Get("/", sessionHandler.GetSession)
			r.Post("/clear", sessionHandler.ClearConversation)

			// --- Language ---
			r.Post("/language/toggle", sessionHandler.ToggleLanguage)
			r.Put("/language", sessionHandler.SetLanguage)
			r.Post("/language/negotiate", sessionHandler.NegotiateLanguage)

			// --- Export ---
			r.Get("/transcript", sessionHandler.DownloadTranscript)
			r.Get("/render", sessionHandler.RenderSession)
		})

		// A model turn can outlast the request timeout and must not be cut short.
		r.Post("/messages", sessionHandler.SendMessage)
	})

	return r
}
