package http

import (
	"net/http"

	"notes/internal/auth"
	"notes/internal/config"
	"notes/internal/http/handler"
	mw "notes/internal/http/middleware"
	"notes/internal/logger"
	"notes/internal/note"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the notes API. jwtSvc is only used when cfg.AuthMode is
// config.AuthToken and may be nil otherwise.
func NewRouter(cfg config.Config, svc *note.Service, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logger.Middleware)
	r.Use(chimw.Recoverer)

	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		r.Use(mw.CORS(origins, cfg.CORSAllowCredentials))
	}

	status := &handler.StatusHandler{}
	r.Get("/", status.Banner)
	r.Get("/health", status.Health)

	notesH := &handler.NoteHandler{Svc: svc}

	r.Route("/api", func(r chi.Router) {
		if cfg.AuthMode == config.AuthToken {
			r.Use(auth.RequireAuth(jwtSvc))
			r.Get("/me", status.Me)
		}

		r.Post("/notes", notesH.Create)
		r.Get("/notes", notesH.List)
		r.Put("/notes/{id}", notesH.Update)
		r.Delete("/notes/{id}", notesH.Delete)
	})

	return r
}
