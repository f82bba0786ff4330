package handler

import (
	"net/http"

	"notes/internal/auth"
)

type StatusHandler struct{}

func (h *StatusHandler) Banner(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Notes is running"))
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Me echoes the verified identity of the caller.
func (h *StatusHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"email": email})
}
