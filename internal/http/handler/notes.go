package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"notes/internal/auth"
	"notes/internal/logger"
	"notes/internal/note"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// NoteHandler serves the /api/notes resource.
//
// Without a verified identity in the request context the owner email is
// taken from the request as given, and update/delete apply to any note.
// With one, that email replaces the client-supplied value and update/delete
// only reach the caller's own notes.
type NoteHandler struct {
	Svc *note.Service
}

type noteWriteReq struct {
	Text  string `json:"text"`
	Email string `json:"email"`
}

type deleteResp struct {
	ID string `json:"id"`
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNoteWrite(w, r)
	if !ok {
		return
	}
	email, _ := verifiedEmail(r)
	if email == "" {
		email = req.Email
	}

	n, err := h.Svc.Create(r.Context(), note.CreateInput{Text: req.Text, Email: email})
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	f := note.Filter{
		Email: r.URL.Query().Get("email"),
		Tag:   strings.TrimSpace(strings.ToLower(r.URL.Query().Get("tag"))),
	}
	if email, ok := verifiedEmail(r); ok {
		f.Email = email
	}

	notes, err := h.Svc.List(r.Context(), f)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNoteWrite(w, r)
	if !ok {
		return
	}
	email, _ := verifiedEmail(r)

	n, err := h.Svc.Update(r.Context(), note.UpdateInput{
		ID:    chi.URLParam(r, "id"),
		Text:  req.Text,
		Email: email,
	})
	switch {
	case errors.Is(err, note.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, n)
	}
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email, _ := verifiedEmail(r)

	err := h.Svc.Delete(r.Context(), note.Selector{ID: id, Email: email})
	switch {
	case errors.Is(err, note.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case err != nil:
		serverError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, deleteResp{ID: id})
	}
}

func verifiedEmail(r *http.Request) (string, bool) {
	return auth.EmailFromContext(r.Context())
}

func decodeNoteWrite(w http.ResponseWriter, r *http.Request) (noteWriteReq, bool) {
	var req noteWriteReq

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return req, false
	}
	if err := validateNoteWrite(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return req, false
	}
	return req, true
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).WithError(err).Errorln("storage failure")
	writeError(w, http.StatusInternalServerError, msgServerError)
}
