// Package view holds the client-side state of the notes screen: the notes
// list, the new-note draft and the note being edited. It follows the identity
// provider and merges server responses into local state without refetching.
package view

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"notes/internal/identity"
	"notes/internal/logger"
	"notes/internal/note"
)

var (
	ErrSignedOut  = errors.New("please sign in to manage your notes")
	ErrEmptyText  = errors.New("field can not be empty")
	ErrNotEditing = errors.New("no note is being edited")
)

// API is the subset of the notes client the view calls.
type API interface {
	List(ctx context.Context, email string) ([]note.Note, error)
	Create(ctx context.Context, text, email string) (note.Note, error)
	Update(ctx context.Context, id, text, email string) (note.Note, error)
	Delete(ctx context.Context, id, email string) error
}

// Connect returns the API to use with the given ID token.
type Connect func(token string) API

type View struct {
	connect Connect

	mu         sync.Mutex
	user       *identity.User
	notes      []note.Note
	draft      string
	editingID  string
	editedText string
}

func New(connect Connect) *View {
	return &View{connect: connect}
}

// Bind follows p's auth state until the returned func is called. Signing in
// loads the user's notes; signing out clears them.
func (v *View) Bind(ctx context.Context, p identity.Provider) (unbind func()) {
	return p.OnAuthStateChanged(func(u *identity.User) {
		if u == nil {
			v.mu.Lock()
			v.user = nil
			v.notes = nil
			v.editingID, v.editedText = "", ""
			v.mu.Unlock()
			return
		}

		v.mu.Lock()
		v.user = u
		v.mu.Unlock()
		if err := v.Refresh(ctx); err != nil {
			logger.FromContext(ctx).WithError(err).Warnln("load notes after sign-in")
		}
	})
}

// Refresh replaces the local list with the signed-in user's notes.
func (v *View) Refresh(ctx context.Context) error {
	u, api, err := v.session()
	if err != nil {
		return err
	}
	notes, err := api.List(ctx, u.Email)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("error fetching notes")
		return err
	}

	v.mu.Lock()
	v.notes = notes
	v.mu.Unlock()
	return nil
}

func (v *View) SetDraft(text string) {
	v.mu.Lock()
	v.draft = text
	v.mu.Unlock()
}

// Save creates a note from the draft. The draft is cleared whether or not
// the request succeeds.
func (v *View) Save(ctx context.Context) (note.Note, error) {
	u, api, err := v.session()
	if err != nil {
		return note.Note{}, err
	}

	v.mu.Lock()
	text := v.draft
	v.mu.Unlock()
	if strings.TrimSpace(text) == "" {
		return note.Note{}, ErrEmptyText
	}

	created, err := api.Create(ctx, text, u.Email)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = ""
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("error saving note")
		return note.Note{}, err
	}
	v.notes = append(v.notes, created)
	return created, nil
}

func (v *View) StartEdit(id, text string) {
	v.mu.Lock()
	v.editingID, v.editedText = id, text
	v.mu.Unlock()
}

func (v *View) SetEditedText(text string) {
	v.mu.Lock()
	v.editedText = text
	v.mu.Unlock()
}

func (v *View) CancelEdit() {
	v.mu.Lock()
	v.editingID, v.editedText = "", ""
	v.mu.Unlock()
}

// SaveEdit sends the edited text. On failure the view stays in edit mode.
func (v *View) SaveEdit(ctx context.Context) (note.Note, error) {
	u, api, err := v.session()
	if err != nil {
		return note.Note{}, err
	}

	v.mu.Lock()
	id, text := v.editingID, v.editedText
	v.mu.Unlock()
	if id == "" {
		return note.Note{}, ErrNotEditing
	}
	if strings.TrimSpace(text) == "" {
		return note.Note{}, ErrEmptyText
	}

	updated, err := api.Update(ctx, id, text, u.Email)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("error editing note")
		return note.Note{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.notes {
		if v.notes[i].ID == id {
			v.notes[i].Text = updated.Text
			v.notes[i].Tags = updated.Tags
		}
	}
	if v.editingID == id {
		v.editingID, v.editedText = "", ""
	}
	return updated, nil
}

func (v *View) Delete(ctx context.Context, id string) error {
	u, api, err := v.session()
	if err != nil {
		return err
	}
	if err := api.Delete(ctx, id, u.Email); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("error deleting note")
		return err
	}

	v.mu.Lock()
	v.notes = slices.DeleteFunc(v.notes, func(n note.Note) bool { return n.ID == id })
	v.mu.Unlock()
	return nil
}

func (v *View) User() *identity.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.user
}

// Notes returns a copy of the local list.
func (v *View) Notes() []note.Note {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.notes)
}

func (v *View) Draft() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

// Editing returns the note in edit mode and its pending text. id is empty
// when nothing is being edited.
func (v *View) Editing() (id, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editingID, v.editedText
}

func (v *View) session() (*identity.User, API, error) {
	v.mu.Lock()
	u := v.user
	v.mu.Unlock()
	if u == nil {
		return nil, nil, ErrSignedOut
	}
	return u, v.connect(u.Token), nil
}
