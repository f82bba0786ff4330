package note

import (
	"context"
	"fmt"
)

type Service struct {
	Store Store
}

type CreateInput struct {
	Text  string
	Email string
}

type UpdateInput struct {
	ID   string
	Text string
	// Email scopes the update to one owner. Leave empty to update regardless
	// of who created the note.
	Email string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Note, error) {
	n, err := s.Store.Create(ctx, Note{
		Text:  in.Text,
		Email: in.Email,
		Tags:  ExtractTags(in.Text),
	})
	if err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Note, error) {
	notes, err := s.Store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (Note, error) {
	n, err := s.Store.Update(ctx, Selector{ID: in.ID, Email: in.Email}, in.Text, ExtractTags(in.Text))
	if err != nil {
		return Note{}, fmt.Errorf("update note %s: %w", in.ID, err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, sel Selector) error {
	if err := s.Store.Delete(ctx, sel); err != nil {
		return fmt.Errorf("delete note %s: %w", sel.ID, err)
	}
	return nil
}
