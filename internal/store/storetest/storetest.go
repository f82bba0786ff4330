// Package storetest is a conformance suite shared by every note.Store backend.
package storetest

import (
	"context"
	"testing"

	"notes/internal/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. The suite closes it.
type Factory func(t *testing.T) note.Store

// Run executes every conformance case against stores produced by newStore.
// missingID must be well-formed for the backend but never assigned.
func Run(t *testing.T, newStore Factory, missingID string) {
	cases := []struct {
		name string
		fn   func(t *testing.T, s note.Store, missingID string)
	}{
		{"CreateThenList", testCreateThenList},
		{"ListFilters", testListFilters},
		{"UpdateReplacesText", testUpdateReplacesText},
		{"UpdateUnknown", testUpdateUnknown},
		{"UpdateWrongOwner", testUpdateWrongOwner},
		{"DeleteRemovesOne", testDeleteRemovesOne},
		{"DeleteUnknown", testDeleteUnknown},
		{"MalformedID", testMalformedID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close(context.Background()) })
			tc.fn(t, s, missingID)
		})
	}
}

func seed(t *testing.T, s note.Store, notes ...note.Note) []note.Note {
	t.Helper()
	out := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		created, err := s.Create(context.Background(), n)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		out = append(out, created)
	}
	return out
}

func ids(notes []note.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func testCreateThenList(t *testing.T, s note.Store, _ string) {
	created := seed(t, s,
		note.Note{Text: "buy milk"},
		note.Note{Text: "call mom #family", Email: "a@example.com", Tags: []string{"family"}},
	)
	assert.NotEqual(t, created[0].ID, created[1].ID)

	all, err := s.List(context.Background(), note.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ids(created), ids(all), "list is in creation order")
	assert.Equal(t, "buy milk", all[0].Text)
	assert.Equal(t, "a@example.com", all[1].Email)
	assert.Equal(t, []string{"family"}, all[1].Tags)
}

func testListFilters(t *testing.T, s note.Store, _ string) {
	seed(t, s,
		note.Note{Text: "a1 #work", Email: "a@example.com", Tags: []string{"work"}},
		note.Note{Text: "a2", Email: "a@example.com"},
		note.Note{Text: "b1 #work", Email: "b@example.com", Tags: []string{"work"}},
		note.Note{Text: "anon"},
	)
	ctx := context.Background()

	byOwner, err := s.List(ctx, note.Filter{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)
	for _, n := range byOwner {
		assert.Equal(t, "a@example.com", n.Email)
	}

	byTag, err := s.List(ctx, note.Filter{Tag: "work"})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	both, err := s.List(ctx, note.Filter{Email: "b@example.com", Tag: "work"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "b1 #work", both[0].Text)

	none, err := s.List(ctx, note.Filter{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testUpdateReplacesText(t *testing.T, s note.Store, _ string) {
	created := seed(t, s,
		note.Note{Text: "buy milk", Email: "a@example.com"},
		note.Note{Text: "other"},
	)
	ctx := context.Background()

	updated, err := s.Update(ctx, note.Selector{ID: created[0].ID}, "buy oat milk #shop", []string{"shop"})
	require.NoError(t, err)
	assert.Equal(t, created[0].ID, updated.ID)
	assert.Equal(t, "buy oat milk #shop", updated.Text)
	assert.Equal(t, "a@example.com", updated.Email, "owner is never reassigned")

	all, err := s.List(ctx, note.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "buy oat milk #shop", all[0].Text)
	assert.Equal(t, []string{"shop"}, all[0].Tags)
	assert.Equal(t, created[1], all[1])
}

func testUpdateUnknown(t *testing.T, s note.Store, missingID string) {
	seed(t, s, note.Note{Text: "keep"})
	ctx := context.Background()

	_, err := s.Update(ctx, note.Selector{ID: missingID}, "changed", nil)
	assert.ErrorIs(t, err, note.ErrNotFound)

	all, err := s.List(ctx, note.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Text)
}

func testUpdateWrongOwner(t *testing.T, s note.Store, _ string) {
	created := seed(t, s, note.Note{Text: "mine", Email: "a@example.com"})
	ctx := context.Background()

	_, err := s.Update(ctx, note.Selector{ID: created[0].ID, Email: "b@example.com"}, "theirs", nil)
	assert.ErrorIs(t, err, note.ErrNotFound)

	err = s.Delete(ctx, note.Selector{ID: created[0].ID, Email: "b@example.com"})
	assert.ErrorIs(t, err, note.ErrNotFound)

	all, err := s.List(ctx, note.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "mine", all[0].Text)
}

func testDeleteRemovesOne(t *testing.T, s note.Store, _ string) {
	created := seed(t, s,
		note.Note{Text: "one"},
		note.Note{Text: "two"},
		note.Note{Text: "three"},
	)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, note.Selector{ID: created[1].ID}))

	all, err := s.List(ctx, note.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotContains(t, ids(all), created[1].ID)

	err = s.Delete(ctx, note.Selector{ID: created[1].ID})
	assert.ErrorIs(t, err, note.ErrNotFound, "delete is not idempotent")
}

func testDeleteUnknown(t *testing.T, s note.Store, missingID string) {
	seed(t, s, note.Note{Text: "keep"})
	ctx := context.Background()

	assert.ErrorIs(t, s.Delete(ctx, note.Selector{ID: missingID}), note.ErrNotFound)

	all, err := s.List(ctx, note.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testMalformedID(t *testing.T, s note.Store, _ string) {
	ctx := context.Background()

	_, err := s.Update(ctx, note.Selector{ID: "not-an-id"}, "x", nil)
	assert.ErrorIs(t, err, note.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, note.Selector{ID: "not-an-id"}), note.ErrNotFound)
}
