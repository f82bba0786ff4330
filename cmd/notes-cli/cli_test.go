package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"notes/internal/auth"
	"notes/internal/config"
	httpx "notes/internal/http"
	"notes/internal/note"
	"notes/internal/store/boltstore"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	listJSON, filterTag, loginEmail = false, "", ""
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	s, err := boltstore.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	cfg := config.Config{Store: config.StoreBolt, AuthMode: config.AuthToken}
	srv := httptest.NewServer(httpx.NewRouter(cfg, &note.Service{Store: s}, auth.NewJWT("s3cret", "notes-local")))
	t.Cleanup(srv.Close)

	global := []string{"--api", srv.URL, "--session", filepath.Join(t.TempDir(), "session.yaml"), "--secret", "s3cret", "--issuer", "notes-local"}
	cmd := func(args ...string) []string { return append(append([]string{}, global...), args...) }

	_, err = run(t, cmd("list")...)
	assert.Error(t, err, "signed out")

	out, err := run(t, cmd("whoami")...)
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)

	out, err = run(t, cmd("login", "--email", "A@Example.com")...)
	require.NoError(t, err)
	assert.Equal(t, "Signed in as a@example.com\n", out)

	_, err = run(t, cmd("add", "buy", "milk", "#shop")...)
	require.NoError(t, err)
	_, err = run(t, cmd("add", "call mom")...)
	require.NoError(t, err)

	out, err = run(t, cmd("list", "--json")...)
	require.NoError(t, err)
	var notes []note.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "buy milk #shop", notes[0].Text)
	assert.Equal(t, "a@example.com", notes[1].Email)

	out, err = run(t, cmd("list", "--json", "--tag", "#shop")...)
	require.NoError(t, err)
	notes = nil
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 1)

	_, err = run(t, cmd("edit", notes[0].ID, "buy", "oat", "milk")...)
	require.NoError(t, err)
	_, err = run(t, cmd("rm", notes[0].ID)...)
	require.NoError(t, err)

	out, err = run(t, cmd("list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "call mom")
	assert.NotContains(t, out, "milk")

	_, err = run(t, cmd("logout")...)
	require.NoError(t, err)
	out, err = run(t, cmd("whoami")...)
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)
}
