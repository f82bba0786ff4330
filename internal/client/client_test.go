package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"notes/internal/auth"
	"notes/internal/client"
	"notes/internal/config"
	httpx "notes/internal/http"
	"notes/internal/note"
	"notes/internal/store/boltstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, cfg config.Config, jwtSvc *auth.JWT) http.Handler {
	t.Helper()
	s, err := boltstore.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return httpx.NewRouter(cfg, &note.Service{Store: s}, jwtSvc)
}

func trustConfig() config.Config {
	return config.Config{Store: config.StoreBolt, AuthMode: config.AuthTrust}
}

func testCRUD(t *testing.T, c client.Client) {
	ctx := context.Background()

	created, err := c.Create(ctx, "buy milk", "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "buy milk", created.Text)
	assert.Equal(t, "a@example.com", created.Email)

	_, err = c.Create(ctx, "someone else's", "b@example.com")
	require.NoError(t, err)

	mine, err := c.List(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []note.Note{created}, mine)

	all, err := c.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := c.Update(ctx, created.ID, "buy oat milk", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Text)

	require.NoError(t, c.Delete(ctx, created.ID, "a@example.com"))

	mine, err = c.List(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = c.Update(ctx, created.ID, "gone", "")
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, created.ID, ""), client.ErrNotFound)
}

func TestInProcess(t *testing.T) {
	testCRUD(t, client.NewWithHandler(newAPI(t, trustConfig(), nil)))
}

func TestOverHTTP(t *testing.T) {
	srv := httptest.NewServer(newAPI(t, trustConfig(), nil))
	defer srv.Close()

	testCRUD(t, client.NewWithURL(srv.URL+"/"))
}

func TestStatusError(t *testing.T) {
	jwtSvc := auth.NewJWT("secret", "notes-local")
	cfg := trustConfig()
	cfg.AuthMode = config.AuthToken
	c := client.NewWithHandler(newAPI(t, cfg, jwtSvc))

	_, err := c.List(context.Background(), "")
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)

	token, err := jwtSvc.Sign("a@example.com")
	require.NoError(t, err)
	notes, err := c.WithToken(token).List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, notes)
}
