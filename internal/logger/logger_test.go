package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	Init("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Init("nonsense")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestContextWithLoggerID(t *testing.T) {
	ctx, rlog := ContextWithLoggerID(context.Background(), "req-1")
	require.NotNil(t, rlog)
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))

	again, same := ContextWithLoggerID(ctx, "req-2")
	assert.Equal(t, ctx, again)
	assert.Same(t, rlog, same)

	_, generated := ContextWithLoggerID(context.Background(), "")
	assert.NotEmpty(t, generated.Data[requestIDLoggerKey])
}

func TestContextWithLoggerIdentity(t *testing.T) {
	ctx, _ := ContextWithLoggerID(context.Background(), "req-1")
	ctx, rlog := ContextWithLoggerIdentity(ctx, "a@example.com")

	assert.Equal(t, "a@example.com", rlog.Data[identityLoggerKey])
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Same(t, rlog, FromContext(ctx))
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestMiddlewareUsesChiRequestID(t *testing.T) {
	var seen string
	h := chimw.RequestID(Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
}
