package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quarteto/lib/timer"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestTracer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := mux.NewRouter()
	router.Use(Tracer(zap.New(core), 0, 1))
	router.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		timer.Mark(r.Context(), "handled")
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "handled")
	assert.Equal(t, "/run", entries[0].ContextMap()["path"])
}

func TestTracer_Disabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	traced := false
	h := Tracer(zap.New(core), 0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traced = timer.Events(r.Context()) != nil
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, traced)
	assert.Empty(t, logs.All())
}

func TestTimeoutMiddleware(t *testing.T) {
	h := TimeoutMiddleware(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimitingMiddleware_ReleasesOnPanic(t *testing.T) {
	calls := 0
	h := RateLimitingMiddleware(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			panic("handler failed")
		}
		w.WriteHeader(http.StatusOK)
	}))
	assert.Panics(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})

	// the slot taken by the panicking request is free again
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, calls)
}

func TestRateLimitingMiddleware_GivesUpWithContext(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	h := RateLimitingMiddleware(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	go h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
