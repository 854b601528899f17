package http

import (
	"math/rand"
	"net/http"
	"time"

	"quarteto/lib/timer"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

func TimeoutMiddleware(timeout time.Duration) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, "server timed out")
	}
}

// RateLimitingMiddleware lets at most maxConcurrentRequests handlers run at
// once. Waiting requests give up when their context ends.
func RateLimitingMiddleware(maxConcurrentRequests int) mux.MiddlewareFunc {
	sem := semaphore.NewWeighted(int64(maxConcurrentRequests))
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				http.Error(w, "server busy", http.StatusServiceUnavailable)
				return
			}
			defer sem.Release(1)
			h.ServeHTTP(w, r)
		})
	}
}

// Tracer attaches a trace to a sampled fraction of requests and logs it when
// the request took longer than slow. A sampleRate of 0 traces nothing.
func Tracer(logger *zap.Logger, slow time.Duration, sampleRate float64) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sampleRate <= 0 || rand.Float64() >= sampleRate {
				h.ServeHTTP(w, r)
				return
			}
			ctx := timer.WithTracing(r.Context())
			start := time.Now()
			h.ServeHTTP(w, r.WithContext(ctx))
			if time.Since(start) >= slow {
				_ = timer.LogTracingInfo(ctx, logger.With(zap.String("path", r.URL.Path)))
			}
		})
	}
}
