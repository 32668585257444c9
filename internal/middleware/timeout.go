package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout aborts requests that run longer than d with a 503. The handler
// keeps running in its goroutine until it notices the canceled context,
// but anything it writes after the deadline is discarded.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				gw.mu.Lock()
				defer gw.mu.Unlock()
				if !gw.started {
					gw.started = true
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte("Request timeout"))
				}
			}
		})
	}
}

// guardedWriter serializes writes so the timeout path and the handler
// goroutine cannot both start a response.
type guardedWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	started bool
}

func (gw *guardedWriter) WriteHeader(code int) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.started {
		return
	}
	gw.started = true
	gw.ResponseWriter.WriteHeader(code)
}

func (gw *guardedWriter) Write(b []byte) (int, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if !gw.started {
		gw.started = true
		gw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return gw.ResponseWriter.Write(b)
}
