package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"time"
)

// Config describes how to derive a limit key and the window thresholds.
type Config struct {
	Key    func(*http.Request) string
	Window time.Duration
	Max    int
}

// Handler enforces rate limits before delegating to the next handler.
// Limiter errors fail open: a broken Redis must not take quoting down.
type Handler struct {
	Limiter Limiter
	Config  Config
	OnError func(error)
}

// ClientIPKey derives the limit key from the request's remote address.
// RealIP middleware is expected to have rewritten RemoteAddr already.
func ClientIPKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware wraps next with limit enforcement.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Config.Key == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetAt, err := h.Limiter.Allow(r.Context(), h.Config.Key(r), h.Config.Window, h.Config.Max)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		h.writeHeaders(w, remaining, resetAt)
		if !allowed {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 0)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h Handler) writeHeaders(w http.ResponseWriter, remaining int, resetAt time.Time) {
	headers := w.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(max(h.Config.Max, 0)))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}
