package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/ratelimit"
)

type contextKey string

const contextKeyUserID contextKey = "user_id"

// requireAuth validates the bearer access token and stores the user id in
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			s.fail(w, r, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			s.fail(w, r, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		userID, err := s.auth.Authenticate(token)
		if err != nil {
			s.fail(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyUserID).(string)
	return id
}

// rateLimit rejects requests once the client address exceeds limiter.
func (s *Server) rateLimit(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !limiter.Allow(key) {
				s.log.Warn(r.Context(), "rate limit exceeded", "ip", key, "path", r.URL.Path)
				s.fail(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP relies on middleware.RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
