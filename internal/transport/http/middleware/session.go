package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"staffsync/internal/domain/session"
)

// Session loads the session pointer named by the caller's sid claim and
// stores it in the request context. A missing pointer yields an empty
// session rather than an error.
func Session(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok || user.SessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Get(r.Context(), user.SessionID)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					slog.Warn("session lookup failed", "err", err, "requestId", GetRequestID(r.Context()))
				}
				sess = session.Session{ID: user.SessionID}
			}
			ctx := session.WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
