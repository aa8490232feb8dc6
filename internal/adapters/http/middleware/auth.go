package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// Level is the capability a route requires.
type Level int

// Level constants
const (
	LevelUser Level = iota + 1
	LevelAdmin
)

// Decision is the outcome of an access check.
type Decision int

// Decision constants
const (
	Allow Decision = iota
	DenyAnonymous
	DenyNotAdmin
)

// String returns the decision name used in logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyAnonymous:
		return "deny_anonymous"
	case DenyNotAdmin:
		return "deny_not_admin"
	}
	return "unknown"
}

// Check decides whether the session in ctx satisfies level.
// POST: Returns Allow only for a session holding the capability
func Check(ctx context.Context, level Level) Decision {
	sess, ok := GetSessionFromContext(ctx)
	if !ok || sess.UserID == "" {
		return DenyAnonymous
	}
	if level == LevelAdmin && !sess.IsAdmin {
		return DenyNotAdmin
	}
	return Allow
}

// Auth returns middleware that decodes the session cookie into the request context.
// It does NOT block unauthenticated requests; use RequireAuth or RequireAdmin for that.
func Auth(sessions *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := sessions.Read(r); ok {
				r = r.WithContext(ContextWithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth blocks requests without a session.
func RequireAuth(next http.Handler) http.Handler {
	return require(LevelUser, next)
}

// RequireAdmin blocks requests whose session lacks the admin flag.
// Anonymous and non-admin callers both land on the login page.
func RequireAdmin(next http.Handler) http.Handler {
	return require(LevelAdmin, next)
}

func require(level Level, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d := Check(r.Context(), level); d != Allow {
			slog.Info("auth_event", "event", "access_denied", "decision", d.String(), "path", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(Session)
	return sess, ok
}

// ContextWithSession returns a context with the given session set.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
