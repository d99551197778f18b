package auth

// Terminology: Principal Identifiers
//   - PrincipalID / principal_id: The MongoDB ObjectID (_id) of the teacher
//     or TA record behind a session.
//   - Role: "teacher" or "ta". The session stores only {id, role}; the full
//     principal is re-fetched on each request by the resolver.

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey      = "is_authenticated"
	principalIDKey = "principal_id"
	principalRole  = "principal_role"
)

// SessionUser is the principal cached into r.Context() for the duration
// of a request. It is rebuilt from the backing store on every request so
// deactivations and renames take effect immediately.
type SessionUser struct {
	ID       string
	Username string
	FullName string
	Role     string
}

// PrincipalResolver turns the {id, role} pair stored in a session back
// into a full principal. Returning (nil, nil) means the session no longer
// resolves (deleted or deactivated account) and is treated as signed out,
// not as a server error.
type PrincipalResolver func(ctx context.Context, id, role string) (*SessionUser, error)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager owns the cookie store and the middleware that loads and
// guards sessions. Construct once in bootstrap and share across features.
type SessionManager struct {
	store    *sessions.CookieStore
	name     string
	log      *zap.Logger
	resolver PrincipalResolver
}

// NewSessionManager initializes a cookie-backed session manager.
// The `secure` flag controls Secure cookies and the SameSite mode:
// production uses Secure + SameSite=None (the SPA may be served from a
// different origin), local dev over http uses Lax so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("cookie", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetPrincipalResolver installs the function LoadSessionUser uses to
// re-fetch the principal behind a session on each request.
func (sm *SessionManager) SetPrincipalResolver(r PrincipalResolver) {
	sm.resolver = r
}

// Store exposes the underlying cookie store (logout needs its Options to
// build a matching deletion cookie).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// GetSession returns the request's session, decoding the cookie if present.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SignIn writes the minimal {id, role} pair into a fresh session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, id, role string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil && !isDecodeError(err) {
		return err
	}
	sess.Values[isAuthKey] = true
	sess.Values[principalIDKey] = id
	sess.Values[principalRole] = role
	return sess.Save(r, w)
}

// SignOut expires the session cookie immediately.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil && !isDecodeError(err) {
		return err
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1 // delete immediately
	return sess.Save(r, w)
}

// CurrentUser returns the principal loaded by LoadSessionUser, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a principal into the request context. Test helper:
// it simulates what LoadSessionUser does without a cookie round-trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser resolves the session cookie into a SessionUser and puts
// it into the request context. A cookie that fails to decode, or a
// principal that no longer resolves, is treated as signed out.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			if !isDecodeError(err) {
				sm.log.Warn("session load failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
			next.ServeHTTP(w, r)
			return
		}

		id := getString(sess, principalIDKey)
		role := getString(sess, principalRole)
		if id == "" || role == "" || sm.resolver == nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := sm.resolver(r.Context(), id, role)
		if err != nil {
			sm.log.Error("principal resolve failed", zap.String("role", role), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if u == nil {
			// Stale session for a deleted or deactivated account.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures a principal is in context (set by LoadSessionUser).
// API semantics: no redirects, a plain 401 JSON body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards a route subtree with a role check. Unauthenticated
// requests get 401, wrong-role requests 403; downstream handlers are never
// reached without a verified principal of an allowed role.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	_, taOnly := set["ta"]
	taOnly = taOnly && len(set) == 1

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				msg := "Authentication required"
				if taOnly {
					msg = "TA authentication required"
				}
				writeAuthError(w, http.StatusUnauthorized, msg)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				writeAuthError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

// isDecodeError reports whether err came from securecookie failing to
// decode a cookie (tampered or signed with an old key). Those sessions
// are treated as absent.
func isDecodeError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(securecookie.Error); ok {
		return true
	}
	if multi, ok := err.(securecookie.MultiError); ok {
		return len(multi) > 0
	}
	return false
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "{\"error\":%q}\n", msg)
}
