package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

// withTestUser injects a SessionUser into the request context, simulating
// what LoadSessionUser does after resolving a live session.
func withTestUser(r *http.Request, role string) *http.Request {
	user := &auth.SessionUser{
		ID:       "507f1f77bcf86cd799439011", // valid ObjectID hex
		Username: "ta_demo",
		FullName: "Demo Teaching Assistant",
		Role:     role,
	}
	return auth.WithTestUser(r, user)
}

func TestRequireRole_NoUser_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("ta")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/ta/questions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TA authentication required") {
		t.Errorf("expected TA auth message, got %q", rec.Body.String())
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.RequireRole("ta")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/ta/questions", nil)
	req = withTestUser(req, "teacher")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler must not run for wrong-role principal")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.RequireRole("ta")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/ta/profile", nil)
	req = withTestUser(req, "ta")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("ta")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/ta/profile", nil)
	req = withTestUser(req, "TA")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for uppercase role, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/classroom", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)

	if ok {
		t.Error("expected ok to be false when no user in context")
	}
	if user != nil {
		t.Error("expected user to be nil when no user in context")
	}
}

func TestSignIn_SessionRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetPrincipalResolver(func(ctx context.Context, id, role string) (*auth.SessionUser, error) {
		return &auth.SessionUser{ID: id, Username: "ta_demo", Role: role}, nil
	})

	// Sign in and capture the cookie.
	signinReq := httptest.NewRequest("POST", "/ta/login", nil)
	signinRec := httptest.NewRecorder()
	if err := sm.SignIn(signinRec, signinReq, "507f1f77bcf86cd799439011", "ta"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Replay the cookie through LoadSessionUser.
	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/ta/profile", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected principal to be resolved from session")
	}
	if got.Role != "ta" {
		t.Errorf("role: got %q, want %q", got.Role, "ta")
	}
	if got.ID != "507f1f77bcf86cd799439011" {
		t.Errorf("id: got %q, want %q", got.ID, "507f1f77bcf86cd799439011")
	}
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest("POST", "/ta/logout", nil)
	rec := httptest.NewRecorder()
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a deletion cookie")
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
	}
}

func TestLoadSessionUser_UnresolvedPrincipal_TreatedAsSignedOut(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetPrincipalResolver(func(ctx context.Context, id, role string) (*auth.SessionUser, error) {
		return nil, nil // account deleted or deactivated
	})

	signinReq := httptest.NewRequest("POST", "/ta/login", nil)
	signinRec := httptest.NewRecorder()
	if err := sm.SignIn(signinRec, signinReq, "507f1f77bcf86cd799439011", "ta"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	handler := sm.LoadSessionUser(sm.RequireRole("ta")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest("GET", "/ta/profile", nil)
	for _, c := range signinRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for stale session, got %d", http.StatusUnauthorized, rec.Code)
	}
}
