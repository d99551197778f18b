package ta

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/noteboard/internal/testutil"
)

func TestHandleRegister_CreatesTA(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := httptest.NewRequest("POST", "/ta/register", jsonBody(
		`{"username":"helper","email":"helper@example.com","password":"secret123","fullName":"Jordan Lee"}`))
	rec := testutil.NewRecorder()

	h.HandleRegister(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "TA registered successfully")
	rec.AssertContains(t, `"username":"helper"`)
	// The password hash must never appear in a response.
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaks password field: %s", rec.Body.String())
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"username":"helper"}`, "All fields are required"},
		{"short password", `{"username":"helper","email":"h@example.com","password":"abc","fullName":"J"}`, "Password must be at least 6 characters"},
		{"bad json", `{not json`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/ta/register", jsonBody(tt.body))
			rec := testutil.NewRecorder()

			h.HandleRegister(rec, req)

			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestHandleRegister_DuplicateMessages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := newTestHandler(t, db)
	if err := h.TAs.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first := httptest.NewRequest("POST", "/ta/register", jsonBody(
		`{"username":"helper","email":"helper@example.com","password":"secret123","fullName":"Jordan"}`))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec, first)
	rec.AssertStatus(t, http.StatusCreated)

	dupUser := httptest.NewRequest("POST", "/ta/register", jsonBody(
		`{"username":"helper","email":"other@example.com","password":"secret123","fullName":"Jordan"}`))
	rec = testutil.NewRecorder()
	h.HandleRegister(rec, dupUser)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Username already exists")

	dupEmail := httptest.NewRequest("POST", "/ta/register", jsonBody(
		`{"username":"another","email":"helper@example.com","password":"secret123","fullName":"Jordan"}`))
	rec = testutil.NewRecorder()
	h.HandleRegister(rec, dupEmail)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Email already exists")
}

func TestHandleLogin_IssuesSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	fx.CreateTA(ctx, "helper", "helper@example.com", "secret123")

	req := httptest.NewRequest("POST", "/ta/login", jsonBody(`{"username":"helper","password":"secret123"}`))
	rec := testutil.NewRecorder()

	h.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Login successful")
	rec.AssertContains(t, `"username":"helper"`)

	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on successful login")
	}
}

func TestHandleLogin_EmailAsLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	fx.CreateTA(ctx, "helper", "helper@example.com", "secret123")

	req := httptest.NewRequest("POST", "/ta/login", jsonBody(`{"username":"helper@example.com","password":"secret123"}`))
	rec := testutil.NewRecorder()

	h.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Login successful")
}

func TestHandleLogin_RejectsBadCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	fx.CreateTA(ctx, "helper", "helper@example.com", "secret123")

	req := httptest.NewRequest("POST", "/ta/login", jsonBody(`{"username":"helper","password":"wrong-password"}`))
	rec := testutil.NewRecorder()

	h.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Invalid credentials")
}

func TestHandleLogin_RejectsTeacherAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	fx.CreateTeacher(ctx, "frizzle", "secret123")

	// Valid teacher credentials do not produce a TA session here.
	req := httptest.NewRequest("POST", "/ta/login", jsonBody(`{"username":"frizzle","password":"secret123"}`))
	rec := testutil.NewRecorder()

	h.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Invalid credentials")
}

func TestServeProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ta := fx.CreateTA(ctx, "helper", "helper@example.com", "secret123")

	req := testutil.NewAuthenticatedRequest("GET", "/ta/profile", testutil.TestUser{
		ID:       ta.ID.Hex(),
		Username: ta.Username,
		Role:     "ta",
	})
	rec := testutil.NewRecorder()

	h.ServeProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"username":"helper"`)
	rec.AssertContains(t, `"email":"helper@example.com"`)
}

func TestServeProfile_RequiresAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := testutil.NewRequest("GET", "/ta/profile")
	rec := testutil.NewRecorder()

	h.ServeProfile(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "TA authentication required")
}

func TestHandleLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := httptest.NewRequest("POST", "/ta/logout", nil)
	rec := testutil.NewRecorder()

	h.HandleLogout(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Logged out successfully")
}
