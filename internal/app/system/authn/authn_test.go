package authn

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/dalemusser/noteboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func seedTeacher(t *testing.T, a *Authenticator, username, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = a.teachers.Create(context.Background(), models.Teacher{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("create teacher: %v", err)
	}
}

func seedTA(t *testing.T, a *Authenticator, username, email, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	ta, err := a.tas.Create(context.Background(), models.TeachingAssistant{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test Assistant",
	})
	if err != nil {
		t.Fatalf("create TA: %v", err)
	}
	return ta.ID.Hex()
}

func TestAuthenticate_Teacher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())
	seedTeacher(t, a, "profsmith", "secret123")

	p, err := a.Authenticate(context.Background(), "profsmith", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.Role != RoleTeacher {
		t.Errorf("role = %q, want %q", p.Role, RoleTeacher)
	}
	if p.Username != "profsmith" {
		t.Errorf("username = %q, want profsmith", p.Username)
	}
}

func TestAuthenticate_TAByUsernameOrEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())
	seedTA(t, a, "helper1", "helper1@example.edu", "ta-password")

	for _, login := range []string{"helper1", "helper1@example.edu"} {
		p, err := a.Authenticate(context.Background(), login, "ta-password")
		if err != nil {
			t.Fatalf("authenticate %q: %v", login, err)
		}
		if p.Role != RoleTA {
			t.Errorf("login %q: role = %q, want %q", login, p.Role, RoleTA)
		}
	}
}

func TestAuthenticate_TASuccessTouchesLastLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())
	id := seedTA(t, a, "helper2", "helper2@example.edu", "ta-password")

	before := time.Now().Add(-time.Second)
	if _, err := a.Authenticate(context.Background(), "helper2", "ta-password"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	su, err := a.Resolve(context.Background(), id, RoleTA)
	if err != nil || su == nil {
		t.Fatalf("resolve after login: %v, %v", su, err)
	}
	ta, err := a.tas.GetByID(context.Background(), mustOID(t, id))
	if err != nil {
		t.Fatalf("get TA: %v", err)
	}
	if ta.LastLogin == nil || ta.LastLogin.Before(before) {
		t.Errorf("last login not updated: %v", ta.LastLogin)
	}
}

func TestAuthenticate_WrongPassword_UniformError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())
	seedTeacher(t, a, "profjones", "rightpass")
	seedTA(t, a, "helper3", "helper3@example.edu", "rightpass")

	cases := []struct{ login, password string }{
		{"profjones", "wrongpass"},
		{"helper3", "wrongpass"},
		{"nobody", "whatever"},
	}
	for _, c := range cases {
		_, err := a.Authenticate(context.Background(), c.login, c.password)
		if err != ErrInvalidCredentials {
			t.Errorf("login %q: err = %v, want ErrInvalidCredentials", c.login, err)
		}
	}
}

func TestAuthenticate_TeacherTriedBeforeTA(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())
	// Same username on both sides with different passwords. The teacher
	// password must win the shared name; the TA password must still work
	// because a hash miss falls through to the next principal type.
	seedTeacher(t, a, "shared", "teacher-pass")
	seedTA(t, a, "shared", "shared@example.edu", "ta-pass")

	p, err := a.Authenticate(context.Background(), "shared", "teacher-pass")
	if err != nil {
		t.Fatalf("authenticate as teacher: %v", err)
	}
	if p.Role != RoleTeacher {
		t.Errorf("role = %q, want %q", p.Role, RoleTeacher)
	}

	p, err = a.Authenticate(context.Background(), "shared", "ta-pass")
	if err != nil {
		t.Fatalf("authenticate as TA: %v", err)
	}
	if p.Role != RoleTA {
		t.Errorf("role = %q, want %q", p.Role, RoleTA)
	}
}

func TestAuthenticate_InactiveTARejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())
	id := seedTA(t, a, "helper4", "helper4@example.edu", "ta-password")

	if err := a.tas.SetActive(context.Background(), mustOID(t, id), false); err != nil {
		t.Fatalf("deactivate TA: %v", err)
	}

	if _, err := a.Authenticate(context.Background(), "helper4", "ta-password"); err != ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	su, err := a.Resolve(context.Background(), id, RoleTA)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if su != nil {
		t.Errorf("resolve returned %+v for inactive TA, want nil", su)
	}
}

func TestResolve_UnknownPrincipal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db, zap.NewNop())

	for _, c := range []struct{ id, role string }{
		{"64b0c0ffee0c0ffee0c0ffee", RoleTeacher},
		{"64b0c0ffee0c0ffee0c0ffee", RoleTA},
		{"not-an-object-id", RoleTA},
		{"64b0c0ffee0c0ffee0c0ffee", "student"},
	} {
		su, err := a.Resolve(context.Background(), c.id, c.role)
		if err != nil {
			t.Errorf("resolve(%q, %q): unexpected error %v", c.id, c.role, err)
		}
		if su != nil {
			t.Errorf("resolve(%q, %q) = %+v, want nil", c.id, c.role, su)
		}
	}
}

func mustOID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("bad object id %q: %v", hex, err)
	}
	return id
}
