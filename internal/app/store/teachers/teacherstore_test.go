package teacherstore

import (
	"testing"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/dalemusser/noteboard/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_DefaultsToPasswordAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	created, err := store.Create(ctx, models.Teacher{
		Username:     "MsFrizzle",
		PasswordHash: testutil.HashPassword(t, "secret123"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.AuthMethod != "password" {
		t.Errorf("expected auth_method 'password', got %q", created.AuthMethod)
	}
	if created.UsernameCI != "msfrizzle" {
		t.Errorf("expected folded username 'msfrizzle', got %q", created.UsernameCI)
	}
	if created.ID.IsZero() {
		t.Error("expected a generated ObjectID")
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	if _, err := store.Create(ctx, models.Teacher{Username: "frizzle"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same username in different case still collides on the folded index.
	_, err := store.Create(ctx, models.Teacher{Username: "FRIZZLE"})
	if err != ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestGetByUsername_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	created, err := store.Create(ctx, models.Teacher{Username: "MsFrizzle"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByUsername(ctx, "  msfrizzle  ")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected teacher %s, got %s", created.ID.Hex(), found.ID.Hex())
	}

	if _, err := store.GetByUsername(ctx, "nobody"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for unknown username, got %v", err)
	}
}

func TestGetByGoogleEmail_OnlyMatchesGoogleAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	// A password account with the same email must not match.
	if _, err := store.Create(ctx, models.Teacher{
		Username: "password-teacher",
		Email:    "teacher@example.com",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetByGoogleEmail(ctx, "teacher@example.com"); err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments for password account, got %v", err)
	}

	googleTeacher, err := store.Create(ctx, models.Teacher{
		Username:   "google-teacher",
		Email:      "teacher2@example.com",
		AuthMethod: "google",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByGoogleEmail(ctx, "teacher2@example.com")
	if err != nil {
		t.Fatalf("GetByGoogleEmail failed: %v", err)
	}
	if found.ID != googleTeacher.ID {
		t.Errorf("expected teacher %s, got %s", googleTeacher.ID.Hex(), found.ID.Hex())
	}
}
