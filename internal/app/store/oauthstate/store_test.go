package oauthstate

import (
	"testing"
	"time"

	"github.com/dalemusser/noteboard/internal/testutil"
)

func TestValidate_ConsumesState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.Save(ctx, "state-token-1", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := store.Validate(ctx, "state-token-1")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !ok {
		t.Fatal("expected fresh state to validate")
	}

	// One-time use: a replayed state must be rejected.
	ok, err = store.Validate(ctx, "state-token-1")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("expected replayed state to be rejected")
	}
}

func TestValidate_RejectsExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.Save(ctx, "stale-token", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := store.Validate(ctx, "stale-token")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("expected expired state to be rejected")
	}
}

func TestValidate_RejectsUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ok, err := New(db).Validate(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("expected unknown state to be rejected")
	}
}
