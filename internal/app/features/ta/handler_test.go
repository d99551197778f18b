package ta

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"github.com/dalemusser/noteboard/internal/app/system/authn"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// newTestHandler builds a TA handler backed by the given test database
// and a throwaway local storage directory.
func newTestHandler(t *testing.T, db *mongo.Database) *Handler {
	t.Helper()

	logger := zap.NewNop()
	sessions, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/uploads",
	})
	if err != nil {
		t.Fatalf("failed to create local storage: %v", err)
	}

	return NewHandler(db, sessions, authn.New(db, logger), store, apierrors.NewErrorLogger(logger), logger)
}

// jsonBody wraps a JSON string for use as a request body.
func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
