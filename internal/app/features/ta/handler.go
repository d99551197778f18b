// internal/app/features/ta/handler.go
package ta

import (
	questionstore "github.com/dalemusser/noteboard/internal/app/store/questions"
	tastore "github.com/dalemusser/noteboard/internal/app/store/tas"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"github.com/dalemusser/noteboard/internal/app/system/authn"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all TA endpoints: account registration, login, and the
// question answering workflow.
type Handler struct {
	DB        *mongo.Database
	TAs       *tastore.Store
	Questions *questionstore.Store
	Sessions  *auth.SessionManager
	Auth      *authn.Authenticator
	Storage   storage.Store
	Log       *zap.Logger
	ErrLog    *apierrors.ErrorLogger
}

// NewHandler constructs a Handler bound to the given database, session
// manager, authenticator, and attachment storage.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, authenticator *authn.Authenticator, store storage.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		TAs:       tastore.New(db),
		Questions: questionstore.New(db),
		Sessions:  sessions,
		Auth:      authenticator,
		Storage:   store,
		Log:       logger,
		ErrLog:    errLog,
	}
}
