// internal/app/features/teacherauth/handler.go
package teacherauth

import (
	teacherstore "github.com/dalemusser/noteboard/internal/app/store/teachers"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"github.com/dalemusser/noteboard/internal/app/system/authn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns teacher signup and the shared password login endpoint.
type Handler struct {
	DB       *mongo.Database
	Teachers *teacherstore.Store
	Sessions *auth.SessionManager
	Auth     *authn.Authenticator
	Log      *zap.Logger
	ErrLog   *apierrors.ErrorLogger
}

// NewHandler constructs a Handler bound to the given database, session
// manager, and authenticator.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, authenticator *authn.Authenticator, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Teachers: teacherstore.New(db),
		Sessions: sessions,
		Auth:     authenticator,
		Log:      logger,
		ErrLog:   errLog,
	}
}
