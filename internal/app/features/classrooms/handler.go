// internal/app/features/classrooms/handler.go
package classrooms

import (
	classroomstore "github.com/dalemusser/noteboard/internal/app/store/classrooms"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns classroom creation, listing, and code-based lookup.
type Handler struct {
	DB         *mongo.Database
	Classrooms *classroomstore.Store
	Sessions   *auth.SessionManager
	Log        *zap.Logger
	ErrLog     *apierrors.ErrorLogger
}

// NewHandler constructs a Handler bound to the given database and session
// manager.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Classrooms: classroomstore.New(db),
		Sessions:   sessions,
		Log:        logger,
		ErrLog:     errLog,
	}
}
