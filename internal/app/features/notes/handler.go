// internal/app/features/notes/handler.go
package notes

import (
	classroomstore "github.com/dalemusser/noteboard/internal/app/store/classrooms"
	questionstore "github.com/dalemusser/noteboard/internal/app/store/questions"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public sticky-note board: students post and poll
// questions here, and teachers pin important ones.
type Handler struct {
	DB         *mongo.Database
	Classrooms *classroomstore.Store
	Questions  *questionstore.Store
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
		Questions:  questionstore.New(db),
		Sessions:   sessions,
		Log:        logger,
		ErrLog:     errLog,
	}
}
