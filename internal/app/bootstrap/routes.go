// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/dalemusser/noteboard/internal/app/features/authgoogle"
	classroomsfeature "github.com/dalemusser/noteboard/internal/app/features/classrooms"
	healthfeature "github.com/dalemusser/noteboard/internal/app/features/health"
	notesfeature "github.com/dalemusser/noteboard/internal/app/features/notes"
	tafeature "github.com/dalemusser/noteboard/internal/app/features/ta"
	teacherauthfeature "github.com/dalemusser/noteboard/internal/app/features/teacherauth"
	"github.com/dalemusser/noteboard/internal/app/store/oauthstate"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"github.com/dalemusser/noteboard/internal/app/system/authn"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Noteboard wires one session manager shared by every feature, resolves
// session principals through the consolidated authenticator, and mounts
// feature routers for health, TA workflows, teacher auth, classrooms,
// and the per-classroom note boards.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.NoteboardMongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// The authenticator owns both credential checks at login and the
	// re-fetch of the session principal on every request, so role
	// changes and deactivated TA accounts take effect immediately.
	authenticator := authn.New(db, logger)
	sessionMgr.SetPrincipalResolver(authenticator.Resolve)

	// Local disk storage for answer attachments.
	attachments, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("attachment storage init failed", zap.Error(err))
		return nil, err
	}

	// Create error logger for handlers.
	errLog := apierrors.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.NoteboardMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Answer attachments served straight off disk
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Teacher signup and the shared password login (tries teacher
	// accounts first, then TA accounts)
	teacherAuthHandler := teacherauthfeature.NewHandler(db, sessionMgr, authenticator, errLog, logger)
	r.Mount("/", teacherauthfeature.Routes(teacherAuthHandler))

	// Google sign-in for teachers (mounted only when configured)
	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, oauthstate.New(db), appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	if googleHandler.IsConfigured() {
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	} else {
		logger.Info("google sign-in disabled; no client credentials configured")
	}

	// TA registration, login, and the answering workflow
	taHandler := tafeature.NewHandler(db, sessionMgr, authenticator, attachments, errLog, logger)
	r.Mount("/ta", tafeature.Routes(taHandler))

	// Classroom management
	classroomsHandler := classroomsfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/classroom", classroomsfeature.Routes(classroomsHandler))

	// Per-classroom sticky-note boards
	notesHandler := notesfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/classrooms/{classroomID}/notes", notesfeature.Routes(notesHandler))

	return r, nil
}
