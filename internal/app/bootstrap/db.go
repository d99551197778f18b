// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	classroomstore "github.com/dalemusser/noteboard/internal/app/store/classrooms"
	"github.com/dalemusser/noteboard/internal/app/store/oauthstate"
	questionstore "github.com/dalemusser/noteboard/internal/app/store/questions"
	tastore "github.com/dalemusser/noteboard/internal/app/store/tas"
	teacherstore "github.com/dalemusser/noteboard/internal/app/store/teachers"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
// The returned DBDeps is handed to EnsureSchema, Startup, and BuildHandler.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		NoteboardMongoClient:   client,
		NoteboardMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes each collection relies on: unique
// case-insensitive usernames for teachers and TAs, unique classroom codes,
// and the TTL index that expires stale OAuth state records.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.NoteboardMongoDatabase

	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}

	for name, s := range map[string]indexer{
		"teachers":            teacherstore.New(db),
		"teaching_assistants": tastore.New(db),
		"classrooms":          classroomstore.New(db),
		"questions":           questionstore.New(db),
		"oauth_states":        oauthstate.New(db),
	} {
		if err := s.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
		logger.Debug("ensured indexes", zap.String("collection", name))
	}

	return nil
}
