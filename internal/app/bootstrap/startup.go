// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to warm caches or perform any app-wide setup that depends on config
// and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("applied timeout overrides from environment", zap.Int("count", n))
	}

	// Attachment uploads land here; create it up front so the first
	// answer with an attachment does not fail on a missing directory.
	if err := os.MkdirAll(appCfg.StorageLocalPath, 0o755); err != nil {
		return fmt.Errorf("create attachment storage dir %s: %w", appCfg.StorageLocalPath, err)
	}

	return nil
}
