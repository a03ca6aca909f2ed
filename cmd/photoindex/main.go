// Command photoindex is the developer CLI: it serves the handlers over HTTP
// and runs single ingestions and queries against the configured backends.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/app"
	"github.com/kailas-cloud/photoindex/internal/config"
	logpkg "github.com/kailas-cloud/photoindex/internal/logger"
	"github.com/kailas-cloud/photoindex/internal/metrics"
	"github.com/kailas-cloud/photoindex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "photoindex",
	Short:         "Index photos by label and search them in natural language",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, initIndexCmd, indexCmd, searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads config for ENV, creates the logger and builds the parts.
func bootstrap(ctx context.Context, parts app.Parts) (*app.Container, error) {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting photoindex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("index_driver", cfg.Index.Driver),
		zap.String("index", cfg.Index.Name),
	)

	metrics.RegisterUpstreamMetrics()

	c, err := app.Build(ctx, cfg, logger, parts)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return c, nil
}

func shutdown(c *app.Container) {
	c.Close()
	_ = c.Logger.Sync()
}
