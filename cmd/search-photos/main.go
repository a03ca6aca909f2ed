// Command search-photos is the Lambda entry point behind the API Gateway
// search route.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/app"
	"github.com/kailas-cloud/photoindex/internal/config"
	logpkg "github.com/kailas-cloud/photoindex/internal/logger"
	"github.com/kailas-cloud/photoindex/internal/metrics"
	lambdatransport "github.com/kailas-cloud/photoindex/internal/transport/lambda"
	"github.com/kailas-cloud/photoindex/internal/version"
)

func main() {
	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting search-photos",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("index_driver", cfg.Index.Driver),
		zap.String("bot_id", cfg.Intent.BotID),
	)

	metrics.RegisterUpstreamMetrics()

	containers := app.NewLazy(func(ctx context.Context) (*app.Container, error) {
		return app.Build(ctx, cfg, logger, app.Parts{Search: true})
	})

	handler := lambdatransport.NewSearchHandler(func(ctx context.Context) (lambdatransport.Searcher, error) {
		c, err := containers.Get(ctx)
		if err != nil {
			return nil, err
		}
		return c.Search, nil
	}, logger)

	lambda.Start(handler.Handle)
}
