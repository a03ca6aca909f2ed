package app

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/config"
	"github.com/kailas-cloud/photoindex/internal/db"
	"github.com/kailas-cloud/photoindex/internal/db/opensearch"
	"github.com/kailas-cloud/photoindex/internal/db/redis"
	photorepo "github.com/kailas-cloud/photoindex/internal/repository/photo"
	awstransport "github.com/kailas-cloud/photoindex/internal/transport/aws"
	miniotransport "github.com/kailas-cloud/photoindex/internal/transport/minio"
	openaitransport "github.com/kailas-cloud/photoindex/internal/transport/openai"
	"github.com/kailas-cloud/photoindex/internal/usecase/health"
	"github.com/kailas-cloud/photoindex/internal/usecase/ingest"
	"github.com/kailas-cloud/photoindex/internal/usecase/search"
)

// Parts selects which handlers a container wires.
type Parts struct {
	Ingest bool
	Search bool
}

// Container holds the clients and services of one process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	Store  db.Store
	Photos *photorepo.Repo
	Ingest *ingest.Service // nil unless Parts.Ingest
	Search *search.Service // nil unless Parts.Search
	Health *health.Service
}

// Close releases the index store.
func (c *Container) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// objectStore reads metadata and bytes of stored photos.
type objectStore interface {
	ingest.ObjectReader
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// Build creates every client the selected parts need.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger, parts Parts) (*Container, error) {
	var awsCfg *sdkaws.Config
	if needsAWS(cfg, parts) {
		c, err := awstransport.NewConfig(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		awsCfg = &c
	}

	store, err := newStore(cfg.Index, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("index store: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: log,
		Store:  store,
		Photos: photorepo.New(store, cfg.Index.Name),
	}

	var vision health.VisionChecker
	if parts.Ingest {
		objects, err := newObjectStore(cfg.Storage, awsCfg)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("object store: %w", err)
		}

		var labeler ingest.Labeler
		switch cfg.Vision.Provider {
		case config.VisionProviderOpenAI:
			l := openaitransport.NewLabeler(&openaitransport.Config{
				APIKey:  cfg.Vision.OpenAI.APIKey,
				BaseURL: cfg.Vision.OpenAI.BaseURL,
				Model:   cfg.Vision.OpenAI.Model,
				Prompt:  cfg.Vision.OpenAI.Prompt,
				Logger:  log.Named("vision"),
			}, objects)
			labeler, vision = l, l
		default:
			labeler = awstransport.NewRekognition(*awsCfg)
		}

		c.Ingest = ingest.New(labeler, objects, c.Photos, log.Named("ingest"), ingest.Options{
			AllowMissingCustomLabels: cfg.Ingest.AllowMissingCustomLabels,
		})
	}

	if parts.Search {
		lex, err := awstransport.NewLex(*awsCfg, awstransport.LexConfig{
			BotID:      cfg.Intent.BotID,
			BotAliasID: cfg.Intent.BotAliasID,
			LocaleID:   cfg.Intent.LocaleID,
			SessionID:  cfg.Intent.SessionID,
		})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("intent resolver: %w", err)
		}

		c.Search = search.New(lex, c.Photos, log.Named("search"), search.Options{
			BaseURL:        cfg.Storage.BaseURL,
			Parallel:       *cfg.Search.Parallel,
			MaxConcurrency: cfg.Search.MaxConcurrency,
		})
	}

	c.Health = health.New(store, vision)
	return c, nil
}

// needsAWS reports whether any selected component talks to AWS.
func needsAWS(cfg config.Config, parts Parts) bool {
	if parts.Search {
		return true
	}
	if cfg.Index.Driver == config.IndexDriverOpenSearch && *cfg.Index.OpenSearch.Sign {
		return true
	}
	if parts.Ingest {
		return cfg.Storage.Driver == config.StorageDriverS3 || cfg.Vision.Provider == config.VisionProviderRekognition
	}
	return false
}

func newStore(cfg config.IndexConfig, awsCfg *sdkaws.Config) (db.Store, error) {
	switch cfg.Driver {
	case config.IndexDriverRedis:
		s, err := redis.NewStore(redis.Config{
			Addrs:     cfg.Redis.Addrs,
			Username:  cfg.Redis.Username,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		signWith := awsCfg
		if !*cfg.OpenSearch.Sign {
			signWith = nil
		}
		s, err := opensearch.NewStore(opensearch.Config{
			Addrs:    cfg.OpenSearch.Addrs,
			Username: cfg.OpenSearch.Username,
			Password: cfg.OpenSearch.Password,
			Service:  cfg.OpenSearch.Service,
		}, signWith)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func newObjectStore(cfg config.StorageConfig, awsCfg *sdkaws.Config) (objectStore, error) {
	if cfg.Driver == config.StorageDriverMinIO {
		o, err := miniotransport.NewObjects(miniotransport.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Region:    cfg.MinIO.Region,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return o, nil
	}
	return awstransport.NewS3Objects(*awsCfg), nil
}

// WaitForIndex blocks until the index store answers or the configured
// readiness timeout expires.
func (c *Container) WaitForIndex(ctx context.Context) error {
	timeout := time.Duration(c.Config.Index.ReadinessTimeout) * time.Second
	if err := c.Store.WaitForReady(ctx, timeout); err != nil {
		return fmt.Errorf("index not ready: %w", err)
	}
	return nil
}
