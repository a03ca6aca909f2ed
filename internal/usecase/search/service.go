package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/photoindex/internal/domain/photo"
	"github.com/kailas-cloud/photoindex/internal/domain/search/request"
	"github.com/kailas-cloud/photoindex/internal/domain/search/result"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

// DefaultMaxConcurrency bounds the per-label fan-out.
const DefaultMaxConcurrency = 4

// Options tunes search behaviour.
type Options struct {
	// BaseURL prefixes every matched object key.
	BaseURL string
	// Parallel runs per-label index reads concurrently.
	Parallel       bool
	MaxConcurrency int
}

// Service answers natural-language photo searches.
type Service struct {
	resolver IntentResolver
	repo     Repository
	opts     Options
	logger   *zap.Logger
}

// New creates a search service.
func New(resolver IntentResolver, repo Repository, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.BaseURL != "" && !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	return &Service{resolver: resolver, repo: repo, opts: opts, logger: log}
}

// Search resolves rawQuery to labels and returns the URLs of photos
// matching any of them.
func (s *Service) Search(ctx context.Context, rawQuery string) (result.Result, error) {
	req, err := request.New(rawQuery)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return result.Result{}, err
	}
	log := s.logger.With(zap.String("query", req.Query()))

	interp, err := s.resolver.Resolve(ctx, req.Query())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		log.Error("intent resolution failed", zap.Error(err))
		return result.Result{}, fmt.Errorf("resolve intent: %w", err)
	}
	log.Info("intent resolved",
		zap.Strings("messages", interp.Messages()),
		zap.Any("slots", interp.Slots()),
	)

	labels := interp.Labels()
	if len(labels) == 0 {
		metrics.SearchesTotal.WithLabelValues("no_labels").Inc()
		log.Info("no labels extracted")
		return result.Empty(req.Query(), labels), nil
	}

	perLabel, err := s.findAll(ctx, labels)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		log.Error("index search failed", zap.Strings("labels", labels), zap.Error(err))
		return result.Result{}, err
	}

	paths := s.collectURLs(perLabel)
	outcome := "hit"
	if len(paths) == 0 {
		outcome = "miss"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	log.Info("search completed", zap.Strings("labels", labels), zap.Int("matches", len(paths)))

	return result.New(paths, req.Query(), labels), nil
}

// findAll runs one label query per label. Results are indexed by label
// position so the combination order never depends on scheduling.
func (s *Service) findAll(ctx context.Context, labels []string) ([][]photo.Photo, error) {
	out := make([][]photo.Photo, len(labels))

	if !s.opts.Parallel || len(labels) == 1 {
		for i, label := range labels {
			photos, err := s.repo.FindByLabel(ctx, label)
			if err != nil {
				return nil, fmt.Errorf("search label %q: %w", label, err)
			}
			out[i] = photos
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrency)
	for i, label := range labels {
		g.Go(func() error {
			photos, err := s.repo.FindByLabel(gctx, label)
			if err != nil {
				return fmt.Errorf("search label %q: %w", label, err)
			}
			out[i] = photos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per label
	}
	return out, nil
}

// collectURLs builds one URL per first-seen object key, then drops any
// duplicate URL that different keys might still produce.
func (s *Service) collectURLs(perLabel [][]photo.Photo) []string {
	seenKeys := make(map[string]struct{})
	urls := make([]string, 0)
	for _, photos := range perLabel {
		for i := range photos {
			key := photos[i].ObjectKey()
			if _, ok := seenKeys[key]; ok {
				continue
			}
			seenKeys[key] = struct{}{}
			urls = append(urls, s.opts.BaseURL+key)
		}
	}

	seenURLs := make(map[string]struct{}, len(urls))
	unique := urls[:0]
	for _, u := range urls {
		if _, ok := seenURLs[u]; ok {
			continue
		}
		seenURLs[u] = struct{}{}
		unique = append(unique, u)
	}
	return unique
}
