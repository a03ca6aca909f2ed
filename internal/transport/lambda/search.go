package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/search/result"
	"github.com/kailas-cloud/photoindex/internal/logger"
	"github.com/kailas-cloud/photoindex/internal/transport/dto"
)

// QueryParam is the query-string parameter carrying the search text.
const QueryParam = "q"

// Searcher answers one search query.
type Searcher interface {
	Search(ctx context.Context, rawQuery string) (result.Result, error)
}

// SearcherFunc returns the searcher for an invocation, building clients on first use.
type SearcherFunc func(ctx context.Context) (Searcher, error)

// SearchHandler adapts API Gateway proxy requests to the search service.
type SearchHandler struct {
	get    SearcherFunc
	logger *zap.Logger
}

// NewSearchHandler creates the query entry point.
func NewSearchHandler(get SearcherFunc, log *zap.Logger) *SearchHandler {
	return &SearchHandler{get: get, logger: log}
}

// Handle runs the search for parameter q. Failures fail the invocation;
// successful answers are always 200 with a permissive CORS header.
func (h *SearchHandler) Handle(
	ctx context.Context, req events.APIGatewayProxyRequest,
) (events.APIGatewayProxyResponse, error) {
	log := invocationLogger(ctx, h.logger)
	ctx = logger.ContextWithLogger(ctx, log)

	q, ok := req.QueryStringParameters[QueryParam]
	if !ok {
		log.Warn("missing query parameter")
		return events.APIGatewayProxyResponse{}, domain.ErrMissingQuery
	}

	svc, err := h.get(ctx)
	if err != nil {
		log.Error("init failed", zap.Error(err))
		return events.APIGatewayProxyResponse{}, fmt.Errorf("init: %w", err)
	}

	res, err := svc.Search(ctx, q)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	body, err := json.Marshal(dto.FromResult(&res))
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("marshal response: %w", err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}
