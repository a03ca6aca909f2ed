package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/photo"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

// DefaultPrompt asks the model for a bare comma-separated label list.
const DefaultPrompt = "List the objects, scenes and concepts visible in this image " +
	"as short labels separated by commas. Reply with the labels only."

// objectGetter is the consumer interface for image bytes (ISP).
type objectGetter interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// Labeler detects image labels with an OpenAI-compatible vision model.
type Labeler struct {
	client  *openai.Client
	objects objectGetter
	model   string
	prompt  string
	logger  *zap.Logger
}

// Config holds the vision provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Prompt  string
	Logger  *zap.Logger
}

// NewLabeler creates an OpenAI-compatible label detector reading images from objects.
func NewLabeler(cfg *Config, objects objectGetter) *Labeler {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Labeler{
		client:  openai.NewClientWithConfig(clientCfg),
		objects: objects,
		model:   cfg.Model,
		prompt:  prompt,
		logger:  log,
	}
}

// DetectLabels downloads the image and asks the model to label it.
func (l *Labeler) DetectLabels(ctx context.Context, bucket, key string) ([]string, error) {
	data, err := l.objects.Get(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: l.prompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL(data),
					Detail: openai.ImageURLDetailLow,
				}},
			},
		}},
	}

	start := time.Now()
	resp, err := l.client.CreateChatCompletion(ctx, req)
	metrics.ObserveUpstream("openai", "CreateChatCompletion", start, err)
	if err != nil {
		return nil, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrVisionProvider)
	}

	answer := resp.Choices[0].Message.Content
	l.logger.Debug("vision labels",
		zap.String("model", l.model),
		zap.String("answer", answer),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
	)
	return photo.ParseCustomLabels(answer), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (l *Labeler) HealthCheck(ctx context.Context) error {
	if _, err := l.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func dataURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrVisionProvider.
func parseAPIError(err error) error {
	wrap := domain.ErrVisionProvider

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("vision API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("vision API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("vision API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("vision request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
