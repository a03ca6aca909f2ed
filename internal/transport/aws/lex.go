package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2/types"
	"github.com/google/uuid"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/intent"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

type lexAPI interface {
	RecognizeText(ctx context.Context, in *lexruntimev2.RecognizeTextInput,
		optFns ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error)
}

// LexConfig identifies the bot that interprets search text.
type LexConfig struct {
	BotID      string
	BotAliasID string
	LocaleID   string
	// SessionID is reused for every call; empty means a fresh id per call.
	SessionID string
}

// Lex resolves free text into slot values with Amazon Lex V2.
type Lex struct {
	api lexAPI
	cfg LexConfig
}

// NewLex creates an intent resolver from an AWS config.
func NewLex(awsCfg sdkaws.Config, cfg LexConfig) (*Lex, error) {
	if cfg.BotID == "" || cfg.BotAliasID == "" {
		return nil, errors.New("lex bot id and alias id are required")
	}
	if cfg.LocaleID == "" {
		cfg.LocaleID = "en_US"
	}
	return &Lex{api: lexruntimev2.NewFromConfig(awsCfg), cfg: cfg}, nil
}

// Resolve sends text to the bot and returns its messages and slot values.
// Slots without an interpreted value are left out.
func (l *Lex) Resolve(ctx context.Context, text string) (intent.Interpretation, error) {
	session := l.cfg.SessionID
	if session == "" {
		session = uuid.NewString()
	}

	start := time.Now()
	out, err := l.api.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      sdkaws.String(l.cfg.BotID),
		BotAliasId: sdkaws.String(l.cfg.BotAliasID),
		LocaleId:   sdkaws.String(l.cfg.LocaleID),
		SessionId:  sdkaws.String(session),
		Text:       sdkaws.String(text),
	})
	metrics.ObserveUpstream("lex", "RecognizeText", start, err)
	if err != nil {
		return intent.Interpretation{}, fmt.Errorf("recognize text: %w: %w", domain.ErrIntentProvider, err)
	}

	messages := make([]string, 0, len(out.Messages))
	for _, m := range out.Messages {
		if c := sdkaws.ToString(m.Content); c != "" {
			messages = append(messages, c)
		}
	}

	return intent.NewInterpretation(messages, slotValues(out.SessionState)), nil
}

func slotValues(state *types.SessionState) map[string]string {
	slots := make(map[string]string)
	if state == nil || state.Intent == nil {
		return slots
	}
	for name, slot := range state.Intent.Slots {
		if slot.Value == nil {
			continue
		}
		if v := sdkaws.ToString(slot.Value.InterpretedValue); v != "" {
			slots[name] = v
		}
	}
	return slots
}
