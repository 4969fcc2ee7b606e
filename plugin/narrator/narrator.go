package narrator

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hrygo/chronosense/engine"
	apierrors "github.com/hrygo/chronosense/internal/errors"
)

const systemPrompt = `You are a concise assistant that restates a structured time
interpretation in one or two friendly sentences. Never change any date,
time, offset, or confidence value: restate them exactly as given.`

// Service narrates finished interpretations.
type Service interface {
	// Narrate returns a conversational restatement of the
	// interpretation. The interpretation itself is never modified.
	Narrate(ctx context.Context, interp engine.Interpretation) (string, error)
}

// chatCompleter is the slice of the OpenAI client the narrator uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type service struct {
	client chatCompleter
	cfg    *Config
}

// NewService creates a narrator from validated configuration. It
// returns nil when the narrator is disabled; callers treat a nil
// Service as "no narration".
func NewService(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &service{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}, nil
}

func (s *service) Narrate(ctx context.Context, interp engine.Interpretation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describe(interp)},
		},
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		return "", apierrors.NarratorUnavailable("narration failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apierrors.NarratorUnavailable("narration returned no choices", nil)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// describe flattens the interpretation into the prompt. Only fields
// relevant to a spoken restatement are included.
func describe(interp engine.Interpretation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Input: %q\n", interp.InputText)
	if interp.GhostDate != nil {
		fmt.Fprintf(&b, "Anomaly: %s. %s\n", interp.GhostDate.Heading, interp.GhostDate.Body)
	} else {
		fmt.Fprintf(&b, "Date: %s\nTime: %s\nTimezone: %s (%s)\n",
			interp.InterpretedDate, interp.InterpretedTime, interp.Timezone, interp.UTCOffset)
		if interp.ISOTimestamp != "" {
			fmt.Fprintf(&b, "Instant: %s\n", interp.ISOTimestamp)
		}
	}
	fmt.Fprintf(&b, "Confidence: %s\n", interp.Confidence)
	for _, a := range interp.Assumptions {
		fmt.Fprintf(&b, "Assumption: %s\n", a)
	}
	if interp.Y2K38 != nil {
		fmt.Fprintf(&b, "Note: the instant exceeds the 32-bit Unix timestamp range by %d days.\n",
			interp.Y2K38.OverflowDays)
	}
	return b.String()
}
