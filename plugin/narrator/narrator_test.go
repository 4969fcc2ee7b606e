package narrator

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chronosense/engine"
	apierrors "github.com/hrygo/chronosense/internal/errors"
	"github.com/hrygo/chronosense/internal/profile"
)

type fakeCompleter struct {
	gotReq openai.ChatCompletionRequest
	resp   openai.ChatCompletionResponse
	err    error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = req
	return f.resp, f.err
}

func testConfig() *Config {
	return &Config{
		Enabled: true,
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	}
}

func sampleInterpretation() engine.Interpretation {
	return engine.Interpretation{
		InputText:       "3pm EST tomorrow",
		InterpretedDate: "2026-01-16",
		InterpretedTime: "15:00",
		Timezone:        "Eastern Standard Time",
		UTCOffset:       "UTC-05:00",
		ISOTimestamp:    "2026-01-16T15:00:00-05:00",
		Assumptions:     []string{"Resolved 'tomorrow' against the reference date 2026-01-15."},
		Confidence:      engine.ConfidenceMedium,
	}
}

func TestNewServiceDisabled(t *testing.T) {
	svc, err := NewService(&Config{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestNewServiceInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	_, err := NewService(cfg)
	assert.Error(t, err)
}

func TestConfigFromProfile(t *testing.T) {
	p := &profile.Profile{
		NarratorEnabled:        true,
		NarratorAPIKey:         "sk-test",
		NarratorBaseURL:        "https://api.example.com/v1",
		NarratorModel:          "gpt-4o-mini",
		NarratorTimeoutSeconds: 10,
	}
	cfg := NewConfigFromProfile(p)
	require.True(t, cfg.Enabled)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestNarratePassesResultThrough(t *testing.T) {
	fake := &fakeCompleter{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  That's 3pm Eastern tomorrow. "}},
			},
		},
	}
	svc := &service{client: fake, cfg: testConfig()}

	got, err := svc.Narrate(context.Background(), sampleInterpretation())
	require.NoError(t, err)
	assert.Equal(t, "That's 3pm Eastern tomorrow.", got)

	require.Len(t, fake.gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.gotReq.Messages[0].Role)
	assert.Contains(t, fake.gotReq.Messages[1].Content, "2026-01-16")
	assert.Contains(t, fake.gotReq.Messages[1].Content, "UTC-05:00")
	assert.Contains(t, fake.gotReq.Messages[1].Content, "medium")
}

func TestNarrateDescribesGhostDates(t *testing.T) {
	fake := &fakeCompleter{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "ok"}},
			},
		},
	}
	svc := &service{client: fake, cfg: testConfig()}

	interp := sampleInterpretation()
	interp.ISOTimestamp = ""
	interp.GhostDate = &engine.GhostDate{
		Kind:    engine.GhostDSTSkip,
		Heading: "This time never existed",
		Body:    "Clocks jumped from 02:00 to 03:00.",
	}

	_, err := svc.Narrate(context.Background(), interp)
	require.NoError(t, err)
	assert.Contains(t, fake.gotReq.Messages[1].Content, "This time never existed")
	assert.NotContains(t, fake.gotReq.Messages[1].Content, "Instant:")
}

func TestNarrateWrapsTransportError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("connection refused")}
	svc := &service{client: fake, cfg: testConfig()}

	_, err := svc.Narrate(context.Background(), sampleInterpretation())
	require.Error(t, err)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeNarratorUnavailable))
}

func TestNarrateEmptyChoices(t *testing.T) {
	fake := &fakeCompleter{}
	svc := &service{client: fake, cfg: testConfig()}

	_, err := svc.Narrate(context.Background(), sampleInterpretation())
	require.Error(t, err)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeNarratorUnavailable))
}
