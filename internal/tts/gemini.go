package tts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Gemini speech generation
// models.
type GeminiProvider struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: cfg.Model, voice: cfg.Voice}, nil
}

func (p *GeminiProvider) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	voice := req.Voice
	if voice == "" {
		voice = p.voice
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Text), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	audio, err := extractGeminiAudio(result)
	if err != nil {
		return nil, err
	}
	audio.Model = p.model
	return audio, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// extractGeminiAudio returns the first inline audio part of the response.
func extractGeminiAudio(result *genai.GenerateContentResponse) (*Audio, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no candidates")}
	}
	content := result.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no content parts")}
	}

	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		if len(part.InlineData.Data) == 0 {
			return nil, &ErrInvalidResponse{Err: errors.New("empty audio payload")}
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "audio/L16;rate=24000"
		}
		return &Audio{Data: part.InlineData.Data, MIMEType: mime}, nil
	}
	return nil, &ErrInvalidResponse{Err: errors.New("no inline audio data")}
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests && strings.Contains(apiErr.Message, "per_day"):
			return &ErrQuotaExhausted{Err: err}
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{RetryAfter: retryAfterFrom(apiErr.Message), Err: err}
		case apiErr.Code >= 500:
			return &ErrProviderUnavailable{Err: err}
		case apiErr.Code >= 400:
			return &ErrRejected{Status: apiErr.Code, Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
