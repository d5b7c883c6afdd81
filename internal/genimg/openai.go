package genimg

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI image model IDs.
var openaiModels = map[string]string{
	"dall-e-3":    openai.CreateImageModelDallE3,
	"dall-e-2":    openai.CreateImageModelDallE2,
	"gpt-image-1": "gpt-image-1",
}

// OpenAIProvider implements Provider using the OpenAI image API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, openaiModels),
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, subjectName string) (*Image, error) {
	req := openai.ImageRequest{
		Prompt:         BuildPrompt(subjectName),
		Model:          p.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}

	resp, err := p.client.CreateImage(ctx, req)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Data) == 0 {
		return nil, &ErrInvalidImage{Err: fmt.Errorf("no images in OpenAI response")}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, &ErrInvalidImage{Err: fmt.Errorf("decode image payload: %w", err)}
	}
	if len(data) == 0 {
		return nil, &ErrInvalidImage{Err: fmt.Errorf("empty image payload")}
	}

	// The image endpoint always returns PNG for b64 responses.
	return &Image{MIMEType: "image/png", Data: data}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
