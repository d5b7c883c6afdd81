package genimg

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Imagen model IDs.
var geminiModels = map[string]string{
	"imagen-3":      "imagen-3.0-generate-002",
	"imagen-3-fast": "imagen-3.0-fast-generate-001",
}

// GeminiProvider implements Provider using the Google GenAI SDK's Imagen
// image generation endpoint.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini/Imagen provider.
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

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, subjectName string) (*Image, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	}

	resp, err := p.client.Models.GenerateImages(ctx, p.model, BuildPrompt(subjectName), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, &ErrInvalidImage{Err: fmt.Errorf("no images in Gemini response")}
	}

	img := resp.GeneratedImages[0].Image
	if len(img.ImageBytes) == 0 {
		return nil, &ErrInvalidImage{Err: fmt.Errorf("empty image payload")}
	}

	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}

	return &Image{MIMEType: mime, Data: img.ImageBytes}, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
