package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiExtractor runs the two-pass pipeline against the Gemini API:
// pass 1 reads the image into a raw item array, pass 2 normalizes names
// and units and assigns a category. Both passes run at temperature 0 with
// thinking disabled.
type GeminiExtractor struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

func NewGeminiExtractor(ctx context.Context, apiKey, model string, log zerolog.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if model == "" {
		return nil, errors.New("missing Gemini model name")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiExtractor{client: client, model: model, log: log}, nil
}

func (g *GeminiExtractor) ExtractItems(ctx context.Context, image []byte, mimeType string) ([]ExtractedItem, error) {
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	// Pass 1: image -> raw item array.
	rawText, err := g.generate(ctx, []*genai.Part{
		{Text: extractionPrompt},
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction pass: %w", err)
	}

	items, err := ParseItems(rawText)
	if err != nil {
		g.log.Warn().Str("raw", rawText).Msg("extraction pass returned unparseable output")
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	// Pass 2: normalize names/units and classify.
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	normText, err := g.generate(ctx, []*genai.Part{
		{Text: normalizePrompt},
		{Text: string(encoded)},
	})
	if err != nil {
		return nil, fmt.Errorf("normalization pass: %w", err)
	}

	normalized, err := ParseItems(normText)
	if err != nil {
		g.log.Warn().Str("raw", normText).Msg("normalization pass returned unparseable output")
		return nil, err
	}

	g.log.Info().Int("items", len(normalized)).Msg("receipt extracted")
	return normalized, nil
}

func (g *GeminiExtractor) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}
	return text, nil
}
