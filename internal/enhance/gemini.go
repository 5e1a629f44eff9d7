// File path: internal/enhance/gemini.go
package enhance

import (
	"context"
	"fmt"
	"os"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"faqforge/internal/common"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider calls the Google Generative Language API. This is the
// default backend; the FAQ tooling this service replaces used the same model
// family for step validation.
type GeminiProvider struct {
	client *gemini.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Enhance(ctx context.Context, req Request) (Response, error) {
	if g.client == nil {
		return Response{}, fmt.Errorf("nil gemini client")
	}
	logger := common.Logger()
	logger.Debug("enhance: sending gemini request", "model", g.model)
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &gemini.Content{Parts: []gemini.Part{gemini.Text(systemInstruction)}}
	resp, err := model.GenerateContent(ctx, gemini.Text(buildPrompt(req)))
	if err != nil {
		logger.Error("enhance: gemini request failed", "error", err)
		return Response{}, err
	}
	text := collectGeminiText(resp)
	if strings.TrimSpace(text) == "" {
		return Response{}, fmt.Errorf("empty gemini response")
	}
	logger.Debug("enhance: gemini request succeeded")
	return parseModelResponse(text), nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

// Close releases the underlying API connection.
func (g *GeminiProvider) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func collectGeminiText(resp *gemini.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(gemini.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	return b.String()
}
