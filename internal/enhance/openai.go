// File path: internal/enhance/openai.go
package enhance

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"faqforge/internal/common"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIProvider is the alternate backend for deployments without Gemini
// access.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		common.Logger().Info("enhance: using custom openai endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	model := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL"))
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{client: openai.NewClient(opts...), model: model}
}

func (o *OpenAIProvider) Enhance(ctx context.Context, req Request) (Response, error) {
	logger := common.Logger()
	logger.Debug("enhance: sending openai request", "model", o.model)
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(buildPrompt(req)),
		},
	})
	if err != nil {
		logger.Error("enhance: openai request failed", "error", err)
		return Response{}, err
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices returned")
	}
	logger.Debug("enhance: openai request succeeded")
	return parseModelResponse(resp.Choices[0].Message.Content), nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
