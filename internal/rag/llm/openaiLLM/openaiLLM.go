package openaiLLM

import (
	"context"
	"fmt"

	"docvoice/internal/config"
	"docvoice/internal/rag/llm"
	"docvoice/pkg/logx"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
	logger    *logx.Logger
}

func New(model, apiKey string) llm.Provider {
	return &llmClient{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		modelName: model,
		logger:    logx.New("llm_openai"),
	}
}

func (c *llmClient) Complete(ctx context.Context, system string, user string) (string, error) {
	log := c.logger.WithTrace(ctx, config.TraceIDKey)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		log.Error("openai completion failed", "error", err.Error())
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
