package gemini

import (
	"context"
	"fmt"

	"docvoice/internal/config"
	"docvoice/internal/rag/llm"
	"docvoice/pkg/logx"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logx.Logger
}

func New(ctx context.Context, model, apiKey string) (llm.Provider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &llmClient{
		client:    c,
		modelName: model,
		logger:    logx.New("llm_gemini"),
	}, nil
}

func (c *llmClient) Complete(ctx context.Context, system string, user string) (string, error) {
	log := c.logger.WithTrace(ctx, config.TraceIDKey)

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
		},
	)
	if err != nil {
		log.Error("gemini completion failed", "error", err.Error())
		return "", err
	}
	return result.Text(), nil
}
