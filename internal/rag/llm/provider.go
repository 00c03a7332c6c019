package llm

import (
	"context"
	"strings"
)

// Provider produces a single completion from a system instruction and a
// user prompt. No conversation state is kept between calls.
type Provider interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

// IsGeminiModel reports whether a completion model id belongs to the
// Gemini family. Everything else is routed to OpenAI.
func IsGeminiModel(model string) bool {
	return strings.HasPrefix(model, "gemini")
}
