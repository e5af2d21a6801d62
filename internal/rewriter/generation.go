package rewriter

import (
	"context"
	"fmt"
	"strings"

	"github.com/levapoteur/seorewriter/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "Expert SEO vapotage. Rédaction factuelle conforme FIVAPE."

// Generator performs one rewrite round trip with the text-generation
// model. Implementations must not retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TransportError is a failed round trip with the generation API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is a round trip that succeeded at the
// transport level but returned an unusable completion.
type MalformedResponseError struct {
	Op     string
	Detail string
}

func (e *MalformedResponseError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Detail) }

// OpenAIGenerator wraps the chat-completion call. Sampling is fixed at
// low temperature with a hard output cap so rewrites stay deterministic
// and bounded.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(cfg *config.Config) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(cfg.OpenAI.APIKey),
		model:  cfg.OpenAI.Model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return "", &TransportError{Op: "chat completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &MalformedResponseError{Op: "chat completion", Detail: "no choices in response"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
