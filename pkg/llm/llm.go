// Package llm sends prompts to a chat model through langchaingo.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	llmenv "github.com/genegraph/cyphergen/pkg/env/llm"
	"github.com/genegraph/cyphergen/pkg/prompt"
)

const defaultOllamaURL = "http://localhost:11434"

var ErrEmptyResponse = errors.New("model returned an empty response")

type Client struct {
	model   llms.Model
	name    string
	options []llms.CallOption
}

func NewClient(model llms.Model, name string, options ...llms.CallOption) *Client {
	return &Client{model: model, name: name, options: options}
}

// New builds a client for the configured provider.
func New(e *llmenv.Env) (*Client, error) {
	var (
		model llms.Model
		err   error
	)

	switch e.Provider {
	case llmenv.ProviderOllama:
		url := e.BaseURL
		if url == "" {
			url = defaultOllamaURL
		}
		model, err = ollama.New(ollama.WithServerURL(url), ollama.WithModel(e.Model))
	case llmenv.ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(e.APIKey), openai.WithModel(e.Model)}
		if e.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(e.BaseURL))
		}
		model, err = openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", e.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to create %s client: %w", e.Provider, err)
	}

	return NewClient(model, e.Provider+"/"+e.Model, llms.WithTemperature(e.Temperature)), nil
}

func (c *Client) Name() string {
	return c.name
}

// Generate sends the system instruction and the user prompt as a two message
// conversation and returns the text of the first choice.
func (c *Client) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, p.System),
		llms.TextParts(schema.ChatMessageTypeHuman, p.User),
	}

	resp, err := c.model.GenerateContent(ctx, messages, c.options...)
	if err != nil {
		return "", fmt.Errorf("unable to generate completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}
