package llm

import (
	"fmt"
	"strconv"
	"strings"

	goenv "github.com/netflix/go-env"

	"github.com/genegraph/cyphergen/pkg/env"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	DefaultModel = "deepseek-coder:1.3b"
)

type Env struct {
	Provider    string  `env:"LLM_PROVIDER,default=ollama"`
	Model       string  `env:"LLM_MODEL,default=deepseek-coder:1.3b"`
	BaseURL     string  `env:"LLM_BASE_URL"`
	APIKey      string  `env:"LLM_API_KEY"`
	Temperature float64 `env:"LLM_TEMPERATURE,default=0"`
}

func NewLLMEnv() *Env {
	return &Env{}
}

func (e *Env) Populate() error {
	if _, err := goenv.UnmarshalFromEnviron(e); err != nil {
		return fmt.Errorf("unable to parse LLM configuration: %w", err)
	}

	e.Provider = strings.ToLower(strings.TrimSpace(e.Provider))
	switch e.Provider {
	case ProviderOllama:
	case ProviderOpenAI:
		if e.APIKey == "" {
			return &env.Error{Name: "LLM_API_KEY"}
		}
	default:
		return &env.ValueError{Name: "LLM_PROVIDER", Value: e.Provider}
	}

	if e.Temperature < 0 || e.Temperature > 2 {
		return &env.ValueError{Name: "LLM_TEMPERATURE", Value: strconv.FormatFloat(e.Temperature, 'g', -1, 64)}
	}

	return nil
}
