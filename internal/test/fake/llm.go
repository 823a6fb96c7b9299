package fake

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Model answers with Responses in order, repeating the last one once they
// run out.
type Model struct {
	Responses []string
	Err       error
	// NoChoices makes the model return a response without any choice.
	NoChoices bool

	mu       sync.Mutex
	calls    int
	messages [][]llms.MessageContent
}

var _ llms.Model = (*Model)(nil)

func (m *Model) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.messages = append(m.messages, messages)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.NoChoices {
		return &llms.ContentResponse{}, nil
	}
	if len(m.Responses) == 0 {
		return nil, errors.New("no scripted response")
	}

	i := m.calls - 1
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.Responses[i]}},
	}, nil
}

func (m *Model) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *Model) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Model) Messages() [][]llms.MessageContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]llms.MessageContent(nil), m.messages...)
}
