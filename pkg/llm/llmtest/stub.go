// Package llmtest provides an in-memory llm.LLMProvider for tests.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"mailreply-be/pkg/llm"
)

const StubName = "stub"

// Call records one request the stub received.
type Call struct {
	Messages []llm.Message
	Options  llm.Options
}

// Prompt joins the contents of every message in the call.
func (c Call) Prompt() string {
	parts := make([]string, len(c.Messages))
	for i, m := range c.Messages {
		parts[i] = m.Content
	}
	return strings.Join(parts, "\n")
}

// Response is one scripted reply. Err takes precedence over Text.
type Response struct {
	Text string
	Err  error
}

// StubProvider answers from a script of responses in order. When the script
// runs out it answers with Fallback.
type StubProvider struct {
	mu        sync.Mutex
	responses []Response
	calls     []Call

	Fallback       Response
	CredentialsErr error
}

var _ llm.LLMProvider = &StubProvider{}

// NewStubProvider returns a stub that replies with the given texts in order.
func NewStubProvider(texts ...string) *StubProvider {
	s := &StubProvider{Fallback: Response{Err: errors.New("llmtest: no scripted response")}}
	for _, t := range texts {
		s.responses = append(s.responses, Response{Text: t})
	}
	return s
}

// Then appends a scripted response.
func (s *StubProvider) Then(r Response) *StubProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
	return s
}

func (s *StubProvider) Name() string { return StubName }

func (s *StubProvider) CheckCredentials() error { return s.CredentialsErr }

func (s *StubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]llm.Message, len(history))
	copy(msgs, history)
	s.calls = append(s.calls, Call{Messages: msgs, Options: llm.ApplyOptions(llm.Options{}, opts...)})

	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp := s.Fallback
	if len(s.responses) > 0 {
		resp = s.responses[0]
		s.responses = s.responses[1:]
	}
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

func (s *StubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// Calls returns a copy of every call received so far.
func (s *StubProvider) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *StubProvider) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
