// Package replyprompt renders reply-drafting documents into the prompts sent
// to the language model. Everything here is a pure function of its inputs
// and the catalog.
package replyprompt

import "mailreply-be/pkg/llm"

// Prompt is a system instruction plus one user message, optionally with the
// JSON schema the response must follow.
type Prompt struct {
	System string
	User   string
	Schema *llm.JSONSchema
}

// Messages returns the prompt as role-tagged chat messages.
func (p Prompt) Messages() []llm.Message {
	msgs := make([]llm.Message, 0, 2)
	if p.System != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: p.System})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: p.User})
}

// Options returns the call options the prompt needs (the response schema, if any).
func (p Prompt) Options() []llm.Option {
	if p.Schema == nil {
		return nil
	}
	return []llm.Option{llm.WithJSONSchema(p.Schema)}
}
