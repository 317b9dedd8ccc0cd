// Package request implements the Request Synthesizer of spec.md §4.7 and
// the optional natural-language phrasing layer described in SPEC_FULL.md's
// DOMAIN STACK section.
package request

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Phraser rewrites a templated request string into its final form.
type Phraser interface {
	Phrase(templated string) string
}

// TemplatePhraser is the default, deterministic Phraser: it returns the
// templated text unchanged. Every test in this repo uses it, satisfying
// spec.md §8's determinism property for Command::Request outputs.
type TemplatePhraser struct{}

func (TemplatePhraser) Phrase(templated string) string { return templated }

// OpenAIPhraser rewrites the templated request into a single natural
// sentence via the Chat Completions API, falling back to fallback (by
// default a TemplatePhraser) on any API error so a transient outage never
// blocks request emission.
type OpenAIPhraser struct {
	client   *openai.Client
	model    string
	fallback Phraser
}

// NewOpenAIPhraser constructs an OpenAIPhraser. fallback may be nil, in
// which case TemplatePhraser{} is used.
func NewOpenAIPhraser(apiKey, model string, fallback Phraser) *OpenAIPhraser {
	if fallback == nil {
		fallback = TemplatePhraser{}
	}
	return &OpenAIPhraser{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
	}
}

func (p *OpenAIPhraser) Phrase(templated string) string {
	resp, err := p.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Rewrite the following planner request into one natural, polite sentence without changing its meaning.",
			},
			{Role: openai.ChatMessageRoleUser, Content: templated},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return p.fallback.Phrase(templated)
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return p.fallback.Phrase(templated)
	}
	return text
}
