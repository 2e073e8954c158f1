package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goprospect/internal/llm"
	"github.com/hyperifyio/goprospect/internal/search"
)

// Plan is the set of provider queries one discovery run will execute. Results
// from all queries are merged before scanning.
type Plan struct {
	Queries []string `json:"queries"`
}

// Request carries the user's search intent into planning.
type Request struct {
	Keywords     string
	Categories   []string
	LanguageHint string
}

// Planner turns a request into provider queries.
type Planner interface {
	Plan(ctx context.Context, req Request) (Plan, error)
}

// LLMPlanner asks an OpenAI-compatible endpoint for query variants that are
// likely to surface official sites and profile pages. It enforces a JSON-only
// contract; non-JSON output is an error so callers can fall back.
type LLMPlanner struct {
	Client llm.Client
	Model  string
}

const systemMessage = "You are a search-query assistant for finding the official websites of influencers and small businesses. Respond with strict JSON only, no narration. The JSON schema is {\"queries\": string[2..5]}. Queries must be short keyword combinations aimed at official sites, profile pages, and contact pages for the given topic. Keep the user's language."

func (p *LLMPlanner) Plan(ctx context.Context, req Request) (Plan, error) {
	if p.Client == nil || p.Model == "" {
		return Plan{}, errors.New("planner not configured")
	}
	user := buildUserPrompt(req)
	resp, err := p.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return Plan{}, fmt.Errorf("planner call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Plan{}, errors.New("no choices")
	}
	var plan Plan
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return Plan{}, fmt.Errorf("parse planner json: %w", err)
	}
	plan.Queries = sanitizeQueries(plan.Queries)
	if len(plan.Queries) == 0 {
		return Plan{}, errors.New("empty planner output")
	}
	return plan, nil
}

func buildUserPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Topic keywords: ")
	b.WriteString(strings.TrimSpace(req.Keywords))
	if len(req.Categories) > 0 {
		b.WriteString("\nCategories: ")
		b.WriteString(strings.Join(req.Categories, ", "))
	}
	if req.LanguageHint != "" {
		b.WriteString("\nLanguage: ")
		b.WriteString(req.LanguageHint)
	}
	return b.String()
}

func sanitizeQueries(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, q := range in {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}

// FallbackPlanner produces a deterministic plan when no model is configured
// or the model returns invalid output: the joined keywords-plus-categories
// query, exactly what a user would have typed into the search box.
type FallbackPlanner struct{}

func (FallbackPlanner) Plan(_ context.Context, req Request) (Plan, error) {
	q := search.BuildQuery(req.Keywords, req.Categories)
	if q == "" {
		return Plan{}, errors.New("empty query")
	}
	return Plan{Queries: []string{q}}, nil
}
