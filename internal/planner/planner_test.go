package planner

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type stubLLM struct {
	content string
	err     error
}

func (s *stubLLM) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestLLMPlanner_ParsesJSON(t *testing.T) {
	p := &LLMPlanner{Client: &stubLLM{content: `{"queries": ["acme influencer", "acme official site", " acme influencer "]}`}, Model: "m"}
	plan, err := p.Plan(context.Background(), Request{Keywords: "acme"})
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if len(plan.Queries) != 2 {
		t.Fatalf("expected 2 deduped queries, got %v", plan.Queries)
	}
}

func TestLLMPlanner_NonJSONIsError(t *testing.T) {
	p := &LLMPlanner{Client: &stubLLM{content: "sure! here are some queries..."}, Model: "m"}
	if _, err := p.Plan(context.Background(), Request{Keywords: "acme"}); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

func TestLLMPlanner_CallErrorPropagates(t *testing.T) {
	p := &LLMPlanner{Client: &stubLLM{err: errors.New("boom")}, Model: "m"}
	if _, err := p.Plan(context.Background(), Request{Keywords: "acme"}); err == nil {
		t.Fatal("expected call error")
	}
}

func TestFallbackPlanner_JoinsKeywordsAndCategories(t *testing.T) {
	plan, err := FallbackPlanner{}.Plan(context.Background(), Request{
		Keywords:   "spiritual parenting",
		Categories: []string{"beauty"},
	})
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if len(plan.Queries) != 1 || plan.Queries[0] != "spiritual parenting beauty" {
		t.Fatalf("unexpected plan: %v", plan.Queries)
	}
}

func TestFallbackPlanner_EmptyRequestIsError(t *testing.T) {
	if _, err := (FallbackPlanner{}).Plan(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for empty request")
	}
}
