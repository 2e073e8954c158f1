package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

// planner-stub is a tiny OpenAI-compatible endpoint for offline runs and CI.
// It answers the query-planner prompt with a fixed set of query variants
// derived from the user message, so the pipeline can be exercised without a
// real model.

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "stub-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		topic := topicFromMessages(req.Messages)
		plan := map[string]any{
			"queries": []string{
				topic,
				topic + " official site",
				topic + " contact",
				topic + " instagram",
			},
		}
		b, _ := json.Marshal(plan)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub-1",
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": string(b),
				},
			}},
		})
	})

	log.Printf("planner-stub listening on %s (model %s)", addr, model)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// topicFromMessages pulls the keyword line out of the user prompt. The prompt
// format is "Topic keywords: <keywords>\n...".
func topicFromMessages(msgs []struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}) string {
	for _, m := range msgs {
		if m.Role != "user" {
			continue
		}
		for _, line := range strings.Split(m.Content, "\n") {
			line = strings.TrimSpace(line)
			if rest, ok := strings.CutPrefix(line, "Topic keywords:"); ok {
				if t := strings.TrimSpace(rest); t != "" {
					return t
				}
			}
		}
	}
	return "influencer"
}
