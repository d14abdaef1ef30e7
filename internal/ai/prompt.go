package ai

import (
	"fmt"
	"sort"
	"strings"
)

// Turn is one prior exchange line used for conversational continuity.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// PromptInput carries everything the chat prompt template needs. The template
// is deterministic: the same input always produces the same prompt.
type PromptInput struct {
	Name         string
	Species      string
	Tone         string
	Background   string
	Traits       map[string]interface{}
	HealthScore  float64
	CurrentValue float64
	History      []Turn // oldest first
	Message      string
}

const historySnippetLen = 50

// BuildChatPrompt assembles the single-shot prompt sent to the text
// generator. The JSON-only instruction keeps replies parseable by ParseReply.
func BuildChatPrompt(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "System: You are %s, a %s tree with %s tone.\n", in.Name, in.Species, in.Tone)
	if in.Background != "" {
		b.WriteString(in.Background)
		b.WriteString("\n")
	}
	if len(in.Traits) > 0 {
		keys := make([]string, 0, len(in.Traits))
		for k := range in.Traits {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, in.Traits[k]))
		}
		fmt.Fprintf(&b, "Traits: %s\n", strings.Join(pairs, ", "))
	}
	fmt.Fprintf(&b, "Current health: %.1f/100, token value %.2f.\n", in.HealthScore, in.CurrentValue)

	if len(in.History) > 0 {
		b.WriteString("Recent context: ")
		for _, t := range in.History {
			role := "User"
			if t.Role == "assistant" {
				role = "Tree"
			}
			fmt.Fprintf(&b, "%s: %s | ", role, snippet(t.Content))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nUser: %s\n", in.Message)
	b.WriteString("\nRespond ONLY with valid JSON (no markdown, no extra text):\n")
	b.WriteString(`{"response": "your 1-3 sentence response", "emotions": ["emotion1"], "action": "optional"}`)

	return b.String()
}

func snippet(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > historySnippetLen {
		return s[:historySnippetLen] + "..."
	}
	return s
}
