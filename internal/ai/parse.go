package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrEmptyReply = errors.New("empty_reply")

// Reply is the structured form of a model response.
type Reply struct {
	Response string   `json:"response"`
	Emotions []string `json:"emotions"`
	Action   string   `json:"action"`
}

// ParseReply extracts the structured reply from raw model output. It first
// tries the strict JSON format requested by the prompt (tolerating markdown
// code fences), and falls back to treating the whole text as the response.
// Only a blank reply is an error.
func ParseReply(raw string) (Reply, error) {
	text := strings.TrimSpace(stripFences(raw))
	if text == "" {
		return Reply{}, ErrEmptyReply
	}

	var reply Reply
	if err := json.Unmarshal([]byte(text), &reply); err == nil && strings.TrimSpace(reply.Response) != "" {
		reply.Response = strings.TrimSpace(reply.Response)
		return reply, nil
	}
	return Reply{Response: text}, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return s
}
