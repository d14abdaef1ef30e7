package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/petriapp/petri-backend/internal/chatctx"
	"google.golang.org/genai"
)

// TextGenerator is the boundary contract for the text-completion provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiGenerator struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{apiKey: apiKey, model: model, timeout: 30 * time.Second}
}

// Generate sends the assembled chat prompt to Gemini and returns the raw
// model text. Single attempt, bounded by the generator timeout.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not set")
	}
	rid := chatctx.RID(ctx)
	treeID := chatctx.TreeID(ctx)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		log.Printf("[chat] rid=%s tree=%d stage=llm_client_init err=%v", rid, treeID, err)
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	start := time.Now()
	log.Printf("[chat] rid=%s tree=%d stage=llm_start model=%s", rid, treeID, g.model)
	res, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		log.Printf("[chat] rid=%s tree=%d stage=llm_fail model=%s err=%v", rid, treeID, g.model, err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := res.Text()
	log.Printf("[chat] rid=%s tree=%d stage=llm_done model=%s genMs=%d len=%d",
		rid, treeID, g.model, time.Since(start).Milliseconds(), len(text))
	return text, nil
}
