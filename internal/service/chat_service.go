package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/petriapp/petri-backend/internal/ai"
	"github.com/petriapp/petri-backend/internal/chatctx"
	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"github.com/petriapp/petri-backend/internal/storage"
	"gorm.io/gorm"
)

// historyWindow is how many prior messages feed the prompt for continuity.
const historyWindow = 10

type ChatResult struct {
	TreeName     string
	UserMessage  string
	Response     string
	Emotions     []string
	Action       string
	AudioURL     *string
	HealthScore  float64
	CurrentValue float64
}

type ChatService interface {
	// Chat runs one pass of the conversation pipeline: assemble context,
	// generate text, optionally synthesize speech, persist the exchange.
	Chat(ctx context.Context, treeID, userID uint64, message string, includeAudio bool) (*ChatResult, error)
	History(ctx context.Context, treeID, userID uint64, limit int) ([]model.ChatMessage, error)
}

type chatService struct {
	trees         repository.TreeRepository
	health        repository.HealthRepository
	personalities repository.PersonalityRepository
	chats         repository.ChatRepository
	generator     ai.TextGenerator
	synthesizer   ai.SpeechSynthesizer
	audioStore    storage.AudioStore
}

func NewChatService(
	trees repository.TreeRepository,
	health repository.HealthRepository,
	personalities repository.PersonalityRepository,
	chats repository.ChatRepository,
	generator ai.TextGenerator,
	synthesizer ai.SpeechSynthesizer,
	audioStore storage.AudioStore,
) ChatService {
	return &chatService{
		trees:         trees,
		health:        health,
		personalities: personalities,
		chats:         chats,
		generator:     generator,
		synthesizer:   synthesizer,
		audioStore:    audioStore,
	}
}

func (s *chatService) Chat(ctx context.Context, treeID, userID uint64, message string, includeAudio bool) (*ChatResult, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	rid := uuid.NewString()[:8]
	ctx = chatctx.WithRID(ctx, rid)
	ctx = chatctx.WithTreeID(ctx, treeID)

	// Context assembly. All reads happen before any external call; external
	// calls never run inside a held transaction.
	tree, err := s.trees.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tree.UserID != userID && !tree.IsPublic {
		return nil, ErrForbidden
	}

	healthScore := tree.HealthScore
	currentValue := tree.CurrentValue
	if latest, err := s.health.LatestByTree(ctx, treeID); err == nil && latest != nil {
		healthScore = latest.HealthScore
		currentValue = latest.TokenValue
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	personality := s.loadPersonality(ctx, tree)

	recent, err := s.chats.ListByTree(ctx, treeID, historyWindow)
	if err != nil {
		return nil, err
	}
	history := make([]ai.Turn, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- { // newest-first from the repo; prompt wants oldest-first
		history = append(history, ai.Turn{Role: string(recent[i].Role), Content: recent[i].Content})
	}

	prompt := ai.BuildChatPrompt(ai.PromptInput{
		Name:         personality.Name,
		Species:      string(tree.Species),
		Tone:         personality.Tone,
		Background:   personality.Background,
		Traits:       personality.Traits,
		HealthScore:  healthScore,
		CurrentValue: currentValue,
		History:      history,
		Message:      message,
	})

	// Text generation is the one hard dependency: any failure aborts the
	// request and nothing is persisted.
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: text generation failed: %v", ErrUpstream, err)
	}
	reply, err := ai.ParseReply(raw)
	if err != nil {
		log.Printf("[chat] rid=%s tree=%d stage=parse_fail err=%v", rid, treeID, err)
		return nil, fmt.Errorf("%w: empty generation result", ErrUpstream)
	}

	// Speech synthesis is best-effort: on failure the chat succeeds without
	// audio.
	var audioURL *string
	if includeAudio {
		if url, err := s.synthesizeAudio(ctx, reply.Response, personality.VoiceID); err != nil {
			log.Printf("[chat] rid=%s tree=%d stage=tts_fail err=%v", rid, treeID, err)
		} else {
			audioURL = &url
		}
	}

	userMsg := &model.ChatMessage{
		TreeID:  treeID,
		UserID:  userID,
		Role:    model.ChatRoleUser,
		Content: message,
	}
	assistantMsg := &model.ChatMessage{
		TreeID:   treeID,
		UserID:   userID,
		Role:     model.ChatRoleAssistant,
		Content:  reply.Response,
		AudioURL: audioURL,
	}
	if err := s.chats.AppendExchange(ctx, userMsg, assistantMsg); err != nil {
		return nil, err
	}
	log.Printf("[chat] rid=%s tree=%d stage=done audio=%v", rid, treeID, audioURL != nil)

	return &ChatResult{
		TreeName:     personality.Name,
		UserMessage:  message,
		Response:     reply.Response,
		Emotions:     reply.Emotions,
		Action:       reply.Action,
		AudioURL:     audioURL,
		HealthScore:  healthScore,
		CurrentValue: currentValue,
	}, nil
}

func (s *chatService) History(ctx context.Context, treeID, userID uint64, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 100 {
		limit = 100
	}
	tree, err := s.trees.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tree.UserID != userID && !tree.IsPublic {
		return nil, ErrForbidden
	}
	messages, err := s.chats.ListByTree(ctx, treeID, limit)
	if err != nil {
		return nil, err
	}
	// oldest-first for display
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// loadPersonality returns the tree's configured personality, or a neutral
// default when none has been set so chat works out of the box.
func (s *chatService) loadPersonality(ctx context.Context, tree *model.Tree) *model.TreePersonality {
	p, err := s.personalities.FindByTree(ctx, tree.ID)
	if err == nil && p != nil {
		return p
	}
	name := string(tree.Species)
	if tree.Nickname != nil && *tree.Nickname != "" {
		name = *tree.Nickname
	}
	return &model.TreePersonality{
		TreeID:     tree.ID,
		Name:       name,
		Tone:       "calm",
		Background: "A quietly observant tree, content to watch the seasons pass.",
		VoiceID:    "Rachel",
	}
}

func (s *chatService) synthesizeAudio(ctx context.Context, text, voice string) (string, error) {
	audio, err := s.synthesizer.Synthesize(ctx, text, ai.ResolveVoice(voice))
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("tree_audio_%s.mp3", uuid.NewString())
	return s.audioStore.Save(ctx, name, audio)
}
