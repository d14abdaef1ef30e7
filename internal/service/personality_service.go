package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/petriapp/petri-backend/internal/ai"
	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var allowedTones = map[string]bool{
	"wise":      true,
	"humorous":  true,
	"poetic":    true,
	"playful":   true,
	"energetic": true,
	"calm":      true,
}

type SetPersonalityInput struct {
	Name       string
	Tone       string
	Background string
	Traits     map[string]interface{}
	VoiceID    string
}

type PersonalityService interface {
	Set(ctx context.Context, treeID, userID uint64, in SetPersonalityInput) (*model.TreePersonality, error)
	Get(ctx context.Context, treeID, userID uint64) (*model.TreePersonality, error)
}

type personalityService struct {
	trees         repository.TreeRepository
	personalities repository.PersonalityRepository
}

func NewPersonalityService(trees repository.TreeRepository, personalities repository.PersonalityRepository) PersonalityService {
	return &personalityService{trees: trees, personalities: personalities}
}

// Set upserts the tree's single personality record. Tones with a default
// voice may omit voice_id; all other tones must name a cataloged voice.
func (s *personalityService) Set(ctx context.Context, treeID, userID uint64, in SetPersonalityInput) (*model.TreePersonality, error) {
	name := strings.TrimSpace(in.Name)
	tone := strings.ToLower(strings.TrimSpace(in.Tone))
	if name == "" || len(name) > 120 {
		return nil, fmt.Errorf("%w: invalid name", ErrValidation)
	}
	if !allowedTones[tone] {
		return nil, fmt.Errorf("%w: unknown tone %q", ErrValidation, in.Tone)
	}

	voiceID := strings.TrimSpace(in.VoiceID)
	if voiceID == "" {
		def, ok := ai.DefaultVoiceForTone(tone)
		if !ok {
			return nil, fmt.Errorf("%w: tone %q has no default voice, voice_id is required", ErrValidation, tone)
		}
		voiceID = def
	} else if !ai.KnownVoice(voiceID) {
		return nil, fmt.Errorf("%w: unknown voice %q", ErrValidation, voiceID)
	}

	tree, err := s.trees.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tree.UserID != userID {
		return nil, ErrForbidden
	}

	p := &model.TreePersonality{
		TreeID:     treeID,
		Name:       name,
		Tone:       tone,
		Background: strings.TrimSpace(in.Background),
		Traits:     datatypes.JSONMap(in.Traits),
		VoiceID:    voiceID,
	}
	if err := s.personalities.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *personalityService) Get(ctx context.Context, treeID, userID uint64) (*model.TreePersonality, error) {
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
	p, err := s.personalities.FindByTree(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
