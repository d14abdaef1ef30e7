package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petriapp/petri-backend/internal/cards"
	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/gorm"
)

type TokenService interface {
	Mint(ctx context.Context, treeID, userID uint64) (*model.Token, error)
	Get(ctx context.Context, tokenID string, userID uint64) (*model.Token, error)
	List(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Token, error)
}

type tokenService struct {
	trees  repository.TreeRepository
	tokens repository.TokenRepository
	cards  *cards.Client
}

func NewTokenService(trees repository.TreeRepository, tokens repository.TokenRepository, cardClient *cards.Client) TokenService {
	return &tokenService{trees: trees, tokens: tokens, cards: cardClient}
}

// Mint creates the one token a tree can ever have. The card renderer is
// called before the insert; the tree→token unique index backs up the
// existence check under concurrent mints.
func (s *tokenService) Mint(ctx context.Context, treeID, userID uint64) (*model.Token, error) {
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
	if existing, err := s.tokens.FindByTree(ctx, treeID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: token already minted for this tree", ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	card := s.cards.Generate(ctx, cards.Request{
		TreeID:      treeID,
		Species:     string(tree.Species),
		Latitude:    tree.Latitude,
		Longitude:   tree.Longitude,
		HealthScore: tree.HealthScore,
	})

	tokenID := fmt.Sprintf("TREE-%d-%s", treeID, strings.ToUpper(uuid.NewString()[:8]))
	token := &model.Token{
		TokenID:      tokenID,
		TreeID:       treeID,
		OwnerID:      userID,
		ImageURI:     &card.ImageURI,
		MetadataURI:  &card.MetadataURI,
		BaseValue:    DefaultBaseValue,
		CurrentValue: ComputeValue(DefaultBaseValue, tree.HealthScore),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: token already minted for this tree", ErrConflict)
		}
		return nil, err
	}
	return token, nil
}

func (s *tokenService) Get(ctx context.Context, tokenID string, userID uint64) (*model.Token, error) {
	token, err := s.tokens.FindByTokenID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if token.OwnerID != userID {
		return nil, ErrForbidden
	}
	return token, nil
}

func (s *tokenService) List(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Token, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.tokens.ListByOwner(ctx, ownerID, limit, offset)
}
