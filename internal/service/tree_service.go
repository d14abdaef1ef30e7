package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/gorm"
)

type PlantTreeInput struct {
	Species      string
	Latitude     float64
	Longitude    float64
	LocationName *string
	Nickname     *string
	Description  *string
	PhotoURL     *string
}

type TreeService interface {
	Plant(ctx context.Context, userID uint64, in PlantTreeInput) (*model.Tree, error)
	Get(ctx context.Context, treeID, userID uint64) (*model.Tree, error)
	List(ctx context.Context, userID uint64, limit, offset int) ([]model.Tree, int64, error)
	SetVisibility(ctx context.Context, treeID, userID uint64, public bool) (*model.Tree, error)
	ListPublic(ctx context.Context, limit, offset int) ([]model.Tree, error)
}

type treeService struct {
	trees  repository.TreeRepository
	health repository.HealthRepository
}

func NewTreeService(trees repository.TreeRepository, health repository.HealthRepository) TreeService {
	return &treeService{trees: trees, health: health}
}

func (s *treeService) Plant(ctx context.Context, userID uint64, in PlantTreeInput) (*model.Tree, error) {
	species := model.TreeSpecies(strings.ToLower(strings.TrimSpace(in.Species)))
	if !model.ValidSpecies(species) {
		return nil, fmt.Errorf("%w: unknown species %q", ErrValidation, in.Species)
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude out of range", ErrValidation)
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude out of range", ErrValidation)
	}
	if in.Nickname != nil {
		nickname := strings.TrimSpace(*in.Nickname)
		if nickname == "" {
			in.Nickname = nil
		} else {
			in.Nickname = &nickname
			count, err := s.trees.CountNickname(ctx, userID, nickname)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, fmt.Errorf("%w: you already have a tree named %q", ErrConflict, nickname)
			}
		}
	}

	tree := &model.Tree{
		UserID:       userID,
		Species:      species,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		LocationName: in.LocationName,
		Nickname:     in.Nickname,
		Description:  in.Description,
		PhotoURL:     in.PhotoURL,
		HealthScore:  100,
		CurrentValue: ComputeValue(DefaultBaseValue, 100),
	}
	if err := s.trees.Create(ctx, tree); err != nil {
		return nil, err
	}

	// Initial ledger entry so the tree's history starts at planting.
	desc := "Tree planted"
	entry := &model.HealthHistory{
		TreeID:      tree.ID,
		HealthScore: tree.HealthScore,
		TokenValue:  tree.CurrentValue,
		EventType:   "planting",
		Description: &desc,
	}
	if err := s.health.Append(ctx, tree, entry); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *treeService) Get(ctx context.Context, treeID, userID uint64) (*model.Tree, error) {
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
	return tree, nil
}

func (s *treeService) List(ctx context.Context, userID uint64, limit, offset int) ([]model.Tree, int64, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.trees.ListByUser(ctx, userID, limit, offset)
}

func (s *treeService) SetVisibility(ctx context.Context, treeID, userID uint64, public bool) (*model.Tree, error) {
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
	if err := s.trees.SetVisibility(ctx, treeID, public); err != nil {
		return nil, err
	}
	tree.IsPublic = public
	return tree, nil
}

func (s *treeService) ListPublic(ctx context.Context, limit, offset int) ([]model.Tree, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.trees.ListPublic(ctx, limit, offset)
}
