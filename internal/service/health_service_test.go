package service

import (
	"context"
	"errors"
	"testing"

	"github.com/petriapp/petri-backend/internal/model"
)

func newHealthFixture() (HealthService, *fakeTreeRepo, *fakeTokenRepo, *fakeHealthRepo) {
	trees := newFakeTreeRepo()
	tokens := newFakeTokenRepo()
	health := newFakeHealthRepo(trees, tokens)
	return NewHealthService(trees, tokens, health), trees, tokens, health
}

func TestRecordEventUpdatesTreeAndLedger(t *testing.T) {
	svc, trees, _, health := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak, HealthScore: 100, CurrentValue: 100}
	trees.add(tree)

	entry, updated, err := svc.RecordEvent(context.Background(), tree.ID, 1, 75, "drought", nil)
	if err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if entry.HealthScore != 75 || entry.TokenValue != 75 {
		t.Errorf("entry = %.1f/%.2f, want 75/75", entry.HealthScore, entry.TokenValue)
	}
	if updated.HealthScore != 75 || updated.CurrentValue != 75 {
		t.Errorf("tree = %.1f/%.2f, want 75/75", updated.HealthScore, updated.CurrentValue)
	}
	stored, _ := trees.FindByID(context.Background(), tree.ID)
	if stored.HealthScore != 75 {
		t.Errorf("stored tree health = %.1f, want 75", stored.HealthScore)
	}
	if len(health.entries) != 1 {
		t.Errorf("ledger has %d entries, want 1", len(health.entries))
	}
}

func TestRecordEventUsesTokenBaseValue(t *testing.T) {
	svc, trees, tokens, _ := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak, HealthScore: 100, CurrentValue: 100}
	trees.add(tree)
	tokens.Create(context.Background(), &model.Token{
		TokenID:      "TREE-1-AAAA0000",
		TreeID:       tree.ID,
		OwnerID:      1,
		BaseValue:    200,
		CurrentValue: 200,
	})

	entry, _, err := svc.RecordEvent(context.Background(), tree.ID, 1, 50, "storm", nil)
	if err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if entry.TokenValue != 100 {
		t.Errorf("value = %.2f, want 100 (base 200 at 50%% health)", entry.TokenValue)
	}
	token, _ := tokens.FindByTree(context.Background(), tree.ID)
	if token.CurrentValue != 100 {
		t.Errorf("token current value = %.2f, want 100", token.CurrentValue)
	}
}

func TestRecordEventClampsScore(t *testing.T) {
	svc, trees, _, _ := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak}
	trees.add(tree)

	entry, _, err := svc.RecordEvent(context.Background(), tree.ID, 1, 150, "growth", nil)
	if err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if entry.HealthScore != 100 {
		t.Errorf("score = %.1f, want clamped to 100", entry.HealthScore)
	}
	entry, _, err = svc.RecordEvent(context.Background(), tree.ID, 1, -10, "blight", nil)
	if err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if entry.HealthScore != 0 {
		t.Errorf("score = %.1f, want clamped to 0", entry.HealthScore)
	}
}

func TestRecordEventAuthorization(t *testing.T) {
	svc, trees, _, _ := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak, IsPublic: true}
	trees.add(tree)

	if _, _, err := svc.RecordEvent(context.Background(), tree.ID, 2, 50, "storm", nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner write: err = %v, want ErrForbidden even on public tree", err)
	}
	if _, _, err := svc.RecordEvent(context.Background(), 999, 1, 50, "storm", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing tree: err = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.RecordEvent(context.Background(), tree.ID, 1, 50, "", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty event type: err = %v, want ErrValidation", err)
	}
}

func TestHistoryIsAppendOnlyNewestFirst(t *testing.T) {
	svc, trees, _, health := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak}
	trees.add(tree)

	for _, score := range []float64{90, 70, 85} {
		if _, _, err := svc.RecordEvent(context.Background(), tree.ID, 1, score, "watering", nil); err != nil {
			t.Fatalf("RecordEvent(%v): %v", score, err)
		}
	}

	entries, err := svc.History(context.Background(), tree.ID, 1, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].HealthScore != 85 || entries[2].HealthScore != 90 {
		t.Errorf("ordering wrong: first=%.1f last=%.1f, want newest first", entries[0].HealthScore, entries[2].HealthScore)
	}
	if len(health.entries) != 3 {
		t.Errorf("ledger length = %d after reads, want 3 (no mutation)", len(health.entries))
	}
}

func TestHistoryLimit(t *testing.T) {
	svc, trees, _, _ := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak}
	trees.add(tree)

	for i := 1; i <= 10; i++ {
		if _, _, err := svc.RecordEvent(context.Background(), tree.ID, 1, float64(i*10), "watering", nil); err != nil {
			t.Fatalf("RecordEvent #%d: %v", i, err)
		}
	}

	entries, err := svc.History(context.Background(), tree.ID, 1, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries with limit=2, want 2", len(entries))
	}
	if entries[0].HealthScore != 100 || entries[1].HealthScore != 90 {
		t.Errorf("got %.0f, %.0f; want the 2 most recent (100, 90)", entries[0].HealthScore, entries[1].HealthScore)
	}
}

func TestHistoryOverLimitClampsTo100(t *testing.T) {
	svc, trees, _, _ := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak}
	trees.add(tree)

	for i := 0; i < 60; i++ {
		if _, _, err := svc.RecordEvent(context.Background(), tree.ID, 1, 80, "watering", nil); err != nil {
			t.Fatalf("RecordEvent #%d: %v", i, err)
		}
	}

	entries, err := svc.History(context.Background(), tree.ID, 1, 500)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 60 {
		t.Fatalf("got %d entries with limit=500, want all 60 (limit clamps to 100, not the default)", len(entries))
	}
}

func TestHistoryVisibility(t *testing.T) {
	svc, trees, _, _ := newHealthFixture()
	tree := &model.Tree{UserID: 1, Species: model.SpeciesOak}
	trees.add(tree)

	if _, err := svc.History(context.Background(), tree.ID, 2, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger on private history: err = %v, want ErrForbidden", err)
	}
	trees.SetVisibility(context.Background(), tree.ID, true)
	if _, err := svc.History(context.Background(), tree.ID, 2, 0); err != nil {
		t.Errorf("stranger on public history: %v", err)
	}
}
