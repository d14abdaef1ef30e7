package service

import (
	"context"
	"sort"

	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the gorm implementations closely
// enough for service tests: gorm.ErrRecordNotFound on misses, sequential IDs,
// and the same transactional side effects (health append also updates the
// tree and token rows).

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTreeRepo struct {
	trees  map[uint64]*model.Tree
	nextID uint64
}

func newFakeTreeRepo() *fakeTreeRepo {
	return &fakeTreeRepo{trees: map[uint64]*model.Tree{}, nextID: 1}
}

func (r *fakeTreeRepo) add(tree *model.Tree) *model.Tree {
	if tree.ID == 0 {
		tree.ID = r.nextID
		r.nextID++
	} else if tree.ID >= r.nextID {
		r.nextID = tree.ID + 1
	}
	cp := *tree
	r.trees[tree.ID] = &cp
	return tree
}

func (r *fakeTreeRepo) Create(_ context.Context, tree *model.Tree) error {
	r.add(tree)
	return nil
}

func (r *fakeTreeRepo) FindByID(_ context.Context, id uint64) (*model.Tree, error) {
	t, ok := r.trees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTreeRepo) ListByUser(_ context.Context, userID uint64, limit, offset int) ([]model.Tree, int64, error) {
	var out []model.Tree
	for _, t := range r.trees {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeTreeRepo) ListPublic(_ context.Context, limit, offset int) ([]model.Tree, error) {
	var out []model.Tree
	for _, t := range r.trees {
		if t.IsPublic {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTreeRepo) CountNickname(_ context.Context, userID uint64, nickname string) (int64, error) {
	var n int64
	for _, t := range r.trees {
		if t.UserID == userID && t.Nickname != nil && *t.Nickname == nickname {
			n++
		}
	}
	return n, nil
}

func (r *fakeTreeRepo) SetVisibility(_ context.Context, treeID uint64, public bool) error {
	t, ok := r.trees[treeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.IsPublic = public
	return nil
}

type fakeHealthRepo struct {
	trees   *fakeTreeRepo
	tokens  *fakeTokenRepo
	entries []model.HealthHistory
	nextID  uint64
}

func newFakeHealthRepo(trees *fakeTreeRepo, tokens *fakeTokenRepo) *fakeHealthRepo {
	return &fakeHealthRepo{trees: trees, tokens: tokens, nextID: 1}
}

func (r *fakeHealthRepo) Append(_ context.Context, tree *model.Tree, entry *model.HealthHistory) error {
	if stored, ok := r.trees.trees[tree.ID]; ok {
		stored.HealthScore = tree.HealthScore
		stored.CurrentValue = tree.CurrentValue
	}
	if r.tokens != nil {
		for _, tok := range r.tokens.tokens {
			if tok.TreeID == tree.ID {
				tok.CurrentValue = entry.TokenValue
			}
		}
	}
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHealthRepo) ListByTree(_ context.Context, treeID uint64, limit int) ([]model.HealthHistory, error) {
	var out []model.HealthHistory
	for i := len(r.entries) - 1; i >= 0; i-- { // newest first
		if r.entries[i].TreeID == treeID {
			out = append(out, r.entries[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeHealthRepo) LatestByTree(_ context.Context, treeID uint64) (*model.HealthHistory, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].TreeID == treeID {
			cp := r.entries[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTokenRepo struct {
	tokens map[uint64]*model.Token
	nextID uint64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[uint64]*model.Token{}, nextID: 1}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *model.Token) error {
	for _, t := range r.tokens {
		if t.TreeID == token.TreeID || t.TokenID == token.TokenID {
			return gorm.ErrDuplicatedKey
		}
	}
	token.ID = r.nextID
	r.nextID++
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeTokenRepo) FindByTokenID(_ context.Context, tokenID string) (*model.Token, error) {
	for _, t := range r.tokens {
		if t.TokenID == tokenID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTokenRepo) FindByTree(_ context.Context, treeID uint64) (*model.Token, error) {
	for _, t := range r.tokens {
		if t.TreeID == treeID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTokenRepo) ListByOwner(_ context.Context, ownerID uint64, limit, offset int) ([]model.Token, error) {
	var out []model.Token
	for _, t := range r.tokens {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTradeRepo struct {
	trades []model.Trade
	shares map[[2]uint64]float64 // (tokenID, ownerID) -> quantity
	nextID uint64
}

func newFakeTradeRepo() *fakeTradeRepo {
	return &fakeTradeRepo{shares: map[[2]uint64]float64{}, nextID: 1}
}

func (r *fakeTradeRepo) Execute(_ context.Context, trade *model.Trade, delta float64) error {
	key := [2]uint64{trade.TokenID, trade.UserID}
	if delta < 0 && r.shares[key] < -delta {
		return gorm.ErrRecordNotFound
	}
	if delta >= 0 {
		var total float64
		for k, qty := range r.shares {
			if k[0] == trade.TokenID {
				total += qty
			}
		}
		if total+delta > repository.ShareCap {
			return repository.ErrShareCapExceeded
		}
	}
	trade.ID = r.nextID
	r.nextID++
	r.trades = append(r.trades, *trade)
	r.shares[key] += delta
	return nil
}

func (r *fakeTradeRepo) ListByToken(_ context.Context, tokenID uint64, limit int) ([]model.Trade, error) {
	var out []model.Trade
	for i := len(r.trades) - 1; i >= 0; i-- {
		if r.trades[i].TokenID == tokenID {
			out = append(out, r.trades[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) ShareQuantity(_ context.Context, tokenID, ownerID uint64) (float64, error) {
	return r.shares[[2]uint64{tokenID, ownerID}], nil
}

func (r *fakeTradeRepo) TotalShares(_ context.Context, tokenID uint64) (float64, error) {
	var total float64
	for key, qty := range r.shares {
		if key[0] == tokenID {
			total += qty
		}
	}
	return total, nil
}

type fakePersonalityRepo struct {
	byTree map[uint64]*model.TreePersonality
	nextID uint64
}

func newFakePersonalityRepo() *fakePersonalityRepo {
	return &fakePersonalityRepo{byTree: map[uint64]*model.TreePersonality{}, nextID: 1}
}

func (r *fakePersonalityRepo) Upsert(_ context.Context, p *model.TreePersonality) error {
	if existing, ok := r.byTree[p.TreeID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	cp := *p
	r.byTree[p.TreeID] = &cp
	return nil
}

func (r *fakePersonalityRepo) FindByTree(_ context.Context, treeID uint64) (*model.TreePersonality, error) {
	p, ok := r.byTree[treeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeChatRepo struct {
	messages []model.ChatMessage
	nextID   uint64
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1}
}

func (r *fakeChatRepo) AppendExchange(_ context.Context, userMsg, assistantMsg *model.ChatMessage) error {
	for _, m := range []*model.ChatMessage{userMsg, assistantMsg} {
		m.ID = r.nextID
		r.nextID++
		r.messages = append(r.messages, *m)
	}
	return nil
}

func (r *fakeChatRepo) ListByTree(_ context.Context, treeID uint64, limit int) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for i := len(r.messages) - 1; i >= 0; i-- { // newest first
		if r.messages[i].TreeID == treeID {
			out = append(out, r.messages[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// External dependency stubs.

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type stubSynthesizer struct {
	audio []byte
	err   error
	voice string
}

func (s *stubSynthesizer) Synthesize(_ context.Context, _, voiceID string) ([]byte, error) {
	s.voice = voiceID
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

type stubAudioStore struct {
	url string
	err error
}

func (s *stubAudioStore) Save(_ context.Context, name string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.url != "" {
		return s.url, nil
	}
	return "http://localhost:8080/static/audio/" + name, nil
}
