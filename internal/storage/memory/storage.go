package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Values
// are copied on the way in and out.
type Storage struct {
	mu   sync.RWMutex
	opts storage.Options

	players map[model.PlayerID]*playerRecord
	scores  map[model.ScoreID]*scoreRecord
	// scoresByPlayer indexes score IDs by owner
	scoresByPlayer map[model.PlayerID]map[model.ScoreID]struct{}

	// seq orders records by insertion
	seq uint64
}

type playerRecord struct {
	player *model.Player
	seq    uint64
}

type scoreRecord struct {
	entry *model.ScoreEntry
	seq   uint64
}

// New creates a new in-memory storage instance
func New(opts ...storage.Option) *Storage {
	return &Storage{
		opts:           storage.ApplyOptions(opts...),
		players:        make(map[model.PlayerID]*playerRecord),
		scores:         make(map[model.ScoreID]*scoreRecord),
		scoresByPlayer: make(map[model.PlayerID]map[model.ScoreID]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Close is a no-op for the in-memory store
func (s *Storage) Close() error {
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := player.Clone()
	if p.ID == "" {
		p.ID = s.opts.IDs.PlayerID()
	}
	if _, exists := s.players[p.ID]; exists {
		return nil, model.ErrDuplicateID
	}
	now := s.opts.Clock.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.seq++
	s.players[p.ID] = &playerRecord{player: p, seq: s.seq}
	return p.Clone(), nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rec.player.Clone(), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*playerRecord, 0, len(s.players))
	for _, rec := range s.players {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	players := make([]*model.Player, 0, len(recs))
	for _, rec := range recs {
		players = append(players, rec.player.Clone())
	}
	return players, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.players[player.ID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := player.Clone()
	p.CreatedAt = rec.player.CreatedAt
	p.UpdatedAt = s.opts.Clock.Now()
	rec.player = p
	return p.Clone(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// DeletePlayerCascade removes the player and its scores under a single lock
func (s *Storage) DeletePlayerCascade(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteScoresLocked(id)
	delete(s.players, id)
	return nil
}

// Score operations

func (s *Storage) GetScore(ctx context.Context, id model.ScoreID) (*model.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.scores[id]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	return rec.entry.Clone(), nil
}

func (s *Storage) ListScoresByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.scoresByPlayer[playerID]
	recs := make([]*scoreRecord, 0, len(ids))
	for id := range ids {
		recs = append(recs, s.scores[id])
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	entries := make([]*model.ScoreEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, rec.entry.Clone())
	}
	return entries, nil
}

func (s *Storage) SaveScore(ctx context.Context, entry *model.ScoreEntry) (*model.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry.Clone()
	if e.ID == "" {
		e.ID = s.opts.IDs.ScoreID()
	}
	if _, exists := s.scores[e.ID]; exists {
		return nil, model.ErrDuplicateID
	}
	now := s.opts.Clock.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.seq++
	s.scores[e.ID] = &scoreRecord{entry: e, seq: s.seq}
	idx, ok := s.scoresByPlayer[e.PlayerID]
	if !ok {
		idx = make(map[model.ScoreID]struct{})
		s.scoresByPlayer[e.PlayerID] = idx
	}
	idx[e.ID] = struct{}{}
	return e.Clone(), nil
}

func (s *Storage) UpdateScore(ctx context.Context, entry *model.ScoreEntry) (*model.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.scores[entry.ID]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	e := entry.Clone()
	e.PlayerID = rec.entry.PlayerID
	e.CreatedAt = rec.entry.CreatedAt
	e.UpdatedAt = s.opts.Clock.Now()
	rec.entry = e
	return e.Clone(), nil
}

func (s *Storage) DeleteScoresByPlayer(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteScoresLocked(playerID)
	return nil
}

func (s *Storage) deleteScoresLocked(playerID model.PlayerID) {
	for id := range s.scoresByPlayer[playerID] {
		delete(s.scores, id)
	}
	delete(s.scoresByPlayer, playerID)
}
