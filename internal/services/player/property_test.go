package player

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/mcoot/golfhandicap/internal/cache"
	cachememory "github.com/mcoot/golfhandicap/internal/cache/memory"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
	"github.com/mcoot/golfhandicap/internal/storage/memory"
	"github.com/mcoot/golfhandicap/internal/testutil"
)

type opKind int

const (
	opAdd opKind = iota
	opUpdate
	opClear
	opDelete
	opCreate
	opRead
	numOpKinds
)

type op struct {
	Kind    opKind
	Player  int
	Score   int
	Strokes int
	Par     int
	Slope   int
}

func (o op) String() string {
	return fmt.Sprintf("{%d p%d s%d %d/%d/%d}", o.Kind, o.Player, o.Score, o.Strokes, o.Par, o.Slope)
}

func genOp() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, int(numOpKinds)-1),
		gen.IntRange(0, 3),
		gen.IntRange(0, 20),
		gen.IntRange(60, 120),
		gen.IntRange(68, 73),
		gen.IntRange(0, 170),
	).Map(func(v []interface{}) op {
		return op{
			Kind:    opKind(v[0].(int)),
			Player:  v[1].(int),
			Score:   v[2].(int),
			Strokes: v[3].(int),
			Par:     v[4].(int),
			Slope:   v[5].(int),
		}
	})
}

// consistencyHarness drives a service and checks the handicap invariant
type consistencyHarness struct {
	ctx     context.Context
	store   *memory.Storage
	cache   *cachememory.Cache
	service *Service
	calc    *handicap.Service
	players []model.PlayerID
	deleted map[model.PlayerID]bool
}

func newHarness() (*consistencyHarness, error) {
	h := &consistencyHarness{
		ctx:     context.Background(),
		store:   memory.New(),
		cache:   cachememory.New(),
		calc:    handicap.New(),
		deleted: make(map[model.PlayerID]bool),
	}
	h.service = New(h.store, h.cache, fastConfig(), testutil.NopLogger())
	for i := 0; i < 2; i++ {
		p, err := h.service.CreatePlayer(h.ctx, fmt.Sprintf("player %d", i))
		if err != nil {
			return nil, err
		}
		h.players = append(h.players, p.ID)
	}
	return h, nil
}

func (h *consistencyHarness) apply(o op) error {
	id := h.players[o.Player%len(h.players)]
	entry := &model.ScoreEntry{Strokes: o.Strokes, Par: o.Par, Slope: o.Slope}

	var err error
	switch o.Kind {
	case opAdd:
		_, err = h.service.AddScore(h.ctx, id, entry)
	case opUpdate:
		scores, listErr := h.store.ListScoresByPlayer(h.ctx, id)
		if listErr != nil {
			return listErr
		}
		if len(scores) == 0 {
			return nil
		}
		_, err = h.service.UpdateScore(h.ctx, id, scores[o.Score%len(scores)].ID, entry)
	case opClear:
		_, err = h.service.ClearScores(h.ctx, id)
	case opDelete:
		err = h.service.DeletePlayer(h.ctx, id)
		if err == nil {
			h.deleted[id] = true
		}
	case opCreate:
		var p *model.Player
		p, err = h.service.CreatePlayer(h.ctx, "newcomer")
		if err == nil {
			h.players = append(h.players, p.ID)
		}
	case opRead:
		_, err = h.service.GetPlayer(h.ctx, id)
	}

	// operations on deleted players are expected to fail
	if errors.Is(err, model.ErrNotFound) && h.deleted[id] {
		return nil
	}
	return err
}

func (h *consistencyHarness) consistent() error {
	players, err := h.store.ListPlayers(h.ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		scores, err := h.store.ListScoresByPlayer(h.ctx, p.ID)
		if err != nil {
			return err
		}
		want, ok := h.calc.ComputeIndex(handicap.RoundsFromEntries(scores))
		if !ok {
			want = 0
		}
		if p.Handicap != want {
			return fmt.Errorf("player %s stores %v, scores give %v", p.ID, p.Handicap, want)
		}
		if cached, err := h.cache.Get(h.ctx, p.ID); err == nil && cached.Handicap != p.Handicap {
			return fmt.Errorf("player %s cached %v, stored %v", p.ID, cached.Handicap, p.Handicap)
		}
	}
	for id := range h.deleted {
		if _, err := h.cache.Get(h.ctx, id); !errors.Is(err, cache.ErrMiss) {
			return fmt.Errorf("deleted player %s still cached", id)
		}
		scores, err := h.store.ListScoresByPlayer(h.ctx, id)
		if err != nil {
			return err
		}
		if len(scores) != 0 {
			return fmt.Errorf("deleted player %s kept %d scores", id, len(scores))
		}
	}
	return nil
}

func TestHandicapInvariantProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("stored and cached handicap always match the score set", prop.ForAll(
		func(ops []op) (bool, error) {
			h, err := newHarness()
			if err != nil {
				return false, err
			}
			for i, o := range ops {
				if err := h.apply(o); err != nil {
					return false, fmt.Errorf("op %d %v: %w", i, o, err)
				}
				if err := h.consistent(); err != nil {
					return false, fmt.Errorf("after op %d %v: %w", i, o, err)
				}
			}
			return true, nil
		},
		gen.SliceOf(genOp()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
