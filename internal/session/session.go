// Package session serializes access to one persisted GlobalState.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/endfield-gacha/internal/gacha"
	"github.com/xtding233/endfield-gacha/internal/storage"
)

var (
	ErrNothingPulled     = errors.New("nothing pulled")
	ErrBannerCompleted   = errors.Wrap(ErrNothingPulled, "banner already completed")
	ErrInsufficientFunds = errors.Wrap(ErrNothingPulled, "insufficient currency")
)

// Session owns one GlobalState. Calls are serialized so that pity counters
// advance in call order, and the state is saved after every change.
type Session struct {
	mu     sync.Mutex
	engine *gacha.Engine
	store  *storage.Store
	state  *gacha.GlobalState
}

// Open loads the saved state from store.
func Open(ctx context.Context, engine *gacha.Engine, store *storage.Store) (*Session, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{engine: engine, store: store, state: state}, nil
}

// State returns a copy of the current state.
func (s *Session) State() *gacha.GlobalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Pull performs a single or ten-pull on kind. An empty batch is reported as
// ErrBannerCompleted or ErrInsufficientFunds, and nothing is saved.
func (s *Session) Pull(ctx context.Context, kind gacha.BannerKind, count int) ([]gacha.PullRecord, error) {
	if !kind.Valid() {
		return nil, errors.Errorf("unknown banner %q", kind)
	}
	if count != 1 && count != 10 {
		return nil, errors.Errorf("pull count must be 1 or 10, got %d", count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results, next := s.engine.PerformPull(s.state, kind, count)
	if len(results) == 0 {
		if kind == gacha.BannerBeginner && s.state.Banners[kind].Completed {
			return nil, ErrBannerCompleted
		}
		return nil, ErrInsufficientFunds
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	s.state = next

	l := log.Ctx(ctx).Debug().Str("banner", string(kind)).Int("count", count)
	for _, r := range results {
		if r.Rarity == gacha.Rarity6 {
			l = l.Str("six_star", r.Name)
			break
		}
	}
	l.Int("pity", next.Banners[kind].PityCount).Msg("pull saved")
	return results, nil
}

// Grant adds primary currency and saves.
func (s *Session) Grant(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return errors.Errorf("grant amount must be positive, got %d", amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := gacha.GrantCurrency(s.state, amount)
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Reset clears the saved state and starts over from the initial state.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	next := gacha.InitialState()
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.state = next
	log.Ctx(ctx).Info().Msg("session reset")
	return nil
}
