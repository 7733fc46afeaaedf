// Package storage persists the gacha GlobalState in a key-value backend.
package storage

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/endfield-gacha/internal/gacha"
)

// DefaultKey is the key the state is saved under.
const DefaultKey = "endfield-gacha-state"

var ErrNotFound = errors.New("key not found")

// Backend is a minimal byte-oriented key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store saves and restores one GlobalState under a fixed key.
type Store struct {
	backend Backend
	key     string
}

// New wraps backend. An empty key means DefaultKey.
func New(backend Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key}
}

// Load returns the saved state merged over gacha.InitialState, or the
// initial state when nothing is saved. Undecodable data is logged and
// replaced by the initial state.
func (s *Store) Load(ctx context.Context) (*gacha.GlobalState, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return gacha.InitialState(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", s.key)
	}
	state, err := Decode(data)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("discarding unreadable saved state")
		return gacha.InitialState(), nil
	}
	return state, nil
}

// Save serializes the whole state.
func (s *Store) Save(ctx context.Context, state *gacha.GlobalState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return errors.Wrapf(err, "save %s", s.key)
	}
	return nil
}

// Clear removes the saved state. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Wrapf(err, "clear %s", s.key)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Encode serializes a state as JSON.
func Encode(state *gacha.GlobalState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "encode state")
	}
	return data, nil
}

// Decode reads a saved state over the initial state, so fields missing from
// older data keep their defaults.
func Decode(data []byte) (*gacha.GlobalState, error) {
	state := gacha.InitialState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, errors.Wrap(err, "decode state")
	}
	state.Normalize()
	return state, nil
}
