package gacha_test

import (
	"fmt"
	"time"

	"github.com/xtding233/endfield-gacha/internal/catalog"
	"github.com/xtding233/endfield-gacha/internal/gacha"
)

// constRNG returns the same value on every roll.
type constRNG float64

func (c constRNG) Float64() float64 { return float64(c) }

// seqRNG replays values in order, repeating the last one when exhausted.
type seqRNG struct {
	vals []float64
	i    int
}

func (s *seqRNG) Float64() float64 {
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v
}

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newEngine(rng gacha.RandomSource) *gacha.Engine {
	n := 0
	return gacha.NewEngine(catalog.Default(),
		gacha.WithRNG(rng),
		gacha.WithClock(func() time.Time { return fixedTime }),
		gacha.WithIDs(func() string {
			n++
			return fmt.Sprintf("pull-%d", n)
		}),
	)
}
