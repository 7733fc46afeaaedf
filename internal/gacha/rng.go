package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the uniform generator every roll is drawn from.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// crypto random: default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Float64()
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (tests, Monte Carlo, fixed-seed sessions)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// pickIndex maps one uniform draw onto [0, n).
func pickIndex(rng RandomSource, n int) int {
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
