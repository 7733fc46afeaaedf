package gacha

import (
	"fmt"
	"math"
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// mustKind panics on banner kinds outside the closed enumeration.
func mustKind(kind BannerKind) {
	if !kind.Valid() {
		panic(fmt.Sprintf("gacha: unknown banner kind %q", string(kind)))
	}
}

// mustCount panics on batch sizes other than a single or a ten-pull.
func mustCount(count int) {
	if count != 1 && count != 10 {
		panic(fmt.Sprintf("gacha: pull count must be 1 or 10, got %d", count))
	}
}

func mustNonNegative(name string, v int) {
	if v < 0 {
		panic(fmt.Sprintf("gacha: %s must be >= 0, got %d", name, v))
	}
}
