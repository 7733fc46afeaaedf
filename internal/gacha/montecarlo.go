package gacha

import (
	"errors"
	"math"
	"sort"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Draws until the first 6★.
	GoalFirstHit TrialGoal = "first_hit"
	// Draws until the first featured 6★.
	GoalFirstFeatured TrialGoal = "first_featured"
	// Given a fixed budget N, count the 6★ draws.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// maxTrialDraws stops a trial whose goal is unreachable, e.g. a featured
// 6★ on a banner whose catalog has none.
const maxTrialDraws = 100000

var ErrSimParams = errors.New("invalid simulation parameters")

// SimParams describes one simulation run. Every trial starts from a fresh
// banner state and ignores currency.
type SimParams struct {
	Banner BannerKind
	Goal   TrialGoal
	Trials int
	// Budget is the draw count of one GoalFixedBudget trial.
	Budget int
}

// SimStats summarizes simulation results.
type SimStats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	Max    int
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) SimStats {
	n := len(xs)
	if n == 0 {
		return SimStats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return SimStats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Max:     cp[n-1],
		Samples: xs,
	}
}

// simulateOne returns the metric of one trial on a fresh banner.
func (e *Engine) simulateOne(p SimParams) int {
	var (
		banner  BannerState
		history []int
	)
	switch p.Goal {
	case GoalFirstHit, GoalFirstFeatured:
		for draws := 1; draws <= maxTrialDraws; draws++ {
			rec := e.draw(&banner, p.Banner, &history)
			if rec.Rarity != Rarity6 {
				continue
			}
			if p.Goal == GoalFirstHit || rec.Featured {
				return draws
			}
		}
		return maxTrialDraws

	case GoalFixedBudget:
		hits := 0
		for i := 0; i < p.Budget; i++ {
			if p.Banner == BannerBeginner && banner.Completed {
				break
			}
			if e.draw(&banner, p.Banner, &history).Rarity == Rarity6 {
				hits++
			}
		}
		return hits
	}
	return 0
}

// RunMonteCarlo repeats trials with the engine's random source and returns
// summary stats.
func (e *Engine) RunMonteCarlo(p SimParams) (SimStats, error) {
	if !p.Banner.Valid() {
		return SimStats{}, ErrSimParams
	}
	switch p.Goal {
	case GoalFirstHit, GoalFirstFeatured:
	case GoalFixedBudget:
		if p.Budget <= 0 {
			return SimStats{}, ErrSimParams
		}
	default:
		return SimStats{}, ErrSimParams
	}
	if p.Trials <= 0 {
		return SimStats{}, nil
	}
	samples := make([]int, p.Trials)
	for i := range samples {
		samples[i] = e.simulateOne(p)
	}
	return calcStats(samples), nil
}
