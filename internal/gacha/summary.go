package gacha

import "math"

// BannerSummary is a read-only view of one banner for status displays.
type BannerSummary struct {
	Kind         BannerKind
	HardPity     int
	PityCount    int
	PityPercent  float64
	TotalPulls   int
	LastRarity   Rarity
	SparkCount   int
	SparkPercent float64
	SparkUsed    bool
	Completed    bool
	Cost1        int
	Cost10       int
	Currency     string
	Balance      int64
	CanPull1     bool
	CanPull10    bool
}

// Summarize reports progress and affordability of kind in state.
func Summarize(state *GlobalState, kind BannerKind) BannerSummary {
	mustKind(kind)
	b := state.Banners[kind]
	cost := PullCost(kind)
	hard := HardPityThreshold(kind)

	s := BannerSummary{
		Kind:        kind,
		HardPity:    hard,
		PityCount:   b.PityCount,
		PityPercent: float64(b.PityCount) / float64(hard) * 100,
		TotalPulls:  b.TotalPulls,
		LastRarity:  b.LastRarity,
		Completed:   b.Completed,
		Cost1:       cost.TokensForDraws(1),
		Cost10:      cost.TokensForDraws(10),
		Currency:    cost.Name,
		Balance:     *state.balance(kind),
		CanPull1:    CanPull(state, kind, 1),
		CanPull10:   CanPull(state, kind, 10),
	}
	if kind == BannerLimited {
		s.SparkCount = b.SparkCount
		s.SparkUsed = b.SparkUsed
		if b.SparkUsed {
			s.SparkPercent = 100
		} else {
			s.SparkPercent = math.Min(float64(b.SparkCount)/SparkThreshold*100, 100)
		}
	}
	return s
}
