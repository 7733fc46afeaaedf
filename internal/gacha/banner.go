package gacha

// SparkThreshold is the limited-banner draw count that guarantees the
// featured 6★ once.
const SparkThreshold = 120

// BannerState holds the per-banner counters. Only the engine mutates it,
// through the transition methods below.
type BannerState struct {
	// PityCount counts draws since the last 6★.
	PityCount int `json:"pityCount"`
	// LastRarity is RarityNone before the first draw.
	LastRarity Rarity `json:"lastRarity"`
	// GuaranteeCount drives the weapon banner's featured escalation.
	GuaranteeCount int `json:"guaranteeCount"`
	TotalPulls     int `json:"totalPulls"`
	// Completed is terminal: the beginner banner accepts no draws after its 6★.
	Completed bool `json:"isCompleted,omitempty"`
	// SparkCount and SparkUsed track the limited banner's one-time spark.
	SparkCount int  `json:"limitedSparkCount,omitempty"`
	SparkUsed  bool `json:"limitedSparkUsed,omitempty"`
}

// advanceSpark runs before the limited banner resolves a draw. It reports
// whether this draw is the spark, which forces a featured 6★.
func (b *BannerState) advanceSpark() bool {
	if b.SparkUsed {
		return false
	}
	b.SparkCount++
	return b.SparkCount >= SparkThreshold
}

// advance applies the post-draw transitions in order: counters, last
// rarity, pity reset, weapon guarantee cycle, beginner completion, spark
// consumption. The pity value at a 6★ is appended to pityHistory. The spark
// is consumed by a featured 6★ or by the spark draw itself, so SparkCount
// never passes SparkThreshold even when the catalog has no featured entry.
func (b *BannerState) advance(kind BannerKind, rarity Rarity, featured, spark bool, pityHistory *[]int) {
	b.PityCount++
	b.TotalPulls++
	b.LastRarity = rarity

	if rarity == Rarity6 {
		*pityHistory = append(*pityHistory, b.PityCount)
		b.PityCount = 0
	}

	switch kind {
	case BannerWeapon:
		if rarity == Rarity6 {
			b.GuaranteeCount = 0
		} else {
			b.GuaranteeCount++
		}
	case BannerBeginner:
		if rarity == Rarity6 {
			b.Completed = true
		}
	case BannerLimited:
		if rarity == Rarity6 && (featured || spark) && !b.SparkUsed {
			b.SparkUsed = true
			b.SparkCount = SparkThreshold
		}
	}
}
