package gacha

// Hard pity: once the counter of draws since the last 6★ reaches the
// threshold, the next draw is a guaranteed 6★.
const (
	HardPity         = 80
	BeginnerHardPity = 40
)

// HardPityThreshold returns the counter value at which a banner guarantees 6★.
func HardPityThreshold(kind BannerKind) int {
	mustKind(kind)
	if kind == BannerBeginner {
		return BeginnerHardPity
	}
	return HardPity
}

// hardPityHit reports whether the counter already guarantees top rarity.
func hardPityHit(kind BannerKind, count int) bool {
	return count >= HardPityThreshold(kind)
}
