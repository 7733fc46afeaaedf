package gacha

import "fmt"

// Featured override chances on 6★ draws.
const (
	limitedFeaturedProb = 0.5

	weaponFeaturedSoftAt   = 40
	weaponFeaturedSoftProb = 0.25
	weaponFeaturedHardAt   = 80
)

// SelectItem picks a concrete entry of the resolved rarity.
//
// The pick is uniform within the tier. On the limited banner a 6★ becomes
// the featured entry when forceFeatured is set or a 50% flip succeeds. On the
// weapon banner a 6★ becomes featured at guaranteeCount >= 80, or with 25%
// chance at >= 40. An empty tier yields a placeholder instead of failing.
func SelectItem(cat *Catalog, rarity Rarity, kind BannerKind, forceFeatured bool, guaranteeCount int, rng RandomSource) Entry {
	mustKind(kind)
	mustNonNegative("guarantee count", guaranteeCount)
	if rng == nil {
		rng = DefaultRNG()
	}

	pool := cat.Pool(kind.Domain())
	tier := pool.Tier(rarity)
	if len(tier) == 0 {
		return placeholder(rarity)
	}
	item := tier[pickIndex(rng, len(tier))]

	if rarity != Rarity6 {
		return item
	}

	makeFeatured := false
	switch kind {
	case BannerLimited:
		makeFeatured = forceFeatured || chance(limitedFeaturedProb, rng)
	case BannerWeapon:
		switch {
		case guaranteeCount >= weaponFeaturedHardAt:
			makeFeatured = true
		case guaranteeCount >= weaponFeaturedSoftAt:
			makeFeatured = chance(weaponFeaturedSoftProb, rng)
		}
	}
	if makeFeatured {
		if featured, ok := pool.Featured(rarity); ok {
			item = featured
		}
	}
	return item
}

func placeholder(rarity Rarity) Entry {
	return Entry{Name: fmt.Sprintf("Unknown %d★", int(rarity))}
}

// RewardTypeFor classifies a draw: operator banners always hand out
// operators, the weapon banner hands out items at 3★ and weapons otherwise.
func RewardTypeFor(kind BannerKind, rarity Rarity) RewardType {
	if kind != BannerWeapon {
		return RewardOperator
	}
	if rarity == Rarity3 {
		return RewardItem
	}
	return RewardWeapon
}
