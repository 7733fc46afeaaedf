package gacha

// rateTable holds cumulative thresholds for the base roll; anything at or
// above five is a 4★.
type rateTable struct {
	six  float64
	five float64
}

var (
	operatorRates = rateTable{six: 0.008, five: 0.088} // 0.8% / 8% / 91.2%
	weaponRates   = rateTable{six: 0.04, five: 0.19}   // 4% / 15% / 81%
)

func ratesFor(kind BannerKind) rateTable {
	if kind == BannerWeapon {
		return weaponRates
	}
	return operatorRates
}

// ResolveRarity decides the tier of the next draw. First match wins:
// hard pity, soft pity, the 5★ floor every ten draws, then the base roll.
// 3★ is never produced here.
func ResolveRarity(kind BannerKind, pity int, last Rarity, rng RandomSource) Rarity {
	mustKind(kind)
	mustNonNegative("pity count", pity)
	if rng == nil {
		rng = DefaultRNG()
	}

	if hardPityHit(kind, pity) {
		return Rarity6
	}

	if soft := SoftPityFor(kind); soft.Active(pity) && chance(soft.Prob(pity), rng) {
		return Rarity6
	}

	if fiveStarFloor(pity, last) {
		return Rarity5
	}

	rates := ratesFor(kind)
	roll := rng.Float64()
	switch {
	case roll < rates.six:
		return Rarity6
	case roll < rates.five:
		return Rarity5
	default:
		return Rarity4
	}
}

// fiveStarFloor: every tenth draw since the last 6★ is at least 5★ unless
// the previous draw already was.
func fiveStarFloor(pity int, last Rarity) bool {
	return pity > 0 && pity%10 == 0 && last != Rarity5 && last != Rarity6
}
