package gacha

import (
	"fmt"
	"strconv"
)

// Rarity is a star tier. The zero value means "none", used for a banner
// that has not been pulled yet.
type Rarity int

const (
	RarityNone Rarity = 0
	Rarity3    Rarity = 3
	Rarity4    Rarity = 4
	Rarity5    Rarity = 5
	Rarity6    Rarity = 6
)

// Rarities lists the drawable tiers from best to worst.
var Rarities = []Rarity{Rarity6, Rarity5, Rarity4, Rarity3}

func (r Rarity) Valid() bool { return r >= Rarity3 && r <= Rarity6 }

func (r Rarity) String() string {
	if r == RarityNone {
		return "none"
	}
	return strconv.Itoa(int(r)) + "★"
}

// Domain selects which catalog a banner draws from.
type Domain string

const (
	DomainOperator Domain = "operator"
	DomainWeapon   Domain = "weapon"
)

// RewardType classifies what a pull record hands out.
type RewardType string

const (
	RewardOperator RewardType = "operator"
	RewardWeapon   RewardType = "weapon"
	RewardItem     RewardType = "item"
)

// BannerKind names one of the independent reward pools.
type BannerKind string

const (
	BannerLimited  BannerKind = "limited"
	BannerStandard BannerKind = "standard"
	BannerBeginner BannerKind = "beginner"
	BannerWeapon   BannerKind = "weapon"
)

// BannerKinds lists every banner in display order.
var BannerKinds = []BannerKind{BannerLimited, BannerStandard, BannerBeginner, BannerWeapon}

func (k BannerKind) Valid() bool {
	switch k {
	case BannerLimited, BannerStandard, BannerBeginner, BannerWeapon:
		return true
	}
	return false
}

// Domain reports the catalog the banner draws from.
func (k BannerKind) Domain() Domain {
	if k == BannerWeapon {
		return DomainWeapon
	}
	return DomainOperator
}

// ParseBannerKind converts user input into a BannerKind.
func ParseBannerKind(s string) (BannerKind, error) {
	k := BannerKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown banner %q; must be one of limited, standard, beginner, weapon", s)
	}
	return k, nil
}
