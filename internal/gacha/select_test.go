package gacha_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xtding233/endfield-gacha/internal/catalog"
	"github.com/xtding233/endfield-gacha/internal/gacha"
)

func TestSelectItemLimitedFeatured(t *testing.T) {
	cat := catalog.Default()

	// spark forces the featured entry without a coin flip
	got := gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerLimited, true, 0, constRNG(0.99))
	assert.Equal(t, "Laevatain", got.Name)
	assert.True(t, got.Featured)

	// pick lands on the last entry, then the flip wins
	got = gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerLimited, false, 0, &seqRNG{vals: []float64{0.99, 0.4}})
	assert.Equal(t, "Laevatain", got.Name)

	// flip loses: uniform pick stands
	got = gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerLimited, false, 0, constRNG(0.99))
	assert.Equal(t, "Pogranichnik", got.Name)
	assert.False(t, got.Featured)
}

func TestSelectItemStandardIsUniform(t *testing.T) {
	cat := catalog.Default()
	got := gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerStandard, false, 0, constRNG(0.3))
	assert.Equal(t, "Gilberta", got.Name) // index 2 of 8

	seen := map[string]int{}
	rng := gacha.NewSeededRNG(3)
	for i := 0; i < 4000; i++ {
		seen[gacha.SelectItem(cat, gacha.Rarity5, gacha.BannerStandard, false, 0, rng).Name]++
	}
	assert.Len(t, seen, 9)
}

func TestSelectItemWeaponGuarantee(t *testing.T) {
	cat := catalog.Default()

	got := gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerWeapon, false, 80, constRNG(0.99))
	assert.Equal(t, "Forgeborn Scathe", got.Name)

	got = gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerWeapon, false, 40, &seqRNG{vals: []float64{0.99, 0.2}})
	assert.Equal(t, "Forgeborn Scathe", got.Name)

	got = gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerWeapon, false, 40, constRNG(0.99))
	assert.Equal(t, "Former Finery", got.Name)

	got = gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerWeapon, false, 39, &seqRNG{vals: []float64{0.99, 0.0}})
	assert.Equal(t, "Former Finery", got.Name)

	// forceFeatured only applies to the limited banner
	got = gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerWeapon, true, 0, constRNG(0.99))
	assert.False(t, got.Featured)
}

func TestSelectItemPlaceholder(t *testing.T) {
	cat := catalog.Default()
	got := gacha.SelectItem(cat, gacha.Rarity3, gacha.BannerStandard, false, 0, constRNG(0.5))
	assert.Equal(t, gacha.Entry{Name: "Unknown 3★"}, got)

	got = gacha.SelectItem(&gacha.Catalog{}, gacha.Rarity6, gacha.BannerLimited, true, 0, constRNG(0.5))
	assert.Equal(t, "Unknown 6★", got.Name)
	assert.False(t, got.Featured)

	got = gacha.SelectItem(nil, gacha.Rarity5, gacha.BannerWeapon, false, 0, constRNG(0.5))
	assert.Equal(t, "Unknown 5★", got.Name)
}

func TestSelectItemWithoutFeaturedEntry(t *testing.T) {
	cat := &gacha.Catalog{Operators: gacha.Pool{gacha.Rarity6: {{Name: "Solo"}}}}
	got := gacha.SelectItem(cat, gacha.Rarity6, gacha.BannerLimited, true, 0, constRNG(0.1))
	assert.Equal(t, "Solo", got.Name)
}

func TestRewardTypeFor(t *testing.T) {
	assert.Equal(t, gacha.RewardOperator, gacha.RewardTypeFor(gacha.BannerLimited, gacha.Rarity3))
	assert.Equal(t, gacha.RewardOperator, gacha.RewardTypeFor(gacha.BannerStandard, gacha.Rarity6))
	assert.Equal(t, gacha.RewardItem, gacha.RewardTypeFor(gacha.BannerWeapon, gacha.Rarity3))
	assert.Equal(t, gacha.RewardWeapon, gacha.RewardTypeFor(gacha.BannerWeapon, gacha.Rarity4))
	assert.Equal(t, gacha.RewardWeapon, gacha.RewardTypeFor(gacha.BannerWeapon, gacha.Rarity6))
}
