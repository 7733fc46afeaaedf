package catalog

import "github.com/xtding233/endfield-gacha/internal/gacha"

// RawCatalog is the YAML schema of a catalog file. Tiers are keyed by star
// count (3..6).
type RawCatalog struct {
	Version  string             `yaml:"version"`
	Operator map[int][]RawEntry `yaml:"operator,omitempty"`
	Weapon   map[int][]RawEntry `yaml:"weapon,omitempty"`
	Notes    string             `yaml:"notes,omitempty"`
}

type RawEntry struct {
	Name     string `yaml:"name" validate:"required"`
	Featured bool   `yaml:"featured,omitempty"`
	Image    string `yaml:"image,omitempty" validate:"omitempty,url"`
}

// Build converts a validated RawCatalog into the engine's catalog.
func Build(raw RawCatalog) *gacha.Catalog {
	return &gacha.Catalog{
		Operators: buildPool(raw.Operator),
		Weapons:   buildPool(raw.Weapon),
	}
}

func buildPool(tiers map[int][]RawEntry) gacha.Pool {
	pool := make(gacha.Pool, len(tiers))
	for star, entries := range tiers {
		out := make([]gacha.Entry, len(entries))
		for i, e := range entries {
			out[i] = gacha.Entry{Name: e.Name, Featured: e.Featured, Image: e.Image}
		}
		pool[gacha.Rarity(star)] = out
	}
	return pool
}
