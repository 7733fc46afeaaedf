package catalog

import (
	_ "embed"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/endfield-gacha/internal/gacha"
)

//go:embed default.yaml
var defaultYAML []byte

// DefaultRaw returns the embedded catalog.
func DefaultRaw() RawCatalog {
	raw, err := Parse(defaultYAML)
	if err != nil {
		panic(errors.Wrap(err, "embedded catalog"))
	}
	return raw
}

// Default returns the embedded catalog ready for the engine.
func Default() *gacha.Catalog {
	return Build(DefaultRaw())
}

// Parse decodes catalog YAML.
func Parse(b []byte) (RawCatalog, error) {
	var cfg RawCatalog
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawCatalog{}, errors.Wrap(err, "decode catalog yaml")
	}
	return cfg, nil
}

// Loader reads the embedded default catalog and merges an optional override
// file over it.
type Loader struct {
	overridePath string

	mu    sync.RWMutex
	cache *gacha.Catalog
}

// NewLoader creates a catalog loader. An empty overridePath means the
// embedded catalog only.
func NewLoader(overridePath string) *Loader {
	return &Loader{overridePath: overridePath}
}

// Load returns the merged and validated catalog, cached after first success.
func (l *Loader) Load() (*gacha.Catalog, error) {
	l.mu.RLock()
	if l.cache != nil {
		defer l.mu.RUnlock()
		return l.cache, nil
	}
	l.mu.RUnlock()

	merged := DefaultRaw()
	if l.overridePath != "" {
		override, err := readYAML(l.overridePath)
		if err != nil {
			return nil, errors.Wrapf(err, "read catalog override %s", l.overridePath)
		}
		merged = mergeRaw(merged, override)
		log.Debug().Str("path", l.overridePath).Str("version", merged.Version).Msg("catalog override applied")
	}
	if err := ValidateRaw(merged); err != nil {
		return nil, err
	}

	cat := Build(merged)
	l.mu.Lock()
	l.cache = cat
	l.mu.Unlock()
	return cat, nil
}

// Invalidate clears the cache so the next Load re-reads the override.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = nil
}

// readYAML loads a YAML file into RawCatalog.
func readYAML(path string) (RawCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return RawCatalog{}, err
	}
	return Parse(b)
}

// mergeRaw performs a deep merge: 'b' overrides 'a' per domain and tier. A
// tier present in 'b' replaces the whole tier, even when empty.
func mergeRaw(a, b RawCatalog) RawCatalog {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	out.Operator = mergeTiers(a.Operator, b.Operator)
	out.Weapon = mergeTiers(a.Weapon, b.Weapon)
	return out
}

func mergeTiers(a, b map[int][]RawEntry) map[int][]RawEntry {
	out := make(map[int][]RawEntry, len(a)+len(b))
	for star, entries := range a {
		out[star] = append([]RawEntry(nil), entries...)
	}
	for star, entries := range b {
		out[star] = append([]RawEntry(nil), entries...)
	}
	return out
}
