package gacha

// Entry is one obtainable reward.
type Entry struct {
	Name     string `json:"name"`
	Featured bool   `json:"featured,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Pool maps each tier to its ordered entries. A missing or empty tier is
// legal and yields a placeholder at selection time.
type Pool map[Rarity][]Entry

// Tier returns the entries of r, or nil.
func (p Pool) Tier(r Rarity) []Entry {
	if p == nil {
		return nil
	}
	return p[r]
}

// Featured returns the rate-up entry of tier r, if any.
func (p Pool) Featured(r Rarity) (Entry, bool) {
	for _, e := range p.Tier(r) {
		if e.Featured {
			return e, true
		}
	}
	return Entry{}, false
}

// Catalog is the full reward table, one pool per domain.
type Catalog struct {
	Operators Pool
	Weapons   Pool
}

// Pool returns the pool for the domain.
func (c *Catalog) Pool(d Domain) Pool {
	if c == nil {
		return nil
	}
	if d == DomainWeapon {
		return c.Weapons
	}
	return c.Operators
}
