package gacha

import (
	"maps"
	"slices"
	"time"
)

const (
	// StartingCurrency is the primary currency grant of a fresh state.
	StartingCurrency int64 = 6767676767
	// HistoryCap bounds GlobalState.History.
	HistoryCap = 1000
)

// PullRecord is the immutable result of one draw.
type PullRecord struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Banner    BannerKind `json:"bannerType"`
	Rarity    Rarity     `json:"rarity"`
	Name      string     `json:"name"`
	Type      RewardType `json:"type"`
	Featured  bool       `json:"isFeatured,omitempty"`
	Image     string     `json:"imageUrl,omitempty"`
}

// RarityCounts tallies draws per tier.
type RarityCounts struct {
	Six   int `json:"sixStarCount"`
	Five  int `json:"fiveStarCount"`
	Four  int `json:"fourStarCount"`
	Three int `json:"threeStarCount"`
}

func (c *RarityCounts) add(r Rarity) {
	switch r {
	case Rarity6:
		c.Six++
	case Rarity5:
		c.Five++
	case Rarity4:
		c.Four++
	default:
		c.Three++
	}
}

// Of returns the count for r.
func (c RarityCounts) Of(r Rarity) int {
	switch r {
	case Rarity6:
		return c.Six
	case Rarity5:
		return c.Five
	case Rarity4:
		return c.Four
	case Rarity3:
		return c.Three
	}
	return 0
}

// Stats aggregates every pull across banners.
type Stats struct {
	TotalPulls  int          `json:"totalPulls"`
	Counts      RarityCounts `json:"counts"`
	PityHistory []int        `json:"pityHistory"`
	AveragePity int          `json:"avgPity"`
	// CurrencySpent counts primary currency debited by pulls only.
	CurrencySpent int64 `json:"totalCurrencySpent"`
}

// GlobalState is everything a session persists.
type GlobalState struct {
	PrimaryCurrency  int64                      `json:"primaryCurrency"`
	SecondaryTickets int64                      `json:"secondaryTickets"`
	Banners          map[BannerKind]BannerState `json:"banners"`
	// History is most-recent-first and never longer than HistoryCap.
	History []PullRecord `json:"pullHistory"`
	Stats   Stats        `json:"stats"`
}

// InitialState returns the zeroed state with the starting grant.
func InitialState() *GlobalState {
	s := &GlobalState{
		PrimaryCurrency: StartingCurrency,
		Banners:         make(map[BannerKind]BannerState, len(BannerKinds)),
		History:         []PullRecord{},
		Stats: Stats{
			PityHistory: []int{},
		},
	}
	for _, k := range BannerKinds {
		s.Banners[k] = BannerState{}
	}
	return s
}

// Clone returns a deep copy; no slice or map is shared with s.
func (s *GlobalState) Clone() *GlobalState {
	out := *s
	out.Banners = maps.Clone(s.Banners)
	if out.Banners == nil {
		out.Banners = make(map[BannerKind]BannerState, len(BannerKinds))
	}
	out.History = slices.Clone(s.History)
	out.Stats.PityHistory = slices.Clone(s.Stats.PityHistory)
	return &out
}

// Normalize fills banners missing from older saved states.
func (s *GlobalState) Normalize() {
	if s.Banners == nil {
		s.Banners = make(map[BannerKind]BannerState, len(BannerKinds))
	}
	for _, k := range BannerKinds {
		if _, ok := s.Banners[k]; !ok {
			s.Banners[k] = BannerState{}
		}
	}
}

// Banner returns the state of one banner.
func (s *GlobalState) Banner(kind BannerKind) BannerState {
	mustKind(kind)
	return s.Banners[kind]
}

// balance points at the wallet the banner charges.
func (s *GlobalState) balance(kind BannerKind) *int64 {
	if kind == BannerWeapon {
		return &s.SecondaryTickets
	}
	return &s.PrimaryCurrency
}

// GrantCurrency returns a copy of s with amount primary currency added.
// Grants never count as pull spending. Non-positive amounts are ignored.
func GrantCurrency(s *GlobalState, amount int64) *GlobalState {
	if amount <= 0 {
		return s
	}
	next := s.Clone()
	next.PrimaryCurrency += amount
	return next
}
