package gacha

import (
	"math"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/xtding233/endfield-gacha/internal/token"
)

var (
	primaryCost = token.Token{Name: "Oroberyl", PerDraw: 500, PerTenDraw: 5000}
	weaponCost  = token.Token{Name: "Arsenal Ticket", PerDraw: 198, PerTenDraw: 1980}
)

// PullCost returns the price table of the banner.
func PullCost(kind BannerKind) token.Token {
	mustKind(kind)
	if kind == BannerWeapon {
		return weaponCost
	}
	return primaryCost
}

// ticketReward is the secondary currency earned per operator-banner draw.
func ticketReward(r Rarity) int64 {
	switch r {
	case Rarity6:
		return 2000
	case Rarity5:
		return 200
	case Rarity4:
		return 20
	}
	return 0
}

// Engine resolves pulls. It keeps no reference to any GlobalState between
// calls; callers must still serialize calls that share one state.
type Engine struct {
	catalog *Catalog
	rng     RandomSource
	now     func() time.Time
	newID   func() string
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRNG injects the random source, e.g. NewSeededRNG for reproducible runs.
func WithRNG(rng RandomSource) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock overrides the timestamp source of pull records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides the pull record id generator.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithLogger sets the logger pull batches are traced to. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine drawing from cat.
func NewEngine(cat *Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		rng:     DefaultRNG(),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID:   func() string { return ulid.Make().String() },
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = DefaultRNG()
	}
	return e
}

// Catalog returns the reward table the engine draws from.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// CanPull reports whether a count-pull on kind would run: the banner is not
// completed and the charged wallet covers the cost.
func CanPull(state *GlobalState, kind BannerKind, count int) bool {
	mustKind(kind)
	mustCount(count)
	if kind == BannerBeginner && state.Banners[kind].Completed {
		return false
	}
	return *state.balance(kind) >= int64(PullCost(kind).TokensForDraws(count))
}

// PerformPull runs count draws on kind and returns the records with the
// resulting state. The input state is never modified. When the banner is
// completed or the wallet is short, it returns an empty batch and state
// itself.
func (e *Engine) PerformPull(state *GlobalState, kind BannerKind, count int) ([]PullRecord, *GlobalState) {
	if !CanPull(state, kind, count) {
		return nil, state
	}
	cost := int64(PullCost(kind).TokensForDraws(count))

	next := state.Clone()
	banner := next.Banners[kind]
	results := make([]PullRecord, 0, count)
	for i := 0; i < count; i++ {
		rec := e.draw(&banner, kind, &next.Stats.PityHistory)

		next.Stats.TotalPulls++
		next.Stats.Counts.add(rec.Rarity)
		if kind != BannerWeapon {
			next.SecondaryTickets += ticketReward(rec.Rarity)
		}
		results = append(results, rec)
	}
	next.Banners[kind] = banner

	*next.balance(kind) -= cost
	if kind != BannerWeapon {
		next.Stats.CurrencySpent += cost
	}
	next.Stats.AveragePity = averagePity(next.Stats.PityHistory)
	next.History = prependHistory(next.History, results)

	e.log.Trace().
		Str("banner", string(kind)).
		Int("count", count).
		Int("pity", banner.PityCount).
		Msg("pull resolved")
	return results, next
}

// draw resolves one pull against b and applies its transitions.
func (e *Engine) draw(b *BannerState, kind BannerKind, pityHistory *[]int) PullRecord {
	forceFeatured := false
	if kind == BannerLimited {
		forceFeatured = b.advanceSpark()
	}

	rarity := ResolveRarity(kind, b.PityCount, b.LastRarity, e.rng)
	if forceFeatured && rarity != Rarity6 {
		rarity = Rarity6
	}

	item := SelectItem(e.catalog, rarity, kind, forceFeatured, b.GuaranteeCount, e.rng)
	b.advance(kind, rarity, item.Featured, forceFeatured, pityHistory)

	return PullRecord{
		ID:        e.newID(),
		Timestamp: e.now(),
		Banner:    kind,
		Rarity:    rarity,
		Name:      item.Name,
		Type:      RewardTypeFor(kind, rarity),
		Featured:  item.Featured,
		Image:     item.Image,
	}
}

// averagePity is the rounded mean of the recorded pity values, 0 if none.
func averagePity(history []int) int {
	if len(history) == 0 {
		return 0
	}
	return int(math.Round(float64(lo.Sum(history)) / float64(len(history))))
}

// prependHistory puts batch in front of history, latest draw first, and
// trims to HistoryCap.
func prependHistory(history, batch []PullRecord) []PullRecord {
	out := make([]PullRecord, 0, min(len(history)+len(batch), HistoryCap))
	for i := len(batch) - 1; i >= 0 && len(out) < HistoryCap; i-- {
		out = append(out, batch[i])
	}
	if room := HistoryCap - len(out); room > 0 {
		out = append(out, history[:min(room, len(history))]...)
	}
	return slices.Clip(out)
}
