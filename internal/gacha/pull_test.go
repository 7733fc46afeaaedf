package gacha_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/endfield-gacha/internal/catalog"
	"github.com/xtding233/endfield-gacha/internal/gacha"
)

func TestPerformPullStandardTenPull(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(1))
	state := gacha.InitialState()
	require.Equal(t, int64(6767676767), state.PrimaryCurrency)

	results, next := e.PerformPull(state, gacha.BannerStandard, 10)
	require.Len(t, results, 10)
	assert.Equal(t, 10, next.Banners[gacha.BannerStandard].TotalPulls)
	assert.Equal(t, int64(6767676767-5000), next.PrimaryCurrency)
	assert.Equal(t, 10, next.Stats.TotalPulls)
	assert.Equal(t, int64(5000), next.Stats.CurrencySpent)

	for i, r := range results {
		assert.Equal(t, gacha.BannerStandard, r.Banner)
		assert.Equal(t, gacha.RewardOperator, r.Type)
		assert.Equal(t, fixedTime, r.Timestamp)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, results[9-i], next.History[i])
	}
}

func TestPerformPullDoesNotMutateInput(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(2))
	state := gacha.InitialState()
	before := state.Clone()

	_, next := e.PerformPull(state, gacha.BannerLimited, 10)
	assert.Equal(t, before, state)
	assert.NotSame(t, state, next)
	assert.Empty(t, state.History)
}

func TestPerformPullCurrency(t *testing.T) {
	t.Run("weapon ten pull", func(t *testing.T) {
		e := newEngine(gacha.NewSeededRNG(3))
		state := gacha.InitialState()
		state.SecondaryTickets = 2500

		results, next := e.PerformPull(state, gacha.BannerWeapon, 10)
		require.Len(t, results, 10)
		assert.Equal(t, int64(2500-1980), next.SecondaryTickets)
		assert.Equal(t, state.PrimaryCurrency, next.PrimaryCurrency)
		assert.Zero(t, next.Stats.CurrencySpent)
		for _, r := range results {
			assert.Equal(t, gacha.BannerWeapon, r.Banner)
			assert.Equal(t, gacha.RewardWeapon, r.Type)
		}
	})

	t.Run("operator single pull earns tickets", func(t *testing.T) {
		e := newEngine(gacha.NewSeededRNG(4))
		state := gacha.InitialState()

		results, next := e.PerformPull(state, gacha.BannerLimited, 1)
		require.Len(t, results, 1)
		assert.Equal(t, state.PrimaryCurrency-500, next.PrimaryCurrency)
		assert.Equal(t, state.Stats.CurrencySpent+500, next.Stats.CurrencySpent)

		want := map[gacha.Rarity]int64{gacha.Rarity6: 2000, gacha.Rarity5: 200, gacha.Rarity4: 20}[results[0].Rarity]
		assert.Equal(t, want, next.SecondaryTickets)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		e := newEngine(gacha.NewSeededRNG(5))
		state := gacha.InitialState()
		state.PrimaryCurrency = 4999
		state.SecondaryTickets = 1979

		results, next := e.PerformPull(state, gacha.BannerStandard, 10)
		assert.Empty(t, results)
		assert.Same(t, state, next)

		results, next = e.PerformPull(state, gacha.BannerWeapon, 10)
		assert.Empty(t, results)
		assert.Same(t, state, next)

		results, _ = e.PerformPull(state, gacha.BannerStandard, 1)
		assert.Len(t, results, 1)
	})
}

func TestPerformPullBeginnerIsTerminal(t *testing.T) {
	e := newEngine(constRNG(0.99))
	state := gacha.InitialState()

	for i := 0; i < 4; i++ {
		results, next := e.PerformPull(state, gacha.BannerBeginner, 10)
		require.Len(t, results, 10)
		state = next
	}
	assert.False(t, state.Banners[gacha.BannerBeginner].Completed)
	assert.Equal(t, 40, state.Banners[gacha.BannerBeginner].PityCount)

	// draw 41 hits hard pity; the rest of the batch still resolves
	results, state := e.PerformPull(state, gacha.BannerBeginner, 10)
	require.Len(t, results, 10)
	assert.Equal(t, gacha.Rarity6, results[0].Rarity)
	assert.True(t, state.Banners[gacha.BannerBeginner].Completed)
	assert.Equal(t, []int{41}, state.Stats.PityHistory)

	before := state.Clone()
	results, next := e.PerformPull(state, gacha.BannerBeginner, 1)
	assert.Empty(t, results)
	assert.Same(t, state, next)
	assert.Equal(t, before, state)
	assert.False(t, gacha.CanPull(state, gacha.BannerBeginner, 10))
}

func TestPerformPullSparkWithLosingFlips(t *testing.T) {
	e := newEngine(constRNG(0.99))
	state := gacha.InitialState()

	var all []gacha.PullRecord
	for i := 0; i < 12; i++ {
		results, next := e.PerformPull(state, gacha.BannerLimited, 10)
		require.Len(t, results, 10)
		all = append(all, results...)
		state = next
	}

	// draw 81 is a hard-pity 6★ that loses the 50/50
	assert.Equal(t, gacha.Rarity6, all[80].Rarity)
	assert.False(t, all[80].Featured)

	spark := all[119]
	assert.Equal(t, gacha.Rarity6, spark.Rarity)
	assert.True(t, spark.Featured)
	assert.Equal(t, "Laevatain", spark.Name)

	b := state.Banners[gacha.BannerLimited]
	assert.True(t, b.SparkUsed)
	assert.Equal(t, gacha.SparkThreshold, b.SparkCount)
	assert.Equal(t, []int{81, 39}, state.Stats.PityHistory)
	assert.Equal(t, 60, state.Stats.AveragePity)

	// the spark never re-arms
	for i := 0; i < 13; i++ {
		_, state = e.PerformPull(state, gacha.BannerLimited, 10)
	}
	assert.Equal(t, gacha.SparkThreshold, state.Banners[gacha.BannerLimited].SparkCount)
}

func TestPerformPullSparkAnySource(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		e := newEngine(gacha.NewSeededRNG(seed))
		state := gacha.InitialState()
		var all []gacha.PullRecord
		for i := 0; i < 12; i++ {
			results, next := e.PerformPull(state, gacha.BannerLimited, 10)
			all = append(all, results...)
			state = next
		}
		require.Len(t, all, 120)
		assert.True(t, state.Banners[gacha.BannerLimited].SparkUsed, "seed %d", seed)

		earlier := false
		for _, r := range all[:119] {
			if r.Rarity == gacha.Rarity6 && r.Featured {
				earlier = true
				break
			}
		}
		if !earlier {
			assert.Equal(t, gacha.Rarity6, all[119].Rarity, "seed %d", seed)
			assert.True(t, all[119].Featured, "seed %d", seed)
		}
	}
}

func TestPerformPullSparkWithoutFeaturedEntry(t *testing.T) {
	tiers := map[string][]gacha.Entry{
		"no featured": {{Name: "A"}, {Name: "B"}},
		"empty tier":  nil,
	}
	for name, six := range tiers {
		t.Run(name, func(t *testing.T) {
			cat := &gacha.Catalog{Operators: gacha.Pool{
				gacha.Rarity6: six,
				gacha.Rarity5: {{Name: "C"}},
				gacha.Rarity4: {{Name: "D"}},
			}}
			e := gacha.NewEngine(cat, gacha.WithRNG(gacha.NewSeededRNG(7)))
			state := gacha.InitialState()

			var all []gacha.PullRecord
			for i := 0; i < 15; i++ {
				results, next := e.PerformPull(state, gacha.BannerLimited, 10)
				require.Len(t, results, 10)
				assert.LessOrEqual(t, next.Banners[gacha.BannerLimited].SparkCount, gacha.SparkThreshold)
				all = append(all, results...)
				state = next
			}

			assert.Equal(t, gacha.Rarity6, all[119].Rarity)
			assert.False(t, all[119].Featured)
			b := state.Banners[gacha.BannerLimited]
			assert.True(t, b.SparkUsed)
			assert.Equal(t, gacha.SparkThreshold, b.SparkCount)

			sixes := 0
			for _, r := range all[120:] {
				if r.Rarity == gacha.Rarity6 {
					sixes++
				}
			}
			assert.Less(t, sixes, len(all[120:]), "draws after the spark are still forced")
		})
	}
}

func TestPerformPullTracesToEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	e := gacha.NewEngine(catalog.Default(), gacha.WithRNG(gacha.NewSeededRNG(3)),
		gacha.WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)))

	_, _ = e.PerformPull(gacha.InitialState(), gacha.BannerStandard, 1)
	assert.Contains(t, buf.String(), `"message":"pull resolved"`)
	assert.Contains(t, buf.String(), `"banner":"standard"`)
}

func TestPerformPullWeaponGuaranteeCycle(t *testing.T) {
	e := newEngine(constRNG(0.99))
	state := gacha.InitialState()
	state.SecondaryTickets = 9 * 1980

	var all []gacha.PullRecord
	for i := 0; i < 9; i++ {
		results, next := e.PerformPull(state, gacha.BannerWeapon, 10)
		require.Len(t, results, 10)
		all = append(all, results...)
		state = next
	}
	assert.Equal(t, gacha.Rarity6, all[80].Rarity)
	assert.Equal(t, "Forgeborn Scathe", all[80].Name)

	b := state.Banners[gacha.BannerWeapon]
	assert.Equal(t, 9, b.GuaranteeCount)
	assert.Equal(t, 9, b.PityCount)
	assert.Zero(t, state.SecondaryTickets)
}

// checkInvariants replays a banner's draws and checks pity and floor rules.
func checkInvariants(t *testing.T, kind gacha.BannerKind, draws []gacha.PullRecord) {
	t.Helper()
	// Hard pity is checked against the count before the draw increments it,
	// so the guaranteed 6★ is draw threshold+1 and a streak of threshold
	// misses is allowed.
	threshold := gacha.HardPityThreshold(kind)
	pity, last, streak := 0, gacha.RarityNone, 0
	for i, r := range draws {
		if pity > 0 && pity%10 == 0 && last != gacha.Rarity5 && last != gacha.Rarity6 {
			assert.GreaterOrEqual(t, int(r.Rarity), int(gacha.Rarity5), "draw %d under the 5★ floor", i)
		}
		if r.Rarity == gacha.Rarity6 {
			pity, streak = 0, 0
		} else {
			pity++
			streak++
		}
		assert.LessOrEqual(t, streak, threshold, "draw %d exceeds hard pity", i)
		last = r.Rarity
	}
}

func TestPerformPullInvariants(t *testing.T) {
	for _, kind := range []gacha.BannerKind{gacha.BannerStandard, gacha.BannerLimited, gacha.BannerWeapon} {
		t.Run(string(kind), func(t *testing.T) {
			e := newEngine(gacha.NewSeededRNG(11))
			state := gacha.InitialState()
			state.SecondaryTickets = 400 * 1980

			var draws []gacha.PullRecord
			for i := 0; i < 400; i++ {
				results, next := e.PerformPull(state, kind, 1+9*(i%2))
				require.NotEmpty(t, results)
				if results[len(results)-1].Rarity == gacha.Rarity6 {
					assert.Zero(t, next.Banners[kind].PityCount)
				}
				draws = append(draws, results...)
				state = next
			}
			checkInvariants(t, kind, draws)

			c := state.Stats.Counts
			assert.Equal(t, state.Stats.TotalPulls, c.Six+c.Five+c.Four+c.Three)
			assert.Equal(t, c.Six, len(state.Stats.PityHistory))
			assert.Zero(t, c.Three)

			sum := 0
			for _, p := range state.Stats.PityHistory {
				sum += p
			}
			if n := len(state.Stats.PityHistory); n > 0 {
				assert.Equal(t, int(math.Round(float64(sum)/float64(n))), state.Stats.AveragePity)
			}
		})
	}
}

func TestPerformPullHistoryCap(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(9))
	state := gacha.InitialState()

	var last []gacha.PullRecord
	for i := 0; i < 110; i++ {
		kind := gacha.BannerStandard
		if i%2 == 1 {
			kind = gacha.BannerLimited
		}
		last, state = e.PerformPull(state, kind, 10)
		require.Len(t, last, 10)
	}
	assert.Len(t, state.History, gacha.HistoryCap)
	assert.Equal(t, last[9], state.History[0])
	assert.Equal(t, last[0], state.History[9])
	assert.Equal(t, 1100, state.Stats.TotalPulls)
}

func TestPerformPullContractViolations(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(1))
	state := gacha.InitialState()
	assert.Panics(t, func() { e.PerformPull(state, gacha.BannerStandard, 5) })
	assert.Panics(t, func() { e.PerformPull(state, "event", 1) })
}
