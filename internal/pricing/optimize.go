package pricing

import (
	"math"
	"sort"

	"github.com/xtding233/endfield-gacha/internal/token"
)

// variant is a pack as bought in a plan: the first-time x2 offer and the
// regular offer of one SKU are separate variants.
type variant struct {
	id, name   string
	tok, price int
}

func expand(cat Catalog, first FirstTimeState) []variant {
	var out []variant
	for _, p := range cat.Packs {
		if p.FirstTimeX2 && first[p.ID] {
			out = append(out, variant{p.ID + "#x2", p.Name + " (x2)", p.Tokens*2 + p.BonusTokens, p.PriceCents})
		}
		out = append(out, variant{p.ID, p.Name, p.Tokens + p.BonusTokens, p.PriceCents})
	}
	return out
}

func buildPlan(cat Catalog, vs []variant, counts map[int]int) Plan {
	plan := Plan{Currency: cat.Currency}
	idx := make([]int, 0, len(counts))
	for i := range counts {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		v, qty := vs[i], counts[i]
		sub := v.price * qty
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     v.id,
			Name:       v.name,
			Qty:        qty,
			UnitPrice:  v.price,
			UnitTokens: v.tok,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalTokens += v.tok * qty
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, cat.TaxRate)
	return plan
}

// MinCostAtLeastTokens finds the minimum-cost combination to obtain at least targetTokens.
// Each pack can appear as an x2 variant (if first-time available) and a normal variant.
// Unbounded quantities allowed.
func MinCostAtLeastTokens(cat Catalog, targetTokens int, first FirstTimeState) Plan {
	vs := expand(cat, first)
	if targetTokens <= 0 || len(vs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	maxTok := 0
	for _, v := range vs {
		maxTok = max(maxTok, v.tok)
	}
	if maxTok == 0 {
		return Plan{Currency: cat.Currency}
	}

	// DP over tokens up to target + maxTok to permit overshoot with minimal cost.
	limit := targetTokens + maxTok
	const inf = math.MaxInt
	dp := make([]int, limit+1)   // min cost to reach exactly t tokens
	pick := make([]int, limit+1) // chosen variant index
	prev := make([]int, limit+1) // previous t
	for t := range dp {
		dp[t], pick[t], prev[t] = inf, -1, -1
	}
	dp[0] = 0
	for t := 0; t <= limit; t++ {
		if dp[t] == inf {
			continue
		}
		for i, v := range vs {
			if v.tok <= 0 {
				continue
			}
			nt := min(t+v.tok, limit)
			if cost := dp[t] + v.price; cost < dp[nt] {
				dp[nt], pick[nt], prev[nt] = cost, i, t
			}
		}
	}

	best := targetTokens
	for t := targetTokens; t <= limit; t++ {
		if dp[t] < dp[best] {
			best = t
		}
	}
	if dp[best] == inf {
		return Plan{Currency: cat.Currency}
	}

	counts := map[int]int{}
	for t := best; t > 0 && pick[t] != -1; t = prev[t] {
		counts[pick[t]]++
	}
	return buildPlan(cat, vs, counts)
}

// MaxTokensUnderBudget computes the maximum tokens purchasable with budgetCents
// (unbounded knapsack on the pre-tax budget).
func MaxTokensUnderBudget(cat Catalog, budgetCents int, first FirstTimeState) Plan {
	vs := expand(cat, first)
	if budgetCents <= 0 || len(vs) == 0 {
		return Plan{Currency: cat.Currency}
	}

	effBudget := budgetCents
	if cat.TaxRate > 0 {
		effBudget = int(math.Floor(float64(budgetCents) / (1 + cat.TaxRate)))
	}

	// dp[c] = max tokens with cost exactly c
	dp := make([]int, effBudget+1)
	choose := make([]int, effBudget+1)
	for c := range choose {
		choose[c] = -1
	}
	for c := 0; c <= effBudget; c++ {
		if c > 0 && choose[c] == -1 {
			continue
		}
		for i, v := range vs {
			if v.price <= 0 {
				continue
			}
			if nc := c + v.price; nc <= effBudget && dp[c]+v.tok > dp[nc] {
				dp[nc] = dp[c] + v.tok
				choose[nc] = i
			}
		}
	}
	bestC := 0
	for c := 0; c <= effBudget; c++ {
		if dp[c] > dp[bestC] {
			bestC = c
		}
	}

	counts := map[int]int{}
	for c := bestC; c > 0 && choose[c] != -1; c -= vs[choose[c]].price {
		counts[choose[c]]++
	}
	return buildPlan(cat, vs, counts)
}

// PlanForPulls is the cheapest plan that funds pulls draws priced by cost.
func PlanForPulls(cat Catalog, cost token.Token, pulls int, first FirstTimeState) Plan {
	return MinCostAtLeastTokens(cat, cost.TokensForDraws(pulls), first)
}

// PullsUnderBudget reports how many draws priced by cost budgetCents buys.
func PullsUnderBudget(cat Catalog, cost token.Token, budgetCents int, first FirstTimeState) (int, Plan) {
	plan := MaxTokensUnderBudget(cat, budgetCents, first)
	return cost.DrawsFor(plan.TotalTokens), plan
}
