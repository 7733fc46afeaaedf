package token

// Token defines how many units are required per draw

type Token struct {
	Name       string // e.g. "Oroberyl", "Arsenal Ticket"
	PerDraw    int    // tokens per single draw, e.g. 500, 198
	PerTenDraw int    // optional; if 0 -> equal to 10 * PerDraw, a special case of PerNDraw
	PerNDraw   int    // optional; if 0 -> equal to N * PerDraw
	N          int    // optional; if 0, not adoptive to this token
}

// TokensForDraws returns how many tokens are required for n draws
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 && t.N <= 1 {
		tens := n / 10
		rem := n % 10
		return tens*t.PerTenDraw + rem*t.PerDraw
	}
	if t.PerNDraw > 0 && t.N > 1 && n >= t.N {
		ns := n / t.N
		rem := n % t.N
		return ns*t.PerNDraw + rem*t.PerDraw
	}

	return n * t.PerDraw
}

// DrawsFor returns how many draws the given number of tokens pays for,
// buying bundles first.
func (t Token) DrawsFor(tokens int) int {
	if tokens <= 0 || t.PerDraw <= 0 {
		return 0
	}
	draws := 0
	switch {
	case t.PerTenDraw > 0 && t.N <= 1:
		draws = tokens / t.PerTenDraw * 10
		tokens %= t.PerTenDraw
	case t.PerNDraw > 0 && t.N > 1:
		draws = tokens / t.PerNDraw * t.N
		tokens %= t.PerNDraw
	}
	return draws + tokens/t.PerDraw
}
