package gacha

// SoftPity raises the 6★ chance once the pity counter passes StartAt.
// The probability at count c is Base + Increment*(c-StartAt), capped at 1.
// A zero Increment gives a flat band.
type SoftPity struct {
	StartAt   int
	Base      float64
	Increment float64
}

var (
	// operator banners: 0.8% at 65, +5% per draw after
	operatorSoftPity = SoftPity{StartAt: 65, Base: 0.008, Increment: 0.05}
	// weapon banner: flat 25% from 40 until hard pity
	weaponSoftPity = SoftPity{StartAt: 40, Base: 0.25}
)

// SoftPityFor returns the ramp used by the banner kind.
func SoftPityFor(kind BannerKind) SoftPity {
	mustKind(kind)
	if kind == BannerWeapon {
		return weaponSoftPity
	}
	return operatorSoftPity
}

// Active reports whether the ramp applies at count.
func (s SoftPity) Active(count int) bool {
	return count >= s.StartAt
}

// Prob is the 6★ probability at count, or 0 before StartAt.
func (s SoftPity) Prob(count int) float64 {
	if !s.Active(count) {
		return 0
	}
	p := s.Base + s.Increment*float64(count-s.StartAt)
	if p > 1 {
		p = 1
	}
	return p
}
