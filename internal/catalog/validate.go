package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/xtding233/endfield-gacha/internal/gacha"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

var validate = validator.New()

// ValidateRaw checks semantic constraints of a RawCatalog: tier keys are
// 3..6, every entry has a name and a well-formed image URL, and each tier
// has at most one featured entry.
func ValidateRaw(cfg RawCatalog) error {
	var errs []string
	errs = append(errs, validatePool("operator", cfg.Operator)...)
	errs = append(errs, validatePool("weapon", cfg.Weapon)...)

	if len(errs) > 0 {
		return errors.Wrapf(ErrInvalidCatalog, "%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePool(domain string, tiers map[int][]RawEntry) []string {
	var errs []string
	stars := make([]int, 0, len(tiers))
	for star := range tiers {
		stars = append(stars, star)
	}
	sort.Ints(stars)

	for _, star := range stars {
		if !gacha.Rarity(star).Valid() {
			errs = append(errs, fmt.Sprintf("%s.%d: rarity must be one of 3, 4, 5, 6", domain, star))
			continue
		}
		featured := 0
		for i, e := range tiers[star] {
			if err := validate.Struct(e); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					for _, fe := range verrs {
						errs = append(errs, fmt.Sprintf("%s.%d[%d].%s failed %q", domain, star, i, strings.ToLower(fe.Field()), fe.Tag()))
					}
				} else {
					errs = append(errs, fmt.Sprintf("%s.%d[%d]: %v", domain, star, i, err))
				}
			}
			if e.Featured {
				featured++
			}
		}
		if featured > 1 {
			errs = append(errs, fmt.Sprintf("%s.%d: at most one featured entry, got %d", domain, star, featured))
		}
	}
	return errs
}
