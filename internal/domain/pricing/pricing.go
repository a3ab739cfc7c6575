package pricing

import "strings"

// SansTransport is the synthetic departure entry that never carries a
// transport supplement.
const SansTransport = "Sans transport"

// Config is the GED tariff rule table. It is built once at process start and
// injected read-only into every Calculator; tests substitute alternate
// tariffs.
type Config struct {
	// DurationSurcharge maps exact stay durations (days) to a fixed
	// surcharge in whole euros.
	DurationSurcharge map[int]int
	// ProrateDurations are durations priced by scaling the reference tier.
	ProrateDurations []int
	// ProrateReferenceDays is the tier used for proration.
	ProrateReferenceDays int
	// SurchargeCities is the fixed set of departure cities carrying the flat
	// transport supplement. Matching is case-insensitive and exact.
	SurchargeCities []string
	// CitySupplement is the flat supplement in euros, identical for every
	// surcharge city.
	CitySupplement int
	// PromoRatePercent is the promotional discount applied on the final
	// subtotal, in whole percent.
	PromoRatePercent int
	// OptionPrices maps educational options to their fixed price in euros.
	OptionPrices map[OptionType]int
}

// DefaultConfig returns the current GED tariff: +180/7j, +310/14j, +450/21j,
// proration for 6/8/12/13 days against the 14-day tier, ten surcharge cities
// at a flat +12, promo 5%.
func DefaultConfig() Config {
	return Config{
		DurationSurcharge: map[int]int{
			7:  180,
			14: 310,
			21: 450,
		},
		ProrateDurations:     []int{6, 8, 12, 13},
		ProrateReferenceDays: 14,
		SurchargeCities: []string{
			"paris", "lyon", "rennes", "toulouse", "valence",
			"grenoble", "marseille", "strasbourg", "lille", "bordeaux",
		},
		CitySupplement:   12,
		PromoRatePercent: 5,
		OptionPrices: map[OptionType]int{
			OptionZen:    49,
			OptionUltime: 79,
		},
	}
}

// Calculator applies the GED pricing rules. The zero value is unusable;
// construct it with NewCalculator.
type Calculator struct {
	cfg Config
}

// NewCalculator binds a calculator to an immutable rule table.
func NewCalculator(cfg Config) Calculator {
	return Calculator{cfg: cfg}
}

// DurationSurcharge returns the fixed surcharge for tabulated durations, a
// prorated amount for durations in the prorate set, and 0 for anything else.
// An unmapped duration is a policy gap, not an error.
//
// Proration scales the reference tier linearly and rounds half-up using
// integer arithmetic: round(refSurcharge / refDays * days).
func (c Calculator) DurationSurcharge(days int) int {
	if s, ok := c.cfg.DurationSurcharge[days]; ok {
		return s
	}
	for _, d := range c.cfg.ProrateDurations {
		if d != days {
			continue
		}
		ref := c.cfg.ProrateReferenceDays
		refSurcharge, ok := c.cfg.DurationSurcharge[ref]
		if !ok || ref <= 0 {
			return 0
		}
		return roundHalfUp(refSurcharge*days, ref)
	}
	return 0
}

// IsSurchargeCity reports whether the city belongs to the fixed surcharge
// set. "Sans transport" is never a surcharge city.
func (c Calculator) IsSurchargeCity(city string) bool {
	city = strings.TrimSpace(city)
	if city == "" || strings.EqualFold(city, SansTransport) {
		return false
	}
	for _, s := range c.cfg.SurchargeCities {
		if strings.EqualFold(s, city) {
			return true
		}
	}
	return false
}

// CitySupplement returns the flat transport supplement applied to every
// surcharge city.
func (c Calculator) CitySupplement() int {
	return c.cfg.CitySupplement
}

// Compute produces the final GED price for a session:
//
//	price = base + durationSurcharge + citySupplement, then optional promo.
//
// The promo discount rounds half-up on the running subtotal. Unknown
// durations and cities contribute zero (fail open to base price).
func (c Calculator) Compute(basePrice, durationDays int, departureCity string, applyPromo bool) int {
	price := basePrice
	price += c.DurationSurcharge(durationDays)
	if c.IsSurchargeCity(departureCity) {
		price += c.cfg.CitySupplement
	}
	if applyPromo {
		price = roundHalfUp(price*(100-c.cfg.PromoRatePercent), 100)
	}
	return price
}

// roundHalfUp divides n by d rounding .5 away from zero. Both arguments must
// be non-negative, which holds for every tariff input.
func roundHalfUp(n, d int) int {
	if d == 0 {
		return 0
	}
	return (2*n + d) / (2 * d)
}
