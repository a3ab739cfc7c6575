package pricing

// Breakdown is the partial running total shown while a caller is still
// making selections. It is derived, never persisted, and deliberately
// promo-free: the promotional discount is a finalization-time step applied by
// Compute, not a live-preview step.
type Breakdown struct {
	BaseSession    *int `json:"base_session"`
	ExtraTransport int  `json:"extra_transport"`
	ExtraOption    int  `json:"extra_option"`
	Total          *int `json:"total"`
	MinPrice       *int `json:"min_price"`
	HasSelection   bool `json:"has_selection"`
}

// BreakdownParams carries the caller's current selections. Absent inputs
// degrade to nils and zeros rather than errors.
type BreakdownParams struct {
	// SessionPrice is the base price of the selected session, nil when no
	// session is selected or the stay is priced on request.
	SessionPrice *int
	// CityExtra is the transport supplement of the selected departure city.
	CityExtra int
	// Option is the selected educational add-on, OptionNone when absent.
	Option OptionType
	// MinSessionPrice is the lowest advertised price across sessions, passed
	// through unchanged.
	MinSessionPrice *int
}

// ComposeBreakdown derives the live price preview. Total is nil iff no
// session price is known; otherwise total = session + transport + option.
func (c Calculator) ComposeBreakdown(p BreakdownParams) Breakdown {
	extraOption := c.OptionPrice(p.Option)

	b := Breakdown{
		BaseSession:    p.SessionPrice,
		ExtraTransport: p.CityExtra,
		ExtraOption:    extraOption,
		MinPrice:       p.MinSessionPrice,
		HasSelection:   p.SessionPrice != nil || p.CityExtra > 0 || p.Option != OptionNone,
	}
	if p.SessionPrice != nil {
		total := *p.SessionPrice + p.CityExtra + extraOption
		b.Total = &total
	}
	return b
}

// SessionPriceEntry is one raw per-session price row from the enrichment
// collaborator. PromoPrice, when present, takes precedence over BasePrice.
type SessionPriceEntry struct {
	BasePrice  *int
	PromoPrice *int
}

// MinSessionPrice derives the minimum advertised price over all entries with
// a usable amount; nil when no entry qualifies.
func MinSessionPrice(entries []SessionPriceEntry) *int {
	var min *int
	for _, e := range entries {
		price := e.PromoPrice
		if price == nil {
			price = e.BasePrice
		}
		if price == nil || *price < 0 {
			continue
		}
		if min == nil || *price < *min {
			v := *price
			min = &v
		}
	}
	return min
}
