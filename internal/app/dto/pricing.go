package dto

import domainpricing "gedsejours/internal/domain/pricing"

type BreakdownDTO struct {
	BaseSession    *int `json:"base_session"`
	ExtraTransport int  `json:"extra_transport"`
	ExtraOption    int  `json:"extra_option"`
	Total          *int `json:"total"`
	MinPrice       *int `json:"min_price"`
	HasSelection   bool `json:"has_selection"`
}

// Quote pairs the promo-free live breakdown with the final amount the
// submission would carry, promo included. FinalTotal is null when the session
// price is unknown.
type Quote struct {
	Breakdown  BreakdownDTO `json:"breakdown"`
	FinalTotal *int         `json:"final_total"`
}

func MapBreakdown(b domainpricing.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		BaseSession:    b.BaseSession,
		ExtraTransport: b.ExtraTransport,
		ExtraOption:    b.ExtraOption,
		Total:          b.Total,
		MinPrice:       b.MinPrice,
		HasSelection:   b.HasSelection,
	}
}
