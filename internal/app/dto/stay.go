package dto

import (
	"time"

	domaincatalog "gedsejours/internal/domain/catalog"
	domaindepartures "gedsejours/internal/domain/departures"
	domainpricing "gedsejours/internal/domain/pricing"
)

type SessionDTO struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	SeatsLeft int       `json:"seats_left"`
	Full      bool      `json:"full"`
	BasePrice *int      `json:"base_price,omitempty"`
}

type CityDTO struct {
	Name     string `json:"name"`
	ExtraEur int    `json:"extra_eur"`
}

type StaySummary struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Geography    string   `json:"geography,omitempty"`
	Period       string   `json:"period,omitempty"`
	Themes       []string `json:"themes,omitempty"`
	DurationDays int      `json:"duration_days"`
	AgeMin       int      `json:"age_min"`
	AgeMax       int      `json:"age_max"`
	// PriceFrom is null for price-on-request stays.
	PriceFrom  *int   `json:"price_from"`
	ImageCover string `json:"image_cover,omitempty"`
}

type StayCatalog struct {
	Items []StaySummary `json:"items"`
}

type StayDetail struct {
	StaySummary
	Description string       `json:"description,omitempty"`
	BrochureURL string       `json:"brochure_url,omitempty"`
	Sessions    []SessionDTO `json:"sessions"`
	Cities      []CityDTO    `json:"cities"`
	MinPrice    *int         `json:"min_price"`
}

func MapStaySummary(stay *domaincatalog.Stay) StaySummary {
	return StaySummary{
		ID:           string(stay.ID),
		Slug:         stay.Slug,
		Title:        stay.Title,
		Geography:    stay.Geography,
		Period:       stay.Period,
		Themes:       append([]string(nil), stay.Themes...),
		DurationDays: stay.DurationDays,
		AgeMin:       stay.AgeMin,
		AgeMax:       stay.AgeMax,
		PriceFrom:    stay.PriceFrom,
		ImageCover:   stay.ImageCover,
	}
}

func MapStayCatalog(stays []*domaincatalog.Stay) StayCatalog {
	items := make([]StaySummary, 0, len(stays))
	for _, s := range stays {
		items = append(items, MapStaySummary(s))
	}
	return StayCatalog{Items: items}
}

// MapStayDetail assembles the full stay page payload. Sessions are expected
// already de-duplicated; prices may be nil per session.
func MapStayDetail(
	stay *domaincatalog.Stay,
	sessions []domaincatalog.Session,
	cities []domaindepartures.City,
	prices map[domaincatalog.SessionID]domainpricing.SessionPriceEntry,
	minPrice *int,
) StayDetail {
	sessionDTOs := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		item := SessionDTO{
			ID:        string(s.ID),
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
			SeatsLeft: s.SeatsLeft,
			Full:      s.Full(),
		}
		if entry, ok := prices[s.ID]; ok && entry.BasePrice != nil {
			v := *entry.BasePrice
			item.BasePrice = &v
		}
		sessionDTOs = append(sessionDTOs, item)
	}
	cityDTOs := make([]CityDTO, 0, len(cities))
	for _, c := range cities {
		cityDTOs = append(cityDTOs, CityDTO{Name: c.Name, ExtraEur: c.ExtraEur})
	}
	return StayDetail{
		StaySummary: MapStaySummary(stay),
		Description: stay.Description,
		BrochureURL: stay.BrochureURL,
		Sessions:    sessionDTOs,
		Cities:      cityDTOs,
		MinPrice:    minPrice,
	}
}
