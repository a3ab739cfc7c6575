package catalog

import (
	"context"
	"errors"
)

var (
	ErrStayNotFound    = errors.New("catalog: stay not found")
	ErrInvalidAgeRange = errors.New("catalog: ageMin must not exceed ageMax")
	ErrInvalidDuration = errors.New("catalog: duration must be positive")
	ErrStayUnpublished = errors.New("catalog: stay is not published")
	ErrTitleRequired   = errors.New("catalog: title required")
)

type StayID string

// Stay is a bookable multi-day offering. It is read-only input for the
// pricing and booking core; the catalog collaborator owns it.
type Stay struct {
	ID           StayID
	Slug         string
	SourceURL    string
	Title        string
	Description  string
	Geography    string
	Period       string
	Themes       []string
	DurationDays int
	AgeMin       int
	AgeMax       int
	// PriceFrom is nil for "price on request" stays.
	PriceFrom   *int
	ImageCover  string
	BrochureURL string
	Published   bool
}

// Validate checks the invariants the pricing engine relies on.
func (s Stay) Validate() error {
	if s.Title == "" {
		return ErrTitleRequired
	}
	if s.AgeMin > s.AgeMax {
		return ErrInvalidAgeRange
	}
	if s.DurationDays <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Repository is the catalog lookup boundary. Implementations return sessions
// pre-filtered to future start dates and ordered ascending; de-duplication is
// the caller's concern.
type Repository interface {
	ByID(ctx context.Context, id StayID) (*Stay, []Session, error)
	BySlug(ctx context.Context, slug string) (*Stay, []Session, error)
	Search(ctx context.Context, params SearchParams) ([]*Stay, error)
	Save(ctx context.Context, stay *Stay, sessions []Session) error
}

// SearchParams filter the published catalog.
type SearchParams struct {
	Period        string
	Theme         string
	OnlyPublished bool
}
