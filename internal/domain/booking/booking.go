package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gedsejours/internal/domain/catalog"
	"gedsejours/internal/domain/pricing"
	"gedsejours/internal/domain/shared/events"
)

var (
	ErrRequestNotFound   = errors.New("booking: request not found")
	ErrContactRequired   = errors.New("booking: all contact fields are required")
	ErrMinorRequired     = errors.New("booking: minor first name and birth date required")
	ErrConsentRequired   = errors.New("booking: consent must be given")
	ErrSessionRequired   = errors.New("booking: session reference required")
	ErrInvalidTransition = errors.New("booking: invalid status transition")
)

type RequestID string

type Status string

const (
	StatusReceived  Status = "RECEIVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Requester is the case-worker submitting the request. All four fields are
// mandatory.
type Requester struct {
	Organisation string
	Name         string
	Email        string
	Phone        string
}

func (r Requester) Complete() bool {
	return strings.TrimSpace(r.Organisation) != "" &&
		strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Email) != "" &&
		strings.TrimSpace(r.Phone) != ""
}

// Minor carries the minimum data collected about the child: a first name and
// an exact birth date. No last name is stored.
type Minor struct {
	FirstName string
	BirthDate string // YYYY-MM-DD
}

// Request is the terminal artifact of the booking workflow, created only on
// successful submission and owned thereafter by the persistence collaborator.
type Request struct {
	ID            RequestID
	StayID        catalog.StayID
	SessionID     catalog.SessionID
	DepartureCity string
	Option        pricing.OptionType
	Requester     Requester
	Minor         Minor
	Consent       bool
	QuotedTotal   *int
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
	events.EventRecorder
}

// CreateParams collect everything the workflow accumulated.
type CreateParams struct {
	ID            RequestID
	StayID        catalog.StayID
	SessionID     catalog.SessionID
	DepartureCity string
	Option        pricing.OptionType
	Requester     Requester
	Minor         Minor
	Consent       bool
	QuotedTotal   *int
	CreatedAt     time.Time
}

// NewRequest validates the accumulated selections and builds the aggregate.
func NewRequest(params CreateParams) (*Request, error) {
	if params.SessionID == "" {
		return nil, ErrSessionRequired
	}
	if !params.Requester.Complete() {
		return nil, ErrContactRequired
	}
	if strings.TrimSpace(params.Minor.FirstName) == "" || strings.TrimSpace(params.Minor.BirthDate) == "" {
		return nil, ErrMinorRequired
	}
	if !params.Consent {
		return nil, ErrConsentRequired
	}
	now := params.CreatedAt.UTC()
	r := &Request{
		ID:            params.ID,
		StayID:        params.StayID,
		SessionID:     params.SessionID,
		DepartureCity: params.DepartureCity,
		Option:        params.Option,
		Requester:     params.Requester,
		Minor:         params.Minor,
		Consent:       true,
		QuotedTotal:   params.QuotedTotal,
		Status:        StatusReceived,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.Record(RequestSubmitted{
		RequestID: r.ID,
		StayID:    r.StayID,
		SessionID: r.SessionID,
		City:      r.DepartureCity,
		Option:    string(r.Option),
		At:        now,
	})
	return r, nil
}

// Confirm marks the request accepted by the organisation.
func (r *Request) Confirm(now time.Time) error {
	if r.Status != StatusReceived {
		return ErrInvalidTransition
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(RequestConfirmed{RequestID: r.ID, At: r.UpdatedAt})
	return nil
}

// Cancel withdraws a received or confirmed request.
func (r *Request) Cancel(reason string, now time.Time) error {
	switch r.Status {
	case StatusReceived, StatusConfirmed:
	default:
		return ErrInvalidTransition
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.Record(RequestCancelled{RequestID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Repository persists booking requests.
type Repository interface {
	ByID(ctx context.Context, id RequestID) (*Request, error)
	Save(ctx context.Context, request *Request) error
	ListByStay(ctx context.Context, stayID catalog.StayID) ([]*Request, error)
}
