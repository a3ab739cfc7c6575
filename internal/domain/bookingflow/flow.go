// Package bookingflow is the multi-step booking workflow expressed as a pure
// state machine: a current state tag plus the selections accumulated so far,
// with transition methods that validate and either advance or return the
// violation. It performs no IO; the submission call lives in the application
// layer, which reports its outcome back through Complete or RejectSubmission.
package bookingflow

import (
	"errors"
	"strings"
	"time"

	"gedsejours/internal/domain/booking"
	"gedsejours/internal/domain/catalog"
	"gedsejours/internal/domain/departures"
	"gedsejours/internal/domain/eligibility"
	"gedsejours/internal/domain/pricing"
)

type State string

const (
	StateSelectSession    State = "SELECT_SESSION"
	StateSelectCity       State = "SELECT_CITY"
	StateRequesterInfo    State = "REQUESTER_INFO"
	StateMinorInfo        State = "MINOR_INFO"
	StateReviewAndOptions State = "REVIEW_AND_OPTIONS"
	StateSuccess          State = "SUCCESS"
)

var (
	ErrWrongState        = errors.New("bookingflow: event not valid in current state")
	ErrUnknownSession    = errors.New("bookingflow: session not offered")
	ErrSessionFull       = errors.New("bookingflow: session is full")
	ErrCityRequired      = errors.New("bookingflow: departure city required")
	ErrUnknownCity       = errors.New("bookingflow: city not offered")
	ErrIncompleteContact = errors.New("bookingflow: all contact fields are required")
	ErrMinorFirstName    = errors.New("bookingflow: minor first name required")
	ErrConsentRequired   = errors.New("bookingflow: consent required")
	ErrIneligible        = errors.New("bookingflow: minor not eligible for this session")
	ErrUnknownOption     = errors.New("bookingflow: unknown educational option")
	ErrNotFinalized      = errors.New("bookingflow: flow is not at review")
)

// Params seed a flow for one stay. The flow de-duplicates sessions and
// filters/orders cities itself, so callers hand over the raw collaborator
// output.
type Params struct {
	Stay     catalog.Stay
	Sessions []catalog.Session
	Cities   []departures.City
	// SessionPrices maps session ids to their base price when the enrichment
	// collaborator knows it; missing entries mean price on request.
	SessionPrices map[catalog.SessionID]int
	// MinSessionPrice is the lowest advertised price, shown as "À partir de".
	MinSessionPrice *int
	Calculator      pricing.Calculator

	// Pre-selections short-circuit the entry point: session and city skip to
	// requester info, session alone skips to city selection.
	PreselectedSessionID catalog.SessionID
	PreselectedCity      string
}

// Flow is the workflow value. It is not safe for concurrent mutation; each
// booking attempt owns its flow.
type Flow struct {
	stay          catalog.Stay
	sessions      []catalog.Session
	cities        []departures.City
	sessionPrices map[catalog.SessionID]int
	minPrice      *int
	calc          pricing.Calculator

	state     State
	sessionID catalog.SessionID
	city      string
	requester booking.Requester
	minor     booking.Minor
	consent   bool
	option    pricing.OptionType

	message   string
	requestID booking.RequestID
}

// New builds a flow positioned at its dynamic entry state.
func New(p Params) (*Flow, error) {
	if err := p.Stay.Validate(); err != nil {
		return nil, err
	}
	cities := departures.FilterStandard(p.Cities, departures.StandardCities())
	departures.Sort(cities)

	f := &Flow{
		stay:          p.Stay,
		sessions:      catalog.DedupSessions(p.Sessions),
		cities:        cities,
		sessionPrices: p.SessionPrices,
		minPrice:      p.MinSessionPrice,
		calc:          p.Calculator,
		state:         StateSelectSession,
	}

	if p.PreselectedSessionID != "" {
		if err := f.selectSession(p.PreselectedSessionID); err != nil {
			return nil, err
		}
		f.state = StateSelectCity
		if p.PreselectedCity != "" {
			if err := f.selectCity(p.PreselectedCity); err != nil {
				return nil, err
			}
			f.state = StateRequesterInfo
		}
	}
	return f, nil
}

func (f *Flow) State() State { return f.state }

// Message returns the in-place validation or submission message for the
// current state, empty when there is nothing to show.
func (f *Flow) Message() string { return f.message }

// RequestID is the collaborator-issued identifier, set once the flow reaches
// Success.
func (f *Flow) RequestID() booking.RequestID { return f.requestID }

// Sessions returns the de-duplicated choices presented to the user.
func (f *Flow) Sessions() []catalog.Session {
	out := make([]catalog.Session, len(f.sessions))
	copy(out, f.sessions)
	return out
}

// Cities returns the filtered, ordered departure choices.
func (f *Flow) Cities() []departures.City {
	out := make([]departures.City, len(f.cities))
	copy(out, f.cities)
	return out
}

// SelectedSession returns the chosen session, ok=false before selection.
func (f *Flow) SelectedSession() (catalog.Session, bool) {
	if f.sessionID == "" {
		return catalog.Session{}, false
	}
	return catalog.FindSession(f.sessions, f.sessionID)
}

// ChooseSession picks a non-full session and advances to city selection.
func (f *Flow) ChooseSession(id catalog.SessionID) error {
	if f.state != StateSelectSession {
		return ErrWrongState
	}
	if err := f.selectSession(id); err != nil {
		return err
	}
	f.state = StateSelectCity
	f.message = ""
	return nil
}

func (f *Flow) selectSession(id catalog.SessionID) error {
	s, ok := catalog.FindSession(f.sessions, id)
	if !ok {
		return ErrUnknownSession
	}
	if s.Full() {
		return ErrSessionFull
	}
	f.sessionID = id
	return nil
}

// ChooseCity picks a departure city and advances to requester info. The
// synthetic Sans transport entry is a valid selection.
func (f *Flow) ChooseCity(name string) error {
	if f.state != StateSelectCity {
		return ErrWrongState
	}
	if err := f.selectCity(name); err != nil {
		return err
	}
	f.state = StateRequesterInfo
	f.message = ""
	return nil
}

func (f *Flow) selectCity(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCityRequired
	}
	for _, c := range f.cities {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			f.city = c.Name
			return nil
		}
	}
	return ErrUnknownCity
}

// SetRequester records the case-worker contact and advances to minor info.
func (f *Flow) SetRequester(r booking.Requester) error {
	if f.state != StateRequesterInfo {
		return ErrWrongState
	}
	if !r.Complete() {
		return ErrIncompleteContact
	}
	f.requester = r
	f.state = StateMinorInfo
	f.message = ""
	return nil
}

// SetMinor records the child's first name and birth date, re-runs the age
// gate against the selected session and, with consent given, advances to
// review. Eligibility failures stay on this step with an in-place message.
func (f *Flow) SetMinor(firstName, birthDate string, consent bool) error {
	if f.state != StateMinorInfo {
		return ErrWrongState
	}
	if strings.TrimSpace(firstName) == "" {
		return ErrMinorFirstName
	}
	session, ok := f.SelectedSession()
	if !ok {
		return ErrUnknownSession
	}
	res := eligibility.Validate(birthDate, session.StartDate.Format(time.RFC3339), f.stay.AgeMin, f.stay.AgeMax)
	if !res.Valid {
		if res.Message != nil {
			f.message = *res.Message
		}
		return ErrIneligible
	}
	if !consent {
		return ErrConsentRequired
	}
	f.minor = booking.Minor{FirstName: strings.TrimSpace(firstName), BirthDate: strings.TrimSpace(birthDate)}
	f.consent = true
	f.state = StateReviewAndOptions
	f.message = ""
	return nil
}

// ChooseOption records zero-or-one educational add-on at review time.
func (f *Flow) ChooseOption(opt pricing.OptionType) error {
	if f.state != StateReviewAndOptions {
		return ErrWrongState
	}
	if !opt.Valid() {
		return ErrUnknownOption
	}
	f.option = opt
	return nil
}

// Back moves to the immediately preceding state. Data confirmed on later
// steps is kept untouched so a forward pass does not re-enter it.
func (f *Flow) Back() {
	switch f.state {
	case StateSelectCity:
		f.state = StateSelectSession
	case StateRequesterInfo:
		f.state = StateSelectCity
	case StateMinorInfo:
		f.state = StateRequesterInfo
	case StateReviewAndOptions:
		f.state = StateMinorInfo
	}
	f.message = ""
}

// Preview recomputes the live price breakdown from the current selections.
// The promotional discount is never part of the preview.
func (f *Flow) Preview() pricing.Breakdown {
	var sessionPrice *int
	if f.sessionID != "" {
		if p, ok := f.sessionPrices[f.sessionID]; ok {
			v := p
			sessionPrice = &v
		}
	}
	return f.calc.ComposeBreakdown(pricing.BreakdownParams{
		SessionPrice:    sessionPrice,
		CityExtra:       departures.Extra(f.cities, f.city),
		Option:          f.option,
		MinSessionPrice: f.minPrice,
	})
}

// Finalize assembles the booking request handed to the submission
// collaborator. Only valid at review. The quoted total applies the full
// tariff, promo included, when the session price is known.
func (f *Flow) Finalize(id booking.RequestID, now time.Time) (*booking.Request, error) {
	if f.state != StateReviewAndOptions {
		return nil, ErrNotFinalized
	}
	var total *int
	if base, ok := f.sessionPrices[f.sessionID]; ok {
		v := f.calc.Compute(base, f.stay.DurationDays, f.city, true) + f.calc.OptionPrice(f.option)
		total = &v
	}
	return booking.NewRequest(booking.CreateParams{
		ID:            id,
		StayID:        f.stay.ID,
		SessionID:     f.sessionID,
		DepartureCity: f.city,
		Option:        f.option,
		Requester:     f.requester,
		Minor:         f.minor,
		Consent:       f.consent,
		QuotedTotal:   total,
		CreatedAt:     now,
	})
}

// Complete records the collaborator-issued identifier and moves to Success.
func (f *Flow) Complete(id booking.RequestID) error {
	if f.state != StateReviewAndOptions {
		return ErrWrongState
	}
	f.requestID = id
	f.state = StateSuccess
	f.message = ""
	return nil
}

// RejectSubmission keeps the flow at review with the collaborator's message
// surfaced verbatim; every entered selection is retained for a manual retry.
func (f *Flow) RejectSubmission(message string) {
	if f.state != StateReviewAndOptions {
		return
	}
	f.message = message
}
