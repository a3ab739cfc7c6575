package booking

import (
	"context"
	"errors"
	"time"

	"gedsejours/internal/app/commands"
	"gedsejours/internal/app/middleware"
	"gedsejours/internal/app/outbox"
	"gedsejours/internal/app/ports"
	"gedsejours/internal/app/uow"
	domainbooking "gedsejours/internal/domain/booking"
	domainbookingflow "gedsejours/internal/domain/bookingflow"
	domaincatalog "gedsejours/internal/domain/catalog"
	domaindepartures "gedsejours/internal/domain/departures"
	domainpricing "gedsejours/internal/domain/pricing"
)

const submitBookingKey = "booking.submit"

// SubmitBookingCommand carries the whole accumulated workflow: the selection,
// the requester contact, the minor and the consent flag. The handler replays
// it through the workflow gates so stale or hand-crafted payloads fail the
// same way the interactive steps would.
type SubmitBookingCommand struct {
	CommandID     string
	StayID        string
	SessionID     string
	DepartureCity string
	Option        string

	Organisation string
	Name         string
	Email        string
	Phone        string

	MinorFirstName string
	MinorBirthDate string
	Consent        bool

	IdempotencyKeyV string
}

func (c SubmitBookingCommand) Key() string { return submitBookingKey }

func (c SubmitBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SubmitBookingCommand) ResultPrototype() any { return &SubmitBookingResult{} }

type SubmitBookingResult struct {
	RequestID   string `json:"request_id"`
	QuotedTotal *int   `json:"quoted_total"`
}

// SubmitBookingHandler drives the workflow to its terminal state: it rebuilds
// the flow from the command, finalizes the booking request, performs the
// single awaited submission call and persists the outcome. A collaborator
// rejection propagates with its message intact and nothing is saved.
type SubmitBookingHandler struct {
	UoWFactory uow.UoWFactory
	Submitter  domainbooking.Submitter
	Enrichment ports.EnrichmentPort
	Calculator domainpricing.Calculator
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

var ErrUnitOfWorkRequired = errors.New("booking: unit of work required")
var ErrSubmitterRequired = errors.New("booking: submitter required")

func (h *SubmitBookingHandler) Handle(ctx context.Context, cmd SubmitBookingCommand) (*SubmitBookingResult, error) {
	if h.Submitter == nil {
		return nil, ErrSubmitterRequired
	}
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	stay, sessions, err := unit.Stays().ByID(ctx, domaincatalog.StayID(cmd.StayID))
	if err != nil {
		return nil, err
	}

	enrichment := ports.StayEnrichment{}
	if h.Enrichment != nil {
		if e, enrichErr := h.Enrichment.Enrich(ctx, stay.ID); enrichErr == nil {
			enrichment = e
		}
	}

	cities := enrichment.Cities
	if len(cities) == 0 {
		cities = []domaindepartures.City{domaindepartures.SansTransport()}
	}

	flow, err := domainbookingflow.New(domainbookingflow.Params{
		Stay:                 *stay,
		Sessions:             sessions,
		Cities:               cities,
		SessionPrices:        enrichment.BasePrices(),
		MinSessionPrice:      enrichment.MinPrice(),
		Calculator:           h.Calculator,
		PreselectedSessionID: domaincatalog.SessionID(cmd.SessionID),
		PreselectedCity:      cmd.DepartureCity,
	})
	if err != nil {
		return nil, err
	}
	if err := flow.SetRequester(domainbooking.Requester{
		Organisation: cmd.Organisation,
		Name:         cmd.Name,
		Email:        cmd.Email,
		Phone:        cmd.Phone,
	}); err != nil {
		return nil, err
	}
	if err := flow.SetMinor(cmd.MinorFirstName, cmd.MinorBirthDate, cmd.Consent); err != nil {
		if msg := flow.Message(); msg != "" {
			return nil, &domainbooking.SubmissionError{Code: "ineligible", Message: msg}
		}
		return nil, err
	}
	if err := flow.ChooseOption(domainpricing.OptionType(cmd.Option)); err != nil {
		return nil, err
	}

	now := h.now()
	request, err := flow.Finalize(domainbooking.RequestID(cmd.CommandID), now)
	if err != nil {
		return nil, err
	}

	issuedID, err := h.Submitter.Submit(ctx, request)
	if err != nil {
		flow.RejectSubmission(err.Error())
		return nil, err
	}
	if issuedID != "" {
		request.ID = issuedID
	}
	if err := flow.Complete(request.ID); err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, request); err != nil {
		return nil, err
	}

	pending := request.PendingEvents()
	request.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &SubmitBookingResult{
		RequestID:   string(request.ID),
		QuotedTotal: request.QuotedTotal,
	}, nil
}

func (h *SubmitBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *SubmitBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[SubmitBookingCommand, *SubmitBookingResult] = (*SubmitBookingHandler)(nil)
var _ middleware.IdempotentCommand = SubmitBookingCommand{}
