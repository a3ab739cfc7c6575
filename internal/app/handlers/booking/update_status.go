package booking

import (
	"context"
	"errors"
	"time"

	"gedsejours/internal/app/commands"
	"gedsejours/internal/app/dto"
	"gedsejours/internal/app/outbox"
	"gedsejours/internal/app/uow"
	domainbooking "gedsejours/internal/domain/booking"
)

const updateStatusKey = "booking.update_status"

var ErrUnknownStatus = errors.New("booking: unknown target status")

// UpdateBookingStatusCommand moves a received request through its back-office
// lifecycle: the organisation confirms it or cancels it with a reason.
type UpdateBookingStatusCommand struct {
	RequestID string
	Status    string
	Reason    string
}

func (c UpdateBookingStatusCommand) Key() string { return updateStatusKey }

type UpdateBookingStatusHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *UpdateBookingStatusHandler) Handle(ctx context.Context, cmd UpdateBookingStatusCommand) (dto.BookingRequestSummary, error) {
	var none dto.BookingRequestSummary

	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return none, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return none, err
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

	request, err := unit.Bookings().ByID(ctx, domainbooking.RequestID(cmd.RequestID))
	if err != nil {
		return none, err
	}

	now := h.now()
	switch domainbooking.Status(cmd.Status) {
	case domainbooking.StatusConfirmed:
		err = request.Confirm(now)
	case domainbooking.StatusCancelled:
		err = request.Cancel(cmd.Reason, now)
	default:
		return none, ErrUnknownStatus
	}
	if err != nil {
		return none, err
	}

	if err := unit.Bookings().Save(ctx, request); err != nil {
		return none, err
	}

	pending := request.PendingEvents()
	request.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return none, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return none, err
		}
		committed = true
	}
	return dto.MapBookingRequest(request), nil
}

func (h *UpdateBookingStatusHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *UpdateBookingStatusHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[UpdateBookingStatusCommand, dto.BookingRequestSummary] = (*UpdateBookingStatusHandler)(nil)
