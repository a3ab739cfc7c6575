package booking

import (
	"context"

	"gedsejours/internal/app/dto"
	"gedsejours/internal/app/handlers/support"
	"gedsejours/internal/app/queries"
	"gedsejours/internal/app/uow"
	domaincatalog "gedsejours/internal/domain/catalog"
)

const listByStayKey = "booking.list_by_stay"

// ListByStayQuery lists booking requests recorded for one stay, newest first.
type ListByStayQuery struct {
	StayID string
}

func (q ListByStayQuery) Key() string { return listByStayKey }

type ListByStayHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListByStayHandler) Handle(ctx context.Context, q ListByStayQuery) (dto.BookingRequestCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingRequestCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	requests, err := unit.Bookings().ListByStay(ctx, domaincatalog.StayID(q.StayID))
	if err != nil {
		return dto.BookingRequestCollection{}, err
	}
	return dto.MapBookingRequests(requests), nil
}

var _ queries.Handler[ListByStayQuery, dto.BookingRequestCollection] = (*ListByStayHandler)(nil)
