package memory

import (
	"context"
	"errors"

	"gedsejours/internal/app/uow"
	domainbooking "gedsejours/internal/domain/booking"
	domaincatalog "gedsejours/internal/domain/catalog"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	StayRepo    domaincatalog.Repository
	BookingRepo domainbooking.Repository
}

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.StayRepo == nil || f.BookingRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{stays: f.StayRepo, bookings: f.BookingRepo}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	stays    domaincatalog.Repository
	bookings domainbooking.Repository
}

func (u *Unit) Stays() domaincatalog.Repository { return u.stays }

func (u *Unit) Bookings() domainbooking.Repository { return u.bookings }

func (u *Unit) Commit(ctx context.Context) error { return nil }

func (u *Unit) Rollback(ctx context.Context) error { return nil }

var _ uow.UoWFactory = Factory{}
