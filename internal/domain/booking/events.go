package booking

import (
	"time"

	"gedsejours/internal/domain/catalog"
)

type RequestSubmitted struct {
	RequestID RequestID
	StayID    catalog.StayID
	SessionID catalog.SessionID
	City      string
	Option    string
	At        time.Time
}

func (e RequestSubmitted) EventName() string     { return "booking.request_submitted" }
func (e RequestSubmitted) AggregateID() string   { return string(e.RequestID) }
func (e RequestSubmitted) OccurredAt() time.Time { return e.At }

type RequestConfirmed struct {
	RequestID RequestID
	At        time.Time
}

func (e RequestConfirmed) EventName() string     { return "booking.request_confirmed" }
func (e RequestConfirmed) AggregateID() string   { return string(e.RequestID) }
func (e RequestConfirmed) OccurredAt() time.Time { return e.At }

type RequestCancelled struct {
	RequestID RequestID
	Reason    string
	At        time.Time
}

func (e RequestCancelled) EventName() string     { return "booking.request_cancelled" }
func (e RequestCancelled) AggregateID() string   { return string(e.RequestID) }
func (e RequestCancelled) OccurredAt() time.Time { return e.At }
