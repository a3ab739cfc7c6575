package dto

import (
	"time"

	domainbooking "gedsejours/internal/domain/booking"
)

type BookingRequestSummary struct {
	ID            string    `json:"id"`
	StayID        string    `json:"stay_id"`
	SessionID     string    `json:"session_id"`
	DepartureCity string    `json:"departure_city"`
	Option        string    `json:"option,omitempty"`
	Requester     string    `json:"requester"`
	Organisation  string    `json:"organisation"`
	MinorFirst    string    `json:"minor_first_name"`
	QuotedTotal   *int      `json:"quoted_total"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingRequestCollection struct {
	Items []BookingRequestSummary `json:"items"`
}

func MapBookingRequest(request *domainbooking.Request) BookingRequestSummary {
	return BookingRequestSummary{
		ID:            string(request.ID),
		StayID:        string(request.StayID),
		SessionID:     string(request.SessionID),
		DepartureCity: request.DepartureCity,
		Option:        string(request.Option),
		Requester:     request.Requester.Name,
		Organisation:  request.Requester.Organisation,
		MinorFirst:    request.Minor.FirstName,
		QuotedTotal:   request.QuotedTotal,
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt,
	}
}

func MapBookingRequests(requests []*domainbooking.Request) BookingRequestCollection {
	items := make([]BookingRequestSummary, 0, len(requests))
	for _, r := range requests {
		items = append(items, MapBookingRequest(r))
	}
	return BookingRequestCollection{Items: items}
}
