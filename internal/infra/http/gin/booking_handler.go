package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gedsejours/internal/app/commands"
	"gedsejours/internal/app/dto"
	bookingapp "gedsejours/internal/app/handlers/booking"
	"gedsejours/internal/app/queries"
	domainbooking "gedsejours/internal/domain/booking"
	domainbookingflow "gedsejours/internal/domain/bookingflow"
	domaincatalog "gedsejours/internal/domain/catalog"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createBookingRequest struct {
	StayID        string `json:"stay_id"`
	SessionID     string `json:"session_id"`
	DepartureCity string `json:"departure_city"`
	Option        string `json:"option"`

	Organisation string `json:"organisation"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`

	MinorFirstName string `json:"minor_first_name"`
	MinorBirthDate string `json:"minor_birth_date"`
	Consent        bool   `json:"consent"`
}

// Create submits the accumulated booking workflow for a stay.
func (h BookingHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.SubmitBookingCommand{
		CommandID:       uuid.NewString(),
		StayID:          req.StayID,
		SessionID:       req.SessionID,
		DepartureCity:   req.DepartureCity,
		Option:          req.Option,
		Organisation:    req.Organisation,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		MinorFirstName:  req.MinorFirstName,
		MinorBirthDate:  req.MinorBirthDate,
		Consent:         req.Consent,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.SubmitBookingCommand, *bookingapp.SubmitBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// UpdateStatus confirms or cancels a recorded booking request.
func (h BookingHandler) UpdateStatus(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.UpdateBookingStatusCommand{
		RequestID: c.Param("id"),
		Status:    req.Status,
		Reason:    req.Reason,
	}
	result, err := commands.Dispatch[bookingapp.UpdateBookingStatusCommand, dto.BookingRequestSummary](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domainbooking.ErrRequestNotFound):
			status = http.StatusNotFound
		case errors.Is(err, bookingapp.ErrUnknownStatus):
			status = http.StatusBadRequest
		case errors.Is(err, domainbooking.ErrInvalidTransition):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListByStay responds with the booking requests recorded for one stay.
func (h BookingHandler) ListByStay(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := bookingapp.ListByStayQuery{StayID: c.Param("id")}
	result, err := queries.Ask[bookingapp.ListByStayQuery, dto.BookingRequestCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// bookingErrorStatus maps workflow gate violations to 400, collaborator
// rejections to 422 and unknown references to 404.
func bookingErrorStatus(err error) int {
	var subErr *domainbooking.SubmissionError
	switch {
	case errors.As(err, &subErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domaincatalog.ErrStayNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainbookingflow.ErrUnknownSession),
		errors.Is(err, domainbookingflow.ErrSessionFull),
		errors.Is(err, domainbookingflow.ErrUnknownCity),
		errors.Is(err, domainbookingflow.ErrCityRequired),
		errors.Is(err, domainbookingflow.ErrIncompleteContact),
		errors.Is(err, domainbookingflow.ErrMinorFirstName),
		errors.Is(err, domainbookingflow.ErrConsentRequired),
		errors.Is(err, domainbookingflow.ErrIneligible),
		errors.Is(err, domainbookingflow.ErrUnknownOption):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var _ BookingHTTP = BookingHandler{}
