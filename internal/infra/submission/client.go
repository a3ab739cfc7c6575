// Package submission talks to the external booking-submission collaborator.
// One request per user action: the call is awaited and never retried here, a
// rejection travels back to the UI with its message untouched.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	domainbooking "gedsejours/internal/domain/booking"
)

type Client struct {
	HTTP     *http.Client
	Endpoint string
	Logger   *slog.Logger
}

type submitRequest struct {
	ClientReference string `json:"client_reference"`
	StayID          string `json:"stay_id"`
	SessionID       string `json:"session_id"`
	DepartureCity   string `json:"departure_city"`
	Option          string `json:"option,omitempty"`
	Organisation    string `json:"organisation"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	MinorFirstName  string `json:"minor_first_name"`
	MinorBirthDate  string `json:"minor_birth_date"`
	Consent         bool   `json:"consent"`
	QuotedTotal     *int   `json:"quoted_total,omitempty"`
}

type submitResponse struct {
	RequestID string `json:"request_id"`
}

type submitError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Submit performs the single awaited collaborator call.
func (c *Client) Submit(ctx context.Context, request *domainbooking.Request) (domainbooking.RequestID, error) {
	if c == nil || c.HTTP == nil {
		return "", errors.New("submission: http client not configured")
	}
	if c.Endpoint == "" {
		return "", errors.New("submission: endpoint not configured")
	}

	payload := submitRequest{
		ClientReference: string(request.ID),
		StayID:          string(request.StayID),
		SessionID:       string(request.SessionID),
		DepartureCity:   request.DepartureCity,
		Option:          string(request.Option),
		Organisation:    request.Requester.Organisation,
		Name:            request.Requester.Name,
		Email:           request.Requester.Email,
		Phone:           request.Requester.Phone,
		MinorFirstName:  request.Minor.FirstName,
		MinorBirthDate:  request.Minor.BirthDate,
		Consent:         request.Consent,
		QuotedTotal:     request.QuotedTotal,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logError("submission request failed", request.ID, err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var rejection submitError
		if decodeErr := json.Unmarshal(raw, &rejection); decodeErr == nil && rejection.Message != "" {
			err := &domainbooking.SubmissionError{Code: rejection.Code, Message: rejection.Message}
			c.logError("submission rejected", request.ID, err)
			return "", err
		}
		err := fmt.Errorf("submission returned status %d: %s", resp.StatusCode, string(raw))
		c.logError("submission returned error", request.ID, err)
		return "", err
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logError("submission decode failed", request.ID, err)
		return "", err
	}
	if c.Logger != nil {
		c.Logger.Info("submission accepted", "request_id", out.RequestID, "stay_id", request.StayID)
	}
	return domainbooking.RequestID(out.RequestID), nil
}

func (c *Client) logError(msg string, id domainbooking.RequestID, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, "request_id", id, "error", err)
}

var _ domainbooking.Submitter = (*Client)(nil)
