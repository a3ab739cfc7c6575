package booking

import "context"

// Submitter is the external booking-submission collaborator. The single call
// is awaited and never retried automatically; a failed submission returns
// control to the caller with all entered data retained.
type Submitter interface {
	Submit(ctx context.Context, request *Request) (RequestID, error)
}

// SubmissionError is a structured rejection from the collaborator. Its
// Message is human-readable and must reach the UI layer unmodified.
type SubmissionError struct {
	Code    string
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}
