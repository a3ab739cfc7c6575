package submission

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	domainbooking "gedsejours/internal/domain/booking"
	domaincatalog "gedsejours/internal/domain/catalog"
)

// LocalSubmitter accepts submissions in-process, for development without the
// collaborator. It enforces the one check the remote side owns: seat counts
// may have gone stale between page load and submission.
type LocalSubmitter struct {
	Stays domaincatalog.Repository

	seq atomic.Int64
}

func (s *LocalSubmitter) Submit(ctx context.Context, request *domainbooking.Request) (domainbooking.RequestID, error) {
	if s == nil || s.Stays == nil {
		return "", errors.New("submission: local submitter missing catalog")
	}
	_, sessions, err := s.Stays.ByID(ctx, request.StayID)
	if err != nil {
		return "", err
	}
	session, ok := domaincatalog.FindSession(sessions, request.SessionID)
	if !ok {
		return "", &domainbooking.SubmissionError{
			Code:    "session_gone",
			Message: "Cette session n'est plus proposée.",
		}
	}
	if session.Full() {
		return "", &domainbooking.SubmissionError{
			Code:    "session_full",
			Message: "Cette session est complète.",
		}
	}
	return domainbooking.RequestID(fmt.Sprintf("REQ-%06d", s.seq.Add(1))), nil
}

var _ domainbooking.Submitter = (*LocalSubmitter)(nil)
