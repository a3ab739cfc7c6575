package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainbooking "gedsejours/internal/domain/booking"
	domaincatalog "gedsejours/internal/domain/catalog"
)

// StayRepository is an in-memory catalog store. Sessions are kept per stay
// and served filtered to future start dates, ordered ascending, as the
// repository contract requires.
type StayRepository struct {
	mu       sync.RWMutex
	stays    map[domaincatalog.StayID]*domaincatalog.Stay
	sessions map[domaincatalog.StayID][]domaincatalog.Session

	// now is overridable in tests.
	now func() time.Time
}

func NewStayRepository() *StayRepository {
	return &StayRepository{
		stays:    make(map[domaincatalog.StayID]*domaincatalog.Stay),
		sessions: make(map[domaincatalog.StayID][]domaincatalog.Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithNow replaces the clock used for the future-session cutoff.
func (r *StayRepository) WithNow(now func() time.Time) *StayRepository {
	r.now = now
	return r
}

func (r *StayRepository) ByID(ctx context.Context, id domaincatalog.StayID) (*domaincatalog.Stay, []domaincatalog.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stay, ok := r.stays[id]
	if !ok {
		return nil, nil, domaincatalog.ErrStayNotFound
	}
	return stay, r.upcomingSessions(id), nil
}

func (r *StayRepository) BySlug(ctx context.Context, slug string) (*domaincatalog.Stay, []domaincatalog.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, stay := range r.stays {
		if strings.EqualFold(stay.Slug, slug) {
			return stay, r.upcomingSessions(id), nil
		}
	}
	return nil, nil, domaincatalog.ErrStayNotFound
}

func (r *StayRepository) Search(ctx context.Context, params domaincatalog.SearchParams) ([]*domaincatalog.Stay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*domaincatalog.Stay, 0, len(r.stays))
	for _, stay := range r.stays {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		if params.OnlyPublished && !stay.Published {
			continue
		}
		if params.Period != "" && !strings.EqualFold(stay.Period, params.Period) {
			continue
		}
		if params.Theme != "" && !themeMatches(stay.Themes, params.Theme) {
			continue
		}
		matches = append(matches, stay)
	}
	sort.Slice(matches, func(i, j int) bool {
		return strings.ToLower(matches[i].Title) < strings.ToLower(matches[j].Title)
	})
	return matches, nil
}

func (r *StayRepository) Save(ctx context.Context, stay *domaincatalog.Stay, sessions []domaincatalog.Session) error {
	if err := stay.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stays[stay.ID] = stay
	stored := make([]domaincatalog.Session, len(sessions))
	copy(stored, sessions)
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].StartDate.Before(stored[j].StartDate)
	})
	r.sessions[stay.ID] = stored
	return nil
}

// upcomingSessions assumes the read lock is held.
func (r *StayRepository) upcomingSessions(id domaincatalog.StayID) []domaincatalog.Session {
	cutoff := r.now()
	out := make([]domaincatalog.Session, 0, len(r.sessions[id]))
	for _, s := range r.sessions[id] {
		if s.StartDate.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func themeMatches(themes []string, wanted string) bool {
	for _, t := range themes {
		if strings.EqualFold(t, wanted) {
			return true
		}
	}
	return false
}

// BookingRepository stores booking requests in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.RequestID]*domainbooking.Request
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.RequestID]*domainbooking.Request)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.RequestID) (*domainbooking.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrRequestNotFound
	}
	return request, nil
}

func (r *BookingRepository) Save(ctx context.Context, request *domainbooking.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.Version++
	r.items[request.ID] = request
	return nil
}

func (r *BookingRepository) ListByStay(ctx context.Context, stayID domaincatalog.StayID) ([]*domainbooking.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Request, 0)
	for _, request := range r.items {
		if request.StayID == stayID {
			matches = append(matches, request)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

var _ domaincatalog.Repository = (*StayRepository)(nil)
var _ domainbooking.Repository = (*BookingRepository)(nil)
