package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "gedsejours/internal/domain/catalog"
)

// StayRepository stores the imported catalog. Stays and their sessions live
// in one document; the catalog is small and always read whole.
type StayRepository struct {
	col *mongo.Collection

	now func() time.Time
}

func NewStayRepository(db *mongo.Database) *StayRepository {
	return &StayRepository{
		col: db.Collection("agg_stay"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *StayRepository) ByID(ctx context.Context, id domaincatalog.StayID) (*domaincatalog.Stay, []domaincatalog.Session, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *StayRepository) BySlug(ctx context.Context, slug string) (*domaincatalog.Stay, []domaincatalog.Session, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *StayRepository) findOne(ctx context.Context, filter bson.M) (*domaincatalog.Stay, []domaincatalog.Session, error) {
	var doc stayDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, domaincatalog.ErrStayNotFound
		}
		return nil, nil, err
	}
	stay, sessions := doc.toAggregate()
	return stay, r.upcoming(sessions), nil
}

func (r *StayRepository) Search(ctx context.Context, params domaincatalog.SearchParams) ([]*domaincatalog.Stay, error) {
	filter := bson.M{}
	if params.OnlyPublished {
		filter["published"] = true
	}
	if params.Period != "" {
		filter["period"] = params.Period
	}
	if params.Theme != "" {
		filter["themes"] = params.Theme
	}
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*domaincatalog.Stay, 0)
	for cursor.Next(ctx) {
		var doc stayDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stay, _ := doc.toAggregate()
		out = append(out, stay)
	}
	return out, cursor.Err()
}

func (r *StayRepository) Save(ctx context.Context, stay *domaincatalog.Stay, sessions []domaincatalog.Session) error {
	if err := stay.Validate(); err != nil {
		return err
	}
	doc := newStayDocument(stay, sessions)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

// upcoming applies the repository contract: future start dates, ascending.
func (r *StayRepository) upcoming(sessions []domaincatalog.Session) []domaincatalog.Session {
	cutoff := r.now()
	out := make([]domaincatalog.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.StartDate.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

type sessionDocument struct {
	ID         string `bson:"id"`
	StartDate  int64  `bson:"start_date"`
	EndDate    int64  `bson:"end_date"`
	SeatsLeft  int    `bson:"seats_left"`
	SeatsTotal int    `bson:"seats_total"`
}

type stayDocument struct {
	ID           string            `bson:"_id"`
	Slug         string            `bson:"slug"`
	SourceURL    string            `bson:"source_url,omitempty"`
	Title        string            `bson:"title"`
	Description  string            `bson:"description,omitempty"`
	Geography    string            `bson:"geography,omitempty"`
	Period       string            `bson:"period,omitempty"`
	Themes       []string          `bson:"themes,omitempty"`
	DurationDays int               `bson:"duration_days"`
	AgeMin       int               `bson:"age_min"`
	AgeMax       int               `bson:"age_max"`
	PriceFrom    *int              `bson:"price_from,omitempty"`
	ImageCover   string            `bson:"image_cover,omitempty"`
	BrochureURL  string            `bson:"brochure_url,omitempty"`
	Published    bool              `bson:"published"`
	Sessions     []sessionDocument `bson:"sessions"`
}

func newStayDocument(stay *domaincatalog.Stay, sessions []domaincatalog.Session) stayDocument {
	docs := make([]sessionDocument, 0, len(sessions))
	for _, s := range sessions {
		docs = append(docs, sessionDocument{
			ID:         string(s.ID),
			StartDate:  s.StartDate.UnixMilli(),
			EndDate:    s.EndDate.UnixMilli(),
			SeatsLeft:  s.SeatsLeft,
			SeatsTotal: s.SeatsTotal,
		})
	}
	return stayDocument{
		ID:           string(stay.ID),
		Slug:         stay.Slug,
		SourceURL:    stay.SourceURL,
		Title:        stay.Title,
		Description:  stay.Description,
		Geography:    stay.Geography,
		Period:       stay.Period,
		Themes:       stay.Themes,
		DurationDays: stay.DurationDays,
		AgeMin:       stay.AgeMin,
		AgeMax:       stay.AgeMax,
		PriceFrom:    stay.PriceFrom,
		ImageCover:   stay.ImageCover,
		BrochureURL:  stay.BrochureURL,
		Published:    stay.Published,
		Sessions:     docs,
	}
}

func (d stayDocument) toAggregate() (*domaincatalog.Stay, []domaincatalog.Session) {
	stay := &domaincatalog.Stay{
		ID:           domaincatalog.StayID(d.ID),
		Slug:         d.Slug,
		SourceURL:    d.SourceURL,
		Title:        d.Title,
		Description:  d.Description,
		Geography:    d.Geography,
		Period:       d.Period,
		Themes:       d.Themes,
		DurationDays: d.DurationDays,
		AgeMin:       d.AgeMin,
		AgeMax:       d.AgeMax,
		PriceFrom:    d.PriceFrom,
		ImageCover:   d.ImageCover,
		BrochureURL:  d.BrochureURL,
		Published:    d.Published,
	}
	sessions := make([]domaincatalog.Session, 0, len(d.Sessions))
	for _, s := range d.Sessions {
		sessions = append(sessions, domaincatalog.Session{
			ID:         domaincatalog.SessionID(s.ID),
			StayID:     stay.ID,
			StartDate:  timestampToTime(s.StartDate),
			EndDate:    timestampToTime(s.EndDate),
			SeatsLeft:  s.SeatsLeft,
			SeatsTotal: s.SeatsTotal,
		})
	}
	return stay, sessions
}
