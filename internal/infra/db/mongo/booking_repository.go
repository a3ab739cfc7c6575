package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "gedsejours/internal/domain/booking"
	domaincatalog "gedsejours/internal/domain/catalog"
	domainpricing "gedsejours/internal/domain/pricing"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking_request")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.RequestID) (*domainbooking.Request, error) {
	var doc requestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrRequestNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, request *domainbooking.Request) error {
	doc := newRequestDocument(request)
	filter := bson.M{"_id": doc.ID, "version": request.Version}
	doc.Version = request.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	request.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByStay(ctx context.Context, stayID domaincatalog.StayID) ([]*domainbooking.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"stay_id": string(stayID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*domainbooking.Request, 0)
	for cursor.Next(ctx) {
		var doc requestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type requesterDocument struct {
	Organisation string `bson:"organisation"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone"`
}

type minorDocument struct {
	FirstName string `bson:"first_name"`
	BirthDate string `bson:"birth_date"`
}

type requestDocument struct {
	ID            string            `bson:"_id"`
	StayID        string            `bson:"stay_id"`
	SessionID     string            `bson:"session_id"`
	DepartureCity string            `bson:"departure_city"`
	Option        string            `bson:"option"`
	Requester     requesterDocument `bson:"requester"`
	Minor         minorDocument     `bson:"minor"`
	Consent       bool              `bson:"consent"`
	QuotedTotal   *int              `bson:"quoted_total,omitempty"`
	Status        string            `bson:"status"`
	CreatedAt     int64             `bson:"created_at"`
	UpdatedAt     int64             `bson:"updated_at"`
	Version       int64             `bson:"version"`
}

func newRequestDocument(r *domainbooking.Request) requestDocument {
	return requestDocument{
		ID:            string(r.ID),
		StayID:        string(r.StayID),
		SessionID:     string(r.SessionID),
		DepartureCity: r.DepartureCity,
		Option:        string(r.Option),
		Requester: requesterDocument{
			Organisation: r.Requester.Organisation,
			Name:         r.Requester.Name,
			Email:        r.Requester.Email,
			Phone:        r.Requester.Phone,
		},
		Minor: minorDocument{
			FirstName: r.Minor.FirstName,
			BirthDate: r.Minor.BirthDate,
		},
		Consent:     r.Consent,
		QuotedTotal: r.QuotedTotal,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.UnixMilli(),
		UpdatedAt:   r.UpdatedAt.UnixMilli(),
		Version:     r.Version,
	}
}

func (d requestDocument) toAggregate() *domainbooking.Request {
	return &domainbooking.Request{
		ID:            domainbooking.RequestID(d.ID),
		StayID:        domaincatalog.StayID(d.StayID),
		SessionID:     domaincatalog.SessionID(d.SessionID),
		DepartureCity: d.DepartureCity,
		Option:        domainpricing.OptionType(d.Option),
		Requester: domainbooking.Requester{
			Organisation: d.Requester.Organisation,
			Name:         d.Requester.Name,
			Email:        d.Requester.Email,
			Phone:        d.Requester.Phone,
		},
		Minor: domainbooking.Minor{
			FirstName: d.Minor.FirstName,
			BirthDate: d.Minor.BirthDate,
		},
		Consent:     d.Consent,
		QuotedTotal: d.QuotedTotal,
		Status:      domainbooking.Status(d.Status),
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
