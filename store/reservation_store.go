package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

// ReservationStore is the reservations document collection, keyed
// externally by booking_id.
type ReservationStore struct {
	coll *mongo.Collection
}

func NewReservationStore(db *mongo.Database) *ReservationStore {
	return &ReservationStore{coll: db.Collection("reservations")}
}

func (s *ReservationStore) List(ctx context.Context, p ListParams) ([]models.Reservation, error) {
	cursor, err := s.coll.Find(ctx, listFilter(p, "booking_id"), listFindOptions(p.SortBy, p.Order))
	if err != nil {
		return nil, err
	}
	reservations := []models.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationStore) SearchByUser(ctx context.Context, p UserSearchParams) ([]models.Reservation, error) {
	filter, err := userSearchFilter(p)
	if err != nil {
		return nil, err
	}
	cursor, err := s.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	reservations := []models.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationStore) FindByBookingID(ctx context.Context, bookingID string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationStore) FindByEmail(ctx context.Context, email string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.coll.FindOne(ctx, bson.M{"customer_email": email}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationStore) Insert(ctx context.Context, r *models.Reservation) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, r)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return nil
}

func (s *ReservationStore) Replace(ctx context.Context, bookingID string, r *models.Reservation) error {
	r.UpdatedAt = time.Now().UTC()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"booking_id": bookingID}, r)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *ReservationStore) Delete(ctx context.Context, bookingID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *ReservationStore) Stats(ctx context.Context) (*ReservationStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	byStatus := []StatusCount{}
	if err := cursor.All(ctx, &byStatus); err != nil {
		return nil, err
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	return &ReservationStats{Total: total, ByStatus: byStatus}, nil
}
