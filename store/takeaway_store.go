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

// TakeawayStore is the takeaway order collection, keyed externally by
// order_id.
type TakeawayStore struct {
	coll *mongo.Collection
}

func NewTakeawayStore(db *mongo.Database) *TakeawayStore {
	return &TakeawayStore{coll: db.Collection("takeaway_orders")}
}

func (s *TakeawayStore) List(ctx context.Context, p ListParams) ([]models.TakeawayOrder, error) {
	cursor, err := s.coll.Find(ctx, listFilter(p, "order_id"), listFindOptions(p.SortBy, p.Order))
	if err != nil {
		return nil, err
	}
	orders := []models.TakeawayOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *TakeawayStore) SearchByUser(ctx context.Context, p UserSearchParams) ([]models.TakeawayOrder, error) {
	filter, err := userSearchFilter(p)
	if err != nil {
		return nil, err
	}
	cursor, err := s.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	orders := []models.TakeawayOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *TakeawayStore) FindByOrderID(ctx context.Context, orderID string) (*models.TakeawayOrder, error) {
	var order models.TakeawayOrder
	err := s.coll.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *TakeawayStore) FindByEmail(ctx context.Context, email string) (*models.TakeawayOrder, error) {
	var order models.TakeawayOrder
	err := s.coll.FindOne(ctx, bson.M{"customer_email": email}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *TakeawayStore) Insert(ctx context.Context, o *models.TakeawayOrder) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

func (s *TakeawayStore) Replace(ctx context.Context, orderID string, o *models.TakeawayOrder) error {
	o.UpdatedAt = time.Now().UTC()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"order_id": orderID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *TakeawayStore) Delete(ctx context.Context, orderID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *TakeawayStore) Stats(ctx context.Context) (*OrderStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	byStatus := []StatusRevenue{}
	if err := cursor.All(ctx, &byStatus); err != nil {
		return nil, err
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{Total: total, ByStatus: byStatus}
	for _, bucket := range byStatus {
		stats.TotalRevenue += bucket.TotalRevenue
	}
	return stats, nil
}
