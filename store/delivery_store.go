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

// DeliveryStore is the delivery order collection, keyed externally by
// order_id. Revenue aggregation adds the delivery fee on top of the item
// total.
type DeliveryStore struct {
	coll *mongo.Collection
}

func NewDeliveryStore(db *mongo.Database) *DeliveryStore {
	return &DeliveryStore{coll: db.Collection("delivery_orders")}
}

func (s *DeliveryStore) List(ctx context.Context, p ListParams) ([]models.DeliveryOrder, error) {
	cursor, err := s.coll.Find(ctx, listFilter(p, "order_id"), listFindOptions(p.SortBy, p.Order))
	if err != nil {
		return nil, err
	}
	orders := []models.DeliveryOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *DeliveryStore) SearchByUser(ctx context.Context, p UserSearchParams) ([]models.DeliveryOrder, error) {
	filter, err := userSearchFilter(p)
	if err != nil {
		return nil, err
	}
	cursor, err := s.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	orders := []models.DeliveryOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *DeliveryStore) FindByOrderID(ctx context.Context, orderID string) (*models.DeliveryOrder, error) {
	var order models.DeliveryOrder
	err := s.coll.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *DeliveryStore) FindByEmail(ctx context.Context, email string) (*models.DeliveryOrder, error) {
	var order models.DeliveryOrder
	err := s.coll.FindOne(ctx, bson.M{"customer_email": email}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *DeliveryStore) Insert(ctx context.Context, o *models.DeliveryOrder) error {
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

func (s *DeliveryStore) Replace(ctx context.Context, orderID string, o *models.DeliveryOrder) error {
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

func (s *DeliveryStore) Delete(ctx context.Context, orderID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *DeliveryStore) Stats(ctx context.Context) (*OrderStats, error) {
	revenue := bson.D{{Key: "$sum", Value: bson.D{
		{Key: "$add", Value: bson.A{"$total", "$delivery_fee"}},
	}}}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalRevenue", Value: revenue},
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
