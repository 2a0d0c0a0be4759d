package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

// MenuStore is the menu document collection. Menu items are looked up by
// their storage identifier; they carry no generated external code.
type MenuStore struct {
	coll *mongo.Collection
}

func NewMenuStore(db *mongo.Database) *MenuStore {
	return &MenuStore{coll: db.Collection("menus")}
}

func (s *MenuStore) List(ctx context.Context, p MenuListParams) ([]models.MenuItem, error) {
	cursor, err := s.coll.Find(ctx, menuListFilter(p), listFindOptions(p.SortBy, p.Order))
	if err != nil {
		return nil, err
	}
	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuStore) Insert(ctx context.Context, item *models.MenuItem) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

func (s *MenuStore) Replace(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) error {
	item.ID = id
	item.UpdatedAt = time.Now().UTC()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *MenuStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *MenuStore) Stats(ctx context.Context) (*MenuStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	byCategory := []CategoryStat{}
	if err := cursor.All(ctx, &byCategory); err != nil {
		return nil, err
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	available, err := s.coll.CountDocuments(ctx, bson.M{"available": true})
	if err != nil {
		return nil, err
	}
	unavailable, err := s.coll.CountDocuments(ctx, bson.M{"available": false})
	if err != nil {
		return nil, err
	}

	return &MenuStats{
		Total:       total,
		Available:   available,
		Unavailable: unavailable,
		ByCategory:  byCategory,
	}, nil
}
