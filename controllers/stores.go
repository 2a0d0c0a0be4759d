package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/store"
)

// The store interfaces controllers depend on. The mongo-backed
// implementations live in the store package; tests substitute in-memory
// fakes.

type MenuStore interface {
	List(ctx context.Context, p store.MenuListParams) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) error
	Replace(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Stats(ctx context.Context) (*store.MenuStats, error)
}

type ReservationStore interface {
	List(ctx context.Context, p store.ListParams) ([]models.Reservation, error)
	SearchByUser(ctx context.Context, p store.UserSearchParams) ([]models.Reservation, error)
	FindByBookingID(ctx context.Context, bookingID string) (*models.Reservation, error)
	FindByEmail(ctx context.Context, email string) (*models.Reservation, error)
	Insert(ctx context.Context, r *models.Reservation) error
	Replace(ctx context.Context, bookingID string, r *models.Reservation) error
	Delete(ctx context.Context, bookingID string) error
	Stats(ctx context.Context) (*store.ReservationStats, error)
}

type TakeawayStore interface {
	List(ctx context.Context, p store.ListParams) ([]models.TakeawayOrder, error)
	SearchByUser(ctx context.Context, p store.UserSearchParams) ([]models.TakeawayOrder, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.TakeawayOrder, error)
	FindByEmail(ctx context.Context, email string) (*models.TakeawayOrder, error)
	Insert(ctx context.Context, o *models.TakeawayOrder) error
	Replace(ctx context.Context, orderID string, o *models.TakeawayOrder) error
	Delete(ctx context.Context, orderID string) error
	Stats(ctx context.Context) (*store.OrderStats, error)
}

type DeliveryStore interface {
	List(ctx context.Context, p store.ListParams) ([]models.DeliveryOrder, error)
	SearchByUser(ctx context.Context, p store.UserSearchParams) ([]models.DeliveryOrder, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.DeliveryOrder, error)
	FindByEmail(ctx context.Context, email string) (*models.DeliveryOrder, error)
	Insert(ctx context.Context, o *models.DeliveryOrder) error
	Replace(ctx context.Context, orderID string, o *models.DeliveryOrder) error
	Delete(ctx context.Context, orderID string) error
	Stats(ctx context.Context) (*store.OrderStats, error)
}
