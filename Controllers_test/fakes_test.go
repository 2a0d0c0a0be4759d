package Controllers_test

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/store"
	"github.com/Waqasabid99/rms-backend/utils"
)

// In-memory stands-ins for the document stores. They keep records in
// insertion order and implement just enough filtering for the handlers
// under test.

func matchesUser(name, email, phone string, p store.UserSearchParams) bool {
	contains := func(haystack, needle string) bool {
		return needle != "" && strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	return contains(name, p.Name) || contains(email, p.Email) || contains(phone, p.Phone)
}

type fakeTakeawayStore struct {
	orders []models.TakeawayOrder
}

func (f *fakeTakeawayStore) List(_ context.Context, p store.ListParams) ([]models.TakeawayOrder, error) {
	var out []models.TakeawayOrder
	for _, o := range f.orders {
		if p.Status != "" && p.Status != store.FilterAll && o.Status != p.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeTakeawayStore) SearchByUser(_ context.Context, p store.UserSearchParams) ([]models.TakeawayOrder, error) {
	var out []models.TakeawayOrder
	for _, o := range f.orders {
		if matchesUser(o.CustomerName, o.CustomerEmail, o.CustomerPhone, p) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeTakeawayStore) FindByOrderID(_ context.Context, orderID string) (*models.TakeawayOrder, error) {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			order := f.orders[i]
			return &order, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeTakeawayStore) FindByEmail(_ context.Context, email string) (*models.TakeawayOrder, error) {
	// newest first, matching the store's sort on created_at
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].CustomerEmail == email {
			order := f.orders[i]
			return &order, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeTakeawayStore) Insert(_ context.Context, o *models.TakeawayOrder) error {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeTakeawayStore) Replace(_ context.Context, orderID string, o *models.TakeawayOrder) error {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			o.UpdatedAt = time.Now()
			f.orders[i] = *o
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeTakeawayStore) Delete(_ context.Context, orderID string) error {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeTakeawayStore) Stats(_ context.Context) (*store.OrderStats, error) {
	stats := &store.OrderStats{}
	buckets := map[string]*store.StatusRevenue{}
	for _, o := range f.orders {
		stats.Total++
		b, ok := buckets[o.Status]
		if !ok {
			b = &store.StatusRevenue{Status: o.Status}
			buckets[o.Status] = b
		}
		b.Count++
		b.TotalRevenue += o.Total
	}
	for _, b := range buckets {
		stats.TotalRevenue += b.TotalRevenue
		stats.ByStatus = append(stats.ByStatus, *b)
	}
	return stats, nil
}

type fakeDeliveryStore struct {
	orders []models.DeliveryOrder
}

func (f *fakeDeliveryStore) List(_ context.Context, p store.ListParams) ([]models.DeliveryOrder, error) {
	var out []models.DeliveryOrder
	for _, o := range f.orders {
		if p.Status != "" && p.Status != store.FilterAll && o.Status != p.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeDeliveryStore) SearchByUser(_ context.Context, p store.UserSearchParams) ([]models.DeliveryOrder, error) {
	var out []models.DeliveryOrder
	for _, o := range f.orders {
		if matchesUser(o.CustomerName, o.CustomerEmail, o.CustomerPhone, p) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeDeliveryStore) FindByOrderID(_ context.Context, orderID string) (*models.DeliveryOrder, error) {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			order := f.orders[i]
			return &order, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeDeliveryStore) FindByEmail(_ context.Context, email string) (*models.DeliveryOrder, error) {
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].CustomerEmail == email {
			order := f.orders[i]
			return &order, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeDeliveryStore) Insert(_ context.Context, o *models.DeliveryOrder) error {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeDeliveryStore) Replace(_ context.Context, orderID string, o *models.DeliveryOrder) error {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			o.UpdatedAt = time.Now()
			f.orders[i] = *o
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeDeliveryStore) Delete(_ context.Context, orderID string) error {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeDeliveryStore) Stats(_ context.Context) (*store.OrderStats, error) {
	stats := &store.OrderStats{}
	buckets := map[string]*store.StatusRevenue{}
	for _, o := range f.orders {
		stats.Total++
		b, ok := buckets[o.Status]
		if !ok {
			b = &store.StatusRevenue{Status: o.Status}
			buckets[o.Status] = b
		}
		b.Count++
		// delivery revenue counts the fee on top of the items total
		b.TotalRevenue += o.Total + o.Fee()
	}
	for _, b := range buckets {
		stats.TotalRevenue += b.TotalRevenue
		stats.ByStatus = append(stats.ByStatus, *b)
	}
	return stats, nil
}

type fakeReservationStore struct {
	reservations []models.Reservation
}

func (f *fakeReservationStore) List(_ context.Context, p store.ListParams) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if p.Status != "" && p.Status != store.FilterAll && r.Status != p.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationStore) SearchByUser(_ context.Context, p store.UserSearchParams) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if matchesUser(r.CustomerName, r.CustomerEmail, r.CustomerPhone, p) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) FindByBookingID(_ context.Context, bookingID string) (*models.Reservation, error) {
	for i := range f.reservations {
		if f.reservations[i].BookingID == bookingID {
			r := f.reservations[i]
			return &r, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeReservationStore) FindByEmail(_ context.Context, email string) (*models.Reservation, error) {
	for i := len(f.reservations) - 1; i >= 0; i-- {
		if f.reservations[i].CustomerEmail == email {
			r := f.reservations[i]
			return &r, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeReservationStore) Insert(_ context.Context, r *models.Reservation) error {
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeReservationStore) Replace(_ context.Context, bookingID string, r *models.Reservation) error {
	for i := range f.reservations {
		if f.reservations[i].BookingID == bookingID {
			r.UpdatedAt = time.Now()
			f.reservations[i] = *r
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeReservationStore) Delete(_ context.Context, bookingID string) error {
	for i := range f.reservations {
		if f.reservations[i].BookingID == bookingID {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeReservationStore) Stats(_ context.Context) (*store.ReservationStats, error) {
	stats := &store.ReservationStats{}
	counts := map[string]int64{}
	for _, r := range f.reservations {
		stats.Total++
		counts[r.Status]++
	}
	for status, count := range counts {
		stats.ByStatus = append(stats.ByStatus, store.StatusCount{Status: status, Count: count})
	}
	return stats, nil
}

type fakeMenuStore struct {
	items []models.MenuItem
}

func (f *fakeMenuStore) List(_ context.Context, p store.MenuListParams) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		if p.Category != "" && p.Category != store.FilterAll && item.Category != p.Category {
			continue
		}
		if p.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(p.Search)) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeMenuStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeMenuStore) Insert(_ context.Context, item *models.MenuItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeMenuStore) Replace(_ context.Context, id primitive.ObjectID, item *models.MenuItem) error {
	for i := range f.items {
		if f.items[i].ID == id {
			item.UpdatedAt = time.Now()
			f.items[i] = *item
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeMenuStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeMenuStore) Stats(_ context.Context) (*store.MenuStats, error) {
	stats := &store.MenuStats{}
	type agg struct {
		count int64
		sum   float64
	}
	byCat := map[string]*agg{}
	for _, item := range f.items {
		stats.Total++
		if item.Available != nil && *item.Available {
			stats.Available++
		} else {
			stats.Unavailable++
		}
		a, ok := byCat[item.Category]
		if !ok {
			a = &agg{}
			byCat[item.Category] = a
		}
		a.count++
		a.sum += item.Price
	}
	for category, a := range byCat {
		stats.ByCategory = append(stats.ByCategory, store.CategoryStat{
			Category: category,
			Count:    a.count,
			AvgPrice: a.sum / float64(a.count),
		})
	}
	return stats, nil
}
