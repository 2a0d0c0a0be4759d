package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Waqasabid99/rms-backend/controllers"
	"github.com/Waqasabid99/rms-backend/utils"
)

func setupMenuRouter(store *fakeMenuStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	r := gin.New()
	ctrl := controllers.NewMenuController(store)
	r.GET("/menu", ctrl.GetAllMenuItems)
	r.GET("/menu/stats", ctrl.GetMenuStats)
	r.GET("/menu/:id", ctrl.GetMenuItemByID)
	r.POST("/menu", ctrl.CreateMenuItem)
	r.PUT("/menu/:id", ctrl.UpdateMenuItem)
	r.PATCH("/menu/:id", ctrl.UpdateMenuItemAvailability)
	r.DELETE("/menu/:id", ctrl.DeleteMenuItem)
	return r
}

func menuPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Margherita",
		"description": "Tomato, mozzarella, basil",
		"price":       9.5,
		"category":    "main",
		"tags":        []string{"vegetarian"},
	}
}

func TestCreateMenuItem(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)

	w := doJSON(r, http.MethodPost, "/menu", menuPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, data["available"])
	assert.Len(t, store.items, 1)
}

func TestCreateMenuItemRejectsBadCategory(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)

	payload := menuPayload()
	payload["category"] = "brunch"
	w := doJSON(r, http.MethodPost, "/menu", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.items)
}

func TestGetMenuItemInvalidID(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)

	w := doJSON(r, http.MethodGet, "/menu/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid menu item id", decodeEnvelope(t, w).Message)
}

func TestGetMenuItemNotFound(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)

	w := doJSON(r, http.MethodGet, "/menu/656e6f7468696e67c0ffee00", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Menu item not found", decodeEnvelope(t, w).Message)
}

func TestListMenuItemsByCategory(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)
	doJSON(r, http.MethodPost, "/menu", menuPayload())

	dessert := menuPayload()
	dessert["name"] = "Tiramisu"
	dessert["category"] = "dessert"
	doJSON(r, http.MethodPost, "/menu", dessert)

	w := doJSON(r, http.MethodGet, "/menu?category=dessert", nil)
	assert.Equal(t, 1, *decodeEnvelope(t, w).Count)

	all := doJSON(r, http.MethodGet, "/menu?category=all", nil)
	assert.Equal(t, 2, *decodeEnvelope(t, all).Count)
}

func TestUpdateMenuItemAvailability(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)
	doJSON(r, http.MethodPost, "/menu", menuPayload())
	id := store.items[0].ID.Hex()

	w := doJSON(r, http.MethodPatch, "/menu/"+id, gin.H{"available": false})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, *store.items[0].Available)

	// the flag is mandatory so a toggle is never implicit
	missing := doJSON(r, http.MethodPatch, "/menu/"+id, gin.H{})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "Availability status is required", decodeEnvelope(t, missing).Message)
}

func TestUpdateMenuItemPreservesCreatedAt(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)
	doJSON(r, http.MethodPost, "/menu", menuPayload())
	id := store.items[0].ID.Hex()
	created := store.items[0].CreatedAt

	payload := menuPayload()
	payload["price"] = 11.0
	w := doJSON(r, http.MethodPut, "/menu/"+id, payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 11.0, store.items[0].Price)
	assert.Equal(t, created, store.items[0].CreatedAt)
}

func TestDeleteMenuItem(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)
	doJSON(r, http.MethodPost, "/menu", menuPayload())
	id := store.items[0].ID.Hex()

	w := doJSON(r, http.MethodDelete, "/menu/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.items)

	again := doJSON(r, http.MethodDelete, "/menu/"+id, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestMenuStats(t *testing.T) {
	store := &fakeMenuStore{}
	r := setupMenuRouter(store)
	doJSON(r, http.MethodPost, "/menu", menuPayload())

	unavailable := menuPayload()
	unavailable["name"] = "Seasonal Special"
	unavailable["available"] = false
	doJSON(r, http.MethodPost, "/menu", unavailable)

	w := doJSON(r, http.MethodGet, "/menu/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["available"])
	assert.Equal(t, float64(1), data["unavailable"])
}
