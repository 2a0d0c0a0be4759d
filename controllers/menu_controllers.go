package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/store"
	"github.com/Waqasabid99/rms-backend/utils"
)

type MenuController struct {
	Store MenuStore
}

func NewMenuController(s MenuStore) *MenuController {
	return &MenuController{Store: s}
}

func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	params := store.MenuListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sortBy", "createdAt"),
		Order:    c.DefaultQuery("order", "desc"),
	}

	items, err := mc.Store.List(c.Request.Context(), params)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching menu items", err)
		return
	}
	utils.RespondList(c, http.StatusOK, items, len(items))
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid menu item id", nil)
		return
	}

	item, err := mc.Store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Menu item not found", "Error fetching menu item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	item.ID = primitive.NilObjectID
	item.Normalize()

	if err := mc.Store.Insert(c.Request.Context(), &item); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error creating menu item", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid menu item id", nil)
		return
	}

	existing, err := mc.Store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Menu item not found", "Error updating menu item")
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	item.CreatedAt = existing.CreatedAt
	item.Normalize()

	if err := mc.Store.Replace(c.Request.Context(), id, &item); err != nil {
		respondStoreError(c, err, "Menu item not found", "Error updating menu item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

// UpdateMenuItemAvailability flips only the available flag.
func (mc *MenuController) UpdateMenuItemAvailability(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid menu item id", nil)
		return
	}

	var body struct {
		Available *bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Available == nil {
		utils.RespondError(c, http.StatusBadRequest, "Availability status is required", nil)
		return
	}

	item, err := mc.Store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Menu item not found", "Error updating menu item availability")
		return
	}

	item.Available = body.Available
	if err := mc.Store.Replace(c.Request.Context(), id, item); err != nil {
		respondStoreError(c, err, "Menu item not found", "Error updating menu item availability")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item availability updated successfully", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid menu item id", nil)
		return
	}

	if err := mc.Store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Menu item not found", "Error deleting menu item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}

func (mc *MenuController) GetMenuStats(c *gin.Context) {
	stats, err := mc.Store.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching statistics", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", stats)
}
