package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

type TakeawayController struct {
	Store             TakeawayStore
	strictTransitions bool
}

func NewTakeawayController(s TakeawayStore, strictTransitions bool) *TakeawayController {
	return &TakeawayController{Store: s, strictTransitions: strictTransitions}
}

// GetAllOrders lists takeaway orders with optional status/search/sort.
func (tc *TakeawayController) GetAllOrders(c *gin.Context) {
	orders, err := tc.Store.List(c.Request.Context(), listParamsFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching takeaway orders", err)
		return
	}
	utils.RespondList(c, http.StatusOK, orders, len(orders))
}

// GetOrdersByUser searches by customer name, email or phone; at least one
// parameter is required.
func (tc *TakeawayController) GetOrdersByUser(c *gin.Context) {
	params := userSearchParamsFromQuery(c)
	if params.Empty() {
		utils.RespondError(c, http.StatusBadRequest, "At least one search parameter (name, email, or phone) is required", nil)
		return
	}

	orders, err := tc.Store.SearchByUser(c.Request.Context(), params)
	if err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error fetching takeaway orders by user")
		return
	}
	utils.RespondList(c, http.StatusOK, orders, len(orders))
}

func (tc *TakeawayController) GetOrderByID(c *gin.Context) {
	order, err := tc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error fetching takeaway order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", order)
}

func (tc *TakeawayController) CreateOrder(c *gin.Context) {
	var order models.TakeawayOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	// The identifier and the total are always assigned server side.
	order.ID = primitive.NilObjectID
	order.OrderID = models.NewTakeawayOrderID()
	order.Normalize()
	order.ComputeTotal()

	if err := tc.Store.Insert(c.Request.Context(), &order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error creating takeaway order", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Takeaway order created successfully", order)
}

// UpdateOrder replaces all mutable fields of an order (PUT semantics) and
// recomputes the total from the submitted items.
func (tc *TakeawayController) UpdateOrder(c *gin.Context) {
	existing, err := tc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error updating takeaway order")
		return
	}

	var order models.TakeawayOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	order.ID = existing.ID
	order.OrderID = existing.OrderID
	order.CreatedAt = existing.CreatedAt
	order.Normalize()
	order.ComputeTotal()

	if err := tc.Store.Replace(c.Request.Context(), existing.OrderID, &order); err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error updating takeaway order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Takeaway order updated successfully", order)
}

// UpdateOrderStatus writes only the status field.
func (tc *TakeawayController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		utils.RespondError(c, http.StatusBadRequest, "Status is required", nil)
		return
	}
	if !models.TakeawayTransitions.Knows(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, "Validation error",
			fmt.Errorf("'%s' is not a valid takeaway order status", body.Status))
		return
	}

	order, err := tc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error updating takeaway order status")
		return
	}

	if tc.strictTransitions && order.Status != body.Status &&
		!models.TakeawayTransitions.Allowed(order.Status, body.Status) {
		utils.RespondError(c, http.StatusBadRequest, "Validation error",
			fmt.Errorf("cannot move takeaway order from '%s' to '%s'", order.Status, body.Status))
		return
	}

	order.Status = body.Status
	if err := tc.Store.Replace(c.Request.Context(), order.OrderID, order); err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error updating takeaway order status")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Takeaway order status updated successfully", order)
}

// UpdateOrderByEmail merges the supplied fields into the most recent order
// for that customer email.
func (tc *TakeawayController) UpdateOrderByEmail(c *gin.Context) {
	tc.patchOrder(c, func() (*models.TakeawayOrder, error) {
		return tc.Store.FindByEmail(c.Request.Context(), strings.ToLower(c.Param("email")))
	}, "Takeaway order not found with provided email")
}

// UpdateOrderByID merges the supplied fields into the order.
func (tc *TakeawayController) UpdateOrderByID(c *gin.Context) {
	tc.patchOrder(c, func() (*models.TakeawayOrder, error) {
		return tc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	}, "Takeaway order not found with provided ID")
}

func (tc *TakeawayController) patchOrder(c *gin.Context, find func() (*models.TakeawayOrder, error), notFoundMsg string) {
	var patch models.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}
	if patch.Empty() {
		utils.RespondError(c, http.StatusBadRequest, "No data provided for update", nil)
		return
	}

	order, err := find()
	if err != nil {
		respondStoreError(c, err, notFoundMsg, "Error updating takeaway order")
		return
	}

	if err := order.ApplyPatch(patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	if err := tc.Store.Replace(c.Request.Context(), order.OrderID, order); err != nil {
		respondStoreError(c, err, notFoundMsg, "Error updating takeaway order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Takeaway order updated successfully", order)
}

func (tc *TakeawayController) DeleteOrder(c *gin.Context) {
	if err := tc.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Takeaway order not found", "Error deleting takeaway order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Takeaway order deleted successfully", nil)
}

func (tc *TakeawayController) GetOrderStats(c *gin.Context) {
	stats, err := tc.Store.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching statistics", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", stats)
}
