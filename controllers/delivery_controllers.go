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

type DeliveryController struct {
	Store             DeliveryStore
	strictTransitions bool
}

func NewDeliveryController(s DeliveryStore, strictTransitions bool) *DeliveryController {
	return &DeliveryController{Store: s, strictTransitions: strictTransitions}
}

func (dc *DeliveryController) GetAllOrders(c *gin.Context) {
	orders, err := dc.Store.List(c.Request.Context(), listParamsFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching delivery orders", err)
		return
	}
	utils.RespondList(c, http.StatusOK, orders, len(orders))
}

func (dc *DeliveryController) GetOrdersByUser(c *gin.Context) {
	params := userSearchParamsFromQuery(c)
	if params.Empty() {
		utils.RespondError(c, http.StatusBadRequest, "At least one search parameter (name, email, or phone) is required", nil)
		return
	}

	orders, err := dc.Store.SearchByUser(c.Request.Context(), params)
	if err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error fetching delivery orders by user")
		return
	}
	utils.RespondList(c, http.StatusOK, orders, len(orders))
}

func (dc *DeliveryController) GetOrderByID(c *gin.Context) {
	order, err := dc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error fetching delivery order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", order)
}

func (dc *DeliveryController) CreateOrder(c *gin.Context) {
	var order models.DeliveryOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	order.ID = primitive.NilObjectID
	order.OrderID = models.NewDeliveryOrderID()
	order.Normalize()
	order.ComputeTotal()

	if err := dc.Store.Insert(c.Request.Context(), &order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error creating delivery order", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Delivery order created successfully", order)
}

func (dc *DeliveryController) UpdateOrder(c *gin.Context) {
	existing, err := dc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error updating delivery order")
		return
	}

	var order models.DeliveryOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	order.ID = existing.ID
	order.OrderID = existing.OrderID
	order.CreatedAt = existing.CreatedAt
	order.Normalize()
	order.ComputeTotal()

	if err := dc.Store.Replace(c.Request.Context(), existing.OrderID, &order); err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error updating delivery order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery order updated successfully", order)
}

func (dc *DeliveryController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		utils.RespondError(c, http.StatusBadRequest, "Status is required", nil)
		return
	}
	if !models.DeliveryTransitions.Knows(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, "Validation error",
			fmt.Errorf("'%s' is not a valid delivery order status", body.Status))
		return
	}

	order, err := dc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error updating delivery order status")
		return
	}

	if dc.strictTransitions && order.Status != body.Status &&
		!models.DeliveryTransitions.Allowed(order.Status, body.Status) {
		utils.RespondError(c, http.StatusBadRequest, "Validation error",
			fmt.Errorf("cannot move delivery order from '%s' to '%s'", order.Status, body.Status))
		return
	}

	order.Status = body.Status
	if err := dc.Store.Replace(c.Request.Context(), order.OrderID, order); err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error updating delivery order status")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery order status updated successfully", order)
}

func (dc *DeliveryController) UpdateOrderByEmail(c *gin.Context) {
	dc.patchOrder(c, func() (*models.DeliveryOrder, error) {
		return dc.Store.FindByEmail(c.Request.Context(), strings.ToLower(c.Param("email")))
	}, "Delivery order not found with provided email")
}

func (dc *DeliveryController) UpdateOrderByID(c *gin.Context) {
	dc.patchOrder(c, func() (*models.DeliveryOrder, error) {
		return dc.Store.FindByOrderID(c.Request.Context(), c.Param("id"))
	}, "Delivery order not found with provided ID")
}

func (dc *DeliveryController) patchOrder(c *gin.Context, find func() (*models.DeliveryOrder, error), notFoundMsg string) {
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
		respondStoreError(c, err, notFoundMsg, "Error updating delivery order")
		return
	}

	if err := order.ApplyPatch(patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	if err := dc.Store.Replace(c.Request.Context(), order.OrderID, order); err != nil {
		respondStoreError(c, err, notFoundMsg, "Error updating delivery order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery order updated successfully", order)
}

func (dc *DeliveryController) DeleteOrder(c *gin.Context) {
	if err := dc.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Delivery order not found", "Error deleting delivery order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery order deleted successfully", nil)
}

func (dc *DeliveryController) GetOrderStats(c *gin.Context) {
	stats, err := dc.Store.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching statistics", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", stats)
}
