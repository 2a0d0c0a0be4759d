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

type ReservationController struct {
	Store             ReservationStore
	strictTransitions bool
}

func NewReservationController(s ReservationStore, strictTransitions bool) *ReservationController {
	return &ReservationController{Store: s, strictTransitions: strictTransitions}
}

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	reservations, err := rc.Store.List(c.Request.Context(), listParamsFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching reservations", err)
		return
	}
	utils.RespondList(c, http.StatusOK, reservations, len(reservations))
}

func (rc *ReservationController) GetReservationsByUser(c *gin.Context) {
	params := userSearchParamsFromQuery(c)
	if params.Empty() {
		utils.RespondError(c, http.StatusBadRequest, "At least one search parameter (name, email, or phone) is required", nil)
		return
	}

	reservations, err := rc.Store.SearchByUser(c.Request.Context(), params)
	if err != nil {
		respondStoreError(c, err, "Reservation not found", "Error fetching reservations by user")
		return
	}
	utils.RespondList(c, http.StatusOK, reservations, len(reservations))
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	reservation, err := rc.Store.FindByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Reservation not found", "Error fetching reservation")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", reservation)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	reservation.ID = primitive.NilObjectID
	reservation.BookingID = models.NewBookingID()
	reservation.Normalize()

	if err := rc.Store.Insert(c.Request.Context(), &reservation); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error creating reservation", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	existing, err := rc.Store.FindByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Reservation not found", "Error updating reservation")
		return
	}

	var reservation models.Reservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	reservation.ID = existing.ID
	reservation.BookingID = existing.BookingID
	reservation.CreatedAt = existing.CreatedAt
	reservation.Normalize()

	if err := rc.Store.Replace(c.Request.Context(), existing.BookingID, &reservation); err != nil {
		respondStoreError(c, err, "Reservation not found", "Error updating reservation")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		utils.RespondError(c, http.StatusBadRequest, "Status is required", nil)
		return
	}
	if !models.ReservationTransitions.Knows(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, "Validation error",
			fmt.Errorf("'%s' is not a valid reservation status", body.Status))
		return
	}

	reservation, err := rc.Store.FindByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Reservation not found", "Error updating reservation status")
		return
	}

	if rc.strictTransitions && reservation.Status != body.Status &&
		!models.ReservationTransitions.Allowed(reservation.Status, body.Status) {
		utils.RespondError(c, http.StatusBadRequest, "Validation error",
			fmt.Errorf("cannot move reservation from '%s' to '%s'", reservation.Status, body.Status))
		return
	}

	reservation.Status = body.Status
	if err := rc.Store.Replace(c.Request.Context(), reservation.BookingID, reservation); err != nil {
		respondStoreError(c, err, "Reservation not found", "Error updating reservation status")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated successfully", reservation)
}

func (rc *ReservationController) UpdateReservationByEmail(c *gin.Context) {
	rc.patchReservation(c, func() (*models.Reservation, error) {
		return rc.Store.FindByEmail(c.Request.Context(), strings.ToLower(c.Param("email")))
	}, "Reservation not found with provided email")
}

func (rc *ReservationController) UpdateReservationByID(c *gin.Context) {
	rc.patchReservation(c, func() (*models.Reservation, error) {
		return rc.Store.FindByBookingID(c.Request.Context(), c.Param("id"))
	}, "Reservation not found with provided ID")
}

func (rc *ReservationController) patchReservation(c *gin.Context, find func() (*models.Reservation, error), notFoundMsg string) {
	var patch models.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}
	if patch.Empty() {
		utils.RespondError(c, http.StatusBadRequest, "No data provided for update", nil)
		return
	}

	reservation, err := find()
	if err != nil {
		respondStoreError(c, err, notFoundMsg, "Error updating reservation")
		return
	}

	if err := reservation.ApplyPatch(patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	if err := rc.Store.Replace(c.Request.Context(), reservation.BookingID, reservation); err != nil {
		respondStoreError(c, err, notFoundMsg, "Error updating reservation")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	if err := rc.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Reservation not found", "Error deleting reservation")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", nil)
}

func (rc *ReservationController) GetReservationStats(c *gin.Context) {
	stats, err := rc.Store.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching statistics", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", stats)
}
