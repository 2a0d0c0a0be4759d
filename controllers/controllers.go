package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Waqasabid99/rms-backend/store"
	"github.com/Waqasabid99/rms-backend/utils"
)

// listParamsFromQuery reads the common list filters off the request.
func listParamsFromQuery(c *gin.Context) store.ListParams {
	return store.ListParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sortBy", "createdAt"),
		Order:  c.DefaultQuery("order", "desc"),
	}
}

func userSearchParamsFromQuery(c *gin.Context) store.UserSearchParams {
	return store.UserSearchParams{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Phone: c.Query("phone"),
	}
}

// respondStoreError maps a store/model failure onto the error taxonomy:
// not-found → 404, validation → 400 with the original message, anything
// else → 500.
func respondStoreError(c *gin.Context, err error, notFoundMsg, failureMsg string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, notFoundMsg, nil)
	case utils.IsValidationError(err):
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, failureMsg, err)
	}
}
