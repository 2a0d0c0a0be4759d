package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every endpoint answers with.
type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondList answers a listing with its element count alongside the data.
func RespondList(c *gin.Context, code int, data interface{}, count int) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Data:    data,
		Count:   &count,
	})
}

// RespondError writes a failure envelope. err may be nil when the message
// alone says enough (e.g. plain not-found responses).
func RespondError(c *gin.Context, code int, message string, err error) {
	resp := JSONResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(code, resp)
}
