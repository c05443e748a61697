package utils

import (
	"errors"
	"net/http"

	"main/model"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  int         `json:"-"`                 // HTTP status code
	Message string      `json:"message,omitempty"` // Optional message
	Error   string      `json:"error,omitempty"`   // Error message
	Data    interface{} `json:"data,omitempty"`    // Response data
}

// Success responses
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Status: http.StatusOK,
		Data:   data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Status:  http.StatusCreated,
		Message: "Resource created successfully",
		Data:    data,
	})
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{
		Status: http.StatusUnauthorized,
		Error:  message,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Status: http.StatusNotFound,
		Error:  message,
	})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, &Response{
		Status: http.StatusInternalServerError,
		Error:  message,
	})
}

func TooManyRequests(c *gin.Context, message string, data ...interface{}) {
	response := &Response{
		Status: http.StatusTooManyRequests,
		Error:  message,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	c.JSON(http.StatusTooManyRequests, response)
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, &Response{
		Status: http.StatusConflict,
		Error:  message,
	})
}

func UnprocessableEntity(c *gin.Context, message string, data ...interface{}) {
	response := &Response{
		Status: http.StatusUnprocessableEntity,
		Error:  message,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	c.JSON(http.StatusUnprocessableEntity, response)
}

// Error maps an engine error to its HTTP status by taxonomy. Optional data
// (e.g. evaluator feedback for a safety rejection) rides along in the body.
func Error(c *gin.Context, err error, data ...interface{}) {
	switch {
	case errors.Is(err, model.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, model.ErrDuplicate):
		Conflict(c, err.Error())
	case errors.Is(err, model.ErrSafetyRejected):
		UnprocessableEntity(c, err.Error(), data...)
	case errors.Is(err, model.ErrRateLimited):
		TooManyRequests(c, err.Error(), data...)
	case errors.Is(err, model.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, model.ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, model.ErrInvalidState):
		UnprocessableEntity(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
