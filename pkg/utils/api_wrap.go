package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	if ib, ok := IsInsufficientBalance(err); ok {
		// 402 is the routine "buy more credits" path, not a fault
		respond(c, http.StatusPaymentRequired, "Insufficient credits", gin.H{
			"required":  ib.Required,
			"available": ib.Available,
		})
		return
	}

	switch {
	case errors.Is(err, ErrAccountNotFound):
		respond(c, http.StatusNotFound, "Account not found", nil)
	case errors.Is(err, ErrPackageNotFound):
		respond(c, http.StatusNotFound, "Package not found", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, ErrEmailAlreadyExists):
		respond(c, http.StatusBadRequest, "Email already registered", nil)
	case errors.Is(err, ErrUnknownActionKind):
		respond(c, http.StatusBadRequest, "Unknown action kind", nil)
	case errors.Is(err, ErrInvalidGrant):
		respond(c, http.StatusBadRequest, "Grant amount must be positive", nil)
	case errors.Is(err, ErrInvalidDebit):
		respond(c, http.StatusBadRequest, "Debit amount must not be negative", nil)
	case errors.Is(err, ErrPersistenceUnavailable):
		log.Printf("Credit store unavailable: %v", err)
		respond(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry", nil)
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
	default:
		log.Printf("Unknown error: %v", err)
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
