package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	"ALREADY_EXISTS":      http.StatusConflict,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"HAS_CHILDREN":        http.StatusConflict,
	"HAS_PRODUCTS":        http.StatusConflict,
	"CIRCULAR_REFERENCE":  http.StatusConflict,
	"MAX_DEPTH_EXCEEDED":  http.StatusConflict,
	"ALREADY_ACTIVE":      http.StatusConflict,
	"ALREADY_INACTIVE":    http.StatusConflict,
	"NOT_PURCHASED":       http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"EMPTY_ORDER":         http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":    http.StatusUnprocessableEntity,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DISABLED":    http.StatusForbidden,
	"ITEM_NOT_FOUND":      http.StatusNotFound,
	"SUB_ORDER_NOT_FOUND": http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code. Validation
// failures (INVALID_*) map to 400; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
