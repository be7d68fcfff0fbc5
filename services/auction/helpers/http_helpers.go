package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/utils"

	"github.com/gin-gonic/gin"
)

// Stable error kinds returned to clients
const (
	KindValidation         = "validation_error"
	KindUnauthenticated    = "unauthenticated"
	KindNotFound           = "not_found"
	KindBidTooLow          = "bid_too_low"
	KindRoomClosed         = "room_closed"
	KindAdLocked           = "ad_locked"
	KindTimeout            = "timeout"
	KindStorageUnavailable = "storage_unavailable"
	KindInternal           = "internal"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, KindValidation, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err to its HTTP response and logs it
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, kind, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, kind, err, message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["kind"] = kind
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code, error kind and message
func MapErrorToHTTP(err error) (int, string, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrImmutableField):
		return http.StatusBadRequest, KindValidation, "field cannot be modified"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, KindValidation, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrValidation):
		return http.StatusBadRequest, KindValidation, "invalid ad details"
	case errors.Is(err, auctionerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, KindUnauthenticated, "authentication required"
	case errors.Is(err, auctionerrors.ErrAdNotFound):
		return http.StatusNotFound, KindNotFound, "ad not found"
	case errors.Is(err, auctionerrors.ErrRoomNotFound):
		return http.StatusNotFound, KindNotFound, "auction room not found"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, KindBidTooLow, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrRoomClosed):
		return http.StatusConflict, KindRoomClosed, "auction room is closed"
	case errors.Is(err, auctionerrors.ErrAdLocked):
		return http.StatusConflict, KindAdLocked, "ad can no longer be repriced"
	case errors.Is(err, auctionerrors.ErrTimeout):
		return http.StatusServiceUnavailable, KindTimeout, "auction room is busy, try again"
	case errors.Is(err, auctionerrors.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, KindStorageUnavailable, "storage temporarily unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, KindTimeout, "request timed out or was cancelled"
	default:
		return http.StatusInternalServerError, KindInternal, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
