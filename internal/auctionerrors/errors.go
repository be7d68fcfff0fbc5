package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAdNotFound         = errors.New("ad not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Request validation errors
var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidBid      = errors.New("invalid bid")
	ErrImmutableField  = errors.New("field cannot be modified directly")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// business logic errors
var (
	ErrBidTooLow  = errors.New("bid amount too low")
	ErrRoomClosed = errors.New("room closed for bidding")
	ErrAdLocked   = errors.New("ad is locked once bidding has started")
	ErrTimeout    = errors.New("timed out waiting for room")
)
