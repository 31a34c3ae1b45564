package domain

import "errors"

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room type not found")
)

var (
	ErrCapacityExceeded = errors.New("guest count exceeds room capacity")
	ErrValidation       = errors.New("validation error")
)
