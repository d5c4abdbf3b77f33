package errors

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrRegistrationRejected = errors.New("registration rejected")

	ErrSessionEnded = errors.New("admin session has ended")

	ErrRoomNotFound = errors.New("room not found")

	ErrHallNotFound = errors.New("party hall not found")

	ErrBookingNotFound = errors.New("booking not found")
)
