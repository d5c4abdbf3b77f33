package errors

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")

	ErrHallNotFound = errors.New("party hall not found")
)
