package model

type BookingType string

const (
	BookingTypeRoom BookingType = "room"
	BookingTypeHall BookingType = "hall"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

func (s BookingStatus) Valid() bool {
	for _, status := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Booking references a room or a hall depending on Type. RoomID and HallID
// are plain associative fields; nothing checks that they point at an
// existing entity.
type Booking struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customerName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	CheckIn      string        `json:"checkIn"`
	CheckOut     string        `json:"checkOut"`
	RoomID       string        `json:"roomId,omitempty"`
	HallID       string        `json:"hallId,omitempty"`
	Type         BookingType   `json:"type"`
	Guests       int           `json:"guests"`
	TotalAmount  int64         `json:"totalAmount"`
	Status       BookingStatus `json:"status"`
	PaymentID    string        `json:"paymentId,omitempty"`
	CreatedAt    string        `json:"createdAt"`
}

// NewBooking is a booking request before an id and creation time are
// assigned.
type NewBooking struct {
	CustomerName string        `json:"customerName" validate:"required,min=2,max=100"`
	Email        string        `json:"email" validate:"required,email"`
	Phone        string        `json:"phone" validate:"required,e164"`
	CheckIn      string        `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut     string        `json:"checkOut" validate:"required,datetime=2006-01-02"`
	RoomID       string        `json:"roomId,omitempty" validate:"omitempty,max=64"`
	HallID       string        `json:"hallId,omitempty" validate:"omitempty,max=64"`
	Type         BookingType   `json:"type" validate:"required,oneof=room hall"`
	Guests       int           `json:"guests" validate:"required,min=1"`
	TotalAmount  int64         `json:"totalAmount" validate:"min=0"`
	Status       BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentID    string        `json:"paymentId,omitempty" validate:"omitempty,max=100"`
}

type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}
