package model

import "slices"

type RoomType string

const (
	RoomTypeAC    RoomType = "AC"
	RoomTypeNonAC RoomType = "Non-AC"
)

// Room is a bookable guest room. Price is a whole amount in the display
// currency; Available is an independent flag and is never derived from
// bookings.
type Room struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        RoomType `json:"type"`
	Price       int64    `json:"price"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Available   bool     `json:"available"`
	Description string   `json:"description"`
}

func (r Room) Clone() Room {
	r.Amenities = slices.Clone(r.Amenities)
	r.Images = slices.Clone(r.Images)
	return r
}

// PriceUpdate is the body of an admin price change for a room or a hall.
type PriceUpdate struct {
	Price *int64 `json:"price" validate:"required,min=0"`
}
