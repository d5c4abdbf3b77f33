package model

import "slices"

// PartyHall is an event venue. Capacity is the maximum number of attendees.
type PartyHall struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Price       int64    `json:"price"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Available   bool     `json:"available"`
	Description string   `json:"description"`
}

func (h PartyHall) Clone() PartyHall {
	h.Amenities = slices.Clone(h.Amenities)
	h.Images = slices.Clone(h.Images)
	return h
}
