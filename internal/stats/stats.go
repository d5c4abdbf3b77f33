// Package stats computes the admin dashboard figures from store snapshots.
package stats

import "hotelinfinity/pkg/model"

type InventorySummary struct {
	Total      int   `json:"total"`
	Available  int   `json:"available"`
	TotalValue int64 `json:"totalValue"`
}

type BookingSummary struct {
	Total    int                         `json:"total"`
	ByStatus map[model.BookingStatus]int `json:"byStatus"`
	ByType   map[model.BookingType]int   `json:"byType"`
	// Revenue counts confirmed and completed bookings only.
	Revenue int64 `json:"revenue"`
}

type ReviewSummary struct {
	Total         int         `json:"total"`
	AverageRating float64     `json:"averageRating"`
	Histogram     map[int]int `json:"histogram"`
}

type Dashboard struct {
	Rooms      InventorySummary `json:"rooms"`
	PartyHalls InventorySummary `json:"partyHalls"`
	Bookings   BookingSummary   `json:"bookings"`
	Reviews    ReviewSummary    `json:"reviews"`
}

func Rooms(rooms []model.Room) InventorySummary {
	var s InventorySummary
	for _, r := range rooms {
		s.Total++
		s.TotalValue += r.Price
		if r.Available {
			s.Available++
		}
	}
	return s
}

func PartyHalls(halls []model.PartyHall) InventorySummary {
	var s InventorySummary
	for _, h := range halls {
		s.Total++
		s.TotalValue += h.Price
		if h.Available {
			s.Available++
		}
	}
	return s
}

func Bookings(bookings []model.Booking) BookingSummary {
	s := BookingSummary{
		ByStatus: make(map[model.BookingStatus]int, len(model.BookingStatuses)),
		ByType: map[model.BookingType]int{
			model.BookingTypeRoom: 0,
			model.BookingTypeHall: 0,
		},
	}
	for _, status := range model.BookingStatuses {
		s.ByStatus[status] = 0
	}

	for _, b := range bookings {
		s.Total++
		s.ByStatus[b.Status]++
		s.ByType[b.Type]++
		if earnsRevenue(b.Status) {
			s.Revenue += b.TotalAmount
		}
	}
	return s
}

func earnsRevenue(status model.BookingStatus) bool {
	return status == model.BookingStatusConfirmed || status == model.BookingStatusCompleted
}

func Reviews(reviews []model.Review) ReviewSummary {
	s := ReviewSummary{Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := 0
	for _, r := range reviews {
		s.Total++
		sum += r.Rating
		s.Histogram[r.Rating]++
	}
	if s.Total > 0 {
		s.AverageRating = float64(sum) / float64(s.Total)
	}
	return s
}

func Build(rooms []model.Room, halls []model.PartyHall, bookings []model.Booking, reviews []model.Review) Dashboard {
	return Dashboard{
		Rooms:      Rooms(rooms),
		PartyHalls: PartyHalls(halls),
		Bookings:   Bookings(bookings),
		Reviews:    Reviews(reviews),
	}
}
