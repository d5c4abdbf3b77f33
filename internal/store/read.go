package store

import "hotelinfinity/pkg/model"

// Readers return deep copies in store order; callers may modify them freely.

func (s *Store) Rooms() []model.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRooms(s.rooms)
}

func (s *Store) Room(id string) (model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return model.Room{}, false
}

func (s *Store) PartyHalls() []model.PartyHall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHalls(s.halls)
}

func (s *Store) PartyHall(id string) (model.PartyHall, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.halls {
		if h.ID == id {
			return h.Clone(), true
		}
	}
	return model.PartyHall{}, false
}

func (s *Store) Reviews() []model.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Review(nil), s.reviews...)
}

func (s *Store) Bookings() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Booking(nil), s.bookings...)
}

func (s *Store) Booking(id string) (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// CurrentUser returns the session identity, or nil when Anonymous.
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Snapshot is a consistent copy of all four collections.
type Snapshot struct {
	Rooms      []model.Room
	PartyHalls []model.PartyHall
	Reviews    []model.Review
	Bookings   []model.Booking
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Rooms:      cloneRooms(s.rooms),
		PartyHalls: cloneHalls(s.halls),
		Reviews:    append([]model.Review(nil), s.reviews...),
		Bookings:   append([]model.Booking(nil), s.bookings...),
	}
}

func cloneRooms(in []model.Room) []model.Room {
	out := make([]model.Room, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func cloneHalls(in []model.PartyHall) []model.PartyHall {
	out := make([]model.PartyHall, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}
