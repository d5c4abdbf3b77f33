// Package store holds the application state: rooms, party halls, reviews,
// bookings and the admin session. It is the only component that mutates
// them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"hotelinfinity/internal/events"
	"hotelinfinity/internal/session"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/metrics"
	"hotelinfinity/pkg/model"

	"github.com/google/uuid"
)

// DefaultSessionTimeout bounds session backend calls unless
// WithSessionTimeout says otherwise.
const DefaultSessionTimeout = 5 * time.Second

// Store serializes every operation behind one lock, so each call runs to
// completion without interleaving with another mutation. Session backend
// I/O runs under sessionMu instead, so a slow backend never holds up readers.
type Store struct {
	mu       sync.RWMutex
	rooms    []model.Room
	halls    []model.PartyHall
	reviews  []model.Review
	bookings []model.Booking
	user     *model.User

	sessionMu      sync.Mutex
	admin          AdminAccount
	sessions       session.Store
	sessionTimeout time.Duration
	ids            IDGenerator
	now            func() time.Time
	log            *logger.Logger
	publisher      events.Publisher
	metrics        *metrics.Metrics
}

type Option func(*Store)

func WithSessionStore(s session.Store) Option {
	return func(st *Store) { st.sessions = s }
}

// WithSessionTimeout bounds each call to the session backend.
func WithSessionTimeout(d time.Duration) Option {
	return func(st *Store) {
		if d > 0 {
			st.sessionTimeout = d
		}
	}
}

func WithIDGenerator(g IDGenerator) Option {
	return func(st *Store) { st.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

func WithLogger(log *logger.Logger) Option {
	return func(st *Store) { st.log = log }
}

func WithPublisher(p events.Publisher) Option {
	return func(st *Store) { st.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(st *Store) { st.metrics = m }
}

// New returns an empty store. Call Initialize before serving traffic.
func New(admin AdminAccount, opts ...Option) *Store {
	s := &Store{
		admin:          admin,
		sessions:       session.NewMemoryStore(),
		sessionTimeout: DefaultSessionTimeout,
		ids:            uuidGenerator{},
		now:            time.Now,
		log:            logger.Discard(),
		publisher:      events.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds all four collections in one step and then restores any
// persisted session.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.rooms = seedRooms()
	s.halls = seedPartyHalls()
	s.reviews = seedReviews()
	s.bookings = seedBookings()
	counts := []any{
		"rooms", len(s.rooms),
		"party_halls", len(s.halls),
		"reviews", len(s.reviews),
		"bookings", len(s.bookings),
	}
	s.mu.Unlock()

	s.log.Info("State store seeded", counts...)

	s.RestoreSession(ctx)
}

// UpdateRoomPrice reports whether a room with roomID existed. An unknown id
// leaves the collection untouched.
func (s *Store) UpdateRoomPrice(ctx context.Context, roomID string, price int64) bool {
	s.mu.Lock()
	matched := false
	for i := range s.rooms {
		if s.rooms[i].ID == roomID {
			s.rooms[i].Price = price
			matched = true
			break
		}
	}
	s.mu.Unlock()

	s.metrics.ObserveStoreOperation("update_room_price", matched)
	if !matched {
		s.log.Debug("Room price update ignored: unknown room", "room_id", roomID)
		return false
	}

	s.log.Info("Room price updated", "room_id", roomID, "price", price)
	s.publish(ctx, events.RoomPriceUpdated, roomID, map[string]any{"roomId": roomID, "price": price})
	return true
}

func (s *Store) UpdateHallPrice(ctx context.Context, hallID string, price int64) bool {
	s.mu.Lock()
	matched := false
	for i := range s.halls {
		if s.halls[i].ID == hallID {
			s.halls[i].Price = price
			matched = true
			break
		}
	}
	s.mu.Unlock()

	s.metrics.ObserveStoreOperation("update_hall_price", matched)
	if !matched {
		s.log.Debug("Hall price update ignored: unknown hall", "hall_id", hallID)
		return false
	}

	s.log.Info("Hall price updated", "hall_id", hallID, "price", price)
	s.publish(ctx, events.HallPriceUpdated, hallID, map[string]any{"hallId": hallID, "price": price})
	return true
}

// AddReview stamps the review with a fresh id and today's UTC date and puts
// it first.
func (s *Store) AddReview(ctx context.Context, in model.NewReview) model.Review {
	s.mu.Lock()
	review := model.Review{
		ID:           s.ids.NewID(),
		CustomerName: in.CustomerName,
		Rating:       in.Rating,
		Comment:      in.Comment,
		Image:        in.Image,
		Date:         s.now().UTC().Format(model.DateLayout),
		RoomType:     in.RoomType,
	}
	s.reviews = prepend(s.reviews, review)
	s.mu.Unlock()

	s.metrics.ObserveStoreOperation("add_review", true)
	s.log.Info("Review added", "review_id", review.ID, "rating", review.Rating)
	s.publish(ctx, events.ReviewAdded, review.ID, review)
	return review
}

// AddBooking stamps the booking with a fresh id and the current time and
// puts it first. Room and hall ids are stored as given.
func (s *Store) AddBooking(ctx context.Context, in model.NewBooking) model.Booking {
	status := in.Status
	if status == "" {
		status = model.BookingStatusPending
	}

	s.mu.Lock()
	booking := model.Booking{
		ID:           s.ids.NewID(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		CheckIn:      in.CheckIn,
		CheckOut:     in.CheckOut,
		RoomID:       in.RoomID,
		HallID:       in.HallID,
		Type:         in.Type,
		Guests:       in.Guests,
		TotalAmount:  in.TotalAmount,
		Status:       status,
		PaymentID:    in.PaymentID,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}
	s.bookings = prepend(s.bookings, booking)
	s.mu.Unlock()

	s.metrics.ObserveStoreOperation("add_booking", true)
	s.log.Info("Booking added",
		"booking_id", booking.ID,
		"type", booking.Type,
		"room_id", booking.RoomID,
		"hall_id", booking.HallID,
		"total_amount", booking.TotalAmount,
	)
	s.publish(ctx, events.BookingCreated, booking.ID, booking)
	return booking
}

// UpdateBookingStatus accepts any transition. An unknown id is a no-op.
func (s *Store) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) bool {
	s.mu.Lock()
	matched := false
	var previous model.BookingStatus
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			previous = s.bookings[i].Status
			s.bookings[i].Status = status
			matched = true
			break
		}
	}
	s.mu.Unlock()

	s.metrics.ObserveStoreOperation("update_booking_status", matched)
	if !matched {
		s.log.Debug("Booking status update ignored: unknown booking", "booking_id", bookingID)
		return false
	}

	s.log.Info("Booking status updated", "booking_id", bookingID, "from", previous, "to", status)
	s.publish(ctx, events.BookingStatusUpdated, bookingID, map[string]any{
		"bookingId": bookingID,
		"from":      previous,
		"to":        status,
	})
	return true
}

// Login succeeds only for the exact admin credential pair. On failure the
// session is left as it was.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	if !s.admin.Matches(email, password) {
		s.metrics.ObserveLogin(false)
		s.log.Warn("Login rejected", "email", email)
		return false
	}

	user := s.admin.User()

	s.sessionMu.Lock()
	s.setUser(&user)
	s.persistSession(ctx, user)
	s.sessionMu.Unlock()

	s.metrics.ObserveLogin(true)
	s.log.Info("Admin logged in", "user_id", user.ID, "email", user.Email)
	s.publish(ctx, events.SessionLogin, user.ID, user)
	return true
}

// Logout clears the session in memory and in persisted storage. The delete
// still runs when ctx is already cancelled.
func (s *Store) Logout(ctx context.Context) {
	s.sessionMu.Lock()
	previous := s.setUser(nil)
	sctx, cancel := s.sessionContext(ctx)
	if err := s.sessions.Delete(sctx); err != nil {
		s.log.Error("Failed to remove persisted session", "key", session.Key, "error", err)
	}
	cancel()
	s.sessionMu.Unlock()

	if previous == nil {
		return
	}
	s.log.Info("Admin logged out", "user_id", previous.ID)
	s.publish(ctx, events.SessionLogout, previous.ID, nil)
}

// Register only succeeds for the admin email, and then only through Login.
// name is accepted for interface compatibility and otherwise unused.
func (s *Store) Register(ctx context.Context, email, password, name string) bool {
	if email != s.admin.Email {
		s.log.Warn("Registration rejected", "email", email, "name", name)
		return false
	}
	return s.Login(ctx, email, password)
}

// RestoreSession adopts the persisted identity without checking any
// credentials. Missing, unreadable or malformed data all mean Anonymous.
func (s *Store) RestoreSession(ctx context.Context) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	user := s.loadSession(ctx)
	s.setUser(user)
	if user != nil {
		s.log.Info("Session restored", "user_id", user.ID, "email", user.Email)
	}
}

func (s *Store) loadSession(ctx context.Context) *model.User {
	sctx, cancel := s.sessionContext(ctx)
	defer cancel()

	payload, err := s.sessions.Load(sctx)
	if errors.Is(err, session.ErrNotFound) {
		s.log.Debug("No persisted session")
		return nil
	}
	if err != nil {
		s.log.Error("Failed to read persisted session", "key", session.Key, "error", err)
		return nil
	}

	var user model.User
	if err := json.Unmarshal(payload, &user); err != nil || !validSessionUser(user) {
		s.log.Warn("Ignoring malformed persisted session", "key", session.Key, "error", err)
		return nil
	}
	return &user
}

func validSessionUser(u model.User) bool {
	return u.ID != "" && u.Email != "" && u.Role == model.RoleAdmin
}

// setUser swaps the in-memory session and returns the previous one.
func (s *Store) setUser(user *model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.user
	s.user = user
	return previous
}

// sessionContext detaches backend calls from request cancellation and bounds
// them by the session timeout.
func (s *Store) sessionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.sessionTimeout)
}

// persistSession must be called with s.sessionMu held.
func (s *Store) persistSession(ctx context.Context, user model.User) {
	payload, err := json.Marshal(user)
	if err == nil {
		sctx, cancel := s.sessionContext(ctx)
		err = s.sessions.Save(sctx, payload)
		cancel()
	}
	if err != nil {
		s.log.Error("Failed to persist session", "key", session.Key, "error", err)
	}
}

func (s *Store) publish(ctx context.Context, eventType events.Type, key string, payload any) {
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: s.now().UTC(),
		Payload:    payload,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish event", "type", eventType, "key", key, "error", err)
	}
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}
