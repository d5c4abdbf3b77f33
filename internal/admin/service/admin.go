package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	adminerrors "hotelinfinity/internal/admin/errors"
	"hotelinfinity/internal/admin/auth"
	"hotelinfinity/internal/admin/validator"
	"hotelinfinity/internal/stats"
	"hotelinfinity/internal/store"
	apperrors "hotelinfinity/pkg/errors"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/model"
)

// Store is the part of the state store the back office drives.
type Store interface {
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context)
	Register(ctx context.Context, email, password, name string) bool
	CurrentUser() *model.User
	UpdateRoomPrice(ctx context.Context, roomID string, price int64) bool
	UpdateHallPrice(ctx context.Context, hallID string, price int64) bool
	UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) bool
	Room(id string) (model.Room, bool)
	PartyHall(id string) (model.PartyHall, bool)
	Booking(id string) (model.Booking, bool)
	Bookings() []model.Booking
	Snapshot() store.Snapshot
}

type LoginResult struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type SessionInfo struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user,omitempty"`
}

type AdminService interface {
	Login(ctx context.Context, creds *model.Credentials) (*LoginResult, error)
	Register(ctx context.Context, reg *model.Registration) (*LoginResult, error)
	Logout(ctx context.Context)
	Session(ctx context.Context) SessionInfo
	UpdateRoomPrice(ctx context.Context, id string, update *model.PriceUpdate) (model.Room, error)
	UpdateHallPrice(ctx context.Context, id string, update *model.PriceUpdate) (model.PartyHall, error)
	ListBookings(ctx context.Context) []model.Booking
	UpdateBookingStatus(ctx context.Context, id string, update *model.BookingStatusUpdate) (model.Booking, error)
	Stats(ctx context.Context) stats.Dashboard
	auth.SessionVerifier
}

type adminService struct {
	store      Store
	tokens     *auth.TokenManager
	validator  *validator.AdminValidator
	log        *logger.Logger
	generation atomic.Uint64
}

func NewAdminService(store Store, tokens *auth.TokenManager, validator *validator.AdminValidator, log *logger.Logger) AdminService {
	s := &adminService{
		store:     store,
		tokens:    tokens,
		validator: validator,
		log:       log,
	}
	// Tokens from a previous process never match a fresh generation.
	s.generation.Store(rand.Uint64())
	return s
}

func (s *adminService) Login(ctx context.Context, creds *model.Credentials) (*LoginResult, error) {
	if err := s.validator.ValidateCredentials(creds); err != nil {
		return nil, validationError("Invalid login request", err)
	}

	if !s.store.Login(ctx, creds.Email, creds.Password) {
		return nil, apperrors.Wrap(adminerrors.ErrInvalidCredentials, apperrors.CodeUnauthorized, "Invalid email or password", http.StatusUnauthorized)
	}
	return s.issue()
}

func (s *adminService) Register(ctx context.Context, reg *model.Registration) (*LoginResult, error) {
	if err := s.validator.ValidateRegistration(reg); err != nil {
		return nil, validationError("Invalid registration request", err)
	}

	if !s.store.Register(ctx, reg.Email, reg.Password, reg.Name) {
		return nil, apperrors.Wrap(adminerrors.ErrRegistrationRejected, apperrors.CodeUnauthorized, "Registration failed", http.StatusUnauthorized)
	}
	return s.issue()
}

func (s *adminService) issue() (*LoginResult, error) {
	user := s.store.CurrentUser()
	if user == nil {
		return nil, apperrors.Internal("Session was not established", adminerrors.ErrSessionEnded)
	}

	token, expiresAt, err := s.tokens.Issue(*user, s.generation.Load())
	if err != nil {
		s.log.Error("Failed to issue admin token", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &LoginResult{User: *user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout ends the session and invalidates every token issued so far.
func (s *adminService) Logout(ctx context.Context) {
	s.generation.Add(1)
	s.store.Logout(ctx)
}

func (s *adminService) Session(_ context.Context) SessionInfo {
	user := s.store.CurrentUser()
	return SessionInfo{Authenticated: user != nil, User: user}
}

// VerifySession accepts claims only while the store is still authenticated
// as the token's user and no logout happened since the token was issued.
func (s *adminService) VerifySession(claims *auth.Claims) error {
	if claims.Generation != s.generation.Load() {
		return adminerrors.ErrSessionEnded
	}
	user := s.store.CurrentUser()
	if user == nil || user.ID != claims.Subject || user.Email != claims.Email {
		return adminerrors.ErrSessionEnded
	}
	return nil
}

func (s *adminService) UpdateRoomPrice(ctx context.Context, id string, update *model.PriceUpdate) (model.Room, error) {
	if err := s.validator.ValidatePriceUpdate(update); err != nil {
		return model.Room{}, validationError("Invalid price", err)
	}
	if !s.store.UpdateRoomPrice(ctx, id, *update.Price) {
		return model.Room{}, notFound(adminerrors.ErrRoomNotFound, "Room", id)
	}

	room, ok := s.store.Room(id)
	if !ok {
		return model.Room{}, notFound(adminerrors.ErrRoomNotFound, "Room", id)
	}
	s.log.Info("Room price changed by admin", "room_id", id, "price", room.Price)
	return room, nil
}

func (s *adminService) UpdateHallPrice(ctx context.Context, id string, update *model.PriceUpdate) (model.PartyHall, error) {
	if err := s.validator.ValidatePriceUpdate(update); err != nil {
		return model.PartyHall{}, validationError("Invalid price", err)
	}
	if !s.store.UpdateHallPrice(ctx, id, *update.Price) {
		return model.PartyHall{}, notFound(adminerrors.ErrHallNotFound, "Party hall", id)
	}

	hall, ok := s.store.PartyHall(id)
	if !ok {
		return model.PartyHall{}, notFound(adminerrors.ErrHallNotFound, "Party hall", id)
	}
	s.log.Info("Hall price changed by admin", "hall_id", id, "price", hall.Price)
	return hall, nil
}

func (s *adminService) ListBookings(_ context.Context) []model.Booking {
	return s.store.Bookings()
}

func (s *adminService) UpdateBookingStatus(ctx context.Context, id string, update *model.BookingStatusUpdate) (model.Booking, error) {
	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		return model.Booking{}, validationError("Invalid booking status", err)
	}
	if !s.store.UpdateBookingStatus(ctx, id, update.Status) {
		return model.Booking{}, notFound(adminerrors.ErrBookingNotFound, "Booking", id)
	}

	booking, ok := s.store.Booking(id)
	if !ok {
		return model.Booking{}, notFound(adminerrors.ErrBookingNotFound, "Booking", id)
	}
	return booking, nil
}

func (s *adminService) Stats(_ context.Context) stats.Dashboard {
	snap := s.store.Snapshot()
	return stats.Build(snap.Rooms, snap.PartyHalls, snap.Bookings, snap.Reviews)
}

func notFound(sentinel error, resource, id string) error {
	appErr := apperrors.NotFoundWithID(resource, id)
	appErr.Err = sentinel
	return appErr
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
