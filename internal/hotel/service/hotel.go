package service

import (
	"context"
	"errors"

	hotelerrors "hotelinfinity/internal/hotel/errors"
	"hotelinfinity/internal/hotel/validator"
	apperrors "hotelinfinity/pkg/errors"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/model"
	"hotelinfinity/pkg/sanitizer"
)

// Store is the part of the state store the public site reads and writes.
type Store interface {
	Rooms() []model.Room
	Room(id string) (model.Room, bool)
	PartyHalls() []model.PartyHall
	PartyHall(id string) (model.PartyHall, bool)
	Reviews() []model.Review
	AddReview(ctx context.Context, review model.NewReview) model.Review
	AddBooking(ctx context.Context, booking model.NewBooking) model.Booking
}

type HotelService interface {
	ListRooms(ctx context.Context) []model.Room
	GetRoom(ctx context.Context, id string) (model.Room, error)
	ListHalls(ctx context.Context) []model.PartyHall
	GetHall(ctx context.Context, id string) (model.PartyHall, error)
	ListReviews(ctx context.Context) []model.Review
	AddReview(ctx context.Context, review *model.NewReview) (model.Review, error)
	CreateBooking(ctx context.Context, booking *model.NewBooking) (model.Booking, error)
}

type hotelService struct {
	store     Store
	validator *validator.HotelValidator
	log       *logger.Logger
}

func NewHotelService(store Store, validator *validator.HotelValidator, log *logger.Logger) HotelService {
	return &hotelService{
		store:     store,
		validator: validator,
		log:       log,
	}
}

func (s *hotelService) ListRooms(_ context.Context) []model.Room {
	return s.store.Rooms()
}

func (s *hotelService) GetRoom(_ context.Context, id string) (model.Room, error) {
	if id == "" {
		return model.Room{}, apperrors.InvalidInput("Room ID cannot be empty")
	}
	room, ok := s.store.Room(id)
	if !ok {
		return model.Room{}, notFound(hotelerrors.ErrRoomNotFound, "Room", id)
	}
	return room, nil
}

func (s *hotelService) ListHalls(_ context.Context) []model.PartyHall {
	return s.store.PartyHalls()
}

func (s *hotelService) GetHall(_ context.Context, id string) (model.PartyHall, error) {
	if id == "" {
		return model.PartyHall{}, apperrors.InvalidInput("Party hall ID cannot be empty")
	}
	hall, ok := s.store.PartyHall(id)
	if !ok {
		return model.PartyHall{}, notFound(hotelerrors.ErrHallNotFound, "Party hall", id)
	}
	return hall, nil
}

func (s *hotelService) ListReviews(_ context.Context) []model.Review {
	return s.store.Reviews()
}

func (s *hotelService) AddReview(ctx context.Context, review *model.NewReview) (model.Review, error) {
	s.sanitizeReview(review)
	if err := s.validator.ValidateReview(review); err != nil {
		s.log.Warn("Review validation failed", "error", err)
		return model.Review{}, validationError("Invalid review", err)
	}

	created := s.store.AddReview(ctx, *review)
	s.log.Info("Review submitted successfully", "id", created.ID, "rating", created.Rating)
	return created, nil
}

// CreateBooking validates the request shape only. The store records the
// booking as given, without availability or overlap checks.
func (s *hotelService) CreateBooking(ctx context.Context, booking *model.NewBooking) (model.Booking, error) {
	s.sanitizeBooking(booking)
	if err := s.validator.ValidateBooking(booking); err != nil {
		s.log.Warn("Booking validation failed", "type", booking.Type, "error", err)
		return model.Booking{}, validationError("Invalid booking", err)
	}

	created := s.store.AddBooking(ctx, *booking)
	s.log.Info("Booking created successfully",
		"id", created.ID,
		"type", created.Type,
		"check_in", created.CheckIn,
		"check_out", created.CheckOut,
	)
	return created, nil
}

func (s *hotelService) sanitizeReview(r *model.NewReview) {
	r.CustomerName = sanitizer.TrimAndNormalize(r.CustomerName)
	r.Comment = sanitizer.NormalizeText(r.Comment)
	r.Image = sanitizer.NormalizeURL(r.Image)
	r.RoomType = sanitizer.TrimAndNormalize(r.RoomType)
}

func (s *hotelService) sanitizeBooking(b *model.NewBooking) {
	b.CustomerName = sanitizer.TrimAndNormalize(b.CustomerName)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
	b.CheckIn = sanitizer.TrimAndNormalize(b.CheckIn)
	b.CheckOut = sanitizer.TrimAndNormalize(b.CheckOut)
	b.RoomID = sanitizer.TrimAndNormalize(b.RoomID)
	b.HallID = sanitizer.TrimAndNormalize(b.HallID)
	b.PaymentID = sanitizer.TrimAndNormalize(b.PaymentID)
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
