package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	adminerrors "hotelinfinity/internal/admin/errors"
	"hotelinfinity/internal/admin/auth"
	"hotelinfinity/internal/admin/validator"
	"hotelinfinity/internal/events"
	"hotelinfinity/internal/store"
	apperrors "hotelinfinity/pkg/errors"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@hotelinfinity.com"
	adminPassword = "admin123"
)

type fixture struct {
	svc      AdminService
	store    *store.Store
	tokens   *auth.TokenManager
	recorder *events.Recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	account, err := store.NewAdminAccount(adminEmail, adminPassword, "Admin User", bcrypt.MinCost)
	require.NoError(t, err)

	rec := &events.Recorder{}
	st := store.New(account,
		store.WithIDGenerator(&store.SequentialIDs{Prefix: "id-"}),
		store.WithPublisher(rec),
	)
	st.Initialize(context.Background())

	log := logger.Discard()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return fixture{
		svc:      NewAdminService(st, tokens, validator.NewAdminValidator(log), log),
		store:    st,
		tokens:   tokens,
		recorder: rec,
	}
}

func (f fixture) login(t *testing.T) *LoginResult {
	t.Helper()
	res, err := f.svc.Login(context.Background(), &model.Credentials{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	return res
}

func price(p int64) *int64 { return &p }

func TestLogin(t *testing.T) {
	t.Run("admin credentials issue a token", func(t *testing.T) {
		f := newFixture(t)
		res := f.login(t)

		assert.Equal(t, "1", res.User.ID)
		assert.Equal(t, model.RoleAdmin, res.User.Role)
		assert.NotEmpty(t, res.Token)

		claims, err := f.tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.NoError(t, f.svc.VerifySession(claims))
	})

	t.Run("email must match exactly", func(t *testing.T) {
		f := newFixture(t)
		for _, email := range []string{"  " + adminEmail + " ", "ADMIN@hotelinfinity.com"} {
			_, err := f.svc.Login(context.Background(), &model.Credentials{Email: email, Password: adminPassword})
			assert.Error(t, err, email)
		}
		assert.False(t, f.store.IsAuthenticated())
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Login(context.Background(), &model.Credentials{Email: adminEmail, Password: "nope"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, adminerrors.ErrInvalidCredentials))
		assert.Equal(t, http.StatusUnauthorized, apperrors.AsAppError(err).HTTPStatus)
		assert.False(t, f.store.IsAuthenticated())
	})

	t.Run("malformed request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Login(context.Background(), &model.Credentials{Email: "admin"})

		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	})
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &model.Registration{Email: "guest@example.com", Password: "pw", Name: "Guest"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, adminerrors.ErrRegistrationRejected))
	assert.False(t, f.store.IsAuthenticated())

	res, err := f.svc.Register(ctx, &model.Registration{Email: adminEmail, Password: adminPassword, Name: "Someone Else"})
	require.NoError(t, err)
	assert.Equal(t, "Admin User", res.User.Name, "registration logs in as the admin")

	f.svc.Logout(ctx)
	res, err = f.svc.Register(ctx, &model.Registration{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err, "name is ignored")
	assert.Equal(t, "Admin User", res.User.Name)
}

func TestLogout_InvalidatesIssuedTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.login(t)
	f.svc.Logout(ctx)

	claims, err := f.tokens.Parse(first.Token)
	require.NoError(t, err, "the token itself is still well-formed")
	assert.ErrorIs(t, f.svc.VerifySession(claims), adminerrors.ErrSessionEnded)
	assert.False(t, f.svc.Session(ctx).Authenticated)

	second := f.login(t)
	claims, err = f.tokens.Parse(second.Token)
	require.NoError(t, err)
	assert.NoError(t, f.svc.VerifySession(claims))

	old, err := f.tokens.Parse(first.Token)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.VerifySession(old), adminerrors.ErrSessionEnded, "a new login does not revive older tokens")
}

func TestVerifySession_RequiresMatchingUser(t *testing.T) {
	f := newFixture(t)
	res := f.login(t)
	claims, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)

	forged := *claims
	forged.Email = "other@example.com"
	assert.ErrorIs(t, f.svc.VerifySession(&forged), adminerrors.ErrSessionEnded)

	forged = *claims
	forged.Subject = "2"
	assert.ErrorIs(t, f.svc.VerifySession(&forged), adminerrors.ErrSessionEnded)
}

func TestVerifySession_RejectsTokensFromAnotherProcess(t *testing.T) {
	f := newFixture(t)
	res := f.login(t)
	claims, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)

	restarted := NewAdminService(f.store, f.tokens, validator.NewAdminValidator(logger.Discard()), logger.Discard())
	assert.ErrorIs(t, restarted.VerifySession(claims), adminerrors.ErrSessionEnded)
}

func TestSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	info := f.svc.Session(ctx)
	assert.False(t, info.Authenticated)
	assert.Nil(t, info.User)

	f.login(t)
	info = f.svc.Session(ctx)
	assert.True(t, info.Authenticated)
	require.NotNil(t, info.User)
	assert.Equal(t, adminEmail, info.User.Email)
}

func TestUpdateRoomPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room, err := f.svc.UpdateRoomPrice(ctx, "1", &model.PriceUpdate{Price: price(4000)})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), room.Price)
	assert.Equal(t, "Deluxe AC Suite", room.Name)

	_, err = f.svc.UpdateRoomPrice(ctx, "99", &model.PriceUpdate{Price: price(1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, adminerrors.ErrRoomNotFound))
	assert.Equal(t, http.StatusNotFound, apperrors.AsAppError(err).HTTPStatus)

	_, err = f.svc.UpdateRoomPrice(ctx, "1", &model.PriceUpdate{Price: price(-1)})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)

	stored, _ := f.store.Room("1")
	assert.Equal(t, int64(4000), stored.Price, "rejected updates leave the price alone")
}

func TestUpdateHallPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hall, err := f.svc.UpdateHallPrice(ctx, "2", &model.PriceUpdate{Price: price(30000)})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), hall.Price)

	_, err = f.svc.UpdateHallPrice(ctx, "nope", &model.PriceUpdate{Price: price(1)})
	assert.True(t, errors.Is(err, adminerrors.ErrHallNotFound))
}

func TestUpdateBookingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.UpdateBookingStatus(ctx, "1", &model.BookingStatusUpdate{Status: model.BookingStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, booking.Status)

	_, err = f.svc.UpdateBookingStatus(ctx, "missing", &model.BookingStatusUpdate{Status: model.BookingStatusConfirmed})
	assert.True(t, errors.Is(err, adminerrors.ErrBookingNotFound))

	_, err = f.svc.UpdateBookingStatus(ctx, "1", &model.BookingStatusUpdate{Status: "archived"})
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestListBookingsAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Len(t, f.svc.ListBookings(ctx), 2)

	dash := f.svc.Stats(ctx)
	assert.Equal(t, 4, dash.Rooms.Total)
	assert.Equal(t, 2, dash.Bookings.Total)
	assert.InDelta(t, 4.5, dash.Reviews.AverageRating, 0.001)
}
