package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"hotelinfinity/internal/events"
	"hotelinfinity/internal/session"
	"hotelinfinity/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@hotelinfinity.com"
	adminPassword = "admin123"
)

var fixedNow = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

func testAdmin(t *testing.T) AdminAccount {
	t.Helper()
	admin, err := NewAdminAccount(adminEmail, adminPassword, "Admin User", bcrypt.MinCost)
	require.NoError(t, err)
	return admin
}

type fixture struct {
	store    *Store
	sessions session.Store
	recorder *events.Recorder
}

func newFixture(t *testing.T, sessions session.Store) fixture {
	t.Helper()
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	rec := &events.Recorder{}
	s := New(testAdmin(t),
		WithSessionStore(sessions),
		WithIDGenerator(&SequentialIDs{Prefix: "id-"}),
		WithClock(func() time.Time { return fixedNow }),
		WithPublisher(rec),
	)
	s.Initialize(context.Background())
	return fixture{store: s, sessions: sessions, recorder: rec}
}

func TestInitialize_SeedsAllCollections(t *testing.T) {
	f := newFixture(t, nil)

	assert.Len(t, f.store.Rooms(), 4)
	assert.Len(t, f.store.PartyHalls(), 3)
	assert.Len(t, f.store.Reviews(), 4)
	assert.Len(t, f.store.Bookings(), 2)
	assert.False(t, f.store.IsAuthenticated())
	assert.Nil(t, f.store.CurrentUser())

	room, ok := f.store.Room("1")
	require.True(t, ok)
	assert.Equal(t, "Deluxe AC Suite", room.Name)
	assert.Equal(t, int64(3500), room.Price)

	booking, ok := f.store.Booking("2")
	require.True(t, ok)
	assert.Equal(t, model.BookingTypeHall, booking.Type)
	assert.Equal(t, "1", booking.HallID)
	assert.Equal(t, model.BookingStatusCompleted, booking.Status)
}

func TestUpdateRoomPrice_ChangesOnlyTarget(t *testing.T) {
	f := newFixture(t, nil)
	before := f.store.Rooms()

	require.True(t, f.store.UpdateRoomPrice(context.Background(), "3", 1800))

	after := f.store.Rooms()
	require.Len(t, after, len(before))
	for i := range before {
		expected := before[i]
		if expected.ID == "3" {
			expected.Price = 1800
		}
		assert.Equal(t, expected, after[i])
	}
	assert.Equal(t, []events.Type{events.RoomPriceUpdated}, f.recorder.Types())
}

func TestUpdateRoomPrice_UnknownIDIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	before := f.store.Rooms()

	assert.False(t, f.store.UpdateRoomPrice(context.Background(), "missing", 1))
	assert.Equal(t, before, f.store.Rooms())
	assert.Empty(t, f.recorder.Events())
}

func TestUpdateHallPrice(t *testing.T) {
	f := newFixture(t, nil)
	before := f.store.PartyHalls()

	require.True(t, f.store.UpdateHallPrice(context.Background(), "2", 0))
	after := f.store.PartyHalls()
	assert.Equal(t, int64(0), after[1].Price)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])

	assert.False(t, f.store.UpdateHallPrice(context.Background(), "99", 5))
	assert.Equal(t, after, f.store.PartyHalls())
}

func TestAddReview(t *testing.T) {
	f := newFixture(t, nil)
	before := f.store.Reviews()

	review := f.store.AddReview(context.Background(), model.NewReview{
		CustomerName: "Priya Nair",
		Rating:       5,
		Comment:      "Loved the garden pavilion.",
		RoomType:     "Garden Pavilion",
	})

	after := f.store.Reviews()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, review, after[0])
	assert.Equal(t, "2024-03-05", review.Date)
	for _, existing := range before {
		assert.NotEqual(t, existing.ID, review.ID)
	}
	assert.Equal(t, before, after[1:])
}

func TestAddReview_DateUsesUTC(t *testing.T) {
	late := time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	s := New(testAdmin(t), WithClock(func() time.Time { return late }))
	s.Initialize(context.Background())

	review := s.AddReview(context.Background(), model.NewReview{CustomerName: "Al", Rating: 3, Comment: "ok"})
	assert.Equal(t, "2024-03-06", review.Date)
}

func TestAddBooking(t *testing.T) {
	f := newFixture(t, nil)
	before := f.store.Bookings()

	booking := f.store.AddBooking(context.Background(), model.NewBooking{
		CustomerName: "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "+919876543210",
		CheckIn:      "2024-04-01",
		CheckOut:     "2024-04-03",
		RoomID:       "2",
		Type:         model.BookingTypeRoom,
		Guests:       2,
		TotalAmount:  5000,
		Status:       model.BookingStatusConfirmed,
		PaymentID:    "pay_1",
	})

	after := f.store.Bookings()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, booking, after[0])
	assert.Equal(t, "id-1", booking.ID)
	assert.Equal(t, "2024-03-05T09:30:00Z", booking.CreatedAt)
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, before, after[1:])
	assert.Equal(t, []events.Type{events.BookingCreated}, f.recorder.Types())
}

func TestAddBooking_NoReferentialChecks(t *testing.T) {
	f := newFixture(t, nil)

	booking := f.store.AddBooking(context.Background(), model.NewBooking{
		CustomerName: "Ghost",
		RoomID:       "does-not-exist",
		Type:         model.BookingTypeRoom,
		Guests:       1,
	})
	assert.Equal(t, "does-not-exist", booking.RoomID)
	assert.Equal(t, model.BookingStatusPending, booking.Status)

	rooms := f.store.Rooms()
	for _, r := range rooms {
		assert.True(t, r.Available, "availability is never derived from bookings")
	}
}

func TestAddBooking_FreshIDsUnderRapidCalls(t *testing.T) {
	s := New(testAdmin(t))
	s.Initialize(context.Background())

	seen := map[string]bool{}
	for range 100 {
		b := s.AddBooking(context.Background(), model.NewBooking{CustomerName: "x", Type: model.BookingTypeHall, Guests: 1})
		require.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestUpdateBookingStatus_NoTransitionRestrictions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	created := f.store.AddBooking(ctx, model.NewBooking{CustomerName: "A", Type: model.BookingTypeRoom, RoomID: "1", Guests: 1})
	before := f.store.Bookings()

	require.True(t, f.store.UpdateBookingStatus(ctx, created.ID, model.BookingStatusConfirmed))
	require.True(t, f.store.UpdateBookingStatus(ctx, created.ID, model.BookingStatusCancelled))

	after := f.store.Bookings()
	expected := before[0]
	expected.Status = model.BookingStatusCancelled
	assert.Equal(t, expected, after[0])
	assert.Equal(t, before[1:], after[1:])

	require.True(t, f.store.UpdateBookingStatus(ctx, "2", model.BookingStatusPending), "completed may move back to pending")
	assert.False(t, f.store.UpdateBookingStatus(ctx, "nope", model.BookingStatusConfirmed))
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	assert.False(t, f.store.Login(ctx, adminEmail, "wrong"))
	assert.False(t, f.store.Login(ctx, "ADMIN@hotelinfinity.com", adminPassword))
	assert.False(t, f.store.IsAuthenticated())
	_, err := f.sessions.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.True(t, f.store.Login(ctx, adminEmail, adminPassword))
	assert.True(t, f.store.IsAuthenticated())
	assert.Equal(t, &model.User{ID: "1", Email: adminEmail, Name: "Admin User", Role: model.RoleAdmin}, f.store.CurrentUser())

	payload, err := f.sessions.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","email":"admin@hotelinfinity.com","name":"Admin User","role":"admin"}`, string(payload))
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.True(t, f.store.Login(ctx, adminEmail, adminPassword))

	assert.False(t, f.store.Login(ctx, "intruder@example.com", "x"))
	assert.True(t, f.store.IsAuthenticated())
	assert.Equal(t, adminEmail, f.store.CurrentUser().Email)
}

func TestLogout(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.True(t, f.store.Login(ctx, adminEmail, adminPassword))

	f.store.Logout(ctx)
	assert.False(t, f.store.IsAuthenticated())
	assert.Nil(t, f.store.CurrentUser())
	_, err := f.sessions.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.NotPanics(t, func() { f.store.Logout(ctx) }, "logout while anonymous always succeeds")
	assert.Equal(t, []events.Type{events.SessionLogin, events.SessionLogout}, f.recorder.Types())
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	assert.False(t, f.store.Register(ctx, "random@example.com", "x", "Random"))
	assert.False(t, f.store.IsAuthenticated())

	assert.False(t, f.store.Register(ctx, adminEmail, "wrong", "Someone"))
	assert.False(t, f.store.IsAuthenticated())

	assert.True(t, f.store.Register(ctx, adminEmail, adminPassword, "Ignored Name"))
	assert.Equal(t, "Admin User", f.store.CurrentUser().Name)
}

func TestRestoreSession_AcrossRestart(t *testing.T) {
	ctx := context.Background()
	persisted := session.NewMemoryStore()

	first := newFixture(t, persisted)
	require.True(t, first.store.Login(ctx, adminEmail, adminPassword))

	restarted := newFixture(t, persisted)
	assert.True(t, restarted.store.IsAuthenticated())
	assert.Equal(t, first.store.CurrentUser(), restarted.store.CurrentUser())

	restarted.store.Logout(ctx)
	again := newFixture(t, persisted)
	assert.False(t, again.store.IsAuthenticated())
}

func TestRestoreSession_DoesNotRecheckCredentials(t *testing.T) {
	ctx := context.Background()
	persisted := session.NewMemoryStore()
	require.NoError(t, persisted.Save(ctx, []byte(`{"id":"1","email":"old-admin@hotelinfinity.com","name":"Old","role":"admin"}`)))

	f := newFixture(t, persisted)
	require.True(t, f.store.IsAuthenticated())
	assert.Equal(t, "old-admin@hotelinfinity.com", f.store.CurrentUser().Email)
}

func TestRestoreSession_MalformedMeansAnonymous(t *testing.T) {
	payloads := []string{
		`not json`,
		`{"id":"1"`,
		`[]`,
		`{}`,
		`{"id":"1","email":"a@b.c","role":"guest"}`,
	}
	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			persisted := session.NewMemoryStore()
			require.NoError(t, persisted.Save(context.Background(), []byte(payload)))

			f := newFixture(t, persisted)
			assert.False(t, f.store.IsAuthenticated())
		})
	}
}

type failingSessions struct {
	session.Store
	err error
}

func (f failingSessions) Load(context.Context) ([]byte, error) { return nil, f.err }
func (f failingSessions) Save(context.Context, []byte) error  { return f.err }
func (f failingSessions) Delete(context.Context) error        { return f.err }

func TestSessionBackendFailuresDoNotPropagate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, failingSessions{Store: session.NewMemoryStore(), err: errors.New("disk gone")})

	assert.False(t, f.store.IsAuthenticated())
	assert.True(t, f.store.Login(ctx, adminEmail, adminPassword), "memory session still changes")
	assert.True(t, f.store.IsAuthenticated())
	f.store.Logout(ctx)
	assert.False(t, f.store.IsAuthenticated())
}

func TestLogout_CancelledContextStillClearsPersistedSession(t *testing.T) {
	persisted, err := session.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = persisted.Close() })

	f := newFixture(t, persisted)
	require.True(t, f.store.Login(context.Background(), adminEmail, adminPassword))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.store.Logout(ctx)
	assert.False(t, f.store.IsAuthenticated())

	restarted := newFixture(t, persisted)
	assert.False(t, restarted.store.IsAuthenticated())
}

func TestLogin_CancelledContextStillPersistsSession(t *testing.T) {
	persisted, err := session.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = persisted.Close() })

	f := newFixture(t, persisted)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.True(t, f.store.Login(ctx, adminEmail, adminPassword))

	restarted := newFixture(t, persisted)
	assert.True(t, restarted.store.IsAuthenticated())
}

// blockingSessions parks Save until release is closed and Delete until its
// context expires.
type blockingSessions struct {
	session.Store
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSessions) Save(ctx context.Context, payload []byte) error {
	close(b.entered)
	<-b.release
	return b.Store.Save(ctx, payload)
}

func (b *blockingSessions) Delete(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSlowSessionBackendDoesNotBlockReaders(t *testing.T) {
	backend := &blockingSessions{
		Store:   session.NewMemoryStore(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := newFixture(t, backend)

	loggedIn := make(chan bool)
	go func() { loggedIn <- f.store.Login(context.Background(), adminEmail, adminPassword) }()
	<-backend.entered

	read := make(chan int)
	go func() {
		f.store.UpdateRoomPrice(context.Background(), "1", 4200)
		read <- len(f.store.Rooms())
	}()
	select {
	case n := <-read:
		assert.Equal(t, 4, n)
	case <-time.After(2 * time.Second):
		t.Fatal("store operations blocked behind session backend")
	}

	close(backend.release)
	assert.True(t, <-loggedIn)
}

func TestSessionTimeoutBoundsBackendCalls(t *testing.T) {
	backend := &blockingSessions{Store: session.NewMemoryStore()}
	s := New(testAdmin(t), WithSessionStore(backend), WithSessionTimeout(20*time.Millisecond))

	done := make(chan struct{})
	go func() {
		s.Logout(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("logout did not honor the session timeout")
	}
	assert.False(t, s.IsAuthenticated())
}

func TestPublishFailureDoesNotChangeResult(t *testing.T) {
	rec := &events.Recorder{Err: errors.New("broker down")}
	s := New(testAdmin(t), WithPublisher(rec))
	s.Initialize(context.Background())

	assert.True(t, s.UpdateRoomPrice(context.Background(), "1", 4000))
	room, _ := s.Room("1")
	assert.Equal(t, int64(4000), room.Price)
}

func TestReaders_ReturnCopies(t *testing.T) {
	f := newFixture(t, nil)

	rooms := f.store.Rooms()
	rooms[0].Price = 1
	rooms[0].Amenities[0] = "Changed"

	room, ok := f.store.Room(rooms[0].ID)
	require.True(t, ok)
	assert.Equal(t, int64(3500), room.Price)
	assert.Equal(t, "Free WiFi", room.Amenities[0])

	user := f.store.CurrentUser()
	assert.Nil(t, user)
	require.True(t, f.store.Login(context.Background(), adminEmail, adminPassword))
	f.store.CurrentUser().Name = "Mallory"
	assert.Equal(t, "Admin User", f.store.CurrentUser().Name)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			f.store.AddReview(ctx, model.NewReview{CustomerName: "Guest", Rating: 1 + i%5, Comment: "c"})
		}()
		go func() {
			defer wg.Done()
			f.store.UpdateRoomPrice(ctx, "1", int64(i))
		}()
	}
	wg.Wait()

	reviews := f.store.Reviews()
	assert.Len(t, reviews, 54)
	ids := map[string]bool{}
	for _, r := range reviews {
		assert.False(t, ids[r.ID])
		ids[r.ID] = true
	}
}

func TestAdminAccount(t *testing.T) {
	_, err := NewAdminAccount("", "x", "n", bcrypt.MinCost)
	assert.Error(t, err)

	admin := testAdmin(t)
	assert.True(t, admin.Matches(adminEmail, adminPassword))
	assert.False(t, admin.Matches(adminEmail, adminPassword+" "))
	assert.False(t, AdminAccount{Email: adminEmail}.Matches(adminEmail, ""))
}
