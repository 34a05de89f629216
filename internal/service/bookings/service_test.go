package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	bookingRepo "github.com/avdk/SBM-ReservationService/internal/infra/storage/booking"
	"github.com/avdk/SBM-ReservationService/internal/service/bookings/models"
	"github.com/avdk/SBM-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings     map[int64]*domain.Booking
	resourceBusy bool
	userBusy     bool
	phoneBusy    bool

	statusUpdates map[int64]domain.BookingStatus
	cancelled     map[int64]string
}

func newFakeRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:      make(map[int64]*domain.Booking),
		statusUpdates: make(map[int64]domain.BookingStatus),
		cancelled:     make(map[int64]string),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) ExistsResourceOverlap(_ context.Context, _ int64, _ domain.TimeRange, _ int64) (bool, error) {
	return r.resourceBusy, nil
}

func (r *fakeBookingRepo) ExistsUserOverlap(_ context.Context, _ int64, _ domain.TimeRange, _ int64) (bool, error) {
	return r.userBusy, nil
}

func (r *fakeBookingRepo) ExistsPhoneOverlap(_ context.Context, _ string, _ domain.TimeRange, _ int64) (bool, error) {
	return r.phoneBusy, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.statusUpdates[id] = status
	r.bookings[id].Status = status
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.cancelled[id] = reason
	r.bookings[id].Status = domain.StatusCancelled
	return nil
}

type fakeTxManager struct {
	serializableCalls int
	before            func()
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	if m.before != nil {
		m.before()
	}
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type statusChange struct {
	bookingID int64
	from      domain.BookingStatus
	to        domain.BookingStatus
}

type fakeNotifier struct {
	events []statusChange
	err    error
}

func (n *fakeNotifier) BookingStatusChanged(_ context.Context, booking *domain.Booking, previous domain.BookingStatus) error {
	n.events = append(n.events, statusChange{bookingID: booking.ID, from: previous, to: booking.Status})
	return n.err
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            id,
		ResourceID:    7,
		MenuID:        42,
		UserID:        100,
		CustomerName:  "Анна",
		CustomerPhone: "+79990001122",
		ServiceStart:  start,
		ServiceEnd:    start.Add(time.Hour),
		TotalEnd:      start.Add(75 * time.Minute),
		Status:        status,
		InternalNote:  ptr.Ptr("постоянный клиент"),
	}
}

func manager() domain.AuthContext {
	return domain.AuthContext{
		UserID:      999,
		Permissions: []domain.Permission{domain.PermissionManageReservations},
	}
}

func newTestService(repo *fakeBookingRepo) (*Service, *fakeTxManager, *fakeNotifier) {
	tx := &fakeTxManager{}
	notifier := &fakeNotifier{}
	return NewService(repo, tx, notifier, nopLogger{}), tx, notifier
}

func TestGetByID_Access(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	owned, err := svc.GetByID(ctx, 1, domain.AuthContext{UserID: 100})
	require.NoError(t, err)
	assert.Nil(t, owned.InternalNote)

	_, err = svc.GetByID(ctx, 1, domain.AuthContext{UserID: 200})
	assert.ErrorIs(t, err, ErrAccessDenied)

	byManager, err := svc.GetByID(ctx, 1, manager())
	require.NoError(t, err)
	require.NotNil(t, byManager.InternalNote)
	assert.Equal(t, "постоянный клиент", *byManager.InternalNote)

	_, err = svc.GetByID(ctx, 404, manager())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_UnmatchedBooking(t *testing.T) {
	// Запись, созданная менеджером по телефону, без привязки к аккаунту
	booking := testBooking(1, domain.StatusConfirmed)
	booking.UserID = 0
	repo := newFakeRepo(booking)
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 1, domain.AuthContext{UserID: 0, GuestKey: "guest"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 1, manager())
	assert.NoError(t, err)
}

func TestGetUserBookings(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelled),
	)
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		Auth:   domain.AuthContext{UserID: 100},
		UserID: 100,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	filtered, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		Auth:   domain.AuthContext{UserID: 100},
		UserID: 100,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, filtered.Bookings, 1)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		Auth:   domain.AuthContext{UserID: 200},
		UserID: 100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		Auth:   domain.AuthContext{UserID: 100},
		UserID: 100,
		Status: ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc, _, notifier := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Auth:               domain.AuthContext{UserID: 100},
		CancellationReason: "передумала",
	})
	require.NoError(t, err)
	assert.Equal(t, "передумала", repo.cancelled[1])

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.StatusPending, notifier.events[0].from)
	assert.Equal(t, domain.StatusCancelled, notifier.events[0].to)
}

func TestCancel_Denied(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc, _, notifier := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Auth: domain.AuthContext{UserID: 200},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, notifier.events)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc, _, notifier := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Auth:               domain.AuthContext{UserID: 100},
		CancellationReason: strings.Repeat("п", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, notifier.events)
}

func TestCancel_AlreadyInactive(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusCancelled))
	svc, _, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Auth: domain.AuthContext{UserID: 100},
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotifierFailureDoesNotFail(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	svc, _, notifier := newTestService(repo)
	notifier.err = assert.AnError

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Auth: domain.AuthContext{UserID: 100},
	})
	assert.NoError(t, err)
}

func TestUpdateStatus_ManagerOnly(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc, _, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   domain.AuthContext{UserID: 100},
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_NoOp(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	svc, tx, notifier := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.statusUpdates)
	assert.Empty(t, notifier.events)
	assert.Zero(t, tx.serializableCalls)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusCancelled))
	svc, _, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "no_show",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc, _, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "done",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_SimpleTransition(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusPending))
	svc, tx, notifier := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])

	// Переход между блокирующими статусами не требует транзакции
	assert.Zero(t, tx.serializableCalls)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.StatusPending, notifier.events[0].from)
	assert.Equal(t, domain.StatusConfirmed, notifier.events[0].to)
}

func TestUpdateStatus_Reactivation(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusCancelled))
	svc, tx, notifier := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
	assert.Equal(t, 1, tx.serializableCalls)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.StatusCancelled, notifier.events[0].from)
	assert.Equal(t, domain.StatusConfirmed, notifier.events[0].to)
}

func TestUpdateStatus_Reactivation_AlreadyApplied(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusCancelled))
	svc, tx, notifier := newTestService(repo)
	// Параллельный вызов применяет переход до того, как наша транзакция перечитает запись
	tx.before = func() { repo.bookings[1].Status = domain.StatusConfirmed }

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.statusUpdates)
	assert.Empty(t, notifier.events)
}

func TestUpdateStatus_Reactivation_ResourceConflict(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusNoShow))
	repo.resourceBusy = true
	svc, _, notifier := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "pending",
	})
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Empty(t, repo.statusUpdates)
	assert.Empty(t, notifier.events)
}

func TestUpdateStatus_Reactivation_CustomerConflict(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusCancelled))
	repo.userBusy = true
	svc, _, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestUpdateStatus_Reactivation_PhoneConflict(t *testing.T) {
	// Запись без аккаунта: клиентский конфликт ищется по телефону
	booking := testBooking(1, domain.StatusCancelled)
	booking.UserID = 0
	repo := newFakeRepo(booking)
	repo.phoneBusy = true
	svc, _, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Auth:   manager(),
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrBookingConflict)
}
