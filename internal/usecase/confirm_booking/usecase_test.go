package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	bookingRepo "github.com/avdk/SBM-ReservationService/internal/infra/storage/booking"
	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
	userClient "github.com/avdk/SBM-ReservationService/internal/integrations/userservice"
	availabilityService "github.com/avdk/SBM-ReservationService/internal/service/availability"
	draftService "github.com/avdk/SBM-ReservationService/internal/service/drafts"
	"github.com/avdk/SBM-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	busyStaff map[int64]bool
	userBusy  bool
	phoneBusy bool
	createErr error

	created      []*domain.Booking
	checkedStaff []int64
	nextID       int64
}

func newFakeRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		busyStaff: make(map[int64]bool),
		nextID:    100,
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *booking
	created.ID = r.nextID
	r.nextID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.created = append(r.created, &created)
	return &created, nil
}

func (r *fakeBookingRepo) ExistsResourceOverlap(_ context.Context, resourceID int64, _ domain.TimeRange, _ int64) (bool, error) {
	r.checkedStaff = append(r.checkedStaff, resourceID)
	return r.busyStaff[resourceID], nil
}

func (r *fakeBookingRepo) ExistsUserOverlap(_ context.Context, _ int64, _ domain.TimeRange, _ int64) (bool, error) {
	return r.userBusy, nil
}

func (r *fakeBookingRepo) ExistsPhoneOverlap(_ context.Context, _ string, _ domain.TimeRange, _ int64) (bool, error) {
	return r.phoneBusy, nil
}

type fakeDraftService struct {
	drafts     map[string]*domain.Draft
	getErr     error
	discarded  []string
	discardErr error
}

func (s *fakeDraftService) Get(_ context.Context, token string, _ domain.AuthContext) (*domain.Draft, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	draft, ok := s.drafts[token]
	if !ok {
		return nil, draftService.ErrDraftNotFound
	}
	return draft, nil
}

func (s *fakeDraftService) Discard(_ context.Context, token string) error {
	s.discarded = append(s.discarded, token)
	return s.discardErr
}

type fakeAvailability struct {
	fresh *domain.SlotSnapshot
	err   error
}

func (a *fakeAvailability) Revalidate(_ context.Context, _ *domain.Draft) (*domain.SlotSnapshot, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.fresh, nil
}

type fakeScheduleClient struct {
	menu *scheduleClient.Menu
	err  error
}

func (c *fakeScheduleClient) GetMenu(_ context.Context, _ int64) (*scheduleClient.Menu, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.menu, nil
}

type fakeUserClient struct {
	users   map[int64]*userClient.User
	byPhone map[string]*userClient.User
	getErr  error
	findErr error
}

func (c *fakeUserClient) GetUserWithGracefulDegradation(_ context.Context, userID int64) (*userClient.User, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	user, ok := c.users[userID]
	if !ok {
		return nil, userClient.ErrUserNotFound
	}
	return user, nil
}

func (c *fakeUserClient) FindByPhoneWithGracefulDegradation(_ context.Context, phone string) (*userClient.User, error) {
	if c.findErr != nil {
		return nil, c.findErr
	}
	user, ok := c.byPhone[phone]
	if !ok {
		return nil, userClient.ErrUserNotFound
	}
	return user, nil
}

type fakeNotifier struct {
	created []*domain.Booking
	err     error
}

func (n *fakeNotifier) BookingCreated(_ context.Context, booking *domain.Booking) error {
	n.created = append(n.created, booking)
	return n.err
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p fixedTime) Now() time.Time {
	return p.now
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// testSlot слот на среду 2026-03-11, услуга час плюс получасовой буфер
func testSlot() domain.SlotSnapshot {
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	return domain.SlotSnapshot{
		SlotID:             "s-20260311-1000",
		StartAt:            start,
		EndAt:              start.Add(90 * time.Minute),
		ServiceEndAt:       start.Add(time.Hour),
		AssignableStaffIDs: []int64{5, 7},
	}
}

func testDraft() *domain.Draft {
	return &domain.Draft{
		Token:     "tok-1",
		MenuID:    42,
		Slot:      testSlot(),
		Owner:     domain.DraftOwner{UserID: 10},
		Memo:      "без лака",
		Timezone:  "UTC",
		CreatedAt: testNow,
	}
}

func testMenu() *scheduleClient.Menu {
	return &scheduleClient.Menu{
		ID:              42,
		Name:            "Маникюр",
		Price:           3000,
		NominationFee:   500,
		DurationMinutes: 60,
		BufferMinutes:   30,
		DayRestriction:  scheduleClient.DayRestrictionNone,
		ApprovalMode:    scheduleClient.ApprovalModeAuto,
		IsActive:        true,
	}
}

func customerAuth() domain.AuthContext {
	return domain.AuthContext{UserID: 10}
}

func managerAuth() domain.AuthContext {
	return domain.AuthContext{
		UserID:      99,
		Permissions: []domain.Permission{domain.PermissionManageReservations},
	}
}

type testEnv struct {
	uc       *UseCase
	repo     *fakeBookingRepo
	drafts   *fakeDraftService
	avail    *fakeAvailability
	schedule *fakeScheduleClient
	users    *fakeUserClient
	notifier *fakeNotifier
	tx       *fakeTxManager
}

func newTestEnv(draft *domain.Draft, menu *scheduleClient.Menu) *testEnv {
	slot := draft.Slot
	env := &testEnv{
		repo: newFakeRepo(),
		drafts: &fakeDraftService{
			drafts: map[string]*domain.Draft{draft.Token: draft},
		},
		avail:    &fakeAvailability{fresh: &slot},
		schedule: &fakeScheduleClient{menu: menu},
		users: &fakeUserClient{
			users: map[int64]*userClient.User{
				10: {ID: 10, Name: "Анна", Phone: "+79990001122"},
			},
			byPhone: map[string]*userClient.User{},
		},
		notifier: &fakeNotifier{},
		tx:       &fakeTxManager{},
	}

	env.uc = NewUseCase(
		env.repo,
		env.drafts,
		env.avail,
		env.schedule,
		env.users,
		env.notifier,
		env.tx,
		nopLogger{},
	)
	env.uc.timeProvider = fixedTime{now: testNow}

	return env
}

func TestExecute_CustomerHappyPath(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, int64(100), resp.BookingID)

	require.Len(t, env.repo.created, 1)
	booking := env.repo.created[0]
	assert.Equal(t, int64(5), booking.ResourceID)
	assert.Equal(t, int64(10), booking.UserID)
	assert.Equal(t, "Анна", booking.CustomerName)
	assert.Equal(t, "+79990001122", booking.CustomerPhone)
	assert.Equal(t, "без лака", booking.Note)
	assert.False(t, booking.IsStaffPreferred)
	assert.Zero(t, booking.NominationFee)
	assert.Equal(t, 3000.0, booking.BaseTotalPrice)

	slot := testSlot()
	assert.True(t, booking.ServiceStart.Equal(slot.StartAt))
	assert.True(t, booking.ServiceEnd.Equal(slot.ServiceEndAt))
	assert.True(t, booking.TotalEnd.Equal(slot.EndAt))

	assert.Equal(t, 1, env.tx.calls)
	assert.Equal(t, []string{"tok-1"}, env.drafts.discarded)
	require.Len(t, env.notifier.created, 1)
	assert.Equal(t, booking.ID, env.notifier.created[0].ID)
}

func TestExecute_ManualApprovalPending(t *testing.T) {
	menu := testMenu()
	menu.ApprovalMode = scheduleClient.ApprovalModeManual
	env := newTestEnv(testDraft(), menu)

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_NoteOverridesMemo(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
		Note:       ptr.Ptr("столик у окна"),
	})
	require.NoError(t, err)
	require.Len(t, env.repo.created, 1)
	assert.Equal(t, "столик у окна", env.repo.created[0].Note)
}

func TestExecute_FreshSlotWins(t *testing.T) {
	// Генератор сдвинул слот на 15 минут, но сохранил slot_id.
	// Запись создается по свежим временам.
	env := newTestEnv(testDraft(), testMenu())
	fresh := testSlot()
	fresh.StartAt = fresh.StartAt.Add(15 * time.Minute)
	fresh.ServiceEndAt = fresh.ServiceEndAt.Add(15 * time.Minute)
	fresh.EndAt = fresh.EndAt.Add(15 * time.Minute)
	env.avail.fresh = &fresh

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	require.Len(t, env.repo.created, 1)
	assert.True(t, env.repo.created[0].ServiceStart.Equal(fresh.StartAt))
	assert.True(t, env.repo.created[0].TotalEnd.Equal(fresh.EndAt))
}

func TestExecute_AutoAssignment_SkipsBusyStaff(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.repo.busyStaff[5] = true

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	require.Len(t, env.repo.created, 1)
	assert.Equal(t, int64(7), env.repo.created[0].ResourceID)
	assert.Equal(t, []int64{5, 7}, env.repo.checkedStaff)
}

func TestExecute_AutoAssignment_AllBusy(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.repo.busyStaff[5] = true
	env.repo.busyStaff[7] = true

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrStaffAssignmentFailed)
	assert.Empty(t, env.repo.created)
	assert.Empty(t, env.drafts.discarded)
	assert.Empty(t, env.notifier.created)
}

func TestExecute_PreferredStaff(t *testing.T) {
	draft := testDraft()
	draft.ResourceID = 7
	draft.IsStaffPreferred = true
	env := newTestEnv(draft, testMenu())

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	require.Len(t, env.repo.created, 1)
	booking := env.repo.created[0]
	assert.Equal(t, int64(7), booking.ResourceID)
	assert.True(t, booking.IsStaffPreferred)
	assert.Equal(t, 500.0, booking.NominationFee)
	assert.Equal(t, 3500.0, booking.BaseTotalPrice)
}

func TestExecute_PreferredStaffBusy(t *testing.T) {
	// Занятость мастера отдаётся тем же кодом, что и конфликт клиента
	draft := testDraft()
	draft.ResourceID = 7
	draft.IsStaffPreferred = true
	env := newTestEnv(draft, testMenu())
	env.repo.busyStaff[7] = true

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrBookingTimeConflict)
	assert.Empty(t, env.repo.created)
}

func TestExecute_RequestedStaffNotAssignable(t *testing.T) {
	// Мастер выбран без надбавки и пропал из назначаемых на слот
	draft := testDraft()
	draft.ResourceID = 9
	env := newTestEnv(draft, testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrStaffUnavailable)
	assert.Empty(t, env.repo.checkedStaff)
}

func TestExecute_CustomerConflict(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.repo.userBusy = true

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrBookingTimeConflict)
	assert.Empty(t, env.repo.created)
	assert.Empty(t, env.drafts.discarded)
}

func TestExecute_Agreements(t *testing.T) {
	menu := testMenu()
	menu.RequireCancellationPolicy = true
	menu.RequireTermsOfService = true
	env := newTestEnv(testDraft(), menu)
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrCancellationPolicyRequired)

	_, err = env.uc.Execute(ctx, &Request{
		Auth:                    customerAuth(),
		DraftToken:              "tok-1",
		AgreeCancellationPolicy: true,
	})
	assert.ErrorIs(t, err, ErrTermsRequired)

	// Устаревшее поле agree_terms принимается наравне с новым
	_, err = env.uc.Execute(ctx, &Request{
		Auth:                    customerAuth(),
		DraftToken:              "tok-1",
		AgreeCancellationPolicy: true,
		AgreeTerms:              true,
	})
	assert.NoError(t, err)
}

func TestExecute_DayRestriction(t *testing.T) {
	menu := testMenu()
	menu.DayRestriction = scheduleClient.DayRestrictionWeekdayOnly

	// Суббота 2026-03-14
	draft := testDraft()
	saturday := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	draft.Slot.StartAt = saturday
	draft.Slot.ServiceEndAt = saturday.Add(time.Hour)
	draft.Slot.EndAt = saturday.Add(90 * time.Minute)
	env := newTestEnv(draft, menu)

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrInvalidReservationDay)
}

func TestExecute_DayRestriction_DraftTimezone(t *testing.T) {
	menu := testMenu()
	menu.DayRestriction = scheduleClient.DayRestrictionWeekdayOnly

	// Пятница 23:00 UTC, но в Токио уже суббота
	draft := testDraft()
	friday := time.Date(2026, 3, 13, 23, 0, 0, 0, time.UTC)
	draft.Slot.StartAt = friday
	draft.Slot.ServiceEndAt = friday.Add(time.Hour)
	draft.Slot.EndAt = friday.Add(90 * time.Minute)
	draft.Timezone = "Asia/Tokyo"
	env := newTestEnv(draft, menu)

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrInvalidReservationDay)
}

func TestExecute_NotLoggedIn(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       domain.AuthContext{GuestKey: "guest-1"},
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestExecute_DraftNotFound(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-unknown",
	})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestExecute_ForbiddenDraft(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.drafts.getErr = draftService.ErrAccessDenied

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrForbiddenDraft)
}

func TestExecute_InvalidDraft(t *testing.T) {
	draft := testDraft()
	draft.MenuID = 0
	env := newTestEnv(draft, testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestExecute_MenuGone(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.schedule.err = scheduleClient.ErrMenuNotFound

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestExecute_MenuInactive(t *testing.T) {
	menu := testMenu()
	menu.IsActive = false
	env := newTestEnv(testDraft(), menu)

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestExecute_SlotGone(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.avail.err = availabilityService.ErrSlotUnavailable

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, env.tx.calls)
}

func TestExecute_SlotInPast(t *testing.T) {
	draft := testDraft()
	past := testNow.Add(-time.Hour)
	draft.Slot.StartAt = past
	draft.Slot.ServiceEndAt = past.Add(time.Hour)
	draft.Slot.EndAt = past.Add(90 * time.Minute)
	env := newTestEnv(draft, testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_PreferredStaffGoneAtRevalidation(t *testing.T) {
	draft := testDraft()
	draft.ResourceID = 7
	draft.IsStaffPreferred = true
	env := newTestEnv(draft, testMenu())
	env.avail.err = availabilityService.ErrStaffUnavailable

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_ManagerByPhone_Matched(t *testing.T) {
	menu := testMenu()
	menu.ApprovalMode = scheduleClient.ApprovalModeManual
	menu.RequireTermsOfService = true
	env := newTestEnv(testDraft(), menu)
	env.users.byPhone["+79995556677"] = &userClient.User{ID: 77, Name: "Пётр", Phone: "+79995556677"}

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:          managerAuth(),
		DraftToken:    "tok-1",
		CustomerPhone: ptr.Ptr("+79995556677"),
		InternalNote:  ptr.Ptr("просил напомнить за час"),
	})
	require.NoError(t, err)

	// Менеджерская запись подтверждается сразу, согласия не требуются
	assert.Equal(t, "confirmed", resp.Status)

	require.Len(t, env.repo.created, 1)
	booking := env.repo.created[0]
	assert.Equal(t, int64(77), booking.UserID)
	assert.Equal(t, "Пётр", booking.CustomerName)
	assert.Equal(t, "+79995556677", booking.CustomerPhone)
	require.NotNil(t, booking.InternalNote)
	assert.Equal(t, "просил напомнить за час", *booking.InternalNote)
}

func TestExecute_ManagerByPhone_Unmatched(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:          managerAuth(),
		DraftToken:    "tok-1",
		CustomerName:  ptr.Ptr("Ирина"),
		CustomerPhone: ptr.Ptr("+79990009900"),
	})
	require.NoError(t, err)

	require.Len(t, env.repo.created, 1)
	booking := env.repo.created[0]
	assert.Zero(t, booking.UserID)
	assert.Equal(t, "Ирина", booking.CustomerName)
	assert.Equal(t, "+79990009900", booking.CustomerPhone)
}

func TestExecute_ManagerByPhone_LookupDegraded(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.users.findErr = userClient.ErrServiceDegraded

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:          managerAuth(),
		DraftToken:    "tok-1",
		CustomerPhone: ptr.Ptr("+79990009900"),
	})
	require.NoError(t, err)

	require.Len(t, env.repo.created, 1)
	assert.Zero(t, env.repo.created[0].UserID)
	assert.Equal(t, "+79990009900", env.repo.created[0].CustomerPhone)
}

func TestExecute_ManagerPhoneConflict(t *testing.T) {
	// Телефон без аккаунта: конфликт по клиенту ловится по номеру
	env := newTestEnv(testDraft(), testMenu())
	env.repo.phoneBusy = true

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:          managerAuth(),
		DraftToken:    "tok-1",
		CustomerPhone: ptr.Ptr("+79990009900"),
	})
	assert.ErrorIs(t, err, ErrBookingTimeConflict)
}

func TestExecute_ManagerOwnBooking(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.users.users[99] = &userClient.User{ID: 99, Name: "Мария", Phone: "+79991112233"}

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       managerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)

	require.Len(t, env.repo.created, 1)
	assert.Equal(t, int64(99), env.repo.created[0].UserID)
	assert.Equal(t, "Мария", env.repo.created[0].CustomerName)
}

func TestExecute_UserLookupDegraded(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.users.getErr = userClient.ErrServiceDegraded

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	// Запись привязана к аккаунту, но без денормализованных данных
	require.Len(t, env.repo.created, 1)
	assert.Equal(t, int64(10), env.repo.created[0].UserID)
	assert.Empty(t, env.repo.created[0].CustomerName)
	assert.Empty(t, env.repo.created[0].CustomerPhone)
}

func TestExecute_CustomerFieldsRequireManager(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:          customerAuth(),
		DraftToken:    "tok-1",
		CustomerPhone: ptr.Ptr("+79990009900"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InsertConflictBackstop(t *testing.T) {
	// Гонку, прошедшую мимо проверок, ловит constraint БД.
	// Код ошибки тот же, что и у проверок до вставки.
	env := newTestEnv(testDraft(), testMenu())
	env.repo.createErr = bookingRepo.ErrBookingConflict

	_, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrBookingTimeConflict)

	draft := testDraft()
	draft.ResourceID = 7
	draft.IsStaffPreferred = true
	env = newTestEnv(draft, testMenu())
	env.repo.createErr = bookingRepo.ErrBookingConflict

	_, err = env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	assert.ErrorIs(t, err, ErrBookingTimeConflict)
	assert.Empty(t, env.drafts.discarded)
}

func TestExecute_NotifierFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.notifier.err = assert.AnError

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.BookingID)
}

func TestExecute_DiscardFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(testDraft(), testMenu())
	env.drafts.discardErr = assert.AnError

	resp, err := env.uc.Execute(context.Background(), &Request{
		Auth:       customerAuth(),
		DraftToken: "tok-1",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.BookingID)
	require.Len(t, env.notifier.created, 1)
}
