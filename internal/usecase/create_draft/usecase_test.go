package create_draft

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleClient struct {
	menu    *scheduleClient.Menu
	menuErr error

	daily    *scheduleClient.DailySlots
	slotsErr error

	gotResourceID int64
	gotDate       string
	gotTimezone   string
}

func (c *fakeScheduleClient) GetMenu(_ context.Context, _ int64) (*scheduleClient.Menu, error) {
	if c.menuErr != nil {
		return nil, c.menuErr
	}
	return c.menu, nil
}

func (c *fakeScheduleClient) GetDailySlots(_ context.Context, _ int64, resourceID int64, date, timezone string) (*scheduleClient.DailySlots, error) {
	c.gotResourceID = resourceID
	c.gotDate = date
	c.gotTimezone = timezone
	if c.slotsErr != nil {
		return nil, c.slotsErr
	}
	return c.daily, nil
}

type fakeDraftService struct {
	created   *domain.Draft
	createErr error
}

func (s *fakeDraftService) Create(_ context.Context, draft *domain.Draft, auth domain.AuthContext) (*domain.Draft, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	draft.Token = "tok-generated"
	draft.CreatedAt = testNow
	if auth.IsAuthenticated() {
		draft.Owner = domain.DraftOwner{UserID: auth.UserID}
	} else if auth.GuestKey != "" {
		draft.Owner = domain.DraftOwner{Key: auth.GuestKey}
	}
	s.created = draft
	return draft, nil
}

type fixedTime struct {
	now time.Time
}

func (p fixedTime) Now() time.Time {
	return p.now
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

const testTTL = 30 * time.Minute

func testSlots() *scheduleClient.DailySlots {
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	return &scheduleClient.DailySlots{
		Date:     "2026-03-11",
		MenuID:   42,
		Timezone: "UTC",
		Slots: []scheduleClient.Slot{
			{
				SlotID:             "s-1000",
				StartAt:            start,
				EndAt:              start.Add(90 * time.Minute),
				ServiceEndAt:       start.Add(time.Hour),
				AssignableStaffIDs: []int64{5, 7},
			},
			{
				SlotID:             "s-1130",
				StartAt:            start.Add(90 * time.Minute),
				EndAt:              start.Add(3 * time.Hour),
				ServiceEndAt:       start.Add(150 * time.Minute),
				AssignableStaffIDs: []int64{5},
			},
		},
	}
}

func testMenu() *scheduleClient.Menu {
	return &scheduleClient.Menu{
		ID:            42,
		Name:          "Маникюр",
		Price:         3000,
		NominationFee: 500,
		IsActive:      true,
	}
}

func newTestUseCase(schedule *fakeScheduleClient, drafts *fakeDraftService) *UseCase {
	uc := NewUseCase(drafts, schedule, testTTL, "UTC", nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		Auth:   domain.AuthContext{UserID: 10},
		MenuID: 42,
		SlotID: "s-1000",
		Date:   "2026-03-11",
		Memo:   "без лака",
	}
}

func TestExecute_CreatesDraft(t *testing.T) {
	schedule := &fakeScheduleClient{menu: testMenu(), daily: testSlots()}
	drafts := &fakeDraftService{}
	uc := newTestUseCase(schedule, drafts)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "tok-generated", resp.Token)
	assert.True(t, resp.ExpiresAt.Equal(testNow.Add(testTTL)))
	assert.Equal(t, "s-1000", resp.Slot.SlotID)
	assert.Zero(t, resp.NominationFee)

	require.NotNil(t, drafts.created)
	assert.Equal(t, int64(42), drafts.created.MenuID)
	assert.Equal(t, "без лака", drafts.created.Memo)
	assert.Equal(t, "UTC", drafts.created.Timezone)
	assert.Equal(t, int64(10), drafts.created.Owner.UserID)
	assert.Equal(t, []int64{5, 7}, drafts.created.Slot.AssignableStaffIDs)

	// Генератор запрошен с датой и поясом запроса
	assert.Equal(t, "2026-03-11", schedule.gotDate)
	assert.Equal(t, "UTC", schedule.gotTimezone)
}

func TestExecute_GuestDraft(t *testing.T) {
	schedule := &fakeScheduleClient{menu: testMenu(), daily: testSlots()}
	drafts := &fakeDraftService{}
	uc := newTestUseCase(schedule, drafts)

	req := validRequest()
	req.Auth = domain.AuthContext{GuestKey: "guest-abc"}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "guest-abc", drafts.created.Owner.Key)
	assert.Zero(t, drafts.created.Owner.UserID)
}

func TestExecute_PreferredStaffFee(t *testing.T) {
	schedule := &fakeScheduleClient{menu: testMenu(), daily: testSlots()}
	drafts := &fakeDraftService{}
	uc := newTestUseCase(schedule, drafts)

	req := validRequest()
	req.ResourceID = 7
	req.IsStaffPreferred = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 500.0, resp.NominationFee)
	assert.Equal(t, 500.0, drafts.created.NominationFee)
	assert.True(t, drafts.created.IsStaffPreferred)
	assert.Equal(t, int64(7), schedule.gotResourceID)
}

func TestExecute_TimezonePassedToGenerator(t *testing.T) {
	schedule := &fakeScheduleClient{menu: testMenu(), daily: testSlots()}
	drafts := &fakeDraftService{}
	uc := newTestUseCase(schedule, drafts)

	req := validRequest()
	req.Timezone = "Asia/Tokyo"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", schedule.gotTimezone)
	assert.Equal(t, "Asia/Tokyo", drafts.created.Timezone)
}

func TestExecute_SlotNotOffered(t *testing.T) {
	schedule := &fakeScheduleClient{menu: testMenu(), daily: testSlots()}
	uc := newTestUseCase(schedule, &fakeDraftService{})

	req := validRequest()
	req.SlotID = "s-0900"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SlotInPast(t *testing.T) {
	daily := testSlots()
	past := testNow.Add(-2 * time.Hour)
	daily.Slots[0].StartAt = past
	daily.Slots[0].EndAt = past.Add(90 * time.Minute)
	schedule := &fakeScheduleClient{menu: testMenu(), daily: daily}
	uc := newTestUseCase(schedule, &fakeDraftService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_MenuGone(t *testing.T) {
	schedule := &fakeScheduleClient{menuErr: scheduleClient.ErrMenuNotFound}
	uc := newTestUseCase(schedule, &fakeDraftService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestExecute_MenuInactive(t *testing.T) {
	menu := testMenu()
	menu.IsActive = false
	schedule := &fakeScheduleClient{menu: menu, daily: testSlots()}
	uc := newTestUseCase(schedule, &fakeDraftService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestExecute_Validation(t *testing.T) {
	schedule := &fakeScheduleClient{menu: testMenu(), daily: testSlots()}
	uc := newTestUseCase(schedule, &fakeDraftService{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"no menu", func(req *Request) { req.MenuID = 0 }},
		{"no slot", func(req *Request) { req.SlotID = "" }},
		{"no date", func(req *Request) { req.Date = "" }},
		{"bad date", func(req *Request) { req.Date = "11.03.2026" }},
		{"bad timezone", func(req *Request) { req.Timezone = "Mars/Olympus" }},
		{"preference without staff", func(req *Request) { req.IsStaffPreferred = true }},
		{"memo too long", func(req *Request) { req.Memo = strings.Repeat("ю", domain.MaxMemoLength+1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
