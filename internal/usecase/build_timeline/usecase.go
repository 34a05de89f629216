package build_timeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// UseCase реализует сборку дневного таймлайна занятости мастеров
type UseCase struct {
	bookingRepo     BookingRepository
	shiftRepo       ShiftRepository
	scheduleClient  ScheduleServiceClient
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый use case сборки таймлайна
func NewUseCase(
	bookingRepo BookingRepository,
	shiftRepo ShiftRepository,
	scheduleClient ScheduleServiceClient,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		shiftRepo:       shiftRepo,
		scheduleClient:  scheduleClient,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Execute собирает таймлайн на день: дорожку на каждого мастера
// с рабочими блоками, записями внутри блоков и общей осью времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Таймлайн доступен только менеджеру
	if !req.Auth.IsManager() {
		return nil, ErrAccessDenied
	}

	// 2. Валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: invalid request: %v", err)
		return nil, err
	}

	// 3. Разбор даты и таймзоны, начало суток в таймзоне заведения
	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, timezone)
	}
	parsed, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc)

	// 4. Активные мастера из каталога в порядке отображения
	staffList, err := uc.scheduleClient.GetStaffList(ctx)
	if err != nil {
		uc.logger.Error("Execute: failed to get staff list: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff list: %v", ErrInternal, err)
	}
	staff := filterStaff(staffList, req.ResourceIDs)
	sort.SliceStable(staff, func(i, j int) bool {
		return staff[i].DisplayOrder < staff[j].DisplayOrder
	})

	resp := &Response{
		Date:     req.Date,
		Timezone: timezone,
		Lanes:    []Lane{},
	}

	if len(staff) == 0 {
		resp.AxisStartHour = domain.TimelineDefaultStartHour
		resp.AxisEndHour = domain.TimelineDefaultEndHour
		return resp, nil
	}

	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}

	// 5. Смены мастеров на день
	entries, err := uc.shiftRepo.GetByResourcesAndDate(ctx, ids, day)
	if err != nil {
		uc.logger.Error("Execute: failed to get shift entries: date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get shift entries: %v", ErrInternal, err)
	}
	entryByResource := make(map[int64]*domain.ShiftEntry, len(entries))
	for _, entry := range entries {
		entryByResource[entry.ResourceID] = entry
	}

	// 6. Записи, пересекающие сутки
	window := domain.NewTimeRange(day, day.AddDate(0, 0, 1))
	bookings, err := uc.bookingRepo.GetByResourcesAndWindow(ctx, ids, window)
	if err != nil {
		uc.logger.Error("Execute: failed to get bookings: date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	bookingsByResource := make(map[int64][]*domain.Booking)
	for _, booking := range bookings {
		bookingsByResource[booking.ResourceID] = append(bookingsByResource[booking.ResourceID], booking)
	}

	// 7. Дорожки и общая ось времени
	var axis axisBounds
	for _, s := range staff {
		lane := buildLane(s, entryByResource[s.ID], bookingsByResource[s.ID], day, loc, &axis)
		resp.Lanes = append(resp.Lanes, lane)
	}
	resp.AxisStartHour, resp.AxisEndHour = axis.rounded()

	uc.logger.Info("Execute: timeline built: date=%s lanes=%d axis=[%d,%d]",
		req.Date, len(resp.Lanes), resp.AxisStartHour, resp.AxisEndHour)

	return resp, nil
}

// filterStaff оставляет активных мастеров и, если задан фильтр, только запрошенных
func filterStaff(staffList []scheduleservice.Staff, resourceIDs []int64) []scheduleservice.Staff {
	var wanted map[int64]bool
	if len(resourceIDs) > 0 {
		wanted = make(map[int64]bool, len(resourceIDs))
		for _, id := range resourceIDs {
			wanted[id] = true
		}
	}

	result := make([]scheduleservice.Staff, 0, len(staffList))
	for _, s := range staffList {
		if !s.IsActive {
			continue
		}
		if wanted != nil && !wanted[s.ID] {
			continue
		}
		result = append(result, s)
	}
	return result
}
