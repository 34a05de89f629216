package get_daily_slots

import (
	"context"
	"errors"
	"fmt"

	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// UseCase use case получения слотов доступности на день
type UseCase struct {
	scheduleClient  ScheduleServiceClient
	defaultTimezone string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleClient ScheduleServiceClient, defaultTimezone string, logger Logger) *UseCase {
	return &UseCase{
		scheduleClient:  scheduleClient,
		defaultTimezone: defaultTimezone,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Слоты строит генератор ScheduleService; здесь выполняется валидация
// запроса, проверка услуги и отсев уже начавшихся слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDailySlots: menu=%d, resource=%d, date=%s", req.MenuID, req.ResourceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDailySlots: validation failed: %v", err)
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	// 2. Получаем услугу
	menu, err := uc.scheduleClient.GetMenu(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrMenuNotFound) {
			uc.logger.Warn("GetDailySlots: menu id=%d not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("GetDailySlots: failed to get menu id=%d: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	if !menu.IsActive {
		uc.logger.Warn("GetDailySlots: menu id=%d is inactive", req.MenuID)
		return nil, ErrMenuNotFound
	}

	// 3. Запрашиваем слоты у генератора
	daily, err := uc.scheduleClient.GetDailySlots(ctx, req.MenuID, req.ResourceID, req.Date, timezone)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrMenuNotFound) {
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("GetDailySlots: failed to get daily slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get daily slots: %v", ErrInternal, err)
	}

	// 4. Уже начавшиеся слоты не предлагаются
	now := uc.timeProvider.Now()
	slots := make([]Slot, 0, len(daily.Slots))
	for _, slot := range daily.Slots {
		if !slot.StartAt.After(now) {
			continue
		}
		slots = append(slots, Slot{
			SlotID:             slot.SlotID,
			StartAt:            slot.StartAt,
			EndAt:              slot.EndAt,
			ServiceEndAt:       slot.ServiceEndAt,
			AssignableStaffIDs: slot.AssignableStaffIDs,
			StaffID:            slot.StaffID,
		})
	}

	uc.logger.Info("GetDailySlots: %d slots offered for menu=%d, date=%s", len(slots), req.MenuID, req.Date)

	return &Response{
		Date:       daily.Date,
		MenuID:     req.MenuID,
		ResourceID: req.ResourceID,
		Timezone:   timezone,
		Slots:      slots,
	}, nil
}
