package create_draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// UseCase use case создания черновика записи
type UseCase struct {
	draftService    DraftService
	scheduleClient  ScheduleServiceClient
	ttl             time.Duration
	defaultTimezone string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	draftService DraftService,
	scheduleClient ScheduleServiceClient,
	ttl time.Duration,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		draftService:    draftService,
		scheduleClient:  scheduleClient,
		ttl:             ttl,
		defaultTimezone: defaultTimezone,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания черновика.
// Снепшот слота строится на сервере из свежей выдачи генератора,
// клиентские времена не принимаются на веру.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateDraft: user=%d, menu=%d, resource=%d, slot=%s, date=%s",
		req.Auth.UserID, req.MenuID, req.ResourceID, req.SlotID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateDraft: validation failed: %v", err)
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
			uc.logger.Warn("CreateDraft: menu id=%d not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateDraft: failed to get menu id=%d: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	if !menu.IsActive {
		uc.logger.Warn("CreateDraft: menu id=%d is inactive", req.MenuID)
		return nil, ErrMenuNotFound
	}

	// 3. Запрашиваем свежие слоты у генератора
	daily, err := uc.scheduleClient.GetDailySlots(ctx, req.MenuID, req.ResourceID, req.Date, timezone)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrMenuNotFound) {
			uc.logger.Warn("CreateDraft: menu id=%d not found by generator", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateDraft: failed to get daily slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get daily slots: %v", ErrInternal, err)
	}

	// 4. Ищем запрошенный слот в выдаче
	slot := findSlot(daily.Slots, req.SlotID)
	if slot == nil {
		uc.logger.Warn("CreateDraft: slot %s not offered for menu=%d, date=%s", req.SlotID, req.MenuID, req.Date)
		return nil, ErrSlotUnavailable
	}

	// 5. Слот в прошлом не бронируется
	if !slot.StartAt.After(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateDraft: slot %s starts in the past", req.SlotID)
		return nil, ErrSlotUnavailable
	}

	// 6. Надбавка за явный выбор мастера.
	// Значение справочное: итоговая цена фиксируется при подтверждении.
	nominationFee := 0.0
	if req.IsStaffPreferred {
		nominationFee = menu.NominationFee
	}

	// 7. Сохраняем черновик
	draft := &domain.Draft{
		MenuID:           req.MenuID,
		ResourceID:       req.ResourceID,
		Slot:             toSnapshot(slot),
		IsStaffPreferred: req.IsStaffPreferred,
		Memo:             req.Memo,
		NominationFee:    nominationFee,
		Timezone:         timezone,
	}

	created, err := uc.draftService.Create(ctx, draft, req.Auth)
	if err != nil {
		uc.logger.Error("CreateDraft: failed to store draft: %v", err)
		return nil, fmt.Errorf("%w: failed to store draft: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateDraft: draft created token=%s, expires in %s", created.Token, uc.ttl)

	return &Response{
		Token:         created.Token,
		ExpiresAt:     created.CreatedAt.Add(uc.ttl),
		Slot:          created.Slot,
		NominationFee: nominationFee,
	}, nil
}

// findSlot ищет слот по идентификатору в выдаче генератора
func findSlot(slots []scheduleClient.Slot, slotID string) *scheduleClient.Slot {
	for i := range slots {
		if slots[i].SlotID == slotID {
			return &slots[i]
		}
	}
	return nil
}

// toSnapshot копирует слот генератора в снепшот черновика
func toSnapshot(slot *scheduleClient.Slot) domain.SlotSnapshot {
	return domain.SlotSnapshot{
		SlotID:             slot.SlotID,
		StartAt:            slot.StartAt,
		EndAt:              slot.EndAt,
		ServiceEndAt:       slot.ServiceEndAt,
		AssignableStaffIDs: slot.AssignableStaffIDs,
		StaffID:            slot.StaffID,
	}
}
