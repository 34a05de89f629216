package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// Service перепроверяет доступность слота черновика на момент подтверждения.
// Снимок в черновике мог устареть: смены меняются, другие клиенты занимают
// мастеров. Источником истины всегда является свежая выдача генератора.
type Service struct {
	scheduleClient ScheduleServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(scheduleClient ScheduleServiceClient, logger Logger) *Service {
	return &Service{
		scheduleClient: scheduleClient,
		logger:         logger,
	}
}

// Revalidate запрашивает свежие слоты на день черновика и ищет среди них
// слот снимка. Возвращает свежий снимок: именно его список назначаемых
// мастеров используется дальше при подборе.
//
// Сопоставление: сначала по идентификатору слота, затем по точному
// совпадению границ (для снимков, записанных без идентификатора).
func (s *Service) Revalidate(ctx context.Context, draft *domain.Draft) (*domain.SlotSnapshot, error) {
	date := slotDate(draft)

	daily, err := s.scheduleClient.GetDailySlots(ctx, draft.MenuID, draft.ResourceID, date, draft.Timezone)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrMenuNotFound) {
			s.logger.Warn("Revalidate: menu=%d not found for draft token=%s", draft.MenuID, draft.Token)
			return nil, ErrSlotUnavailable
		}
		s.logger.Error("Revalidate: failed to get slots for menu=%d date=%s: %v", draft.MenuID, date, err)
		return nil, fmt.Errorf("%w: Revalidate - slot generator error: %v", ErrInternal, err)
	}

	fresh := matchSlot(daily.Slots, draft.Slot)
	if fresh == nil {
		s.logger.Warn("Revalidate: slot %s (%s) is gone for menu=%d", draft.Slot.SlotID, draft.Slot.StartAt, draft.MenuID)
		return nil, ErrSlotUnavailable
	}

	snapshot := toDomainSnapshot(fresh)

	// Явно выбранный мастер должен оставаться назначаемым на свежий слот
	if draft.IsStaffPreferred && draft.ResourceID > 0 {
		if !snapshot.CanAssign(draft.ResourceID) && snapshot.StaffID != draft.ResourceID {
			s.logger.Warn("Revalidate: staff=%d no longer assignable to slot %s", draft.ResourceID, snapshot.SlotID)
			return nil, ErrStaffUnavailable
		}
	}

	return snapshot, nil
}

// slotDate возвращает дату слота в часовом поясе выбора.
// Черновик хранит пояс, в котором клиент видел расписание: день слота
// определяется в нём, а не в поясе сервера.
func slotDate(draft *domain.Draft) string {
	loc, err := time.LoadLocation(draft.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return draft.Slot.StartAt.In(loc).Format(domain.DateFormat)
}

// matchSlot ищет слот снимка в свежей выдаче генератора
func matchSlot(slots []scheduleClient.Slot, snapshot domain.SlotSnapshot) *scheduleClient.Slot {
	if snapshot.SlotID != "" {
		for i := range slots {
			if slots[i].SlotID == snapshot.SlotID {
				return &slots[i]
			}
		}
	}

	for i := range slots {
		if slots[i].StartAt.Equal(snapshot.StartAt) && slots[i].EndAt.Equal(snapshot.EndAt) {
			return &slots[i]
		}
	}

	return nil
}

func toDomainSnapshot(slot *scheduleClient.Slot) *domain.SlotSnapshot {
	return &domain.SlotSnapshot{
		SlotID:             slot.SlotID,
		StartAt:            slot.StartAt,
		EndAt:              slot.EndAt,
		ServiceEndAt:       slot.ServiceEndAt,
		AssignableStaffIDs: slot.AssignableStaffIDs,
		StaffID:            slot.StaffID,
	}
}
