package get_daily_slots

import (
	"time"

	getDailySlots "github.com/avdk/SBM-ReservationService/internal/usecase/get_daily_slots"
)

// SlotResponse слот доступности в HTTP ответе
type SlotResponse struct {
	SlotID             string    `json:"slot_id"`
	StartAt            time.Time `json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	ServiceEndAt       time.Time `json:"service_end_at,omitempty"`
	AssignableStaffIDs []int64   `json:"assignable_staff_ids,omitempty"`
	StaffID            int64     `json:"staff_id,omitempty"`
}

// DailySlotsResponse HTTP response model
type DailySlotsResponse struct {
	Date       string         `json:"date"`
	MenuID     int64          `json:"menu_id"`
	ResourceID int64          `json:"resource_id,omitempty"`
	Timezone   string         `json:"timezone"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getDailySlots.Response) *DailySlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			SlotID:             s.SlotID,
			StartAt:            s.StartAt,
			EndAt:              s.EndAt,
			ServiceEndAt:       s.ServiceEndAt,
			AssignableStaffIDs: s.AssignableStaffIDs,
			StaffID:            s.StaffID,
		})
	}

	return &DailySlotsResponse{
		Date:       resp.Date,
		MenuID:     resp.MenuID,
		ResourceID: resp.ResourceID,
		Timezone:   resp.Timezone,
		Slots:      slots,
	}
}
