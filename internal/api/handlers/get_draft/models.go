package get_draft

import (
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// DraftResponse HTTP response model. Владелец черновика наружу не отдаётся.
type DraftResponse struct {
	Token            string              `json:"token"`
	MenuID           int64               `json:"menu_id"`
	ResourceID       int64               `json:"resource_id,omitempty"`
	Slot             domain.SlotSnapshot `json:"slot"`
	IsStaffPreferred bool                `json:"is_staff_preferred,omitempty"`
	Memo             string              `json:"memo,omitempty"`
	NominationFee    float64             `json:"nomination_fee,omitempty"`
	Timezone         string              `json:"timezone"`
	CreatedAt        time.Time           `json:"created_at"`
	ExpiresAt        time.Time           `json:"expires_at"`
}

// FromDomainDraft конвертирует domain модель в HTTP ответ
func FromDomainDraft(d *domain.Draft, ttl time.Duration) *DraftResponse {
	return &DraftResponse{
		Token:            d.Token,
		MenuID:           d.MenuID,
		ResourceID:       d.ResourceID,
		Slot:             d.Slot,
		IsStaffPreferred: d.IsStaffPreferred,
		Memo:             d.Memo,
		NominationFee:    d.NominationFee,
		Timezone:         d.Timezone,
		CreatedAt:        d.CreatedAt,
		ExpiresAt:        d.CreatedAt.Add(ttl),
	}
}
