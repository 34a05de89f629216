package create_draft

import (
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	createDraft "github.com/avdk/SBM-ReservationService/internal/usecase/create_draft"
)

// CreateDraftRequest HTTP request model
type CreateDraftRequest struct {
	MenuID           int64  `json:"menu_id"`
	ResourceID       int64  `json:"resource_id,omitempty"` // 0 = любой мастер
	SlotID           string `json:"slot_id"`
	Date             string `json:"date"` // YYYY-MM-DD
	Timezone         string `json:"timezone,omitempty"`
	IsStaffPreferred bool   `json:"is_staff_preferred,omitempty"`
	Memo             string `json:"memo,omitempty"`

	// Гостевой ключ для клиентов без поддержки заголовков,
	// заголовок X-Guest-Key имеет приоритет
	GuestKey string `json:"guest_key,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateDraftRequest) ToUseCaseRequest(auth domain.AuthContext) *createDraft.Request {
	if auth.GuestKey == "" && r.GuestKey != "" && len(r.GuestKey) <= domain.MaxGuestKeyLength {
		auth.GuestKey = r.GuestKey
	}

	return &createDraft.Request{
		Auth:             auth,
		MenuID:           r.MenuID,
		ResourceID:       r.ResourceID,
		SlotID:           r.SlotID,
		Date:             r.Date,
		Timezone:         r.Timezone,
		IsStaffPreferred: r.IsStaffPreferred,
		Memo:             r.Memo,
	}
}

// CreateDraftResponse HTTP response model
type CreateDraftResponse struct {
	Token         string              `json:"token"`
	ExpiresAt     time.Time           `json:"expires_at"`
	Slot          domain.SlotSnapshot `json:"slot"`
	NominationFee float64             `json:"nomination_fee,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createDraft.Response) *CreateDraftResponse {
	return &CreateDraftResponse{
		Token:         resp.Token,
		ExpiresAt:     resp.ExpiresAt,
		Slot:          resp.Slot,
		NominationFee: resp.NominationFee,
	}
}
