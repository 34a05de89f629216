package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrDraftInvalid возвращается при структурно неполном черновике
var ErrDraftInvalid = errors.New("domain: draft is structurally invalid")

// DraftOwner identifies who created a draft: an authenticated user,
// an anonymous guest key, or nobody (legacy drafts created before
// ownership stamping was introduced).
type DraftOwner struct {
	UserID int64  `json:"user_id,omitempty"` // 0 = анонимный черновик
	Key    string `json:"key,omitempty"`     // непрозрачный ключ гостевой сессии
}

// IsZero returns true for legacy drafts without any recorded owner
func (o DraftOwner) IsZero() bool {
	return o.UserID == 0 && o.Key == ""
}

// Draft is a short-lived reservation intent stored under an opaque token.
// A draft never blocks the calendar: any number of drafts may point at the
// same slot, and conflicts are resolved only at confirmation time.
type Draft struct {
	Token            string       `json:"token"`
	MenuID           int64        `json:"menu_id"`
	ResourceID       int64        `json:"resource_id,omitempty"` // 0 = любой мастер
	Slot             SlotSnapshot `json:"slot"`
	IsStaffPreferred bool         `json:"is_staff_preferred,omitempty"`
	Owner            DraftOwner   `json:"owner,omitempty"`
	Memo             string       `json:"memo,omitempty"`
	NominationFee    float64      `json:"nomination_fee,omitempty"`
	Timezone         string       `json:"timezone"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Validate checks the structural invariants every stored draft must satisfy.
// Черновики с нарушенной структурой (например, записанные старой версией)
// отклоняются при подтверждении.
func (d *Draft) Validate() error {
	if d.MenuID <= 0 {
		return fmt.Errorf("%w: menu_id must be positive", ErrDraftInvalid)
	}
	if d.Slot.StartAt.IsZero() {
		return fmt.Errorf("%w: slot start is required", ErrDraftInvalid)
	}
	if d.ResourceID < 0 {
		return fmt.Errorf("%w: resource_id must not be negative", ErrDraftInvalid)
	}
	return nil
}
