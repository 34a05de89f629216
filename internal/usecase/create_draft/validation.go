package create_draft

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
	}

	if req.ResourceID < 0 {
		return fmt.Errorf("%w: resourceID must not be negative", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	// Надбавка за выбор мастера не имеет смысла без самого мастера
	if req.IsStaffPreferred && req.ResourceID == 0 {
		return fmt.Errorf("%w: staff preference requires resourceID", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Memo) > domain.MaxMemoLength {
		return fmt.Errorf("%w: memo must not exceed %d characters", ErrInvalidInput, domain.MaxMemoLength)
	}

	return nil
}
