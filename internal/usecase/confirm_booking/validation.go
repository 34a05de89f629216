package confirm_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DraftToken == "" {
		return fmt.Errorf("%w: draftToken is required", ErrInvalidInput)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxMemoLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxMemoLength)
	}

	// Поля менеджерского потока доступны только менеджеру
	if !req.Auth.IsManager() {
		if req.CustomerName != nil || req.CustomerPhone != nil || req.InternalNote != nil {
			return fmt.Errorf("%w: customer fields require manage_reservations permission", ErrInvalidInput)
		}
		return nil
	}

	if req.CustomerName != nil && utf8.RuneCountInString(*req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerPhone != nil && utf8.RuneCountInString(*req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	if req.InternalNote != nil && utf8.RuneCountInString(*req.InternalNote) > domain.MaxMemoLength {
		return fmt.Errorf("%w: internalNote must not exceed %d characters", ErrInvalidInput, domain.MaxMemoLength)
	}

	return nil
}

// validateDayRestriction проверяет ограничение услуги по дням недели.
// День определяется по началу слота в часовом поясе черновика.
func validateDayRestriction(menu *scheduleClient.Menu, startAt time.Time, loc *time.Location) error {
	weekday := startAt.In(loc).Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday

	switch menu.DayRestriction {
	case scheduleClient.DayRestrictionWeekdayOnly:
		if isWeekend {
			return fmt.Errorf("%w: menu id=%d is available on weekdays only", ErrInvalidReservationDay, menu.ID)
		}
	case scheduleClient.DayRestrictionWeekendOnly:
		if !isWeekend {
			return fmt.Errorf("%w: menu id=%d is available on weekends only", ErrInvalidReservationDay, menu.ID)
		}
	}

	return nil
}

// validateAgreements проверяет обязательные подтверждения соглашений.
// AgreeTerms принимается наравне с AgreeTermsOfService для старых клиентов.
func validateAgreements(menu *scheduleClient.Menu, req *Request) error {
	if menu.RequireCancellationPolicy && !req.AgreeCancellationPolicy {
		return ErrCancellationPolicyRequired
	}

	if menu.RequireTermsOfService && !req.AgreeTermsOfService && !req.AgreeTerms {
		return ErrTermsRequired
	}

	return nil
}
