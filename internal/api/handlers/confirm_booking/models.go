package confirm_booking

import (
	"github.com/avdk/SBM-ReservationService/internal/domain"
	confirmBooking "github.com/avdk/SBM-ReservationService/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	Token string `json:"token"`

	AgreeCancellationPolicy bool `json:"agree_cancellation_policy,omitempty"`
	AgreeTermsOfService     bool `json:"agree_terms_of_service,omitempty"`
	// Устаревшее объединённое согласие, принимается от старых клиентов
	AgreeTerms bool `json:"agree_terms,omitempty"`

	Memo *string `json:"memo,omitempty"`

	// Поля менеджерского потока, требуют права manage_reservations
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	InternalNote  *string `json:"internal_note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmBookingRequest) ToUseCaseRequest(auth domain.AuthContext) *confirmBooking.Request {
	return &confirmBooking.Request{
		Auth:                    auth,
		DraftToken:              r.Token,
		AgreeCancellationPolicy: r.AgreeCancellationPolicy,
		AgreeTermsOfService:     r.AgreeTermsOfService,
		AgreeTerms:              r.AgreeTerms,
		Note:                    r.Memo,
		CustomerName:            r.CustomerName,
		CustomerPhone:           r.CustomerPhone,
		InternalNote:            r.InternalNote,
	}
}

// ConfirmBookingResponse HTTP response model
type ConfirmBookingResponse struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	return &ConfirmBookingResponse{
		BookingID: resp.BookingID,
		Status:    resp.Status,
	}
}
