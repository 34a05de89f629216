package cancel_booking

import (
	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(auth domain.AuthContext) *models.CancelBookingRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelBookingRequest{
		Auth:               auth,
		CancellationReason: reason,
	}
}
