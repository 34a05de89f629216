package update_booking_status

import (
	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(auth domain.AuthContext) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Auth:   auth,
		Status: r.Status,
	}
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
}
