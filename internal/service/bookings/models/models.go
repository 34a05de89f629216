package models

import (
	"errors"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	Auth               domain.AuthContext
	CancellationReason string
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Auth   domain.AuthContext
	Status string
}

// GetUserBookingsRequest запрос на получение записей пользователя
type GetUserBookingsRequest struct {
	Auth   domain.AuthContext
	UserID int64
	Status *string
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID         int64 `json:"id"`
	ResourceID int64 `json:"resource_id"`
	MenuID     int64 `json:"menu_id"`
	UserID     int64 `json:"user_id,omitempty"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	ServiceStart time.Time `json:"service_start"`
	ServiceEnd   time.Time `json:"service_end"`
	TotalEnd     time.Time `json:"total_end"`

	Status           string `json:"status"`
	IsStaffPreferred bool   `json:"is_staff_preferred"`

	NominationFee  float64 `json:"nomination_fee"`
	BaseTotalPrice float64 `json:"base_total_price"`

	Note         string  `json:"note,omitempty"`
	InternalNote *string `json:"internal_note,omitempty"` // только для менеджеров

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// Служебная заметка менеджера включается только для менеджерских запросов.
func FromDomainBooking(b *domain.Booking, includeInternal bool) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ResourceID:         b.ResourceID,
		MenuID:             b.MenuID,
		UserID:             b.UserID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		ServiceStart:       b.ServiceStart,
		ServiceEnd:         b.ServiceEnd,
		TotalEnd:           b.TotalEnd,
		Status:             string(b.Status),
		IsStaffPreferred:   b.IsStaffPreferred,
		NominationFee:      b.NominationFee,
		BaseTotalPrice:     b.BaseTotalPrice,
		Note:               b.Note,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if includeInternal {
		resp.InternalNote = b.InternalNote
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, includeInternal bool) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, includeInternal); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
