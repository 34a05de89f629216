package confirm_booking

import "github.com/avdk/SBM-ReservationService/internal/domain"

// Request модель запроса на подтверждение записи из черновика
type Request struct {
	Auth       domain.AuthContext
	DraftToken string // токен черновика

	// Подтверждения соглашений. AgreeTerms - устаревшее поле,
	// принимается наравне с AgreeTermsOfService для старых клиентов.
	AgreeCancellationPolicy bool
	AgreeTermsOfService     bool
	AgreeTerms              bool

	// Пожелание клиента; если не задано, берётся из черновика
	Note *string

	// Менеджерский поток: оформление записи от имени клиента
	CustomerName  *string
	CustomerPhone *string
	InternalNote  *string
}

// Response модель ответа с подтверждённой записью
type Response struct {
	BookingID int64  // ID созданной записи
	Status    string // Статус записи после подтверждения
}
