package confirm_booking

import "errors"

var (
	// ErrNotLoggedIn возвращается, когда подтверждение требует входа в аккаунт
	ErrNotLoggedIn = errors.New("confirm_booking: login required")

	// ErrDraftNotFound возвращается, когда черновик не найден или истёк
	ErrDraftNotFound = errors.New("confirm_booking: draft not found")

	// ErrInvalidDraft возвращается, когда черновик структурно некорректен
	// или ссылается на исчезнувшую услугу
	ErrInvalidDraft = errors.New("confirm_booking: draft is invalid")

	// ErrForbiddenDraft возвращается, когда черновик принадлежит другому владельцу
	ErrForbiddenDraft = errors.New("confirm_booking: draft belongs to another owner")

	// ErrInvalidReservationDay возвращается, когда услуга недоступна в день слота
	ErrInvalidReservationDay = errors.New("confirm_booking: reservation day is not allowed for this menu")

	// ErrSlotUnavailable возвращается, когда слот черновика больше недоступен
	ErrSlotUnavailable = errors.New("confirm_booking: slot is no longer available")

	// ErrStaffUnavailable возвращается, когда выбранный мастер недоступен на слот
	ErrStaffUnavailable = errors.New("confirm_booking: staff is not available")

	// ErrStaffAssignmentFailed возвращается, когда автоподбор не нашёл свободного мастера
	ErrStaffAssignmentFailed = errors.New("confirm_booking: no staff could be assigned")

	// ErrBookingTimeConflict возвращается при пересечении окна с существующей
	// записью. Код единый для конфликта на стороне мастера и на стороне
	// клиента: клиенту в обоих случаях нужно выбрать другое время.
	ErrBookingTimeConflict = errors.New("confirm_booking: overlapping booking exists")

	// ErrCancellationPolicyRequired возвращается без согласия с политикой отмены
	ErrCancellationPolicyRequired = errors.New("confirm_booking: cancellation policy agreement required")

	// ErrTermsRequired возвращается без согласия с условиями обслуживания
	ErrTermsRequired = errors.New("confirm_booking: terms of service agreement required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
