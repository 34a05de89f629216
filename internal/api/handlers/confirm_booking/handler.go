package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/avdk/SBM-ReservationService/internal/api/handlers"
	"github.com/avdk/SBM-ReservationService/internal/api/middleware"
	confirmBooking "github.com/avdk/SBM-ReservationService/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidRequest        = "некорректные параметры запроса"
	msgNotLoggedIn           = "требуется аутентификация"
	msgDraftNotFound         = "черновик не найден или истёк"
	msgForbiddenDraft        = "черновик принадлежит другому владельцу"
	msgInvalidDraft          = "черновик некорректен и не может быть подтверждён"
	msgInvalidReservationDay = "услуга недоступна в выбранный день недели"
	msgCancellationPolicy    = "требуется согласие с политикой отмены"
	msgTermsRequired         = "требуется согласие с условиями обслуживания"
	msgSlotUnavailable       = "выбранный слот больше недоступен"
	msgStaffUnavailable      = "выбранный мастер недоступен в этом слоте"
	msgStaffAssignmentFailed = "нет свободного мастера на выбранное время"
	msgBookingTimeConflict   = "выбранное время конфликтует с другой записью"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	auth, _ := middleware.GetAuthContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(auth))
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: user_id=%d, error=%v", auth.UserID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequest)

		case errors.Is(err, confirmBooking.ErrNotLoggedIn):
			h.logger.Warn("POST /bookings - Not logged in: token=%s", req.Token)
			handlers.RespondUnauthorized(w, msgNotLoggedIn)

		case errors.Is(err, confirmBooking.ErrDraftNotFound):
			h.logger.Warn("POST /bookings - Draft not found: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondNotFound(w, handlers.CodeDraftNotFound, msgDraftNotFound)

		case errors.Is(err, confirmBooking.ErrForbiddenDraft):
			h.logger.Warn("POST /bookings - Foreign draft: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondForbidden(w, handlers.CodeForbiddenDraft, msgForbiddenDraft)

		case errors.Is(err, confirmBooking.ErrInvalidDraft):
			h.logger.Warn("POST /bookings - Invalid draft: token=%s, error=%v", req.Token, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDraft, msgInvalidDraft)

		case errors.Is(err, confirmBooking.ErrInvalidReservationDay):
			h.logger.Warn("POST /bookings - Day restriction: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondConflict(w, handlers.CodeInvalidReservationDay, msgInvalidReservationDay)

		case errors.Is(err, confirmBooking.ErrCancellationPolicyRequired):
			h.logger.Warn("POST /bookings - Cancellation policy not agreed: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondBadRequest(w, handlers.CodeCancellationPolicyRequired, msgCancellationPolicy)

		case errors.Is(err, confirmBooking.ErrTermsRequired):
			h.logger.Warn("POST /bookings - Terms not agreed: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondBadRequest(w, handlers.CodeTermsRequired, msgTermsRequired)

		case errors.Is(err, confirmBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		case errors.Is(err, confirmBooking.ErrStaffUnavailable):
			h.logger.Warn("POST /bookings - Staff unavailable: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondConflict(w, handlers.CodeStaffUnavailable, msgStaffUnavailable)

		case errors.Is(err, confirmBooking.ErrStaffAssignmentFailed):
			h.logger.Warn("POST /bookings - Staff assignment failed: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondConflict(w, handlers.CodeStaffAssignmentFailed, msgStaffAssignmentFailed)

		case errors.Is(err, confirmBooking.ErrBookingTimeConflict):
			h.logger.Warn("POST /bookings - Booking time conflict: token=%s, user_id=%d", req.Token, auth.UserID)
			handlers.RespondConflict(w, handlers.CodeBookingTimeConflict, msgBookingTimeConflict)

		default:
			h.logger.Error("POST /bookings - Failed to confirm booking: token=%s, user_id=%d, error=%v",
				req.Token, auth.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking confirmed: booking_id=%d, status=%s, user_id=%d",
		result.BookingID, result.Status, auth.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
