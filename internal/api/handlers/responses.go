// Package handlers содержит общие помощники HTTP слоя:
// декодирование запросов и единый формат ответов об ошибках.
package handlers

import (
	"encoding/json"
	"net/http"
)

// Стабильные коды ошибок в теле ответа. HTTP статус передаёт класс ошибки,
// код остаётся неизменным для клиентов независимо от текста сообщения.
const (
	CodeInvalidRequest             = "invalid_request"
	CodeNotLoggedIn                = "not_logged_in"
	CodeDraftNotFound              = "draft_not_found"
	CodeInvalidDraft               = "invalid_draft"
	CodeForbiddenDraft             = "forbidden_draft"
	CodeInvalidReservationDay      = "invalid_reservation_day"
	CodeSlotUnavailable            = "slot_unavailable"
	CodeStaffUnavailable           = "staff_unavailable"
	CodeStaffAssignmentFailed      = "staff_assignment_failed"
	CodeBookingTimeConflict        = "booking_time_conflict"
	CodeCancellationPolicyRequired = "cancellation_policy_required"
	CodeTermsRequired              = "terms_required"
	CodeBookingNotFound            = "booking_not_found"
	CodeMenuNotFound               = "menu_not_found"
	CodeAccessDenied               = "access_denied"
	CodeInvalidTransition          = "invalid_transition"
	CodeInternalError              = "internal_error"
)

// ErrorResponse тело ответа об ошибке
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON читает JSON тело запроса в dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// RespondJSON пишет JSON ответ с указанным статусом.
// При nil payload тело не пишется.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	// Статус уже отправлен, ошибку кодирования можно только проглотить
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ответ об ошибке с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest пишет 400 с указанным кодом
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondUnauthorized пишет 401 not_logged_in
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeNotLoggedIn, message)
}

// RespondForbidden пишет 403 с указанным кодом
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondNotFound пишет 404 с указанным кодом
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondConflict пишет 409 с указанным кодом
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError пишет 500 internal_error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервиса")
}
