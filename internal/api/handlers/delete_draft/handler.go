package delete_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdk/SBM-ReservationService/internal/api/handlers"
	"github.com/avdk/SBM-ReservationService/internal/api/middleware"
	"github.com/avdk/SBM-ReservationService/internal/service/drafts"
)

const (
	msgMissingToken = "токен черновика обязателен"
	msgNotFound     = "черновик не найден или истёк"
	msgForbidden    = "черновик принадлежит другому владельцу"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/drafts/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("DELETE /drafts/{token} - Missing token")
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgMissingToken)
		return
	}

	auth, _ := middleware.GetAuthContext(r.Context())

	err := h.service.Delete(r.Context(), token, auth)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("DELETE /drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, handlers.CodeDraftNotFound, msgNotFound)

		case errors.Is(err, drafts.ErrAccessDenied):
			h.logger.Warn("DELETE /drafts/{token} - Access denied: token=%s, user_id=%d", token, auth.UserID)
			handlers.RespondForbidden(w, handlers.CodeForbiddenDraft, msgForbidden)

		default:
			h.logger.Error("DELETE /drafts/{token} - Failed to delete draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /drafts/{token} - Draft deleted: token=%s", token)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
