package get_draft

import (
	"errors"
	"net/http"
	"time"

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
	ttl     time.Duration
	logger  Logger
}

func NewHandler(service DraftService, ttl time.Duration, logger Logger) *Handler {
	return &Handler{
		service: service,
		ttl:     ttl,
		logger:  logger,
	}
}

// Handle GET /api/v1/drafts/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("GET /drafts/{token} - Missing token")
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgMissingToken)
		return
	}

	auth, _ := middleware.GetAuthContext(r.Context())

	draft, err := h.service.Get(r.Context(), token, auth)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("GET /drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, handlers.CodeDraftNotFound, msgNotFound)

		case errors.Is(err, drafts.ErrAccessDenied):
			h.logger.Warn("GET /drafts/{token} - Access denied: token=%s, user_id=%d", token, auth.UserID)
			handlers.RespondForbidden(w, handlers.CodeForbiddenDraft, msgForbidden)

		default:
			h.logger.Error("GET /drafts/{token} - Failed to get draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drafts/{token} - Draft retrieved: token=%s", token)
	handlers.RespondJSON(w, http.StatusOK, FromDomainDraft(draft, h.ttl))
}
