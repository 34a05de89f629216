package create_draft

import (
	"errors"
	"net/http"

	"github.com/avdk/SBM-ReservationService/internal/api/handlers"
	"github.com/avdk/SBM-ReservationService/internal/api/middleware"
	createDraft "github.com/avdk/SBM-ReservationService/internal/usecase/create_draft"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgMenuNotFound       = "услуга не найдена или неактивна"
	msgSlotUnavailable    = "выбранный слот недоступен"
)

type Handler struct {
	useCase CreateDraftUseCase
	logger  Logger
}

func NewHandler(useCase CreateDraftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	auth, _ := middleware.GetAuthContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(auth))
	if err != nil {
		switch {
		case errors.Is(err, createDraft.ErrInvalidInput):
			h.logger.Warn("POST /drafts - Invalid request: menu_id=%d, error=%v", req.MenuID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequest)

		case errors.Is(err, createDraft.ErrMenuNotFound):
			h.logger.Warn("POST /drafts - Menu not found: menu_id=%d", req.MenuID)
			handlers.RespondNotFound(w, handlers.CodeMenuNotFound, msgMenuNotFound)

		case errors.Is(err, createDraft.ErrSlotUnavailable):
			h.logger.Warn("POST /drafts - Slot unavailable: menu_id=%d, slot_id=%s, date=%s",
				req.MenuID, req.SlotID, req.Date)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("POST /drafts - Failed to create draft: menu_id=%d, error=%v", req.MenuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts - Draft created: token=%s, menu_id=%d, user_id=%d",
		result.Token, req.MenuID, auth.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
