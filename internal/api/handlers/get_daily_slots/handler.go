package get_daily_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdk/SBM-ReservationService/internal/api/handlers"
	getDailySlots "github.com/avdk/SBM-ReservationService/internal/usecase/get_daily_slots"
)

const (
	msgInvalidMenuID     = "некорректный ID услуги"
	msgInvalidResourceID = "некорректный ID мастера"
	msgMissingDate       = "дата обязательна"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgMenuNotFound      = "услуга не найдена или неактивна"
)

type Handler struct {
	useCase GetDailySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDailySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/menus/{menuId}/slots
// Query params: date (required, YYYY-MM-DD), resource_id, timezone
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	menuID, err := strconv.ParseInt(vars["menuId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /menus/{id}/slots - Invalid menu ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidMenuID)
		return
	}

	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /menus/{id}/slots - Missing date: menu_id=%d", menuID)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgMissingDate)
		return
	}

	var resourceID int64
	if raw := query.Get("resource_id"); raw != "" {
		resourceID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /menus/{id}/slots - Invalid resource ID: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidResourceID)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getDailySlots.Request{
		MenuID:     menuID,
		ResourceID: resourceID,
		Date:       date,
		Timezone:   query.Get("timezone"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getDailySlots.ErrInvalidInput):
			h.logger.Warn("GET /menus/{id}/slots - Invalid request: menu_id=%d, error=%v", menuID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequest)

		case errors.Is(err, getDailySlots.ErrMenuNotFound):
			h.logger.Warn("GET /menus/{id}/slots - Menu not found: menu_id=%d", menuID)
			handlers.RespondNotFound(w, handlers.CodeMenuNotFound, msgMenuNotFound)

		default:
			h.logger.Error("GET /menus/{id}/slots - Failed to get slots: menu_id=%d, date=%s, error=%v",
				menuID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /menus/{id}/slots - Slots retrieved: menu_id=%d, date=%s, slots_count=%d",
		menuID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
