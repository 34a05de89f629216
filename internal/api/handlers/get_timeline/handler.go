package get_timeline

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/avdk/SBM-ReservationService/internal/api/handlers"
	"github.com/avdk/SBM-ReservationService/internal/api/middleware"
	buildTimeline "github.com/avdk/SBM-ReservationService/internal/usecase/build_timeline"
)

const (
	msgMissingDate        = "дата обязательна"
	msgInvalidResourceIDs = "некорректный список ID мастеров"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgForbidden          = "требуется право управления записями"
)

type Handler struct {
	useCase BuildTimelineUseCase
	logger  Logger
}

func NewHandler(useCase BuildTimelineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/timeline
// Query params: date (required, YYYY-MM-DD), resource_ids (csv), timezone
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /admin/timeline - Missing date")
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgMissingDate)
		return
	}

	var resourceIDs []int64
	if raw := query.Get("resource_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				h.logger.Warn("GET /admin/timeline - Invalid resource IDs: %q", raw)
				handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidResourceIDs)
				return
			}
			resourceIDs = append(resourceIDs, id)
		}
	}

	auth, _ := middleware.GetAuthContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), &buildTimeline.Request{
		Auth:        auth,
		Date:        date,
		ResourceIDs: resourceIDs,
		Timezone:    query.Get("timezone"),
	})
	if err != nil {
		switch {
		case errors.Is(err, buildTimeline.ErrAccessDenied):
			h.logger.Warn("GET /admin/timeline - Access denied: user_id=%d", auth.UserID)
			handlers.RespondForbidden(w, handlers.CodeAccessDenied, msgForbidden)

		case errors.Is(err, buildTimeline.ErrInvalidInput):
			h.logger.Warn("GET /admin/timeline - Invalid request: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequest)

		default:
			h.logger.Error("GET /admin/timeline - Failed to build timeline: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/timeline - Timeline built: date=%s, lanes=%d, user_id=%d",
		date, len(result.Lanes), auth.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
