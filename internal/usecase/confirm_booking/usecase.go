package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	bookingRepo "github.com/avdk/SBM-ReservationService/internal/infra/storage/booking"
	scheduleClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
	userClient "github.com/avdk/SBM-ReservationService/internal/integrations/userservice"
	availabilityService "github.com/avdk/SBM-ReservationService/internal/service/availability"
	draftService "github.com/avdk/SBM-ReservationService/internal/service/drafts"
)

// UseCase use case подтверждения записи из черновика
type UseCase struct {
	bookingRepo    BookingRepository
	draftService   DraftService
	availability   AvailabilityService
	scheduleClient ScheduleServiceClient
	userClient     UserServiceClient
	notifier       Notifier
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	draftService DraftService,
	availability AvailabilityService,
	scheduleClient ScheduleServiceClient,
	userClient UserServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		draftService:   draftService,
		availability:   availability,
		scheduleClient: scheduleClient,
		userClient:     userClient,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case подтверждения записи.
// Назначение мастера и проверки конфликтов выполняются в сериализуемой
// транзакции: между проверкой и вставкой никто не может занять окно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: user=%d, manager=%t, token=%s",
		req.Auth.UserID, req.Auth.IsManager(), req.DraftToken)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Подтверждение требует входа в аккаунт.
	// Менеджер оформляет записи от имени клиентов без этого требования.
	isManager := req.Auth.IsManager()
	if !isManager && !req.Auth.IsAuthenticated() {
		uc.logger.Warn("ConfirmBooking: anonymous caller tried to confirm token=%s", req.DraftToken)
		return nil, ErrNotLoggedIn
	}

	// 3. Получаем черновик с проверкой владельца
	draft, err := uc.draftService.Get(ctx, req.DraftToken, req.Auth)
	if err != nil {
		switch {
		case errors.Is(err, draftService.ErrDraftNotFound):
			uc.logger.Warn("ConfirmBooking: draft token=%s not found", req.DraftToken)
			return nil, ErrDraftNotFound
		case errors.Is(err, draftService.ErrAccessDenied):
			uc.logger.Warn("ConfirmBooking: draft token=%s belongs to another owner", req.DraftToken)
			return nil, ErrForbiddenDraft
		default:
			uc.logger.Error("ConfirmBooking: failed to get draft token=%s: %v", req.DraftToken, err)
			return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
		}
	}

	// 4. Проверяем структурную целостность черновика
	if err := draft.Validate(); err != nil {
		uc.logger.Warn("ConfirmBooking: draft token=%s is invalid: %v", req.DraftToken, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	// 5. Получаем услугу
	menu, err := uc.scheduleClient.GetMenu(ctx, draft.MenuID)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrMenuNotFound) {
			uc.logger.Warn("ConfirmBooking: menu id=%d not found", draft.MenuID)
			return nil, fmt.Errorf("%w: menu not found", ErrInvalidDraft)
		}
		uc.logger.Error("ConfirmBooking: failed to get menu id=%d: %v", draft.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	if !menu.IsActive {
		uc.logger.Warn("ConfirmBooking: menu id=%d is inactive", draft.MenuID)
		return nil, fmt.Errorf("%w: menu is inactive", ErrInvalidDraft)
	}

	// 6. Проверяем ограничение услуги по дням недели
	if err := validateDayRestriction(menu, draft.Slot.StartAt, uc.draftLocation(draft)); err != nil {
		uc.logger.Warn("ConfirmBooking: day restriction failed: %v", err)
		return nil, err
	}

	// 7. Проверяем подтверждения соглашений.
	// Менеджер оформляет запись без согласий: клиент даёт их вне системы.
	if !isManager {
		if err := validateAgreements(menu, req); err != nil {
			uc.logger.Warn("ConfirmBooking: agreements check failed: %v", err)
			return nil, err
		}
	}

	// 8. Перепроверяем слот у генератора доступности.
	// Свежий слот становится источником времени и кандидатов записи.
	now := uc.timeProvider.Now()
	if !draft.Slot.StartAt.After(now) {
		uc.logger.Warn("ConfirmBooking: slot start %s is in the past", draft.Slot.StartAt.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: slot start is in the past", ErrSlotUnavailable)
	}

	fresh, err := uc.availability.Revalidate(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrSlotUnavailable):
			uc.logger.Warn("ConfirmBooking: slot %s is no longer offered", draft.Slot.SlotID)
			return nil, ErrSlotUnavailable
		case errors.Is(err, availabilityService.ErrStaffUnavailable):
			uc.logger.Warn("ConfirmBooking: preferred staff id=%d is no longer offered", draft.ResourceID)
			return nil, ErrStaffUnavailable
		default:
			uc.logger.Error("ConfirmBooking: failed to revalidate slot: %v", err)
			return nil, fmt.Errorf("%w: failed to revalidate slot: %v", ErrInternal, err)
		}
	}

	// 9. Определяем клиента записи
	cust := uc.resolveCustomer(ctx, req)

	// Переменная для хранения результата
	var result *domain.Booking

	// 10. Назначение мастера, проверки конфликтов и вставка выполняются
	// в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		window := fresh.Window()

		// 10.1. Закрепляем мастера за записью
		staffID, err := uc.resolveStaff(txCtx, draft, fresh, window)
		if err != nil {
			return err
		}

		// 10.2. Проверяем пересечения по клиенту
		if cust.userID > 0 {
			busy, err := uc.bookingRepo.ExistsUserOverlap(txCtx, cust.userID, window, 0)
			if err != nil {
				uc.logger.Error("ConfirmBooking: failed to check user overlap: %v", err)
				return fmt.Errorf("%w: failed to check user overlap: %v", ErrInternal, err)
			}
			if busy {
				uc.logger.Warn("ConfirmBooking: user id=%d already has a booking in this window", cust.userID)
				return ErrBookingTimeConflict
			}
		}

		if cust.phone != "" {
			busy, err := uc.bookingRepo.ExistsPhoneOverlap(txCtx, cust.phone, window, 0)
			if err != nil {
				uc.logger.Error("ConfirmBooking: failed to check phone overlap: %v", err)
				return fmt.Errorf("%w: failed to check phone overlap: %v", ErrInternal, err)
			}
			if busy {
				uc.logger.Warn("ConfirmBooking: phone already has a booking in this window")
				return ErrBookingTimeConflict
			}
		}

		// 10.3. Статус по режиму подтверждения услуги.
		// Менеджерские записи подтверждаются сразу.
		status := domain.StatusPending
		if isManager || menu.ApprovalMode == scheduleClient.ApprovalModeAuto {
			status = domain.StatusConfirmed
		}

		// 10.4. Срез цены фиксируется на момент подтверждения.
		// Надбавка за явный выбор мастера входит в итоговую цену.
		nominationFee := 0.0
		if draft.IsStaffPreferred {
			nominationFee = menu.NominationFee
		}

		note := draft.Memo
		if req.Note != nil {
			note = *req.Note
		}

		booking := &domain.Booking{
			ResourceID:       staffID,
			MenuID:           draft.MenuID,
			UserID:           cust.userID,
			CustomerName:     cust.name,
			CustomerPhone:    cust.phone,
			ServiceStart:     fresh.StartAt,
			ServiceEnd:       fresh.ServiceEnd(),
			TotalEnd:         fresh.EndAt,
			Status:           status,
			IsStaffPreferred: draft.IsStaffPreferred,
			NominationFee:    nominationFee,
			BaseTotalPrice:   menu.Price + nominationFee,
			Note:             note,
			InternalNote:     req.InternalNote,
		}

		// 10.5. Сохраняем запись. Constraint БД страхует от гонки,
		// которую не перехватили проверки выше.
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingConflict) {
				uc.logger.Warn("ConfirmBooking: conflict on insert for staff id=%d", staffID)
				return ErrBookingTimeConflict
			}
			uc.logger.Error("ConfirmBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 11. Черновик использован, удаляем его.
	// Неудача удаления не отменяет уже созданную запись.
	if err := uc.draftService.Discard(ctx, req.DraftToken); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to discard draft token=%s: %v", req.DraftToken, err)
	}

	// 12. Публикуем событие о созданной записи
	if err := uc.notifier.BookingCreated(ctx, result); err != nil {
		uc.logger.Error("ConfirmBooking: failed to publish created event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("ConfirmBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	return &Response{
		BookingID: result.ID,
		Status:    string(result.Status),
	}, nil
}

// customer данные клиента, закрепляемые за записью
type customer struct {
	userID int64
	name   string
	phone  string
}

// resolveCustomer определяет клиента записи. Менеджер привязывает запись
// к аккаунту по номеру телефона; обычный клиент записывается на свой аккаунт.
// Недоступность UserService не прерывает подтверждение: запись сохраняется
// без привязки или без денормализованных данных.
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) customer {
	if req.Auth.IsManager() && (req.CustomerName != nil || req.CustomerPhone != nil) {
		cust := customer{}
		if req.CustomerName != nil {
			cust.name = *req.CustomerName
		}

		if req.CustomerPhone != nil && *req.CustomerPhone != "" {
			cust.phone = *req.CustomerPhone

			user, err := uc.userClient.FindByPhoneWithGracefulDegradation(ctx, cust.phone)
			switch {
			case err == nil:
				cust.userID = user.ID
				if cust.name == "" {
					cust.name = user.Name
				}
				uc.logger.Info("ConfirmBooking: phone matched to user id=%d", user.ID)
			case errors.Is(err, userClient.ErrUserNotFound):
				// Телефон не зарегистрирован, запись остаётся без привязки
			default:
				uc.logger.Warn("ConfirmBooking: phone lookup degraded, booking stays unmatched: %v", err)
			}
		}

		return cust
	}

	cust := customer{userID: req.Auth.UserID}
	if cust.userID == 0 {
		return cust
	}

	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, cust.userID)
	if err != nil {
		// Денормализация имени и телефона пропускается
		uc.logger.Warn("ConfirmBooking: user lookup failed for id=%d: %v", cust.userID, err)
		return cust
	}

	cust.name = user.Name
	cust.phone = user.Phone
	return cust
}

// resolveStaff закрепляет запись за мастером внутри сериализуемой транзакции.
// Явно выбранный мастер проверяется на занятость; при автоподборе берётся
// первый свободный кандидат в порядке выдачи генератора.
func (uc *UseCase) resolveStaff(ctx context.Context, draft *domain.Draft, fresh *domain.SlotSnapshot, window domain.TimeRange) (int64, error) {
	if draft.ResourceID > 0 {
		if !fresh.CanAssign(draft.ResourceID) && fresh.StaffID != draft.ResourceID {
			uc.logger.Warn("ConfirmBooking: staff id=%d is not assignable to slot %s", draft.ResourceID, fresh.SlotID)
			return 0, ErrStaffUnavailable
		}

		busy, err := uc.bookingRepo.ExistsResourceOverlap(ctx, draft.ResourceID, window, 0)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to check staff id=%d availability: %v", draft.ResourceID, err)
			return 0, fmt.Errorf("%w: failed to check staff availability: %v", ErrInternal, err)
		}
		if busy {
			// Конфликт по времени отдаётся одним кодом независимо от того,
			// на чьей стороне он найден: у мастера или у клиента
			uc.logger.Warn("ConfirmBooking: staff id=%d is busy in the requested window", draft.ResourceID)
			return 0, ErrBookingTimeConflict
		}

		return draft.ResourceID, nil
	}

	candidates := fresh.AssignableStaffIDs
	if len(candidates) == 0 && fresh.StaffID > 0 {
		candidates = []int64{fresh.StaffID}
	}

	for _, staffID := range candidates {
		busy, err := uc.bookingRepo.ExistsResourceOverlap(ctx, staffID, window, 0)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to check staff id=%d availability: %v", staffID, err)
			return 0, fmt.Errorf("%w: failed to check staff availability: %v", ErrInternal, err)
		}
		if !busy {
			return staffID, nil
		}
	}

	uc.logger.Warn("ConfirmBooking: no free staff for slot %s among %d candidates", fresh.SlotID, len(candidates))
	return 0, ErrStaffAssignmentFailed
}

// draftLocation возвращает часовой пояс черновика, UTC при некорректном значении
func (uc *UseCase) draftLocation(draft *domain.Draft) *time.Location {
	loc, err := time.LoadLocation(draft.Timezone)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: unknown timezone %q, falling back to UTC", draft.Timezone)
		return time.UTC
	}
	return loc
}
