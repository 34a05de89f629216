package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	bookingRepo "github.com/avdk/SBM-ReservationService/internal/infra/storage/booking"
	"github.com/avdk/SBM-ReservationService/internal/service/bookings/models"
)

// Service сервис для работы с записями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает запись по ID
// Пользователь видит только свою запись, менеджер - любую
func (s *Service) GetByID(ctx context.Context, id int64, auth domain.AuthContext) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, auth.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(booking, auth); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", auth.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking, auth.IsManager()), nil
}

// GetUserBookings получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Чужую историю видит только менеджер
	if req.Auth.UserID != req.UserID && !req.Auth.IsManager() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to history of user=%d", req.Auth.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, req.Auth.IsManager()), nil
}

// Cancel отменяет запись
// Пользователь может отменить только свою запись, менеджер - любую
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.Auth.UserID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.checkAccess(booking, req.Auth); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.Auth.UserID, bookingID)
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	previous := booking.Status
	booking.Status = domain.StatusCancelled
	if req.CancellationReason != "" {
		booking.CancellationReason = &req.CancellationReason
	}
	s.notifyStatusChanged(ctx, booking, previous)

	return nil
}

// UpdateStatus переводит запись в новый статус
// Доступно только менеджерам. Допустимость перехода проверяется по таблице
// переходов; реактивация отменённой записи дополнительно перепроверяет
// конфликты в сериализуемой транзакции.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.Auth.UserID)

	if !req.Auth.IsManager() {
		s.logger.Warn("UpdateStatus: access denied for user=%d", req.Auth.UserID)
		return ErrAccessDenied
	}

	target, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Повторная установка текущего статуса - no-op без уведомления
	if booking.Status == target {
		s.logger.Info("UpdateStatus: booking id=%d already in status=%s", bookingID, target)
		return nil
	}

	if !booking.Status.CanTransitionTo(target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, target, bookingID)
		return ErrInvalidTransition
	}

	previous := booking.Status

	// Реактивация возвращает запись в календарь мастера: окно могло быть
	// занято, пока запись была неактивна
	if target.IsBlocking() && !booking.Status.IsBlocking() {
		applied, err := s.reactivate(ctx, bookingID, target, &previous)
		if err != nil {
			return err
		}
		if !applied {
			// Переход успел применить параллельный вызов, уведомление за ним
			s.logger.Info("UpdateStatus: booking id=%d already in status=%s", bookingID, target)
			return nil
		}
	} else {
		if err := s.applyStatus(ctx, bookingID, target); err != nil {
			return err
		}
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, target)

	booking.Status = target
	s.notifyStatusChanged(ctx, booking, previous)

	return nil
}

// reactivate переводит неактивную запись в блокирующий статус.
// Проверка конфликтов и запись статуса выполняются в одной сериализуемой
// транзакции, чтобы окно не могло быть занято между проверкой и записью.
// Возвращает false, если переход уже применён параллельным вызовом.
func (s *Service) reactivate(ctx context.Context, bookingID int64, target domain.BookingStatus, previous *domain.BookingStatus) (bool, error) {
	applied := false

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: reactivate - repository error: %v", ErrInternal, err)
		}

		// Статус мог смениться между чтением вне транзакции и входом в неё
		if current.Status == target {
			return nil
		}
		if !current.Status.CanTransitionTo(target) {
			return ErrInvalidTransition
		}
		*previous = current.Status

		window := current.Window()

		busy, err := s.bookingRepo.ExistsResourceOverlap(txCtx, current.ResourceID, window, current.ID)
		if err != nil {
			return fmt.Errorf("%w: reactivate - resource overlap check: %v", ErrInternal, err)
		}
		if busy {
			s.logger.Warn("reactivate: resource=%d window is taken, booking id=%d stays %s",
				current.ResourceID, current.ID, current.Status)
			return ErrBookingConflict
		}

		if current.UserID > 0 {
			busy, err = s.bookingRepo.ExistsUserOverlap(txCtx, current.UserID, window, current.ID)
		} else if current.CustomerPhone != "" {
			busy, err = s.bookingRepo.ExistsPhoneOverlap(txCtx, current.CustomerPhone, window, current.ID)
		}
		if err != nil {
			return fmt.Errorf("%w: reactivate - customer overlap check: %v", ErrInternal, err)
		}
		if busy {
			s.logger.Warn("reactivate: customer has another active booking in window, booking id=%d", current.ID)
			return ErrBookingConflict
		}

		if err := s.applyStatus(txCtx, bookingID, target); err != nil {
			return err
		}
		applied = true
		return nil
	})

	return applied, err
}

// applyStatus записывает статус, транслируя ошибки хранилища
func (s *Service) applyStatus(ctx context.Context, bookingID int64, target domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrBookingConflict):
			// Exclusion constraint: страховка на случай обхода проверок
			return ErrBookingConflict
		default:
			s.logger.Error("applyStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: applyStatus - repository error: %v", ErrInternal, err)
		}
	}
	return nil
}

// Вспомогательные методы

// checkAccess проверяет, что пользователь имеет доступ к записи.
// Запись без привязанного аккаунта (созданная менеджером по телефону)
// доступна только менеджерам.
func (s *Service) checkAccess(booking *domain.Booking, auth domain.AuthContext) error {
	if auth.IsManager() {
		return nil
	}

	if auth.IsAuthenticated() && booking.UserID == auth.UserID {
		return nil
	}

	return ErrAccessDenied
}

// notifyStatusChanged отправляет уведомление о применённом переходе.
// Сбой уведомления не откатывает уже применённый переход.
func (s *Service) notifyStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	if err := s.notifier.BookingStatusChanged(ctx, booking, previous); err != nil {
		s.logger.Error("notifyStatusChanged: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
