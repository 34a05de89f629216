package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	draftStore "github.com/avdk/SBM-ReservationService/internal/infra/storage/draft"
)

// Service сервис для работы с черновиками записи
type Service struct {
	store  DraftStore
	logger Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Create генерирует токен и сохраняет черновик.
// Владелец берётся из контекста авторизации: авторизованный пользователь
// или гостевой ключ сессии.
func (s *Service) Create(ctx context.Context, draft *domain.Draft, auth domain.AuthContext) (*domain.Draft, error) {
	draft.Token = uuid.NewString()
	draft.CreatedAt = time.Now().UTC()

	if auth.IsAuthenticated() {
		draft.Owner = domain.DraftOwner{UserID: auth.UserID}
	} else if auth.GuestKey != "" {
		draft.Owner = domain.DraftOwner{Key: auth.GuestKey}
	}

	if err := s.store.Put(ctx, draft); err != nil {
		s.logger.Error("Create: failed to store draft token=%s: %v", draft.Token, err)
		return nil, fmt.Errorf("%w: Create - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: draft stored token=%s, menu=%d, resource=%d", draft.Token, draft.MenuID, draft.ResourceID)
	return draft, nil
}

// Get получает черновик по токену с проверкой владельца
func (s *Service) Get(ctx context.Context, token string, auth domain.AuthContext) (*domain.Draft, error) {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, draftStore.ErrDraftNotFound) {
			s.logger.Warn("Get: draft token=%s not found", token)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("Get: store error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}

	if err := s.authorize(ctx, draft, auth); err != nil {
		s.logger.Warn("Get: access denied for token=%s, user=%d", token, auth.UserID)
		return nil, err
	}

	return draft, nil
}

// Delete удаляет черновик по токену с проверкой владельца
func (s *Service) Delete(ctx context.Context, token string, auth domain.AuthContext) error {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, draftStore.ErrDraftNotFound) {
			s.logger.Warn("Delete: draft token=%s not found", token)
			return ErrDraftNotFound
		}
		s.logger.Error("Delete: store error for token=%s: %v", token, err)
		return fmt.Errorf("%w: Delete - store error: %v", ErrInternal, err)
	}

	if err := s.authorize(ctx, draft, auth); err != nil {
		s.logger.Warn("Delete: access denied for token=%s, user=%d", token, auth.UserID)
		return err
	}

	if err := s.store.Delete(ctx, token); err != nil {
		if errors.Is(err, draftStore.ErrDraftNotFound) {
			// Черновик истёк между чтением и удалением
			return ErrDraftNotFound
		}
		s.logger.Error("Delete: store error for token=%s: %v", token, err)
		return fmt.Errorf("%w: Delete - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: draft token=%s removed", token)
	return nil
}

// Discard удаляет черновик без проверки владельца.
// Используется после подтверждения записи: авторизация уже пройдена,
// отсутствие черновика не считается ошибкой.
func (s *Service) Discard(ctx context.Context, token string) error {
	err := s.store.Delete(ctx, token)
	if err != nil && !errors.Is(err, draftStore.ErrDraftNotFound) {
		return fmt.Errorf("%w: Discard - store error: %v", ErrInternal, err)
	}
	return nil
}

// authorize проверяет право доступа к черновику.
//
// Правила владения:
//   - черновик авторизованного пользователя доступен только ему;
//   - гостевой черновик доступен предъявителю того же гостевого ключа;
//   - менеджер имеет доступ к любому черновику;
//   - черновик без владельца (создан до введения владения) закрепляется
//     за первым обратившимся, срок жизни при этом не продлевается.
func (s *Service) authorize(ctx context.Context, draft *domain.Draft, auth domain.AuthContext) error {
	if auth.IsManager() {
		return nil
	}

	owner := draft.Owner
	switch {
	case owner.UserID > 0:
		if auth.UserID == owner.UserID {
			return nil
		}
		return ErrAccessDenied

	case owner.Key != "":
		if auth.GuestKey == owner.Key {
			return nil
		}
		return ErrAccessDenied

	default:
		s.adopt(ctx, draft, auth)
		return nil
	}
}

// adopt закрепляет владельца за черновиком без владельца.
// Закрепление best-effort: сбой записи не мешает обслужить запрос.
func (s *Service) adopt(ctx context.Context, draft *domain.Draft, auth domain.AuthContext) {
	switch {
	case auth.IsAuthenticated():
		draft.Owner = domain.DraftOwner{UserID: auth.UserID}
	case auth.GuestKey != "":
		draft.Owner = domain.DraftOwner{Key: auth.GuestKey}
	default:
		// Анонимный запрос без гостевого ключа: закреплять не за кем
		return
	}

	if err := s.store.Update(ctx, draft); err != nil {
		s.logger.Warn("adopt: failed to stamp owner on draft token=%s: %v", draft.Token, err)
		return
	}

	s.logger.Info("adopt: stamped owner on legacy draft token=%s, user=%d", draft.Token, draft.Owner.UserID)
}
