package draft

import (
	"context"
	"sync"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// cleanupInterval период фоновой очистки истёкших черновиков
const cleanupInterval = time.Minute

// MemoryStore хранилище черновиков в памяти процесса.
// Используется в окружениях без Redis (локальная разработка, тесты).
// Черновики не переживают рестарт сервиса.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	draft     domain.Draft
	expiresAt time.Time
}

// NewMemoryStore создает хранилище черновиков в памяти
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put сохраняет черновик с полным TTL
func (s *MemoryStore) Put(_ context.Context, draft *domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[draft.Token] = memoryEntry{
		draft:     *draft,
		expiresAt: s.now().Add(s.ttl),
	}

	return nil
}

// Get получает черновик по токену.
// Истёкший черновик считается отсутствующим, даже если очистка
// до него ещё не дошла.
func (s *MemoryStore) Get(_ context.Context, token string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[token]
	if !ok || !entry.expiresAt.After(s.now()) {
		return nil, ErrDraftNotFound
	}

	draft := entry.draft
	return &draft, nil
}

// Update перезаписывает существующий черновик, сохраняя остаток TTL
func (s *MemoryStore) Update(_ context.Context, draft *domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[draft.Token]
	if !ok || !entry.expiresAt.After(s.now()) {
		return ErrDraftNotFound
	}

	entry.draft = *draft
	s.entries[draft.Token] = entry

	return nil
}

// Delete удаляет черновик по токену
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok || !entry.expiresAt.After(s.now()) {
		delete(s.entries, token)
		return ErrDraftNotFound
	}

	delete(s.entries, token)
	return nil
}

// RunCleanup запускает фоновую очистку истёкших черновиков.
// Блокируется до закрытия stop.
func (s *MemoryStore) RunCleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-stop:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, entry := range s.entries {
		if !entry.expiresAt.After(now) {
			delete(s.entries, token)
		}
	}
}
