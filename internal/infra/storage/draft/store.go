// Package draft хранит черновики записи в Redis.
// Черновик живёт ограниченное время: TTL задаётся конфигурацией,
// Redis сам удаляет истёкшие ключи.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// keyPrefix общий префикс ключей черновиков в Redis
const keyPrefix = "sbm:draft:"

// Store хранилище черновиков поверх Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище черновиков с заданным временем жизни
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Put сохраняет черновик с полным TTL
func (s *Store) Put(ctx context.Context, draft *domain.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: Put - marshal draft: %v", ErrEncodeDraft, err)
	}

	if err := s.client.Set(ctx, draftKey(draft.Token), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put - set key: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Get получает черновик по токену
func (s *Store) Get(ctx context.Context, token string) (*domain.Draft, error) {
	payload, err := s.client.Get(ctx, draftKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get key: %v", ErrStoreUnavailable, err)
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal draft: %v", ErrDecodeDraft, err)
	}

	return &draft, nil
}

// Update перезаписывает существующий черновик, сохраняя остаток TTL.
// Используется при закреплении владельца: продление жизни черновика
// при этом недопустимо.
func (s *Store) Update(ctx context.Context, draft *domain.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: Update - marshal draft: %v", ErrEncodeDraft, err)
	}

	// SET XX KEEPTTL: только если ключ ещё жив, без сброса TTL
	ok, err := s.client.SetXX(ctx, draftKey(draft.Token), payload, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("%w: Update - set key: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrDraftNotFound
	}

	return nil
}

// Delete удаляет черновик по токену
func (s *Store) Delete(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, draftKey(token)).Result()
	if err != nil {
		return fmt.Errorf("%w: Delete - del key: %v", ErrStoreUnavailable, err)
	}

	if deleted == 0 {
		return ErrDraftNotFound
	}

	return nil
}

func draftKey(token string) string {
	return keyPrefix + token
}
