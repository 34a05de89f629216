package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)
	return c.fetchUser(ctx, endpoint)
}

// FindByPhone ищет пользователя по номеру телефона.
// Используется при вводе записи менеджером: если телефон принадлежит
// зарегистрированному клиенту, запись привязывается к его аккаунту.
func (c *Client) FindByPhone(ctx context.Context, phone string) (*User, error) {
	params := url.Values{}
	params.Set("phone", phone)
	endpoint := fmt.Sprintf("%s/internal/users/by-phone?%s", c.baseURL, params.Encode())
	return c.fetchUser(ctx, endpoint)
}

// GetUserWithGracefulDegradation получает пользователя с graceful degradation.
// При недоступности UserService возвращает ErrServiceDegraded: подтверждение
// записи продолжается без денормализации имени и телефона клиента.
func (c *Client) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*User, error) {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Warn("User id=%d not found in UserService", userID)
			return nil, err
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	return user, nil
}

// FindByPhoneWithGracefulDegradation ищет пользователя по телефону с graceful degradation.
// При недоступности UserService запись сохраняется без привязки к аккаунту.
func (c *Client) FindByPhoneWithGracefulDegradation(ctx context.Context, phone string) (*User, error) {
	user, err := c.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}

		c.log.Error("UserService unavailable, applying graceful degradation for phone lookup: %v", err)
		return nil, fmt.Errorf("%w: phone lookup failed: %v", ErrServiceDegraded, err)
	}

	return user, nil
}

func (c *Client) fetchUser(ctx context.Context, endpoint string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}
