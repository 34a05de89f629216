package scheduleservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client клиент для работы с ScheduleService (генератор слотов и каталог)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ScheduleService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDailySlots запрашивает у генератора свободные слоты по услуге на день.
// resourceID = 0 означает слоты по всем мастерам.
// Генератор уже учитывает смены, занятость и длительность услуги,
// поэтому ответ отражает актуальное состояние на момент вызова.
func (c *Client) GetDailySlots(ctx context.Context, menuID, resourceID int64, date, timezone string) (*DailySlots, error) {
	endpoint := fmt.Sprintf("%s/internal/menus/%d/slots", c.baseURL, menuID)

	params := url.Values{}
	params.Set("date", date)
	if resourceID > 0 {
		params.Set("resource_id", strconv.FormatInt(resourceID, 10))
	}
	if timezone != "" {
		params.Set("timezone", timezone)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
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
	case http.StatusNotFound:
		c.log.Warn("Menu id=%d not found in ScheduleService", menuID)
		return nil, ErrMenuNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var slots DailySlots
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &slots, nil
}

// GetMenu получает услугу по ID
func (c *Client) GetMenu(ctx context.Context, menuID int64) (*Menu, error) {
	endpoint := fmt.Sprintf("%s/internal/menus/%d", c.baseURL, menuID)

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
	case http.StatusNotFound:
		c.log.Warn("Menu id=%d not found in ScheduleService", menuID)
		return nil, ErrMenuNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var menu Menu
	if err := json.NewDecoder(resp.Body).Decode(&menu); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &menu, nil
}

// GetStaffList получает список мастеров заведения
// Используется таймлайном для построения дорожек в заданном порядке
func (c *Client) GetStaffList(ctx context.Context) ([]Staff, error) {
	endpoint := fmt.Sprintf("%s/internal/staff", c.baseURL)

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

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var staff []Staff
	if err := json.NewDecoder(resp.Body).Decode(&staff); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return staff, nil
}
