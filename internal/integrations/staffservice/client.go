package staffservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// Client клиент для работы со StaffService
// StaffService владеет реестром мастеров: кто работает в салоне,
// какие услуги выполняет и в какие часы доступен
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetWorkers получает список мастеров салона с их навыками и личными окнами доступности
func (c *Client) GetWorkers(ctx context.Context, salonID int64) ([]*domain.Worker, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/workers", c.baseURL, salonID)

	var payload []WorkerPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	workers := make([]*domain.Worker, 0, len(payload))
	for _, w := range payload {
		workers = append(workers, w.ToDomain())
	}
	return workers, nil
}

// GetWorker получает одного мастера салона
func (c *Client) GetWorker(ctx context.Context, salonID int64, workerID string) (*domain.Worker, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/workers/%s", c.baseURL, salonID, workerID)

	var payload WorkerPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return payload.ToDomain(), nil
}

// GetSalon получает профиль салона с перечнем менеджеров
func (c *Client) GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	url := fmt.Sprintf("%s/internal/salons/%d", c.baseURL, salonID)

	var payload SalonPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, err
	}
	return payload.ToDomain(), nil
}

// GetWorkersWithGracefulDegradation получает мастеров салона с graceful degradation
// При недоступности StaffService возвращает ErrServiceDegraded: вызывающий может
// продолжить без персональных окон мастеров, опираясь только на часы салона
func (c *Client) GetWorkersWithGracefulDegradation(ctx context.Context, salonID int64) ([]*domain.Worker, error) {
	workers, err := c.GetWorkers(ctx, salonID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			c.log.Info("No workers registered for salon_id=%d", salonID)
			return nil, ErrSalonNotFound
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("StaffService unavailable, applying graceful degradation for salon_id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: salon_id=%d, error=%v", ErrServiceDegraded, salonID, err)
	}

	c.log.Info("Fetched %d workers for salon_id=%d", len(workers), salonID)
	return workers, nil
}

// errNotFound внутренняя ошибка для маппинга 404 в доменные ошибки
var errNotFound = errors.New("staffservice: not found")

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return errNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
