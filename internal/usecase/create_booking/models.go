package create_booking

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID  int64
	ClientID int64
	WorkerID string // Мастер основного сегмента

	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала основного сегмента

	// Выбор услуг клиентом; сопоставляется с правилами комбо по точному
	// равенству множеств. Первый ID — услуга основного сегмента.
	ServiceTypeIDs []int64
	ServiceName    string // Свободное название услуги (для истории)

	PrimaryDurationMinutes  int
	WaitMinutes             int
	FollowUpDurationMinutes int // 0 — запись без follow-up сегмента

	// Услуга follow-up сегмента; nil — та же, что и у основного
	FollowUpServiceTypeID *int64

	Notes *string
}

// SegmentResponse один календарный сегмент созданной записи
type SegmentResponse struct {
	ID              int64
	WorkerID        string
	WorkerName      string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Phase           int
}

// Response модель ответа с созданной записью
type Response struct {
	BookingID int64 // ID основного сегмента
	SalonID   int64
	ClientID  int64
	Status    string

	Primary  SegmentResponse
	FollowUp *SegmentResponse // nil для записи без follow-up

	WaitMinutes int

	// Сработавшее правило комбо (если было)
	ComboID   *int64
	ComboName *string

	ServiceName string
	Notes       *string

	CreatedAt time.Time
}
