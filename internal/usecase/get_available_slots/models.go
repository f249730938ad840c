package get_available_slots

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	SalonID  int64
	WorkerID string
	Date     time.Time

	// Длительности планируемой записи; слот доступен, только если в него
	// помещается весь след записи, включая follow-up сегмент
	PrimaryDurationMinutes  int
	WaitMinutes             int
	FollowUpDurationMinutes int // 0 — запись без follow-up

	// Услуга follow-up сегмента (для проверки, что хоть один мастер сможет его выполнить)
	ServiceTypeID         int64
	FollowUpServiceTypeID *int64
}

// Response модель ответа со списком доступных слотов
type Response struct {
	SalonID  int64
	WorkerID string
	Date     time.Time

	// Available = false, когда мастер или салон в этот день не работают
	Available bool

	Slots []domain.AvailableSlot
}
