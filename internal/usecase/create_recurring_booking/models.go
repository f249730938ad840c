package create_recurring_booking

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// Request модель запроса на создание еженедельной серии записей
type Request struct {
	SalonID  int64
	ClientID int64
	WorkerID string

	Rule domain.RecurrenceRule

	ServiceTypeIDs []int64
	ServiceName    string

	PrimaryDurationMinutes  int
	WaitMinutes             int
	FollowUpDurationMinutes int
	FollowUpServiceTypeID   *int64

	Notes *string
}

// OccurrenceResult результат создания одного повторения
// Провал одного повторения не откатывает уже созданных соседей
type OccurrenceResult struct {
	Date      time.Time
	BookingID *int64 // nil при провале
	Error     string // пустая строка при успехе
}

// Response модель ответа по серии
type Response struct {
	Requested int  // Сколько повторений дало правило
	Succeeded int
	Failed    int
	Truncated bool // Правило уперлось в потолок

	Results []OccurrenceResult
}
