package reschedule_booking

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// Request модель запроса на перенос одного сегмента записи
// BookingID всегда указывает на основную запись (phase=1), Phase выбирает,
// какой из её сегментов сдвигается
type Request struct {
	BookingID int64
	UserID    int64

	Phase     int // 1 — основной сегмент, 2 — follow-up
	Date      time.Time
	StartTime types.TimeString
}

// Response модель ответа на перенос сегмента
type Response struct {
	BookingID int64
	SegmentID int64
	Phase     int

	WorkerID        string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}
