package domain

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// Фазы бронирования
// PhaseLegacy — старые записи без разбиения на сегменты, трактуются как primary-only
const (
	PhaseLegacy   = 0
	PhasePrimary  = 1
	PhaseFollowUp = 2
)

// Booking represents one calendar block of an appointment
// Двухфазная запись хранится как две строки: phase=1 (основная услуга) и phase=2 (follow-up),
// связанные через ParentBookingID. Запись phase=2 не может существовать без родителя.
type Booking struct {
	ID          int64
	SalonID     int64
	ClientID    int64
	WorkerID    string // ID мастера из StaffService
	BookingDate time.Time
	StartTime   types.TimeString
	// DurationMinutes длительность именно этого сегмента
	DurationMinutes int

	Phase           int
	ParentBookingID *int64 // только для phase=2, ссылка на запись phase=1

	// Длительности всей записи (дублируются на обеих фазах для истории)
	PrimaryDurationMinutes  int
	WaitMinutes             int
	FollowUpDurationMinutes int

	Status BookingStatus

	// Денормализованные данные для истории и архива
	ServiceTypeID *int64
	ServiceName   string // свободный текст, legacy-записи могут иметь только его
	ClientPhone   *string
	ClientName    *string
	Notes         *string

	Archived bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking segment can be moved
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// HasFollowUp returns true if the record describes a booking with a follow-up segment
func (b *Booking) HasFollowUp() bool {
	return b.FollowUpDurationMinutes > 0
}

// IsFollowUpSegment returns true for phase-2 records
func (b *Booking) IsFollowUpSegment() bool {
	return b.Phase == PhaseFollowUp
}

// SegmentMinutes возвращает границы сегмента в минутах от полуночи [start, end)
func (b *Booking) SegmentMinutes() (int, int, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, start + b.DurationMinutes, nil
}

// DayKey возвращает ключ дня бронирования в формате YYYY-MM-DD
func (b *Booking) DayKey() string {
	return b.BookingDate.Format(DateFormat)
}

// ServiceRef возвращает нормализованное представление услуги записи
// Предпочитает структурный ID, затем свободный текст, иначе unknown
func (b *Booking) ServiceRef() ServiceRef {
	return NewServiceRef(b.ServiceTypeID, b.ServiceName)
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	WorkerID        *string        // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
	IncludeArchived bool           // Включать ли архивированные записи
}
