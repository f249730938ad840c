package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes   = 15
	DefaultMaxRecurrenceOccurrences = 52 // год еженедельных визитов
	DefaultMinBookingNoticeMinutes  = 60 // 1 час
	DefaultArchiveAfterDays         = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxWaitMinutes            = 240 // 4 часа ожидания между фазами
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих время в расписании
// Используется для фильтрации при проверке конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusBooked,
	StatusConfirmed,
	StatusActive,
}
