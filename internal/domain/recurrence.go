package domain

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// RecurrenceMode режим ограничения еженедельного повторения
type RecurrenceMode string

const (
	RecurrenceByEndDate RecurrenceMode = "endDate"
	RecurrenceByCount   RecurrenceMode = "count"
)

// RecurrenceRule правило еженедельного повторения бронирования
// Инварианты: count >= 1 и не больше потолка; в режиме endDate дата окончания >= даты начала
type RecurrenceRule struct {
	StartDate time.Time
	TimeOfDay types.TimeString
	Mode      RecurrenceMode
	EndDate   *time.Time // только для режима endDate
	Count     *int       // только для режима count
}
