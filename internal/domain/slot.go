package domain

import "github.com/mirelka/SLN-SchedulingService/pkg/types"

// AvailableSlot represents a time slot available for booking with a worker
// Мастер обслуживает одного клиента за раз, поэтому слот либо свободен, либо занят
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime возвращает время окончания слота
func (s *AvailableSlot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}
