package domain

import "time"

// ComboStepPositionEnd значение Position авто-шага, означающее вставку в конец цепочки
const ComboStepPositionEnd = "end"

// ComboAutoStep авто-вставляемый шаг комбо
// Position — либо "end", либо числовой индекс в строковом виде ("0", "1", ...)
// Некорректное значение трактуется как "end" (исторические данные)
type ComboAutoStep struct {
	ServiceTypeID   int64  `json:"serviceTypeId"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"` // переопределение длительности
	Position        string `json:"position"`
}

// Combo административное правило: точный набор выбранных услуг
// разворачивается в упорядоченную цепочку шагов
// Инварианты: каждый ID триггера присутствует в ordered-списке; ordered-список без дубликатов
type Combo struct {
	ID                    int64
	SalonID               int64
	Name                  string
	Active                bool
	TriggerServiceTypeIDs []int64 // множество, порядок не важен
	OrderedServiceTypeIDs []int64 // последовательность, порядок важен
	AutoSteps             []ComboAutoStep
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
