package scheduling

import (
	"sort"
	"strconv"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// IDSet множество идентификаторов услуг со строгой семантикой равенства
// Используется вместо сравнения отсортированных срезов: дубликаты схлопываются,
// порядок не имеет значения
type IDSet struct {
	m map[int64]struct{}
}

// NewIDSet создает множество из переданных идентификаторов
func NewIDSet(ids ...int64) IDSet {
	s := IDSet{m: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.m[id] = struct{}{}
	}
	return s
}

// Len возвращает количество элементов множества
func (s IDSet) Len() int {
	return len(s.m)
}

// Contains проверяет принадлежность идентификатора множеству
func (s IDSet) Contains(id int64) bool {
	_, ok := s.m[id]
	return ok
}

// Equal возвращает true, если множества равны как множества
func (s IDSet) Equal(other IDSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for id := range s.m {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Values возвращает элементы множества в возрастающем порядке
func (s IDSet) Values() []int64 {
	values := make([]int64, 0, len(s.m))
	for id := range s.m {
		values = append(values, id)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// ComboStep один шаг развёрнутой цепочки комбо
type ComboStep struct {
	ServiceTypeID   int64
	DurationMinutes *int // переопределение длительности (только для авто-шагов)
	Auto            bool // шаг вставлен правилом, а не выбран клиентом
}

// ComboMatch результат сопоставления выбора клиента с правилами комбо
type ComboMatch struct {
	Combo *domain.Combo
	Steps []ComboStep
}

// comboIsValid проверяет внутренние инварианты правила:
// триггер непуст, каждый ID триггера есть в ordered-списке, ordered без дубликатов
// Правила с нарушенными инвариантами в сопоставлении не участвуют
func comboIsValid(combo *domain.Combo) bool {
	if len(combo.TriggerServiceTypeIDs) == 0 {
		return false
	}

	ordered := NewIDSet(combo.OrderedServiceTypeIDs...)
	if ordered.Len() != len(combo.OrderedServiceTypeIDs) {
		// Дубликаты в ordered-списке
		return false
	}

	for _, id := range combo.TriggerServiceTypeIDs {
		if !ordered.Contains(id) {
			return false
		}
	}
	return true
}

// MatchCombo сопоставляет выбор клиента с правилами комбо.
// Правило срабатывает только при ТОЧНОМ равенстве множеств: выбор строгого
// подмножества или надмножества триггера комбо не активирует.
// При нескольких совпадениях (в норме не бывает): больший триггер, затем
// наиболее недавно обновлённое правило.
// nil — ни одно правило не подошло, запись строится без развёртывания.
func MatchCombo(selection IDSet, combos []*domain.Combo) *ComboMatch {
	if selection.Len() == 0 {
		return nil
	}

	var matched []*domain.Combo
	for _, combo := range combos {
		if combo == nil || !combo.Active {
			continue
		}
		if !comboIsValid(combo) {
			continue
		}
		if !NewIDSet(combo.TriggerServiceTypeIDs...).Equal(selection) {
			continue
		}
		matched = append(matched, combo)
	}

	if len(matched) == 0 {
		return nil
	}

	sort.Slice(matched, func(i, j int) bool {
		triggerI := NewIDSet(matched[i].TriggerServiceTypeIDs...).Len()
		triggerJ := NewIDSet(matched[j].TriggerServiceTypeIDs...).Len()
		if triggerI != triggerJ {
			return triggerI > triggerJ
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	winner := matched[0]
	return &ComboMatch{
		Combo: winner,
		Steps: expandComboSteps(winner),
	}
}

// expandComboSteps строит итоговую цепочку шагов: ordered-список правила
// с авто-шагами, вставленными на заявленные позиции
func expandComboSteps(combo *domain.Combo) []ComboStep {
	steps := make([]ComboStep, 0, len(combo.OrderedServiceTypeIDs)+len(combo.AutoSteps))
	for _, id := range combo.OrderedServiceTypeIDs {
		steps = append(steps, ComboStep{ServiceTypeID: id})
	}

	for _, auto := range combo.AutoSteps {
		step := ComboStep{
			ServiceTypeID:   auto.ServiceTypeID,
			DurationMinutes: auto.DurationMinutes,
			Auto:            true,
		}
		steps = spliceStep(steps, step, auto.Position)
	}

	return steps
}

// spliceStep вставляет шаг на позицию position: "end" или числовой индекс.
// Индекс ограничивается границами цепочки; нераспознанное значение
// (исторические данные) трактуется как "end".
func spliceStep(steps []ComboStep, step ComboStep, position string) []ComboStep {
	if position == domain.ComboStepPositionEnd {
		return append(steps, step)
	}

	index, err := strconv.Atoi(position)
	if err != nil {
		return append(steps, step)
	}
	if index < 0 {
		index = 0
	}
	if index > len(steps) {
		index = len(steps)
	}

	steps = append(steps, ComboStep{})
	copy(steps[index+1:], steps[index:])
	steps[index] = step
	return steps
}
