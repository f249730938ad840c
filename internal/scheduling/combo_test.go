package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
)

func testCombo(id int64, trigger, ordered []int64) *domain.Combo {
	return &domain.Combo{
		ID:                    id,
		SalonID:               1,
		Name:                  "combo",
		Active:                true,
		TriggerServiceTypeIDs: trigger,
		OrderedServiceTypeIDs: ordered,
		UpdatedAt:             time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func stepIDs(steps []ComboStep) []int64 {
	ids := make([]int64, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ServiceTypeID)
	}
	return ids
}

func TestIDSet(t *testing.T) {
	s := NewIDSet(3, 1, 2, 1)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
	assert.Equal(t, []int64{1, 2, 3}, s.Values())

	assert.True(t, s.Equal(NewIDSet(1, 2, 3)))
	assert.False(t, s.Equal(NewIDSet(1, 2)))
	assert.False(t, s.Equal(NewIDSet(1, 2, 4)))
}

func TestMatchCombo_ExactSetEquality(t *testing.T) {
	combo := testCombo(1, []int64{10, 20}, []int64{10, 20, 30})
	combos := []*domain.Combo{combo}

	// Точное совпадение множества срабатывает, порядок выбора не важен
	match := MatchCombo(NewIDSet(20, 10), combos)
	require.NotNil(t, match)
	assert.Equal(t, int64(1), match.Combo.ID)
	assert.Equal(t, []int64{10, 20, 30}, stepIDs(match.Steps))

	// Строгое подмножество триггера не активирует комбо
	assert.Nil(t, MatchCombo(NewIDSet(10), combos))

	// Строгое надмножество тоже не активирует
	assert.Nil(t, MatchCombo(NewIDSet(10, 20, 30), combos))

	// Пустой выбор не сопоставляется ни с чем
	assert.Nil(t, MatchCombo(NewIDSet(), combos))
}

func TestMatchCombo_SkipsInactiveAndInvalid(t *testing.T) {
	inactive := testCombo(1, []int64{10}, []int64{10})
	inactive.Active = false

	emptyTrigger := testCombo(2, nil, []int64{10})
	triggerNotInOrdered := testCombo(3, []int64{10}, []int64{20})

	duplicatedOrdered := testCombo(4, []int64{10}, []int64{10, 20, 20})

	combos := []*domain.Combo{inactive, emptyTrigger, triggerNotInOrdered, duplicatedOrdered, nil}
	assert.Nil(t, MatchCombo(NewIDSet(10), combos))
}

func TestMatchCombo_TieBreaks(t *testing.T) {
	older := testCombo(1, []int64{10, 20}, []int64{10, 20})
	older.UpdatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	newer := testCombo(2, []int64{10, 20}, []int64{20, 10})
	newer.UpdatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// При равных триггерах побеждает наиболее недавно обновленное правило
	match := MatchCombo(NewIDSet(10, 20), []*domain.Combo{older, newer})
	require.NotNil(t, match)
	assert.Equal(t, int64(2), match.Combo.ID)
}

func TestMatchCombo_ExpandsAutoSteps(t *testing.T) {
	combo := testCombo(1, []int64{10, 20}, []int64{10, 20})
	combo.AutoSteps = []domain.ComboAutoStep{
		{ServiceTypeID: 99, DurationMinutes: ptr.Ptr(15), Position: "1"},
		{ServiceTypeID: 77, Position: domain.ComboStepPositionEnd},
	}

	match := MatchCombo(NewIDSet(10, 20), []*domain.Combo{combo})
	require.NotNil(t, match)

	require.Equal(t, []int64{10, 99, 20, 77}, stepIDs(match.Steps))

	auto := match.Steps[1]
	assert.True(t, auto.Auto)
	require.NotNil(t, auto.DurationMinutes)
	assert.Equal(t, 15, *auto.DurationMinutes)

	assert.False(t, match.Steps[0].Auto)
	assert.True(t, match.Steps[3].Auto)
}

func TestSpliceStep_Positions(t *testing.T) {
	base := func() []ComboStep {
		return []ComboStep{{ServiceTypeID: 1}, {ServiceTypeID: 2}}
	}
	auto := ComboStep{ServiceTypeID: 9, Auto: true}

	tests := []struct {
		name     string
		position string
		want     []int64
	}{
		{name: "end keyword", position: "end", want: []int64{1, 2, 9}},
		{name: "index zero", position: "0", want: []int64{9, 1, 2}},
		{name: "index middle", position: "1", want: []int64{1, 9, 2}},
		{name: "index past length clamps", position: "10", want: []int64{1, 2, 9}},
		{name: "negative index clamps to start", position: "-3", want: []int64{9, 1, 2}},
		{name: "malformed treated as end", position: "after", want: []int64{1, 2, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spliceStep(base(), auto, tt.position)
			assert.Equal(t, tt.want, stepIDs(got))
		})
	}
}
