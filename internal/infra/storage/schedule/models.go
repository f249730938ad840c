package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// breakJSON перерыв в JSONB-представлении дневного расписания
type breakJSON struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// dayJSON дневное расписание, хранится в JSONB-колонке
type dayJSON struct {
	Enabled   bool              `json:"enabled"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
	Breaks    []breakJSON       `json:"breaks,omitempty"`
}

func dayFromDomain(day domain.DaySchedule) dayJSON {
	out := dayJSON{
		Enabled:   day.Enabled,
		OpenTime:  day.OpenTime,
		CloseTime: day.CloseTime,
	}
	for _, br := range day.Breaks {
		out.Breaks = append(out.Breaks, breakJSON{Start: br.Start, End: br.End})
	}
	return out
}

func (d dayJSON) toDomain() domain.DaySchedule {
	out := domain.DaySchedule{
		Enabled:   d.Enabled,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
	}
	for _, br := range d.Breaks {
		out.Breaks = append(out.Breaks, domain.BreakRange{Start: br.Start, End: br.End})
	}
	return out
}

// Value реализует driver.Valuer для записи в JSONB
func (d dayJSON) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan реализует sql.Scanner для чтения из JSONB
func (d *dayJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = dayJSON{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported type for day schedule: %T", src)
	}
}
