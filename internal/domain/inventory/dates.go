package inventory

import (
	"strings"
	"time"
)

// DateLayout formato de día calendario usado en la API y en las etiquetas del timeline.
const DateLayout = "2006-01-02"

// DateOf devuelve el día calendario de t, en su propia zona, como medianoche UTC.
// Todas las comparaciones de vencimiento se hacen entre valores normalizados así.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate acepta "2006-01-02" o un timestamp RFC3339 (se toma el día tal como está escrito).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DateRange devuelve days días consecutivos terminando en today (inclusive).
func DateRange(today time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	end := DateOf(today)
	start := end.AddDate(0, 0, -(days - 1))
	out := make([]time.Time, days)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// ParseTimestamp acepta RFC3339 o un día YYYY-MM-DD, interpretado como medianoche en loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateLayout, s, loc)
}
