package leave

import (
	"math"
	"time"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return math.Round(end.Sub(start).Hours()/24) + 1, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
