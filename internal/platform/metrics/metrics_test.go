package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(http.StatusOK, 10*time.Millisecond)
	c.Record(http.StatusNotFound, 20*time.Millisecond)
	c.Record(http.StatusTooManyRequests, 0)
	c.Record(http.StatusInternalServerError, 30*time.Millisecond)
	c.RecordEmail(nil)
	c.RecordEmail(errors.New("smtp down"))
	c.RecordCascadeDelete()

	snap := c.Snapshot()
	checks := map[string]uint64{
		"requestsTotal":       4,
		"clientErrorsTotal":   2,
		"serverErrorsTotal":   1,
		"rateLimitedTotal":    1,
		"emailsSentTotal":     1,
		"emailsFailedTotal":   1,
		"cascadeDeletesTotal": 1,
	}
	for key, want := range checks {
		if got := snap[key].(uint64); got != want {
			t.Fatalf("%s: expected %d, got %d", key, want, got)
		}
	}
	if avg := snap["avgDurationMs"].(float64); avg != 15 {
		t.Fatalf("expected avg 15ms, got %v", avg)
	}
}
