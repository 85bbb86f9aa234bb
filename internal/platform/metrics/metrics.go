package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

type Collector struct {
	started         time.Time
	totalRequests   atomic.Uint64
	clientErrors    atomic.Uint64
	serverErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64
	emailsSent      atomic.Uint64
	emailsFailed    atomic.Uint64
	cascadeDeletes  atomic.Uint64
}

func New() *Collector {
	return &Collector{started: time.Now()}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	switch {
	case status == http.StatusTooManyRequests:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) RecordEmail(err error) {
	if err != nil {
		c.emailsFailed.Add(1)
		return
	}
	c.emailsSent.Add(1)
}

func (c *Collector) RecordCascadeDelete() {
	c.cascadeDeletes.Add(1)
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"uptimeSeconds":       int64(time.Since(c.started).Seconds()),
		"requestsTotal":       total,
		"clientErrorsTotal":   c.clientErrors.Load(),
		"serverErrorsTotal":   c.serverErrors.Load(),
		"rateLimitedTotal":    c.rateLimited.Load(),
		"avgDurationMs":       avg,
		"emailsSentTotal":     c.emailsSent.Load(),
		"emailsFailedTotal":   c.emailsFailed.Load(),
		"cascadeDeletesTotal": c.cascadeDeletes.Load(),
	}
}
