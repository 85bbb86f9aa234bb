package activity

import (
	"context"
	"math/rand/v2"
	"time"

	"staffsync/internal/domain/tasks"
)

// workDays is the number of buckets reported, Monday through Saturday.
const workDays = 6

type DayActivity struct {
	Date     string `json:"date"`
	Tasks    int    `json:"tasks"`
	Meetings int    `json:"meetings"`
}

type Summary struct {
	Days []DayActivity `json:"days"`
	// MeetingsSynthetic is true when the meetings column is estimated
	// rather than tracked.
	MeetingsSynthetic bool `json:"meetingsSynthetic"`
}

type TaskLister interface {
	ListCompletedForEmployee(ctx context.Context, employeeID string) ([]tasks.Task, error)
}

type MeetingEstimator interface {
	Meetings(day time.Time, completedTasks int) int
	Synthetic() bool
}

// SyntheticMeetings fills the meetings column with a placeholder: zero on
// days without completed tasks, otherwise a value in [0, 2].
type SyntheticMeetings struct{}

func (SyntheticMeetings) Meetings(_ time.Time, completedTasks int) int {
	if completedTasks == 0 {
		return 0
	}
	return rand.IntN(3)
}

func (SyntheticMeetings) Synthetic() bool { return true }

type Service struct {
	tasks    TaskLister
	Meetings MeetingEstimator
	Location *time.Location
	Now      func() time.Time
}

func NewService(tasks TaskLister, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{tasks: tasks, Meetings: SyntheticMeetings{}, Location: loc, Now: time.Now}
}

// Weekly counts the employee's tasks completed in the current Monday to
// Sunday week, bucketed per day. Sunday is dropped from the output.
func (s *Service) Weekly(ctx context.Context, employeeID string) (Summary, error) {
	completed, err := s.tasks.ListCompletedForEmployee(ctx, employeeID)
	if err != nil {
		return Summary{}, err
	}
	return s.summarize(completed), nil
}

func (s *Service) summarize(completed []tasks.Task) Summary {
	start := StartOfWeek(s.Now(), s.Location)
	end := start.AddDate(0, 0, 7)

	var counts [7]int
	for _, task := range completed {
		if task.Status != tasks.StatusCompleted || task.CompletedAt == nil {
			continue
		}
		at := task.CompletedAt.In(s.Location)
		if at.Before(start) || !at.Before(end) {
			continue
		}
		counts[mondayIndex(at.Weekday())]++
	}

	days := make([]DayActivity, 0, workDays)
	for i := 0; i < workDays; i++ {
		day := start.AddDate(0, 0, i)
		days = append(days, DayActivity{
			Date:     day.Weekday().String()[:3],
			Tasks:    counts[i],
			Meetings: s.Meetings.Meetings(day, counts[i]),
		})
	}
	return Summary{Days: days, MeetingsSynthetic: s.Meetings.Synthetic()}
}

// StartOfWeek returns midnight of the Monday on or before t in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -mondayIndex(local.Weekday()))
}

func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}
