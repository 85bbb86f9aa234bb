package activity

import (
	"context"
	"testing"
	"time"

	"staffsync/internal/domain/tasks"
)

type stubTasks []tasks.Task

func (s stubTasks) ListCompletedForEmployee(context.Context, string) ([]tasks.Task, error) {
	return s, nil
}

type fixedMeetings int

func (f fixedMeetings) Meetings(_ time.Time, completed int) int {
	if completed == 0 {
		return 0
	}
	return int(f)
}

func (fixedMeetings) Synthetic() bool { return false }

func completedAt(at time.Time) tasks.Task {
	return tasks.Task{Status: tasks.StatusCompleted, CompletedAt: &at}
}

// Wednesday 12 June 2024; the week runs Mon 10 June to Sun 16 June.
var now = time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)

func TestWeeklyBucketsCurrentWeek(t *testing.T) {
	svc := NewService(stubTasks{
		completedAt(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)),
		completedAt(time.Date(2024, 6, 10, 17, 30, 0, 0, time.UTC)),
		completedAt(time.Date(2024, 6, 12, 11, 0, 0, 0, time.UTC)),
		completedAt(time.Date(2024, 6, 5, 11, 0, 0, 0, time.UTC)),
		completedAt(time.Date(2024, 6, 16, 11, 0, 0, 0, time.UTC)),
		{Status: tasks.StatusCompleted},
	}, time.UTC)
	svc.Now = func() time.Time { return now }
	svc.Meetings = fixedMeetings(1)

	summary, err := svc.Weekly(context.Background(), "e1")
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	want := []DayActivity{
		{Date: "Mon", Tasks: 2, Meetings: 1},
		{Date: "Tue", Tasks: 0},
		{Date: "Wed", Tasks: 1, Meetings: 1},
		{Date: "Thu", Tasks: 0},
		{Date: "Fri", Tasks: 0},
		{Date: "Sat", Tasks: 0},
	}
	if len(summary.Days) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(summary.Days))
	}
	for i, day := range summary.Days {
		if day != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], day)
		}
	}
	if summary.MeetingsSynthetic {
		t.Fatal("expected estimator flag to pass through")
	}
}

func TestWeeklySyntheticMeetingsBounded(t *testing.T) {
	var list stubTasks
	for i := 0; i < 5; i++ {
		list = append(list, completedAt(time.Date(2024, 6, 11, 10, i, 0, 0, time.UTC)))
	}
	svc := NewService(list, time.UTC)
	svc.Now = func() time.Time { return now }

	for run := 0; run < 50; run++ {
		summary, _ := svc.Weekly(context.Background(), "e1")
		if !summary.MeetingsSynthetic {
			t.Fatal("expected synthetic flag")
		}
		for _, day := range summary.Days {
			if day.Tasks == 0 && day.Meetings != 0 {
				t.Fatalf("expected zero meetings on idle day %s", day.Date)
			}
			if day.Meetings < 0 || day.Meetings > 2 {
				t.Fatalf("meetings out of range: %d", day.Meetings)
			}
		}
	}
}

func TestWeeklyRespectsTimeZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// Sunday 23:30 UTC is already Monday morning in Tokyo.
	svc := NewService(stubTasks{
		completedAt(time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC)),
	}, tokyo)
	svc.Now = func() time.Time { return now }
	svc.Meetings = fixedMeetings(0)

	summary, _ := svc.Weekly(context.Background(), "e1")
	if summary.Days[0].Tasks != 1 {
		t.Fatalf("expected Monday bucket in Tokyo, got %+v", summary.Days)
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)
	got := StartOfWeek(sunday, time.UTC)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
