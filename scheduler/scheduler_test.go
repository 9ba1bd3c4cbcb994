package scheduler

import (
	"context"
	"testing"
	"time"

	"coffee-pickup/config"
)

type nopDispatcher struct{}

func (nopDispatcher) SendDaily(ctx context.Context) bool       { return true }
func (nopDispatcher) SendOpenNotice(ctx context.Context) bool  { return true }
func (nopDispatcher) SendCloseNotice(ctx context.Context) bool { return true }

func TestWeekdaySpec(t *testing.T) {
	if got := WeekdaySpec(5, 30); got != "30 5 * * 1-5" {
		t.Errorf("WeekdaySpec(5, 30) = %q", got)
	}
}

func TestScheduler_NextRunsOnWeekdays(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	cfg := config.ScheduleConfig{
		DailyHour: 5, DailyMinute: 30,
		OpenHour: 9, OpenMinute: 0,
		CloseHour: 11, CloseMinute: 50,
	}
	s, err := New(cfg, kst, nopDispatcher{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Friday 2024-05-03 12:00 KST: every job next fires on Monday 2024-05-06.
	now := time.Date(2024, 5, 3, 12, 0, 0, 0, kst)
	want := map[string]time.Time{
		"daily": time.Date(2024, 5, 6, 5, 30, 0, 0, kst),
		"open":  time.Date(2024, 5, 6, 9, 0, 0, 0, kst),
		"close": time.Date(2024, 5, 6, 11, 50, 0, 0, kst),
	}
	assertNext(t, s.Next(now), want)

	// Wednesday before the daily slot fires the same day.
	wed := time.Date(2024, 5, 1, 5, 0, 0, 0, kst)
	if got := s.Next(wed)["daily"]; !got.Equal(time.Date(2024, 5, 1, 5, 30, 0, 0, kst)) {
		t.Errorf("daily next = %s, want Wednesday 05:30", got)
	}

	// Entries are re-sorted by next fire time once running; names still hold.
	s.Start()
	defer s.Stop()
	assertNext(t, s.Next(now), want)
}

func assertNext(t *testing.T, got, want map[string]time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for name, w := range want {
		if !got[name].Equal(w) {
			t.Errorf("%s next = %s, want %s", name, got[name], w)
		}
	}
}

func TestScheduler_InvalidTime(t *testing.T) {
	cfg := config.ScheduleConfig{DailyHour: 25, DailyMinute: 0}
	if _, err := New(cfg, time.UTC, nopDispatcher{}); err == nil {
		t.Error("expected error for hour 25")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New(config.ScheduleConfig{}, time.UTC, nopDispatcher{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	s.Stop()
}
