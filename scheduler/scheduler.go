package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"coffee-pickup/config"

	"github.com/robfig/cron/v3"
)

// Dispatcher is what the scheduled jobs run.
type Dispatcher interface {
	SendDaily(ctx context.Context) bool
	SendOpenNotice(ctx context.Context) bool
	SendCloseNotice(ctx context.Context) bool
}

// Scheduler fires the daily summary and the open/close notices on weekdays.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher Dispatcher
	entries    map[string]cron.EntryID
}

// WeekdaySpec returns the cron spec for hour:minute, Monday to Friday.
func WeekdaySpec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * 1-5", minute, hour)
}

func New(cfg config.ScheduleConfig, loc *time.Location, d Dispatcher) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(loc))
	s := &Scheduler{cron: c, dispatcher: d, entries: make(map[string]cron.EntryID)}

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) bool
	}{
		{"daily", WeekdaySpec(cfg.DailyHour, cfg.DailyMinute), d.SendDaily},
		{"open", WeekdaySpec(cfg.OpenHour, cfg.OpenMinute), d.SendOpenNotice},
		{"close", WeekdaySpec(cfg.CloseHour, cfg.CloseMinute), d.SendCloseNotice},
	}
	for _, j := range jobs {
		j := j
		id, err := c.AddFunc(j.spec, func() {
			ok := j.run(context.Background())
			log.Printf("Scheduled %s message sent successfully: %v", j.name, ok)
		})
		if err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", j.name, j.spec, err)
		}
		s.entries[j.name] = id
		log.Printf("scheduled %s at %q (%s)", j.name, j.spec, loc)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next returns the next fire time after now of each job, keyed by job name
// (daily, open, close).
func (s *Scheduler) Next(now time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(s.entries))
	for name, id := range s.entries {
		out[name] = s.cron.Entry(id).Schedule.Next(now)
	}
	return out
}
