package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/config"
)

// cycleTimeout bounds one reminder cycle.
const cycleTimeout = 10 * time.Minute

// Scheduler runs a Job on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	job  *Job
	log  logrus.FieldLogger
}

// NewScheduler returns nil when mail is not configured, so no reminder
// cycle is ever scheduled.  Otherwise it builds the SMTP mailer and
// registers the job on rc.Schedule in rc.Location.
func NewScheduler(mc config.MailConfig, rc config.ReminderConfig, store Store, log logrus.FieldLogger) (*Scheduler, error) {
	if !mc.Enabled() {
		return nil, nil
	}
	mailer, err := NewSMTPMailer(mc)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return newScheduler(rc, NewJob(store, mailer, mc.From, rc.Location, log), log)
}

func newScheduler(rc config.ReminderConfig, job *Job, log logrus.FieldLogger) (*Scheduler, error) {
	loc := rc.Location
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{cron: cron.New(cron.WithLocation(loc)), job: job, log: log}
	if _, err := s.cron.AddFunc(rc.Schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", rc.Schedule, err)
	}
	return s, nil
}

// runOnce is the cron entry.  Errors are already logged by the job.
func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()
	_, _ = s.job.Run(ctx)
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for a running cycle to finish or ctx to
// end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("reminder cycle still running at shutdown")
	}
}
