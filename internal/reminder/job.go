// Package reminder emails assignees about tasks that are due tomorrow.
package reminder

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/repository"
)

// Store selects due tasks and records delivery outcomes.
// *repository.ReminderRepo satisfies it.
type Store interface {
	DueOn(ctx context.Context, date string) ([]model.DueReminder, error)
	Record(ctx context.Context, d model.DueReminder, status string, sendErr error) error
}

// Summary is the outcome of one cycle.
type Summary struct {
	Date    string
	Sent    int
	Failed  int
	Skipped int // not attempted because the cycle was cancelled
}

// Job runs one reminder cycle per Run call.
type Job struct {
	Store  Store
	Mailer Mailer
	From   string
	Loc    *time.Location
	Log    logrus.FieldLogger

	now func() time.Time
}

func NewJob(store Store, mailer Mailer, from string, loc *time.Location, log logrus.FieldLogger) *Job {
	return &Job{Store: store, Mailer: mailer, From: from, Loc: loc, Log: log.WithField("component", "reminder")}
}

// Tomorrow returns the calendar day after today in the job's zone.
func (j *Job) Tomorrow() string {
	now := time.Now
	if j.now != nil {
		now = j.now
	}
	loc := j.Loc
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc).AddDate(0, 0, 1).Format(model.DateLayout)
}

// Run emails the assignee of every open task due tomorrow.  Sends are
// sequential; a failed send is logged and recorded, and the cycle moves on.
// Failures are not retried within the cycle, but a failed delivery is
// attempted again by the next cycle that still finds the task due tomorrow.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	s := Summary{Date: j.Tomorrow()}
	log := j.Log.WithField("due_date", s.Date)
	log.Info("reminder cycle started")

	due, err := j.Store.DueOn(ctx, s.Date)
	if err != nil {
		log.WithError(err).Error("reminder query failed")
		return s, err
	}

	for i, d := range due {
		if ctx.Err() != nil {
			s.Skipped = len(due) - i
			break
		}
		entry := log.WithFields(logrus.Fields{"task_id": d.TaskID, "to": d.AssigneeEmail})

		msg, err := NewMessage(j.From, d)
		if err == nil {
			err = j.Mailer.Send(ctx, msg)
		}
		status := repository.DeliverySent
		if err != nil {
			status = repository.DeliveryFailed
			s.Failed++
			entry.WithError(err).Warn("reminder not delivered")
		} else {
			s.Sent++
		}
		if rerr := j.Store.Record(ctx, d, status, err); rerr != nil {
			entry.WithError(rerr).Error("record delivery failed")
		}
	}

	log.WithFields(logrus.Fields{"sent": s.Sent, "failed": s.Failed, "skipped": s.Skipped}).Info("reminder cycle finished")
	return s, nil
}
