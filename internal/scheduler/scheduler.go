// Package scheduler fires the monthly attendance report: 1st of the
// month at 09:00 in the configured timezone, mirroring the manual
// trigger in everything but the due check.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"presence/internal/ports/input"
	"presence/internal/ports/output"
)

const reportHour = 9

type Scheduler struct {
	report input.ReportUseCase
	clock  output.Clock
	loc    *time.Location
	logger *zap.SugaredLogger

	// first day of the last month successfully reported, in loc
	lastReported time.Time
}

func New(report input.ReportUseCase, clock output.Clock, loc *time.Location, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		report: report,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

// Run ticks hourly until ctx is cancelled, firing the report when due.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.clock.Now().In(s.loc)
	if !s.due(now) {
		return
	}
	outcome, err := s.report.RunNow(ctx)
	if err != nil {
		// Not marked done: the next tick within the day retries.
		s.logger.Errorw("❌ Rapport mensuel échoué", "error", err)
		return
	}
	s.markDone(now)
	if outcome.Sent {
		s.logger.Infow("✅ Rapport mensuel envoyé",
			"events", outcome.EventCount, "records", outcome.RecordCount,
			"file", outcome.Filename)
	} else {
		s.logger.Info("✅ Rapport mensuel: aucun événement, aucun envoi")
	}
}

// due reports whether now falls in the firing window for a month that
// has not been reported yet.
func (s *Scheduler) due(now time.Time) bool {
	if now.Day() != 1 || now.Hour() < reportHour {
		return false
	}
	return !s.monthOf(now).Equal(s.lastReported)
}

func (s *Scheduler) markDone(now time.Time) {
	s.lastReported = s.monthOf(now)
}

func (s *Scheduler) monthOf(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
}
