package deposit

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the maturity sweep on a cron schedule.
type Scheduler struct {
	service  Service
	schedule string
	cron     *cron.Cron
}

// NewScheduler wires the sweep onto a cron spec such as "0 2 * * *".
func NewScheduler(service Service, schedule string) *Scheduler {
	if service == nil {
		panic("deposit service is required")
	}
	return &Scheduler{
		service:  service,
		schedule: schedule,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("deposit maturity sweep scheduled: %s", s.schedule)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := s.service.ProcessMaturities(ctx, time.Now())
	if err != nil {
		log.Printf("maturity sweep failed: %v", err)
		return
	}
	log.Printf("maturity sweep done: fd matured=%d renewed=%d failed=%d, rd matured=%d failed=%d",
		report.FixedMatured, report.FixedRenewed, report.FixedFailed,
		report.RecurringMatured, report.RecurringFailed)
}
