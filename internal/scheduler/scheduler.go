package scheduler

import (
	"context"
	"log"
	"time"

	"rejectconsole/adapters/export"
	"rejectconsole/app"

	"github.com/robfig/cron/v3"
)

// Scheduler generates and saves the daily report on a cron schedule,
// covering the previous production day. With an export directory
// configured it also drops the XLSX workbook there.
type Scheduler struct {
	cron    *cron.Cron
	reports *app.ReportService
	export  *export.Exporter
}

// New creates a scheduler over the report service. exporter may be nil
// when no directory sink is configured.
func New(reports *app.ReportService, exporter *export.Exporter) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		reports: reports,
		export:  exporter,
	}
}

// Start registers the schedule and begins running. An empty spec is a
// no-op so deployments can disable scheduled reports.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[scheduler] daily report generation scheduled: %s", spec)
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	date := time.Now().AddDate(0, 0, -1).Format(app.DateFormat)
	report, err := s.reports.SaveDailyReport(ctx, date)
	if err != nil {
		log.Printf("[scheduler] daily report for %s failed: %v", date, err)
		return
	}
	log.Printf("[scheduler] saved %s: %d lots, %.2f%% avg rejection",
		report.Name, report.Summary.TotalLots, report.Summary.AvgRejection)

	if s.export == nil {
		return
	}
	if err := s.reports.ExportDailyReportXLSX(ctx, report.Name, s.export); err != nil {
		log.Printf("[scheduler] export of %s failed: %v", report.Name, err)
	}
}
