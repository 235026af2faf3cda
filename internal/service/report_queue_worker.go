package service

import (
	"context"
	"log"
	"sync"
	"time"

	"rugops/internal/port"
)

// ReportQueueConfig holds settings for the report generation worker.
type ReportQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ReportQueueWorker polls for queued inspection reports and dispatches them
// to the analyzer.
type ReportQueueWorker struct {
	reportRepo    port.ReportRepository
	reportService ReportService
	cfg           ReportQueueConfig
	wg            sync.WaitGroup
}

// NewReportQueueWorker creates a new ReportQueueWorker.
func NewReportQueueWorker(reportRepo port.ReportRepository, reportService ReportService, cfg ReportQueueConfig) *ReportQueueWorker {
	return &ReportQueueWorker{
		reportRepo:    reportRepo,
		reportService: reportService,
		cfg:           cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight generations have finished.
func (w *ReportQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("reportQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reportQueueWorker: shutting down, waiting for in-flight generations...")
			w.wg.Wait()
			log.Printf("reportQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			reports, err := w.reportRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll — exit gracefully
					continue
				}
				log.Printf("reportQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range reports {
				report := reports[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight generations complete even during shutdown.
					genCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("reportQueueWorker: dispatching report %s (attempt %d)", report.ID, report.GenerateAttempts)
					w.reportService.Generate(genCtx, &report, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
