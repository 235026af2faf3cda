package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rugops/internal/analyzer"
	claudeanalyzer "rugops/internal/analyzer/claude"
	openaianalyzer "rugops/internal/analyzer/openai"
	"rugops/internal/config"
	"rugops/internal/email/noop"
	"rugops/internal/email/ses"
	"rugops/internal/handler"
	"rugops/internal/port"
	"rugops/internal/repository/postgres"
	"rugops/internal/router"
	"rugops/internal/service"
	s3storage "rugops/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	jobRepo := postgres.NewJobRepo(db)
	rugRepo := postgres.NewRugRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	estimateRepo := postgres.NewEstimateRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	payoutRepo := postgres.NewPayoutRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	rateRepo := postgres.NewServiceRateRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize AI analyzer with optional fallback
	reportAnalyzer, err := newAnalyzer(&cfg.Analyzer)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo, userRepo)
	userSvc := service.NewUserService(userRepo)
	clientSvc := service.NewClientService(clientRepo)
	jobSvc := service.NewJobService(jobRepo, rugRepo, clientRepo)
	reportSvc := service.NewReportService(reportRepo, jobRepo, rugRepo, fileRepo, reportAnalyzer, s3Client)
	estimateSvc := service.NewEstimateService(estimateRepo, reportRepo, jobRepo, clientRepo, tenantRepo, emailSender, cfg.Portal)
	portalSvc := service.NewPortalService(estimateRepo, jobRepo, clientRepo, tenantRepo, paymentRepo, emailSender, cfg.Portal)
	payoutSvc := service.NewPayoutService(payoutRepo, userRepo, jobRepo)
	statsSvc := service.NewStatsService(statsRepo)
	rateSvc := service.NewRateService(rateRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	tenantH := handler.NewTenantHandler(tenantSvc)
	userH := handler.NewUserHandler(userSvc)
	clientH := handler.NewClientHandler(clientSvc)
	jobH := handler.NewJobHandler(jobSvc)
	reportH := handler.NewReportHandler(reportSvc)
	estimateH := handler.NewEstimateHandler(estimateSvc)
	portalH := handler.NewPortalHandler(portalSvc)
	payoutH := handler.NewPayoutHandler(payoutSvc)
	rateH := handler.NewRateHandler(rateSvc)
	fileH := handler.NewFileHandler(fileSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, tenantH, userH, clientH, jobH,
		reportH, estimateH, portalH, payoutH, rateH, fileH, statsH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the report generation worker
	worker := service.NewReportQueueWorker(reportRepo, reportSvc, service.ReportQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone

	return nil
}

// newEmailSender selects the configured email provider.
func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	case "noop", "":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// newAnalyzer builds the primary analyzer plus an optional secondary fallback.
func newAnalyzer(cfg *config.AnalyzerConfig) (port.ReportAnalyzer, error) {
	build := func(pc *config.AnalyzerProviderConfig) (port.ReportAnalyzer, error) {
		switch pc.Provider {
		case "claude":
			return claudeanalyzer.NewAnalyzer(pc), nil
		case "openai":
			return openaianalyzer.NewAnalyzer(pc), nil
		default:
			return nil, fmt.Errorf("unknown analyzer provider %q", pc.Provider)
		}
	}

	primary, err := build(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	analyzers := []port.ReportAnalyzer{primary}
	names := []string{cfg.Primary.Provider}
	if sec := cfg.SecondaryConfig(); sec != nil {
		secondary, err := build(sec)
		if err != nil {
			return nil, err
		}
		analyzers = append(analyzers, secondary)
		names = append(names, sec.Provider)
	}

	return analyzer.NewFallbackAnalyzer(analyzers, names), nil
}
