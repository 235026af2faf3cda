package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"rugops/internal/domain"
	"rugops/internal/port"
)

// RequestReportInput is the DTO for queueing inspection report generation.
type RequestReportInput struct {
	TenantID  uuid.UUID
	JobID     uuid.UUID
	CreatedBy uuid.UUID
}

// ReportService defines the inspection report contract. Generation runs
// asynchronously: Request enqueues, the queue worker calls Generate.
type ReportService interface {
	Request(ctx context.Context, input RequestReportInput) (*domain.InspectionReport, error)
	GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error)
	GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.InspectionReport, error)
	Retry(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error)
	Generate(ctx context.Context, report *domain.InspectionReport, maxAttempts int)
}

type reportService struct {
	reportRepo port.ReportRepository
	jobRepo    port.JobRepository
	rugRepo    port.RugRepository
	fileRepo   port.FileMetaRepository
	analyzer   port.ReportAnalyzer
	storage    port.ObjectStorage
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	jobRepo port.JobRepository,
	rugRepo port.RugRepository,
	fileRepo port.FileMetaRepository,
	reportAnalyzer port.ReportAnalyzer,
	storage port.ObjectStorage,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		jobRepo:    jobRepo,
		rugRepo:    rugRepo,
		fileRepo:   fileRepo,
		analyzer:   reportAnalyzer,
		storage:    storage,
	}
}

func (s *reportService) Request(ctx context.Context, input RequestReportInput) (*domain.InspectionReport, error) {
	job, err := s.jobRepo.GetByID(ctx, input.TenantID, input.JobID)
	if err != nil {
		return nil, err
	}

	// Move the job into inspection on first report request.
	if job.Status == domain.JobStatusReceived {
		job.Status = domain.JobStatusInspecting
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return nil, err
		}
	}

	report := &domain.InspectionReport{
		ID:        uuid.New(),
		TenantID:  input.TenantID,
		JobID:     input.JobID,
		Status:    domain.ReportStatusQueued,
		CreatedBy: input.CreatedBy,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("reportService.Request: queued report %s for job %s", report.ID, job.JobNumber)
	return report, nil
}

func (s *reportService) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error) {
	return s.reportRepo.GetByID(ctx, tenantID, reportID)
}

func (s *reportService) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.InspectionReport, error) {
	return s.reportRepo.GetByJobID(ctx, tenantID, jobID)
}

func (s *reportService) Retry(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.InspectionReport, error) {
	report, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportStatusFailed {
		return report, nil
	}
	if err := s.reportRepo.Requeue(ctx, report.ID); err != nil {
		return nil, err
	}
	report.Status = domain.ReportStatusQueued
	report.GenerateError = ""
	return report, nil
}

// Generate runs AI analysis for a claimed report and persists the outcome.
// It never returns an error; failures are recorded on the report row so the
// queue worker loop stays simple.
func (s *reportService) Generate(ctx context.Context, report *domain.InspectionReport, maxAttempts int) {
	analyzeInput, err := s.buildAnalyzeInput(ctx, report)
	if err != nil {
		s.recordFailure(ctx, report, maxAttempts, fmt.Errorf("preparing input: %w", err))
		return
	}

	out, err := s.analyzer.Analyze(ctx, *analyzeInput)
	if err != nil {
		s.recordFailure(ctx, report, maxAttempts, err)
		return
	}

	now := time.Now().UTC()
	report.ReportText = out.ReportText
	report.ModelUsed = out.ModelUsed
	report.Status = domain.ReportStatusCompleted
	report.GenerateError = ""
	report.GeneratedAt = &now
	if err := s.reportRepo.UpdateResult(ctx, report); err != nil {
		log.Printf("reportService.Generate: persisting result for %s failed: %v", report.ID, err)
		return
	}
	log.Printf("reportService.Generate: report %s completed (model %s)", report.ID, out.ModelUsed)
}

// buildAnalyzeInput gathers the job's rug photos and notes for the analyzer.
func (s *reportService) buildAnalyzeInput(ctx context.Context, report *domain.InspectionReport) (*port.AnalyzeInput, error) {
	job, err := s.jobRepo.GetByID(ctx, report.TenantID, report.JobID)
	if err != nil {
		return nil, err
	}
	rugs, err := s.rugRepo.ListByJob(ctx, report.TenantID, report.JobID)
	if err != nil {
		return nil, err
	}

	var photos []port.RugPhoto
	var notes strings.Builder
	for _, rug := range rugs {
		fmt.Fprintf(&notes, "%s: %s, %.1fx%.1f ft, condition: %s\n",
			rug.Label, rug.RugType, rug.WidthFt, rug.LengthFt, rug.Condition)

		if rug.PhotoFileID == nil {
			continue
		}
		meta, err := s.fileRepo.GetByID(ctx, report.TenantID, *rug.PhotoFileID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		body, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
		if err != nil {
			return nil, fmt.Errorf("downloading photo %s: %w", meta.ID, err)
		}
		photos = append(photos, port.RugPhoto{
			Bytes:       body,
			ContentType: meta.ContentType,
			Label:       rug.Label,
		})
	}

	return &port.AnalyzeInput{
		Photos:    photos,
		RugNotes:  notes.String(),
		JobNumber: job.JobNumber,
	}, nil
}

// recordFailure marks the report failed or requeues it for another attempt.
func (s *reportService) recordFailure(ctx context.Context, report *domain.InspectionReport, maxAttempts int, cause error) {
	log.Printf("reportService.Generate: report %s attempt %d failed: %v", report.ID, report.GenerateAttempts, cause)

	report.GenerateError = cause.Error()
	if report.GenerateAttempts < maxAttempts {
		if err := s.reportRepo.Requeue(ctx, report.ID); err != nil {
			log.Printf("reportService.Generate: requeue of %s failed: %v", report.ID, err)
		}
		return
	}

	report.Status = domain.ReportStatusFailed
	if err := s.reportRepo.UpdateResult(ctx, report); err != nil {
		log.Printf("reportService.Generate: marking %s failed errored: %v", report.ID, err)
	}
}
