package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rugops/internal/domain"
	"rugops/internal/port"
	"rugops/internal/service"
	"rugops/mocks"
)

func setupReportService() (
	service.ReportService,
	*mocks.MockReportRepo,
	*mocks.MockJobRepo,
	*mocks.MockRugRepo,
	*mocks.MockFileMetaRepo,
	*mocks.MockReportAnalyzer,
	*mocks.MockObjectStorage,
) {
	reportRepo := new(mocks.MockReportRepo)
	jobRepo := new(mocks.MockJobRepo)
	rugRepo := new(mocks.MockRugRepo)
	fileRepo := new(mocks.MockFileMetaRepo)
	analyzer := new(mocks.MockReportAnalyzer)
	storage := new(mocks.MockObjectStorage)

	svc := service.NewReportService(reportRepo, jobRepo, rugRepo, fileRepo, analyzer, storage)
	return svc, reportRepo, jobRepo, rugRepo, fileRepo, analyzer, storage
}

func TestReportService_Request_QueuesAndMovesJobToInspecting(t *testing.T) {
	svc, reportRepo, jobRepo, _, _, _, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()

	job := &domain.Job{
		ID:        jobID,
		TenantID:  tenantID,
		JobNumber: "RC-2026-0003",
		Status:    domain.JobStatusReceived,
	}
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(job, nil)
	jobRepo.On("Update", ctx, job).Return(nil)
	reportRepo.On("Create", ctx, mock.AnythingOfType("*domain.InspectionReport")).Return(nil)

	report, err := svc.Request(ctx, service.RequestReportInput{
		TenantID: tenantID,
		JobID:    jobID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusQueued, report.Status)
	assert.Equal(t, domain.JobStatusInspecting, job.Status)

	reportRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}

func TestReportService_Request_JobAlreadyInspecting(t *testing.T) {
	svc, reportRepo, jobRepo, _, _, _, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()

	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID, Status: domain.JobStatusInspecting,
	}, nil)
	reportRepo.On("Create", ctx, mock.AnythingOfType("*domain.InspectionReport")).Return(nil)

	_, err := svc.Request(ctx, service.RequestReportInput{
		TenantID: tenantID,
		JobID:    jobID,
	})

	require.NoError(t, err)
	jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReportService_Retry_RequeuesFailedReport(t *testing.T) {
	svc, reportRepo, _, _, _, _, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	reportID := uuid.New()

	reportRepo.On("GetByID", ctx, tenantID, reportID).Return(&domain.InspectionReport{
		ID:            reportID,
		TenantID:      tenantID,
		Status:        domain.ReportStatusFailed,
		GenerateError: "analyzer unavailable",
	}, nil)
	reportRepo.On("Requeue", ctx, reportID).Return(nil)

	report, err := svc.Retry(ctx, tenantID, reportID)

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusQueued, report.Status)
	assert.Empty(t, report.GenerateError)

	reportRepo.AssertExpectations(t)
}

func TestReportService_Retry_NonFailedIsNoop(t *testing.T) {
	svc, reportRepo, _, _, _, _, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	reportID := uuid.New()

	reportRepo.On("GetByID", ctx, tenantID, reportID).Return(&domain.InspectionReport{
		ID:       reportID,
		TenantID: tenantID,
		Status:   domain.ReportStatusCompleted,
	}, nil)

	report, err := svc.Retry(ctx, tenantID, reportID)

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	reportRepo.AssertNotCalled(t, "Requeue", mock.Anything, mock.Anything)
}

func TestReportService_Generate_Success(t *testing.T) {
	svc, reportRepo, jobRepo, rugRepo, fileRepo, analyzer, storage := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()
	photoID := uuid.New()

	report := &domain.InspectionReport{
		ID:       uuid.New(),
		TenantID: tenantID,
		JobID:    jobID,
		Status:   domain.ReportStatusGenerating,
	}
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID, JobNumber: "RC-2026-0004",
	}, nil)
	rugRepo.On("ListByJob", ctx, tenantID, jobID).Return([]domain.Rug{
		{
			ID:          uuid.New(),
			Label:       "dining room kashan",
			RugType:     "kashan",
			WidthFt:     9,
			LengthFt:    12,
			Condition:   "heavy soiling",
			PhotoFileID: &photoID,
		},
	}, nil)
	fileRepo.On("GetByID", ctx, tenantID, photoID).Return(&domain.FileMeta{
		ID:          photoID,
		S3Bucket:    "rugops-files",
		S3Key:       "tenants/x/photo.jpg",
		ContentType: "image/jpeg",
	}, nil)
	storage.On("Download", ctx, "rugops-files", "tenants/x/photo.jpg").
		Return([]byte{0xFF, 0xD8}, nil)
	analyzer.On("Analyze", ctx, mock.MatchedBy(func(in port.AnalyzeInput) bool {
		return in.JobNumber == "RC-2026-0004" && len(in.Photos) == 1 && in.RugNotes != ""
	})).Return(&port.AnalyzeOutput{
		ReportText: "Estimate of Services\n- Hand Wash: $400.00\n",
		ModelUsed:  "claude-test",
	}, nil)
	reportRepo.On("UpdateResult", ctx, report).Return(nil)

	svc.Generate(ctx, report, 3)

	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	assert.Equal(t, "claude-test", report.ModelUsed)
	assert.NotNil(t, report.GeneratedAt)
	assert.Empty(t, report.GenerateError)

	analyzer.AssertExpectations(t)
	reportRepo.AssertExpectations(t)
}

func TestReportService_Generate_MissingPhotoIsSkipped(t *testing.T) {
	svc, reportRepo, jobRepo, rugRepo, fileRepo, analyzer, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()
	photoID := uuid.New()

	report := &domain.InspectionReport{
		ID:       uuid.New(),
		TenantID: tenantID,
		JobID:    jobID,
		Status:   domain.ReportStatusGenerating,
	}
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID, JobNumber: "RC-2026-0006",
	}, nil)
	rugRepo.On("ListByJob", ctx, tenantID, jobID).Return([]domain.Rug{
		{ID: uuid.New(), Label: "runner", PhotoFileID: &photoID},
	}, nil)
	fileRepo.On("GetByID", ctx, tenantID, photoID).Return(nil, domain.ErrNotFound)
	analyzer.On("Analyze", ctx, mock.MatchedBy(func(in port.AnalyzeInput) bool {
		return len(in.Photos) == 0
	})).Return(&port.AnalyzeOutput{ReportText: "report", ModelUsed: "claude-test"}, nil)
	reportRepo.On("UpdateResult", ctx, report).Return(nil)

	svc.Generate(ctx, report, 3)

	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
}

func TestReportService_Generate_FailureRequeuesWhileAttemptsRemain(t *testing.T) {
	svc, reportRepo, jobRepo, rugRepo, _, analyzer, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()

	report := &domain.InspectionReport{
		ID:               uuid.New(),
		TenantID:         tenantID,
		JobID:            jobID,
		Status:           domain.ReportStatusGenerating,
		GenerateAttempts: 1,
	}
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID, JobNumber: "RC-2026-0007",
	}, nil)
	rugRepo.On("ListByJob", ctx, tenantID, jobID).Return([]domain.Rug{}, nil)
	analyzer.On("Analyze", ctx, mock.AnythingOfType("port.AnalyzeInput")).
		Return(nil, assert.AnError)
	reportRepo.On("Requeue", ctx, report.ID).Return(nil)

	svc.Generate(ctx, report, 3)

	assert.NotEmpty(t, report.GenerateError)
	reportRepo.AssertCalled(t, "Requeue", ctx, report.ID)
	reportRepo.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything)
}

func TestReportService_Generate_FailureMarksFailedAtMaxAttempts(t *testing.T) {
	svc, reportRepo, jobRepo, rugRepo, _, analyzer, _ := setupReportService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()

	report := &domain.InspectionReport{
		ID:               uuid.New(),
		TenantID:         tenantID,
		JobID:            jobID,
		Status:           domain.ReportStatusGenerating,
		GenerateAttempts: 3,
	}
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID, JobNumber: "RC-2026-0008",
	}, nil)
	rugRepo.On("ListByJob", ctx, tenantID, jobID).Return([]domain.Rug{}, nil)
	analyzer.On("Analyze", ctx, mock.AnythingOfType("port.AnalyzeInput")).
		Return(nil, assert.AnError)
	reportRepo.On("UpdateResult", ctx, report).Return(nil)

	svc.Generate(ctx, report, 3)

	assert.Equal(t, domain.ReportStatusFailed, report.Status)
	assert.NotEmpty(t, report.GenerateError)
	reportRepo.AssertNotCalled(t, "Requeue", mock.Anything, mock.Anything)
}
