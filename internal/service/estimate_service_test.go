package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/estimate"
	"rugops/internal/port"
	"rugops/internal/service"
	"rugops/mocks"
)

func setupEstimateService() (
	service.EstimateService,
	*mocks.MockEstimateRepo,
	*mocks.MockReportRepo,
	*mocks.MockJobRepo,
	*mocks.MockClientRepo,
	*mocks.MockTenantRepo,
	*mocks.MockEmailSender,
) {
	estimateRepo := new(mocks.MockEstimateRepo)
	reportRepo := new(mocks.MockReportRepo)
	jobRepo := new(mocks.MockJobRepo)
	clientRepo := new(mocks.MockClientRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	emailSender := new(mocks.MockEmailSender)

	portalCfg := config.PortalConfig{
		BaseURL:     "https://portal.example.com/estimates",
		TokenExpiry: 14 * 24 * time.Hour,
	}

	svc := service.NewEstimateService(
		estimateRepo, reportRepo, jobRepo, clientRepo, tenantRepo,
		emailSender, portalCfg,
	)

	return svc, estimateRepo, reportRepo, jobRepo, clientRepo, tenantRepo, emailSender
}

func encodeItems(t *testing.T, items []estimate.ServiceItem) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(items)
	require.NoError(t, err)
	return raw
}

func TestEstimateService_CreateFromReport_Success(t *testing.T) {
	svc, estimateRepo, reportRepo, jobRepo, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()
	userID := uuid.New()

	report := &domain.InspectionReport{
		ID:       uuid.New(),
		TenantID: tenantID,
		JobID:    jobID,
		Status:   domain.ReportStatusCompleted,
		ReportText: "Estimate of Services\n" +
			"- Hand Wash: $350.00\n" +
			"- Fringe Repair: $120.00\n" +
			"Total Estimate: $470.00\n",
	}
	reportRepo.On("GetByJobID", ctx, tenantID, jobID).Return(report, nil)
	estimateRepo.On("GetByJobID", ctx, tenantID, jobID).Return(nil, domain.ErrNotFound)
	estimateRepo.On("Create", ctx, mock.AnythingOfType("*domain.Estimate")).Return(nil)

	job := &domain.Job{
		ID:       jobID,
		TenantID: tenantID,
		Status:   domain.JobStatusInspecting,
	}
	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(job, nil)
	jobRepo.On("Update", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

	view, err := svc.CreateFromReport(ctx, service.CreateEstimateInput{
		TenantID:  tenantID,
		JobID:     jobID,
		CreatedBy: userID,
	})

	require.NoError(t, err)
	require.NotNil(t, view)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "Hand Wash", view.Lines[0].Name)
	assert.Equal(t, 350.0, view.Lines[0].UnitPrice)
	assert.Equal(t, "Fringe Repair", view.Lines[1].Name)
	assert.Equal(t, 470.0, view.Total)
	assert.Equal(t, domain.EstimateStatusDraft, view.Estimate.Status)
	assert.Equal(t, domain.JobStatusEstimated, job.Status)

	estimateRepo.AssertExpectations(t)
	reportRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}

func TestEstimateService_CreateFromReport_ReportNotReady(t *testing.T) {
	svc, _, reportRepo, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()

	report := &domain.InspectionReport{
		ID:       uuid.New(),
		TenantID: tenantID,
		JobID:    jobID,
		Status:   domain.ReportStatusGenerating,
	}
	reportRepo.On("GetByJobID", ctx, tenantID, jobID).Return(report, nil)

	view, err := svc.CreateFromReport(ctx, service.CreateEstimateInput{
		TenantID: tenantID,
		JobID:    jobID,
	})

	assert.ErrorIs(t, err, domain.ErrReportNotReady)
	assert.Nil(t, view)
}

func TestEstimateService_CreateFromReport_AlreadyExists(t *testing.T) {
	svc, estimateRepo, reportRepo, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	jobID := uuid.New()

	report := &domain.InspectionReport{
		ID:       uuid.New(),
		TenantID: tenantID,
		JobID:    jobID,
		Status:   domain.ReportStatusCompleted,
	}
	reportRepo.On("GetByJobID", ctx, tenantID, jobID).Return(report, nil)
	estimateRepo.On("GetByJobID", ctx, tenantID, jobID).
		Return(&domain.Estimate{ID: uuid.New()}, nil)

	view, err := svc.CreateFromReport(ctx, service.CreateEstimateInput{
		TenantID: tenantID,
		JobID:    jobID,
	})

	assert.ErrorIs(t, err, domain.ErrEstimateExists)
	assert.Nil(t, view)
}

func TestEstimateService_UpdateLine_PriceChangeFlagged(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()
	lineID := uuid.New()

	original := []estimate.ServiceItem{
		{ID: lineID, Name: "Hand Wash", Quantity: 1, UnitPrice: 100, Priority: estimate.PriorityHigh},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, original),
		OriginalLines: encodeItems(t, original),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateLines", ctx, est).Return(nil)

	newPrice := 150.0
	view, feedback, err := svc.UpdateLine(ctx, tenantID, estimateID, lineID, estimate.ItemPatch{
		UnitPrice: &newPrice,
	})

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, 150.0, view.Lines[0].UnitPrice)
	assert.Equal(t, 150.0, view.Total)

	require.Len(t, feedback, 1)
	assert.Equal(t, lineID, feedback[0].LineID)
	assert.True(t, feedback[0].PriceFlagged)
	assert.InDelta(t, 0.5, feedback[0].PriceDeltaPc, 0.001)
	assert.False(t, feedback[0].NameChanged)

	estimateRepo.AssertExpectations(t)
}

func TestEstimateService_UpdateLine_SmallPriceChangeNotFlagged(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()
	lineID := uuid.New()

	original := []estimate.ServiceItem{
		{ID: lineID, Name: "Hand Wash", Quantity: 1, UnitPrice: 100, Priority: estimate.PriorityHigh},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, original),
		OriginalLines: encodeItems(t, original),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateLines", ctx, est).Return(nil)

	newPrice := 110.0
	_, feedback, err := svc.UpdateLine(ctx, tenantID, estimateID, lineID, estimate.ItemPatch{
		UnitPrice: &newPrice,
	})

	require.NoError(t, err)
	assert.Empty(t, feedback)
}

func TestEstimateService_UpdateLine_NameChangeFlagged(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()
	lineID := uuid.New()

	original := []estimate.ServiceItem{
		{ID: lineID, Name: "Hand Wash", Quantity: 1, UnitPrice: 100, Priority: estimate.PriorityHigh},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, original),
		OriginalLines: encodeItems(t, original),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateLines", ctx, est).Return(nil)

	newName := "Full Immersion Wash"
	_, feedback, err := svc.UpdateLine(ctx, tenantID, estimateID, lineID, estimate.ItemPatch{
		Name: &newName,
	})

	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.True(t, feedback[0].NameChanged)
	assert.Equal(t, "Hand Wash", feedback[0].OriginalName)
	assert.Equal(t, "Full Immersion Wash", feedback[0].EditedName)
	assert.False(t, feedback[0].PriceFlagged)
}

func TestEstimateService_UpdateLine_UnknownLine(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()

	items := []estimate.ServiceItem{
		{ID: uuid.New(), Name: "Hand Wash", Quantity: 1, UnitPrice: 100},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, items),
		OriginalLines: encodeItems(t, items),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)

	newPrice := 50.0
	_, _, err := svc.UpdateLine(ctx, tenantID, estimateID, uuid.New(), estimate.ItemPatch{
		UnitPrice: &newPrice,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimateService_UpdateLine_SentEstimateNotEditable(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()

	est := &domain.Estimate{
		ID:       estimateID,
		TenantID: tenantID,
		Status:   domain.EstimateStatusSent,
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)

	newPrice := 50.0
	_, _, err := svc.UpdateLine(ctx, tenantID, estimateID, uuid.New(), estimate.ItemPatch{
		UnitPrice: &newPrice,
	})

	assert.ErrorIs(t, err, domain.ErrEstimateNotEditable)
}

func TestEstimateService_AddLine_AppliesDefaults(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()

	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, nil),
		OriginalLines: encodeItems(t, nil),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateLines", ctx, est).Return(nil)

	view, err := svc.AddLine(ctx, tenantID, estimateID, estimate.ServiceItem{
		Name:      "Moth Proofing",
		UnitPrice: 45,
		Priority:  estimate.Priority("urgent"),
	})

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	added := view.Lines[0]
	assert.NotEqual(t, uuid.Nil, added.ID)
	assert.Equal(t, 1, added.Quantity)
	assert.Equal(t, estimate.PriorityLow, added.Priority)
	assert.Equal(t, 45.0, view.Total)
}

func TestEstimateService_RemoveLine(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()
	keepID := uuid.New()
	dropID := uuid.New()

	items := []estimate.ServiceItem{
		{ID: keepID, Name: "Hand Wash", Quantity: 1, UnitPrice: 200},
		{ID: dropID, Name: "Padding", Quantity: 1, UnitPrice: 80},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, items),
		OriginalLines: encodeItems(t, items),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateLines", ctx, est).Return(nil)

	view, err := svc.RemoveLine(ctx, tenantID, estimateID, dropID)

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, keepID, view.Lines[0].ID)
	assert.Equal(t, 200.0, view.Total)
}

func TestEstimateService_RemoveLine_UnknownLine(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()

	items := []estimate.ServiceItem{
		{ID: uuid.New(), Name: "Hand Wash", Quantity: 1, UnitPrice: 200},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, items),
		OriginalLines: encodeItems(t, items),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)

	_, err := svc.RemoveLine(ctx, tenantID, estimateID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimateService_Send_Success(t *testing.T) {
	svc, estimateRepo, _, jobRepo, clientRepo, tenantRepo, emailSender := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()
	jobID := uuid.New()
	clientID := uuid.New()

	items := []estimate.ServiceItem{
		{ID: uuid.New(), Name: "Hand Wash", Quantity: 2, UnitPrice: 150},
	}
	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		JobID:         jobID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, items),
		OriginalLines: encodeItems(t, items),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateStatus", ctx, est).Return(nil)

	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID:        jobID,
		TenantID:  tenantID,
		ClientID:  clientID,
		JobNumber: "RC-2026-0001",
	}, nil)
	clientRepo.On("GetByID", ctx, tenantID, clientID).Return(&domain.Client{
		ID:       clientID,
		FullName: "Pat Doyle",
		Email:    "pat@example.com",
	}, nil)
	tenantRepo.On("GetByID", ctx, tenantID).Return(&domain.Tenant{
		ID:   tenantID,
		Name: "Heritage Rug Care",
	}, nil)
	emailSender.On("SendEstimateReady", ctx, mock.MatchedBy(func(msg port.EstimateEmail) bool {
		return msg.ToEmail == "pat@example.com" &&
			msg.JobNumber == "RC-2026-0001" &&
			msg.Total == 300.0 &&
			msg.PortalURL != ""
	})).Return(nil)

	view, err := svc.Send(ctx, tenantID, estimateID)

	require.NoError(t, err)
	assert.Equal(t, domain.EstimateStatusSent, view.Estimate.Status)
	assert.NotEmpty(t, view.Estimate.PortalToken)
	assert.NotNil(t, view.Estimate.SentAt)

	estimateRepo.AssertExpectations(t)
	emailSender.AssertExpectations(t)
}

func TestEstimateService_Send_AlreadySent(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()

	est := &domain.Estimate{
		ID:       estimateID,
		TenantID: tenantID,
		Status:   domain.EstimateStatusSent,
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)

	_, err := svc.Send(ctx, tenantID, estimateID)

	assert.ErrorIs(t, err, domain.ErrEstimateNotEditable)
}

func TestEstimateService_Send_EmailFailureDoesNotFailSend(t *testing.T) {
	svc, estimateRepo, _, jobRepo, clientRepo, tenantRepo, emailSender := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()
	jobID := uuid.New()
	clientID := uuid.New()

	est := &domain.Estimate{
		ID:            estimateID,
		TenantID:      tenantID,
		JobID:         jobID,
		Status:        domain.EstimateStatusDraft,
		Lines:         encodeItems(t, nil),
		OriginalLines: encodeItems(t, nil),
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)
	estimateRepo.On("UpdateStatus", ctx, est).Return(nil)

	jobRepo.On("GetByID", ctx, tenantID, jobID).Return(&domain.Job{
		ID: jobID, TenantID: tenantID, ClientID: clientID, JobNumber: "RC-2026-0002",
	}, nil)
	clientRepo.On("GetByID", ctx, tenantID, clientID).Return(&domain.Client{
		ID: clientID, FullName: "Pat Doyle", Email: "pat@example.com",
	}, nil)
	tenantRepo.On("GetByID", ctx, tenantID).Return(&domain.Tenant{
		ID: tenantID, Name: "Heritage Rug Care",
	}, nil)
	emailSender.On("SendEstimateReady", ctx, mock.AnythingOfType("port.EstimateEmail")).
		Return(assert.AnError)

	view, err := svc.Send(ctx, tenantID, estimateID)

	require.NoError(t, err)
	assert.Equal(t, domain.EstimateStatusSent, view.Estimate.Status)
}

func TestEstimateService_Delete_DraftOnly(t *testing.T) {
	svc, estimateRepo, _, _, _, _, _ := setupEstimateService()
	ctx := context.Background()
	tenantID := uuid.New()
	estimateID := uuid.New()

	est := &domain.Estimate{
		ID:       estimateID,
		TenantID: tenantID,
		Status:   domain.EstimateStatusApproved,
	}
	estimateRepo.On("GetByID", ctx, tenantID, estimateID).Return(est, nil)

	err := svc.Delete(ctx, tenantID, estimateID)

	assert.ErrorIs(t, err, domain.ErrEstimateNotEditable)
	estimateRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
