package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/estimate"
	"rugops/internal/port"
)

// priceChangeFeedbackThreshold is the relative unit-price change beyond which
// an edit is flagged for parser feedback review.
const priceChangeFeedbackThreshold = 0.20

// CreateEstimateInput is the DTO for seeding an estimate from a report.
type CreateEstimateInput struct {
	TenantID  uuid.UUID
	JobID     uuid.UUID
	CreatedBy uuid.UUID
}

// LineFeedback describes how an edited line diverged from what the parser
// originally extracted. Collected so systematic parser misses can be reviewed.
type LineFeedback struct {
	LineID       uuid.UUID `json:"line_id"`
	OriginalName string    `json:"original_name"`
	EditedName   string    `json:"edited_name"`
	NameChanged  bool      `json:"name_changed"`
	PriceDeltaPc float64   `json:"price_delta_pct"`
	PriceFlagged bool      `json:"price_flagged"`
}

// EstimateView is an estimate with its decoded lines and computed total.
type EstimateView struct {
	Estimate *domain.Estimate       `json:"estimate"`
	Lines    []estimate.ServiceItem `json:"lines"`
	Total    float64                `json:"total"`
}

// EstimateService defines the estimate lifecycle contract.
type EstimateService interface {
	CreateFromReport(ctx context.Context, input CreateEstimateInput) (*EstimateView, error)
	GetByID(ctx context.Context, tenantID, estimateID uuid.UUID) (*EstimateView, error)
	GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*EstimateView, error)
	UpdateLine(ctx context.Context, tenantID, estimateID, lineID uuid.UUID, patch estimate.ItemPatch) (*EstimateView, []LineFeedback, error)
	AddLine(ctx context.Context, tenantID, estimateID uuid.UUID, item estimate.ServiceItem) (*EstimateView, error)
	RemoveLine(ctx context.Context, tenantID, estimateID, lineID uuid.UUID) (*EstimateView, error)
	Send(ctx context.Context, tenantID, estimateID uuid.UUID) (*EstimateView, error)
	ReviewFeedback(ctx context.Context, tenantID, estimateID uuid.UUID) ([]LineFeedback, error)
	Delete(ctx context.Context, tenantID, estimateID uuid.UUID) error
}

type estimateService struct {
	estimateRepo port.EstimateRepository
	reportRepo   port.ReportRepository
	jobRepo      port.JobRepository
	clientRepo   port.ClientRepository
	tenantRepo   port.TenantRepository
	email        port.EmailSender
	portalCfg    config.PortalConfig
	parser       *estimate.Parser
}

// NewEstimateService creates a new EstimateService implementation.
func NewEstimateService(
	estimateRepo port.EstimateRepository,
	reportRepo port.ReportRepository,
	jobRepo port.JobRepository,
	clientRepo port.ClientRepository,
	tenantRepo port.TenantRepository,
	email port.EmailSender,
	portalCfg config.PortalConfig,
) EstimateService {
	return &estimateService{
		estimateRepo: estimateRepo,
		reportRepo:   reportRepo,
		jobRepo:      jobRepo,
		clientRepo:   clientRepo,
		tenantRepo:   tenantRepo,
		email:        email,
		portalCfg:    portalCfg,
		parser:       estimate.NewParser(),
	}
}

func (s *estimateService) CreateFromReport(ctx context.Context, input CreateEstimateInput) (*EstimateView, error) {
	report, err := s.reportRepo.GetByJobID(ctx, input.TenantID, input.JobID)
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportStatusCompleted {
		return nil, domain.ErrReportNotReady
	}

	if _, err := s.estimateRepo.GetByJobID(ctx, input.TenantID, input.JobID); err == nil {
		return nil, domain.ErrEstimateExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	items := s.parser.Parse(report.ReportText)
	lines, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding lines: %w", err)
	}

	est := &domain.Estimate{
		ID:            uuid.New(),
		TenantID:      input.TenantID,
		JobID:         input.JobID,
		ReportID:      &report.ID,
		Lines:         lines,
		OriginalLines: lines,
		Status:        domain.EstimateStatusDraft,
		CreatedBy:     input.CreatedBy,
	}
	if err := s.estimateRepo.Create(ctx, est); err != nil {
		return nil, err
	}

	// Move the job forward once an estimate exists.
	if job, err := s.jobRepo.GetByID(ctx, input.TenantID, input.JobID); err == nil {
		if domain.CanTransition(job.Status, domain.JobStatusEstimated) {
			job.Status = domain.JobStatusEstimated
			if err := s.jobRepo.Update(ctx, job); err != nil {
				log.Printf("estimateService.CreateFromReport: job transition failed: %v", err)
			}
		}
	}

	log.Printf("estimateService.CreateFromReport: estimate %s seeded with %d lines from report %s",
		est.ID, len(items), report.ID)
	return s.view(est)
}

func (s *estimateService) GetByID(ctx context.Context, tenantID, estimateID uuid.UUID) (*EstimateView, error) {
	est, err := s.estimateRepo.GetByID(ctx, tenantID, estimateID)
	if err != nil {
		return nil, err
	}
	return s.view(est)
}

func (s *estimateService) GetByJobID(ctx context.Context, tenantID, jobID uuid.UUID) (*EstimateView, error) {
	est, err := s.estimateRepo.GetByJobID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	return s.view(est)
}

func (s *estimateService) UpdateLine(ctx context.Context, tenantID, estimateID, lineID uuid.UUID, patch estimate.ItemPatch) (*EstimateView, []LineFeedback, error) {
	est, items, err := s.editableEstimate(ctx, tenantID, estimateID)
	if err != nil {
		return nil, nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == lineID {
			items[i] = items[i].Apply(patch)
			found = true
			break
		}
	}
	if !found {
		return nil, nil, domain.ErrNotFound
	}

	if err := s.saveLines(ctx, est, items); err != nil {
		return nil, nil, err
	}

	feedback, err := s.diffAgainstOriginal(est, items)
	if err != nil {
		return nil, nil, err
	}
	for _, fb := range feedback {
		if fb.LineID == lineID && (fb.PriceFlagged || fb.NameChanged) {
			log.Printf("estimateService.UpdateLine: line %q flagged for parser feedback (name_changed=%t, price_delta=%.1f%%)",
				fb.OriginalName, fb.NameChanged, fb.PriceDeltaPc*100)
		}
	}

	view, err := s.view(est)
	if err != nil {
		return nil, nil, err
	}
	return view, feedback, nil
}

func (s *estimateService) AddLine(ctx context.Context, tenantID, estimateID uuid.UUID, item estimate.ServiceItem) (*EstimateView, error) {
	est, items, err := s.editableEstimate(ctx, tenantID, estimateID)
	if err != nil {
		return nil, err
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if !estimate.ValidPriorities[item.Priority] {
		item.Priority = estimate.ClassifyPriority(item.Name)
	}
	items = append(items, item)

	if err := s.saveLines(ctx, est, items); err != nil {
		return nil, err
	}
	return s.view(est)
}

func (s *estimateService) RemoveLine(ctx context.Context, tenantID, estimateID, lineID uuid.UUID) (*EstimateView, error) {
	est, items, err := s.editableEstimate(ctx, tenantID, estimateID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != lineID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil, domain.ErrNotFound
	}

	if err := s.saveLines(ctx, est, kept); err != nil {
		return nil, err
	}
	return s.view(est)
}

func (s *estimateService) Send(ctx context.Context, tenantID, estimateID uuid.UUID) (*EstimateView, error) {
	est, err := s.estimateRepo.GetByID(ctx, tenantID, estimateID)
	if err != nil {
		return nil, err
	}
	if est.Status != domain.EstimateStatusDraft {
		return nil, domain.ErrEstimateNotEditable
	}

	token, err := newPortalToken()
	if err != nil {
		return nil, fmt.Errorf("generating portal token: %w", err)
	}

	now := time.Now().UTC()
	est.Status = domain.EstimateStatusSent
	est.PortalToken = token
	est.SentAt = &now
	if err := s.estimateRepo.UpdateStatus(ctx, est); err != nil {
		return nil, err
	}

	if err := s.notifyClient(ctx, est); err != nil {
		// The estimate is already sent; email failure must not roll it back.
		log.Printf("estimateService.Send: notification for estimate %s failed: %v", est.ID, err)
	}

	return s.view(est)
}

func (s *estimateService) ReviewFeedback(ctx context.Context, tenantID, estimateID uuid.UUID) ([]LineFeedback, error) {
	est, err := s.estimateRepo.GetByID(ctx, tenantID, estimateID)
	if err != nil {
		return nil, err
	}
	items, err := decodeLines(est.Lines)
	if err != nil {
		return nil, err
	}
	return s.diffAgainstOriginal(est, items)
}

func (s *estimateService) Delete(ctx context.Context, tenantID, estimateID uuid.UUID) error {
	est, err := s.estimateRepo.GetByID(ctx, tenantID, estimateID)
	if err != nil {
		return err
	}
	if est.Status != domain.EstimateStatusDraft {
		return domain.ErrEstimateNotEditable
	}
	return s.estimateRepo.Delete(ctx, tenantID, estimateID)
}

// editableEstimate loads an estimate and its lines, rejecting edits once the
// estimate has been sent.
func (s *estimateService) editableEstimate(ctx context.Context, tenantID, estimateID uuid.UUID) (*domain.Estimate, []estimate.ServiceItem, error) {
	est, err := s.estimateRepo.GetByID(ctx, tenantID, estimateID)
	if err != nil {
		return nil, nil, err
	}
	if est.Status != domain.EstimateStatusDraft {
		return nil, nil, domain.ErrEstimateNotEditable
	}
	items, err := decodeLines(est.Lines)
	if err != nil {
		return nil, nil, err
	}
	return est, items, nil
}

func (s *estimateService) saveLines(ctx context.Context, est *domain.Estimate, items []estimate.ServiceItem) error {
	lines, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding lines: %w", err)
	}
	est.Lines = lines
	return s.estimateRepo.UpdateLines(ctx, est)
}

// diffAgainstOriginal compares current lines with the parser's original
// output. A line whose unit price moved more than the threshold, or whose
// name changed, is flagged.
func (s *estimateService) diffAgainstOriginal(est *domain.Estimate, items []estimate.ServiceItem) ([]LineFeedback, error) {
	original, err := decodeLines(est.OriginalLines)
	if err != nil {
		return nil, err
	}
	origByID := make(map[uuid.UUID]estimate.ServiceItem, len(original))
	for _, it := range original {
		origByID[it.ID] = it
	}

	var feedback []LineFeedback
	for _, it := range items {
		orig, ok := origByID[it.ID]
		if !ok {
			continue // manually added line, nothing to compare
		}
		fb := LineFeedback{
			LineID:       it.ID,
			OriginalName: orig.Name,
			EditedName:   it.Name,
			NameChanged:  !strings.EqualFold(orig.Name, it.Name),
		}
		if orig.UnitPrice > 0 {
			fb.PriceDeltaPc = (it.UnitPrice - orig.UnitPrice) / orig.UnitPrice
			fb.PriceFlagged = math.Abs(fb.PriceDeltaPc) > priceChangeFeedbackThreshold
		} else if it.UnitPrice > 0 {
			fb.PriceDeltaPc = 1
			fb.PriceFlagged = true
		}
		if fb.NameChanged || fb.PriceFlagged {
			feedback = append(feedback, fb)
		}
	}
	return feedback, nil
}

func (s *estimateService) notifyClient(ctx context.Context, est *domain.Estimate) error {
	job, err := s.jobRepo.GetByID(ctx, est.TenantID, est.JobID)
	if err != nil {
		return err
	}
	client, err := s.clientRepo.GetByID(ctx, est.TenantID, job.ClientID)
	if err != nil {
		return err
	}
	if client.Email == "" {
		return fmt.Errorf("client %s has no email address", client.ID)
	}
	tenant, err := s.tenantRepo.GetByID(ctx, est.TenantID)
	if err != nil {
		return err
	}
	items, err := decodeLines(est.Lines)
	if err != nil {
		return err
	}

	return s.email.SendEstimateReady(ctx, port.EstimateEmail{
		ToEmail:      client.Email,
		ToName:       client.FullName,
		BusinessName: tenant.Name,
		JobNumber:    job.JobNumber,
		Total:        estimate.Total(items),
		PortalURL:    fmt.Sprintf("%s/%s", strings.TrimRight(s.portalCfg.BaseURL, "/"), est.PortalToken),
	})
}

func (s *estimateService) view(est *domain.Estimate) (*EstimateView, error) {
	items, err := decodeLines(est.Lines)
	if err != nil {
		return nil, err
	}
	return &EstimateView{
		Estimate: est,
		Lines:    items,
		Total:    estimate.Total(items),
	}, nil
}

func decodeLines(raw json.RawMessage) ([]estimate.ServiceItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []estimate.ServiceItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLineItems, err)
	}
	return items, nil
}

func newPortalToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
