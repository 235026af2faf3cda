package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tenant represents one rug-care provider business.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated staff member belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Client represents a customer whose rugs are serviced.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Job represents one service engagement for a client, from intake through
// delivery. Rugs, the inspection report, the estimate, and payments hang
// off a job.
type Job struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	ClientID     uuid.UUID  `db:"client_id" json:"client_id"`
	JobNumber    string     `db:"job_number" json:"job_number"`
	Status       JobStatus  `db:"status" json:"status"`
	TechnicianID *uuid.UUID `db:"technician_id" json:"technician_id"`
	Notes        string     `db:"notes" json:"notes"`
	CreatedBy    uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Rug represents a single rug received under a job.
type Rug struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	JobID       uuid.UUID  `db:"job_id" json:"job_id"`
	Label       string     `db:"label" json:"label"`
	RugType     string     `db:"rug_type" json:"rug_type"`
	WidthFt     float64    `db:"width_ft" json:"width_ft"`
	LengthFt    float64    `db:"length_ft" json:"length_ft"`
	Condition   string     `db:"condition" json:"condition"`
	PhotoFileID *uuid.UUID `db:"photo_file_id" json:"photo_file_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// InspectionReport holds the AI-generated inspection narrative for a job.
// Generation runs asynchronously off a queue; Status tracks its lifecycle.
type InspectionReport struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	TenantID         uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	JobID            uuid.UUID    `db:"job_id" json:"job_id"`
	ReportText       string       `db:"report_text" json:"report_text"`
	ModelUsed        string       `db:"model_used" json:"model_used"`
	Status           ReportStatus `db:"status" json:"status"`
	GenerateError    string       `db:"generate_error" json:"generate_error"`
	GenerateAttempts int          `db:"generate_attempts" json:"generate_attempts"`
	GeneratedAt      *time.Time   `db:"generated_at" json:"generated_at"`
	CreatedBy        uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// Estimate represents the priced service list for a job. Lines is the JSON
// encoding of []estimate.ServiceItem; OriginalLines snapshots the parser
// output so edits can be diffed against it. The grand total is always
// recomputed from the lines, never trusted from storage.
type Estimate struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	JobID         uuid.UUID       `db:"job_id" json:"job_id"`
	ReportID      *uuid.UUID      `db:"report_id" json:"report_id"`
	Lines         json.RawMessage `db:"lines" json:"lines"`
	OriginalLines json.RawMessage `db:"original_lines" json:"original_lines"`
	Status        EstimateStatus  `db:"status" json:"status"`
	PortalToken   string          `db:"portal_token" json:"-"`
	SentAt        *time.Time      `db:"sent_at" json:"sent_at"`
	DecidedAt     *time.Time      `db:"decided_at" json:"decided_at"`
	DeclineReason string          `db:"decline_reason" json:"decline_reason"`
	CreatedBy     uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Payment represents money received against an approved estimate.
type Payment struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	TenantID   uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	JobID      uuid.UUID     `db:"job_id" json:"job_id"`
	EstimateID uuid.UUID     `db:"estimate_id" json:"estimate_id"`
	Amount     float64       `db:"amount" json:"amount"`
	Method     PaymentMethod `db:"method" json:"method"`
	Reference  string        `db:"reference" json:"reference"`
	PaidAt     time.Time     `db:"paid_at" json:"paid_at"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// Payout represents an amount owed or paid to a technician for a completed job.
type Payout struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	TenantID     uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	TechnicianID uuid.UUID    `db:"technician_id" json:"technician_id"`
	JobID        uuid.UUID    `db:"job_id" json:"job_id"`
	Amount       float64      `db:"amount" json:"amount"`
	Status       PayoutStatus `db:"status" json:"status"`
	PaidAt       *time.Time   `db:"paid_at" json:"paid_at"`
	Notes        string       `db:"notes" json:"notes"`
	CreatedBy    uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// ServiceRate is a tenant default price for a named service, seeded from a
// price-list workbook and used to prefill manual estimate lines.
type ServiceRate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	UnitPrice float64   `db:"unit_price" json:"unit_price"`
	Unit      string    `db:"unit" json:"unit"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FileMeta stores metadata about an uploaded file (rug photos, estimate PDFs).
// JobID is set when the upload belongs to a specific job, which also scopes
// its object key under that job's prefix.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	JobID        *uuid.UUID `db:"job_id" json:"job_id,omitempty"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// RevenueSummaryRow is one period bucket of the revenue report.
type RevenueSummaryRow struct {
	Period       string    `db:"-" json:"period"`
	PeriodStart  time.Time `db:"period_start" json:"period_start"`
	PeriodEnd    time.Time `db:"-" json:"period_end"`
	PaymentCount int       `db:"payment_count" json:"payment_count"`
	TotalAmount  float64   `db:"total_amount" json:"total_amount"`
}

// TechnicianEarningsRow summarizes payouts per technician.
type TechnicianEarningsRow struct {
	TechnicianID   uuid.UUID `db:"technician_id" json:"technician_id"`
	TechnicianName string    `db:"technician_name" json:"technician_name"`
	JobCount       int       `db:"job_count" json:"job_count"`
	PendingAmount  float64   `db:"pending_amount" json:"pending_amount"`
	PaidAmount     float64   `db:"paid_amount" json:"paid_amount"`
}

// StatsFilters narrows stats queries by date range and granularity.
type StatsFilters struct {
	From        *time.Time
	To          *time.Time
	Granularity string
}
