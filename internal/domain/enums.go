package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTechnician UserRole = "technician"
)

// JobStatus represents the lifecycle of a service job.
type JobStatus string

const (
	JobStatusReceived   JobStatus = "received"
	JobStatusInspecting JobStatus = "inspecting"
	JobStatusEstimated  JobStatus = "estimated"
	JobStatusApproved   JobStatus = "approved"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusDelivered  JobStatus = "delivered"
)

// ValidJobStatuses maps every accepted job status.
var ValidJobStatuses = map[JobStatus]bool{
	JobStatusReceived:   true,
	JobStatusInspecting: true,
	JobStatusEstimated:  true,
	JobStatusApproved:   true,
	JobStatusInProgress: true,
	JobStatusCompleted:  true,
	JobStatusDelivered:  true,
}

// JobStatusTransitions maps each status to the statuses it may move to.
var JobStatusTransitions = map[JobStatus][]JobStatus{
	JobStatusReceived:   {JobStatusInspecting},
	JobStatusInspecting: {JobStatusEstimated},
	JobStatusEstimated:  {JobStatusApproved, JobStatusInspecting},
	JobStatusApproved:   {JobStatusInProgress},
	JobStatusInProgress: {JobStatusCompleted},
	JobStatusCompleted:  {JobStatusDelivered},
	JobStatusDelivered:  {},
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to JobStatus) bool {
	for _, next := range JobStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReportStatus represents the lifecycle of AI report generation.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "queued"
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

// EstimateStatus represents the lifecycle of an estimate.
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusApproved EstimateStatus = "approved"
	EstimateStatusDeclined EstimateStatus = "declined"
)

// PaymentMethod represents how a client paid.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// ValidPaymentMethods maps every accepted payment method.
var ValidPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCard:     true,
	PaymentMethodCheck:    true,
	PaymentMethodCash:     true,
	PaymentMethodTransfer: true,
}

// PayoutStatus represents the lifecycle of a technician payout.
type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "pending"
	PayoutStatusPaid    PayoutStatus = "paid"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
