package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTenantInactive       = errors.New("tenant is inactive")
	ErrUserInactive         = errors.New("user is inactive")
	ErrDuplicateEmail       = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug  = errors.New("tenant slug already exists")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrInvalidJobStatus     = errors.New("invalid job status transition")
	ErrReportNotReady       = errors.New("inspection report has not been generated yet")
	ErrEstimateExists       = errors.New("estimate already exists for this job")
	ErrEstimateNotEditable  = errors.New("estimate can no longer be edited")
	ErrEstimateNotSent      = errors.New("estimate has not been sent to the client")
	ErrEstimateDecided      = errors.New("estimate has already been approved or declined")
	ErrEstimateNotApproved  = errors.New("estimate has not been approved")
	ErrInvalidPortalToken   = errors.New("portal token is invalid or expired")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrPayoutAlreadyPaid    = errors.New("payout has already been marked paid")
	ErrInvalidLineItems     = errors.New("estimate line items do not match expected format")
)
