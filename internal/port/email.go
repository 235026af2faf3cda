package port

import "context"

// EstimateEmail carries everything needed to notify a client about an estimate.
type EstimateEmail struct {
	ToEmail      string
	ToName       string
	BusinessName string
	JobNumber    string
	Total        float64
	PortalURL    string
}

// ReceiptEmail carries everything needed for a payment receipt.
type ReceiptEmail struct {
	ToEmail      string
	ToName       string
	BusinessName string
	JobNumber    string
	Amount       float64
	Reference    string
}

// EmailSender defines the contract for sending client-facing emails.
type EmailSender interface {
	SendEstimateReady(ctx context.Context, msg EstimateEmail) error
	SendApprovalConfirmation(ctx context.Context, msg EstimateEmail) error
	SendPaymentReceipt(ctx context.Context, msg ReceiptEmail) error
}
