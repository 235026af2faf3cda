package noop

import (
	"context"
	"log"

	"rugops/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendEstimateReady(_ context.Context, msg port.EstimateEmail) error {
	log.Printf("[NOOP EMAIL] Estimate ready for %s (%s), job %s, total $%.2f: %s",
		msg.ToName, msg.ToEmail, msg.JobNumber, msg.Total, msg.PortalURL)
	return nil
}

func (s *noopSender) SendApprovalConfirmation(_ context.Context, msg port.EstimateEmail) error {
	log.Printf("[NOOP EMAIL] Approval confirmation for %s (%s), job %s, total $%.2f",
		msg.ToName, msg.ToEmail, msg.JobNumber, msg.Total)
	return nil
}

func (s *noopSender) SendPaymentReceipt(_ context.Context, msg port.ReceiptEmail) error {
	log.Printf("[NOOP EMAIL] Payment receipt for %s (%s), job %s, amount $%.2f, ref %s",
		msg.ToName, msg.ToEmail, msg.JobNumber, msg.Amount, msg.Reference)
	return nil
}
