package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"rugops/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendEstimateReady(ctx context.Context, msg port.EstimateEmail) error {
	subject := fmt.Sprintf("Your estimate from %s is ready (job %s)", msg.BusinessName, msg.JobNumber)
	htmlBody := buildEstimateReadyHTML(msg)
	textBody := fmt.Sprintf("Hi %s,\n\nYour estimate for job %s is ready. The total comes to $%.2f.\n\nReview and approve it here:\n%s\n\n%s",
		msg.ToName, msg.JobNumber, msg.Total, msg.PortalURL, msg.BusinessName)

	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendApprovalConfirmation(ctx context.Context, msg port.EstimateEmail) error {
	subject := fmt.Sprintf("Estimate approved — %s job %s", msg.BusinessName, msg.JobNumber)
	htmlBody := buildApprovalHTML(msg)
	textBody := fmt.Sprintf("Hi %s,\n\nThanks for approving the estimate for job %s ($%.2f). We'll begin work shortly and keep you posted.\n\n%s",
		msg.ToName, msg.JobNumber, msg.Total, msg.BusinessName)

	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendPaymentReceipt(ctx context.Context, msg port.ReceiptEmail) error {
	subject := fmt.Sprintf("Payment receipt — %s job %s", msg.BusinessName, msg.JobNumber)
	htmlBody := buildReceiptHTML(msg)
	textBody := fmt.Sprintf("Hi %s,\n\nWe received your payment of $%.2f for job %s.\nReference: %s\n\nThank you!\n%s",
		msg.ToName, msg.Amount, msg.JobNumber, msg.Reference, msg.BusinessName)

	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildEstimateReadyHTML(msg port.EstimateEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your estimate is ready</h2>
  <p>Hi %s,</p>
  <p>%s has finished inspecting your rugs for job <strong>%s</strong>. The estimate total is <strong>$%.2f</strong>.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Estimate</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, msg.ToName, msg.BusinessName, msg.JobNumber, msg.Total, msg.PortalURL, msg.PortalURL, msg.BusinessName)
}

func buildApprovalHTML(msg port.EstimateEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Estimate approved</h2>
  <p>Hi %s,</p>
  <p>Thanks for approving the estimate for job <strong>%s</strong> ($%.2f). We'll begin work shortly and keep you posted.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, msg.ToName, msg.JobNumber, msg.Total, msg.BusinessName)
}

func buildReceiptHTML(msg port.ReceiptEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Payment received</h2>
  <p>Hi %s,</p>
  <p>We received your payment of <strong>$%.2f</strong> for job <strong>%s</strong>.</p>
  <p style="color: #666;">Reference: %s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, msg.ToName, msg.Amount, msg.JobNumber, msg.Reference, msg.BusinessName)
}
