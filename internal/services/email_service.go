package services

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// sesSender is the part of the SESv2 client the email service uses
type sesSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles email sending via AWS SES (SESv2 API)
type EmailService struct {
	sesClient sesSender
	fromEmail string
}

// NewEmailService creates a new email service instance using AWS SDK (role-based).
// Returns nil when no sender address is configured.
func NewEmailService(cfg aws.Config, fromEmail string) *EmailService {
	if fromEmail == "" {
		log.Println("[WARN] SES_FROM_EMAIL not set; emails disabled")
		return nil
	}
	return &EmailService{
		sesClient: sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
	}
}

// SendWelcome sends the signup confirmation email
func (e *EmailService) SendWelcome(ctx context.Context, user models.User) error {
	if e == nil {
		return nil
	}
	subject := "Welcome to Retail Supply Chain"
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your account has been created. You can now sign in with <strong>%s</strong> to follow your orders.</p>
<p>Retail Supply Chain</p>`,
		html.EscapeString(user.FirstName), html.EscapeString(user.Email))
	return e.sendEmail(ctx, user.Email, subject, body)
}

// SendFeedbackThanks acknowledges a feedback submission
func (e *EmailService) SendFeedbackThanks(ctx context.Context, f models.Feedback) error {
	if e == nil || f.CustomerEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Thanks for your feedback on %s", f.OrderNumber)
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>We received your feedback for order <strong>%s</strong>.</p>
<ul>
<li>Overall: %d/5</li>
<li>Delivery: %d/5</li>
<li>Product: %d/5</li>
</ul>
<p>Retail Supply Chain</p>`,
		html.EscapeString(f.CustomerName), html.EscapeString(f.OrderNumber),
		f.Rating, f.DeliveryRating, f.ProductRating)
	return e.sendEmail(ctx, f.CustomerEmail, subject, body)
}

// sendEmail sends an email via AWS SESv2 using the instance role
func (e *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{toEmail}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(htmlBody)}},
			},
		},
	}
	if _, err := e.sesClient.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
