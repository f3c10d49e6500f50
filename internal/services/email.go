package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/amrutdhara/orderbot/internal/config"
)

// emailClient is the slice of the Postmark API the sender uses
type emailClient interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkSender delivers transactional email through Postmark
type PostmarkSender struct {
	client  emailClient
	from    string
	replyTo string
}

// NewPostmarkSender creates a Postmark-backed email sender
func NewPostmarkSender(cfg config.Postmark, replyTo string) (*PostmarkSender, error) {
	if !cfg.Configured() {
		return nil, errors.New("missing Postmark credentials in environment variables")
	}

	return &PostmarkSender{
		client:  postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		from:    cfg.SenderEmail,
		replyTo: replyTo,
	}, nil
}

// SendEmail sends one HTML email with a plain text fallback
func (p *PostmarkSender) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:       p.from,
		ReplyTo:    p.replyTo,
		To:         to,
		Subject:    subject,
		Tag:        "order-confirmation",
		HTMLBody:   htmlBody,
		TextBody:   textBody,
		TrackOpens: true,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
	}
	return nil
}
