package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/storage"
)

// EmailSender delivers one email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// MessageSender delivers SMS and WhatsApp messages
type MessageSender interface {
	SendSMS(to, message string) error
	SendWhatsApp(to, message string) error
}

// NotificationConfig wires the notification channels. Nil senders disable their channels.
type NotificationConfig struct {
	Email      EmailSender
	Messages   MessageSender
	AdminPhone string
	Brand      string
}

// NotificationService announces new orders on every configured channel
type NotificationService struct {
	store      storage.Store
	email      EmailSender
	messages   MessageSender
	adminPhone string
	brand      string
}

// NewNotificationService creates a new notification service
func NewNotificationService(store storage.Store, cfg NotificationConfig) *NotificationService {
	if cfg.Email == nil {
		log.Println("⚠️  Email notifications disabled - Postmark not configured")
	}
	if cfg.Messages == nil {
		log.Println("⚠️  SMS/WhatsApp notifications disabled - Twilio not configured")
	} else if cfg.AdminPhone == "" {
		log.Println("⚠️  Admin SMS alerts disabled - ADMIN_PHONE_NUMBER not set")
	}

	return &NotificationService{
		store:      store,
		email:      cfg.Email,
		messages:   cfg.Messages,
		adminPhone: cfg.AdminPhone,
		brand:      cfg.Brand,
	}
}

// NotifyOrderCreated sends the customer email, the admin SMS and the customer
// WhatsApp message in parallel. A failing channel never stops the others; the
// returned error joins every channel failure.
func (n *NotificationService) NotifyOrderCreated(ctx context.Context, order *models.Order, email string) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)

	run := func(channel string, send func() error) {
		g.Go(func() error {
			if err := send(); err != nil {
				log.Printf("❌ %s notification for order %s failed: %v", channel, order.ID, err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", channel, err))
				mu.Unlock()
				return nil
			}
			log.Printf("✅ %s notification sent for order %s", channel, order.ID)
			return nil
		})
	}

	if n.email != nil && email != "" {
		run("email", func() error { return n.sendCustomerEmail(ctx, order, email) })
	}
	if n.messages != nil && n.adminPhone != "" {
		run("admin SMS", func() error { return n.sendAdminSMS(ctx, order) })
	}
	if n.messages != nil {
		run("WhatsApp", func() error { return n.sendCustomerWhatsApp(ctx, order) })
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

func (n *NotificationService) sendCustomerEmail(ctx context.Context, order *models.Order, to string) error {
	params := orderParams(order, n.brand)

	subject, err := RenderTemplate("customer_order_email_subject", params)
	if err != nil {
		return err
	}
	text, err := RenderTemplate("customer_order_email_text", params)
	if err != nil {
		return err
	}
	body, err := RenderTemplate("customer_order_email_html", htmlParams(params))
	if err != nil {
		return err
	}

	return n.email.SendEmail(ctx, to, subject, body, text)
}

func (n *NotificationService) sendAdminSMS(ctx context.Context, order *models.Order) error {
	message, err := RenderTemplate("admin_new_order_sms", adminParams(order, n.brand))
	if err != nil {
		return err
	}
	return withContext(ctx, func() error { return n.messages.SendSMS(n.adminPhone, message) })
}

// sendCustomerWhatsApp is skipped when the account has no mobile number
func (n *NotificationService) sendCustomerWhatsApp(ctx context.Context, order *models.Order) error {
	user, err := n.store.GetUser(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("could not load customer: %w", err)
	}
	if user.MobileNumber == "" {
		return nil
	}

	params := orderParams(order, n.brand)
	params["name"] = user.ContactName
	message, err := RenderTemplate("customer_order_whatsapp", params)
	if err != nil {
		return err
	}
	return withContext(ctx, func() error { return n.messages.SendWhatsApp(user.MobileNumber, message) })
}

// withContext runs a blocking call that has no context parameter and stops
// waiting for it once ctx is done
func withContext(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
