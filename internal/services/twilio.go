package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/amrutdhara/orderbot/internal/config"
)

// messageCreator is the slice of the Twilio REST API the service uses
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioService sends SMS and WhatsApp messages through Twilio
type TwilioService struct {
	messages     messageCreator
	smsFrom      string // plain E.164 number
	whatsappFrom string // Format: "whatsapp:+14155238886"
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(cfg config.Twilio) (*TwilioService, error) {
	if !cfg.Configured() {
		return nil, errors.New("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioService{
		messages:     client.Api,
		smsFrom:      cfg.PhoneNumber,
		whatsappFrom: whatsAppAddress(cfg.WhatsAppFrom),
	}, nil
}

// SendSMS sends a plain text message
func (t *TwilioService) SendSMS(to, message string) error {
	if t.smsFrom == "" {
		return errors.New("TWILIO_PHONE_NUMBER is not set")
	}
	return t.send(t.smsFrom, to, message, "SMS")
}

// SendWhatsApp sends a WhatsApp message. to may be a bare number or already prefixed.
func (t *TwilioService) SendWhatsApp(to, message string) error {
	if t.whatsappFrom == "" {
		return errors.New("TWILIO_WHATSAPP_FROM is not set")
	}
	return t.send(t.whatsappFrom, whatsAppAddress(to), message, "WhatsApp")
}

func (t *TwilioService) send(from, to, body, channel string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := t.messages.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send %s message: %v", channel, err)
		return fmt.Errorf("failed to send %s message: %w", channel, err)
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Printf("✅ %s message sent! SID: %s", channel, sid)
	return nil
}

func whatsAppAddress(number string) string {
	if number == "" || strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
