package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"movesmart/internal/config"
	"movesmart/internal/domain"
	"movesmart/internal/events"
	"movesmart/internal/metrics"

	"github.com/rs/zerolog"
)

// Dispatcher subscribes to domain events and fans them out to notification
// channels. Delivery is best-effort: failures are logged and counted, never
// surfaced to the operation that raised the event.
type Dispatcher struct {
	sender     domain.Sender
	vars       *Variations
	company    config.CompanyConfig
	adminEmail string
	adminPhone string
	smsEnabled bool
	telegram   *TelegramAlerter
	logger     zerolog.Logger
}

type DispatcherOptions struct {
	AdminEmail string
	AdminPhone string
	SMSEnabled bool
	Telegram   *TelegramAlerter
}

func NewDispatcher(sender domain.Sender, vars *Variations, company config.CompanyConfig, opts DispatcherOptions, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		vars:       vars,
		company:    company,
		adminEmail: opts.AdminEmail,
		adminPhone: opts.AdminPhone,
		smsEnabled: opts.SMSEnabled,
		telegram:   opts.Telegram,
		logger:     logger,
	}
}

// Register wires the dispatcher into the event bus.
func (d *Dispatcher) Register(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingConfirmed,
		events.EventBookingCancelled,
		events.EventBookingCompleted,
	} {
		bus.Subscribe(eventType, d.handleBookingEvent)
	}
	bus.Subscribe(events.EventContactReceived, d.handleContactEvent)
}

// notifyAdmin reports whether the event warrants an admin alert on top of the
// customer notification.
func notifyAdmin(eventType string) bool {
	return eventType == events.EventBookingCreated || eventType == events.EventBookingCancelled
}

func (d *Dispatcher) handleBookingEvent(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		d.logger.Error().Err(err).Str("event_type", event.Type).Msg("decode booking event")
		return nil
	}

	ctx := context.Background()

	d.sendCustomerEmail(ctx, event.Type, payload)
	if d.smsEnabled {
		d.sendCustomerSMS(ctx, event.Type, payload)
	}

	if notifyAdmin(event.Type) {
		d.sendAdminBookingAlert(ctx, event.Type, payload)
	}

	return nil
}

func (d *Dispatcher) handleContactEvent(event *events.Event) error {
	var payload events.ContactEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		d.logger.Error().Err(err).Msg("decode contact event")
		return nil
	}

	ctx := context.Background()

	d.sendContactConfirmation(ctx, payload)
	d.sendAdminContactAlert(ctx, payload)

	return nil
}

func (d *Dispatcher) sendCustomerEmail(ctx context.Context, eventType string, payload events.BookingEventPayload) {
	subject := d.vars.Subject(eventType, payload.ServiceName)
	body, err := d.renderBookingEmail(eventType, payload)
	if err != nil {
		d.logger.Error().Err(err).Str("event_type", eventType).Msg("render booking email")
		metrics.IncNotification("email", eventType, "failed")
		return
	}

	if err := d.sender.SendEmail(ctx, payload.CustomerEmail, subject, body); err != nil {
		d.logger.Error().Err(err).
			Str("event_type", eventType).
			Int64("booking_id", payload.BookingID).
			Msg("customer email failed")
		metrics.IncNotification("email", eventType, "failed")
		return
	}
	metrics.IncNotification("email", eventType, "sent")
}

func (d *Dispatcher) sendCustomerSMS(ctx context.Context, eventType string, payload events.BookingEventPayload) {
	if payload.CustomerPhone == "" {
		return
	}

	body := d.vars.SMS(eventType, map[string]string{
		"name":    firstName(payload.CustomerName),
		"service": payload.ServiceName,
		"date":    payload.PreferredDate,
		"time":    payload.PreferredTime,
	})

	if err := d.sender.SendSMS(ctx, payload.CustomerPhone, body); err != nil {
		d.logger.Error().Err(err).
			Str("event_type", eventType).
			Int64("booking_id", payload.BookingID).
			Msg("customer sms failed")
		metrics.IncNotification("sms", eventType, "failed")
		return
	}
	metrics.IncNotification("sms", eventType, "sent")
}

func (d *Dispatcher) sendAdminBookingAlert(ctx context.Context, eventType string, payload events.BookingEventPayload) {
	title := eventTitle(eventType)

	if d.adminEmail != "" {
		subject := fmt.Sprintf("ADMIN: Move %s – %s", title, payload.ServiceName)
		body := adminBookingBody(title, payload)
		if err := d.sender.SendEmail(ctx, d.adminEmail, subject, body); err != nil {
			d.logger.Error().Err(err).Int64("booking_id", payload.BookingID).Msg("admin email failed")
			metrics.IncNotification("email", eventType, "failed")
		} else {
			metrics.IncNotification("email", eventType, "sent")
		}
	}

	if d.smsEnabled && d.adminPhone != "" {
		body := fmt.Sprintf("ADMIN: %s - %s - %s on %s", title, payload.CustomerName, payload.ServiceName, payload.PreferredDate)
		if err := d.sender.SendSMS(ctx, d.adminPhone, body); err != nil {
			d.logger.Error().Err(err).Int64("booking_id", payload.BookingID).Msg("admin sms failed")
			metrics.IncNotification("sms", eventType, "failed")
		} else {
			metrics.IncNotification("sms", eventType, "sent")
		}
	}

	if d.telegram != nil {
		text := fmt.Sprintf("%s\n%s – %s\n%s at %s\n%s", title,
			payload.CustomerName, payload.ServiceName,
			payload.PreferredDate, payload.PreferredTime, payload.CustomerPhone)
		if err := d.telegram.Alert(text); err != nil {
			d.logger.Error().Err(err).Int64("booking_id", payload.BookingID).Msg("telegram alert failed")
			metrics.IncNotification("telegram", eventType, "failed")
		} else {
			metrics.IncNotification("telegram", eventType, "sent")
		}
	}
}

func (d *Dispatcher) sendContactConfirmation(ctx context.Context, payload events.ContactEventPayload) {
	subject := fmt.Sprintf("%s - We Received Your Message", d.company.Name)
	body, err := d.renderContactConfirmation(payload)
	if err != nil {
		d.logger.Error().Err(err).Msg("render contact confirmation")
		metrics.IncNotification("email", events.EventContactReceived, "failed")
		return
	}

	if err := d.sender.SendEmail(ctx, payload.Email, subject, body); err != nil {
		d.logger.Error().Err(err).Int64("message_id", payload.MessageID).Msg("contact confirmation failed")
		metrics.IncNotification("email", events.EventContactReceived, "failed")
		return
	}
	metrics.IncNotification("email", events.EventContactReceived, "sent")
}

func (d *Dispatcher) sendAdminContactAlert(ctx context.Context, payload events.ContactEventPayload) {
	if d.adminEmail != "" {
		subject := fmt.Sprintf("New Contact Message - %s", payload.Subject)
		body := adminContactBody(payload)
		if err := d.sender.SendEmail(ctx, d.adminEmail, subject, body); err != nil {
			d.logger.Error().Err(err).Int64("message_id", payload.MessageID).Msg("admin contact email failed")
			metrics.IncNotification("email", events.EventContactReceived, "failed")
		} else {
			metrics.IncNotification("email", events.EventContactReceived, "sent")
		}
	}

	if d.telegram != nil {
		text := fmt.Sprintf("New contact message\n%s <%s>\n%s", payload.Name, payload.Email, payload.Subject)
		if err := d.telegram.Alert(text); err != nil {
			d.logger.Error().Err(err).Int64("message_id", payload.MessageID).Msg("telegram alert failed")
			metrics.IncNotification("telegram", events.EventContactReceived, "failed")
		} else {
			metrics.IncNotification("telegram", events.EventContactReceived, "sent")
		}
	}
}

var bookingEmailTmpl = template.Must(template.New("booking").Parse(`<html>
  <body>
    <p>{{.Greeting}}</p>
    <h2>{{.Intro}}</h2>
    <p><strong>Move Details:</strong></p>
    <ul>
      <li><strong>Service:</strong> {{.ServiceName}}</li>
      <li><strong>Preferred Date:</strong> {{.Date}}</li>
      <li><strong>Preferred Time:</strong> {{.Time}}</li>
      {{if .Description}}<li><strong>Notes:</strong> {{.Description}}</li>{{end}}
      {{if .Address}}<li><strong>Pickup Address:</strong> {{.Address}}</li>{{end}}
    </ul>
    {{if .Followup}}<p>{{.Followup}}</p>{{end}}
    <p>For urgent moves, call us at <strong>{{.CompanyPhone}}</strong>.</p>
    <br>
    <p>{{.Closing}}<br>{{.CompanyName}} Team</p>
  </body>
</html>`))

var contactEmailTmpl = template.Must(template.New("contact").Parse(`<html>
  <body>
    <h2>Thank you for contacting {{.CompanyName}}!</h2>
    <p>We have received your message and will get back to you within 24 hours.</p>
    <p><strong>Your Message Details:</strong></p>
    <ul>
      <li><strong>Name:</strong> {{.Name}}</li>
      <li><strong>Subject:</strong> {{.Subject}}</li>
      <li><strong>Message:</strong> {{.Message}}</li>
    </ul>
    <p>For urgent matters, please call us directly at <strong>{{.CompanyPhone}}</strong>.</p>
    <br>
    <p>Best regards,<br>{{.CompanyName}} Team</p>
  </body>
</html>`))

func (d *Dispatcher) renderBookingEmail(eventType string, payload events.BookingEventPayload) (string, error) {
	greeting := d.vars.Pick("greeting", map[string]string{"name": firstName(payload.CustomerName)})
	intro := d.vars.Pick(eventType+"_intro", nil)
	closing := d.vars.Pick("closing", nil)

	var followup string
	if eventType == events.EventBookingCreated {
		followup = "We will contact you within 24 hours to confirm details and provide a quote."
	}

	data := map[string]string{
		"Greeting":     greeting,
		"Intro":        intro,
		"Closing":      closing,
		"ServiceName":  payload.ServiceName,
		"Date":         payload.PreferredDate,
		"Time":         payload.PreferredTime,
		"Description":  payload.Description,
		"Address":      payload.Address,
		"Followup":     followup,
		"CompanyName":  d.company.Name,
		"CompanyPhone": d.company.Phone,
	}

	var buf bytes.Buffer
	if err := bookingEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Dispatcher) renderContactConfirmation(payload events.ContactEventPayload) (string, error) {
	data := map[string]string{
		"Name":         payload.Name,
		"Subject":      payload.Subject,
		"Message":      payload.Message,
		"CompanyName":  d.company.Name,
		"CompanyPhone": d.company.Phone,
	}

	var buf bytes.Buffer
	if err := contactEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func adminBookingBody(title string, payload events.BookingEventPayload) string {
	return fmt.Sprintf(`<html>
  <body>
    <h3>Move %s</h3>
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Phone:</strong> %s</p>
    <p><strong>Service:</strong> %s</p>
    <p><strong>Preferred Move Time:</strong> %s at %s</p>
    <p><strong>Move Details:</strong> %s</p>
    <p><strong>Pickup Address:</strong> %s</p>
    <p><strong>Status:</strong> %s</p>
  </body>
</html>`,
		title,
		template.HTMLEscapeString(payload.CustomerName),
		template.HTMLEscapeString(payload.CustomerEmail),
		template.HTMLEscapeString(payload.CustomerPhone),
		template.HTMLEscapeString(payload.ServiceName),
		template.HTMLEscapeString(payload.PreferredDate),
		template.HTMLEscapeString(payload.PreferredTime),
		template.HTMLEscapeString(payload.Description),
		template.HTMLEscapeString(payload.Address),
		template.HTMLEscapeString(payload.Status),
	)
}

func adminContactBody(payload events.ContactEventPayload) string {
	phone := payload.Phone
	if phone == "" {
		phone = "Not provided"
	}
	return fmt.Sprintf(`<html>
  <body>
    <h2>New Contact Form Message - %s</h2>
    <p><strong>From:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Phone:</strong> %s</p>
    <p><strong>Subject:</strong> %s</p>
    <p><strong>Message:</strong> %s</p>
  </body>
</html>`,
		template.HTMLEscapeString(payload.Subject),
		template.HTMLEscapeString(payload.Name),
		template.HTMLEscapeString(payload.Email),
		template.HTMLEscapeString(phone),
		template.HTMLEscapeString(payload.Subject),
		template.HTMLEscapeString(payload.Message),
	)
}

// eventTitle turns "booking_created" into "Booking Created".
func eventTitle(eventType string) string {
	words := strings.Split(eventType, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fullName
	}
	return fields[0]
}
