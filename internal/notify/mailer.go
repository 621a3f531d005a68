// Package notify delivers email notifications without holding up requests.
package notify

import (
	"context"                  // Delivery deadline
	"embed"                    // Embedded mail templates
	"fmt"                      // Error wrapping
	"html/template"            // HTML mail body
	"strings"                  // Address check
	"todo_app/internal/config" // Mail settings

	"github.com/wneessen/go-mail" // SMTP client
)

// TemplateName is the HTML body template used for every notification
const TemplateName = "email_template.html"

//go:embed templates/*.html
var templateFS embed.FS

// Message is a single notification.
// Body is exposed to the template as a map, e.g. {{ index . "title" }}.
type Message struct {
	Subject string            // Mail subject
	To      string            // Recipient address
	Body    map[string]string // Template data
}

// Mailer delivers a rendered message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer renders messages with html/template and sends them over
// authenticated SMTP with mandatory STARTTLS.
type SMTPMailer struct {
	cfg  config.MailConfig  // Mail account
	tmpl *template.Template // Parsed mail templates
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer parses the embedded templates and binds the mail account
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html") // Parse mail templates
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &SMTPMailer{cfg: cfg, tmpl: tmpl}, nil
}

// Send renders and delivers msg. Recipients without an "@" are skipped silently.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !strings.Contains(msg.To, "@") {
		return nil // Not an address
	}
	email, err := m.build(msg) // Render the message
	if err != nil {
		return err
	}
	// Connect with PLAIN auth over STARTTLS
	client, err := mail.NewClient(m.cfg.Host,
		mail.WithTLSPortPolicy(mail.TLSMandatory), // STARTTLS required
		mail.WithPort(m.cfg.Port),                 // SMTP port
		mail.WithSMTPAuth(mail.SMTPAuthPlain),     // PLAIN auth
		mail.WithUsername(m.cfg.Username),         // SMTP login
		mail.WithPassword(m.cfg.Password),         // SMTP password
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, email); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// build assembles the headers and renders the HTML body
func (m *SMTPMailer) build(msg Message) (*mail.Msg, error) {
	email := mail.NewMsg() // New message
	if err := email.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := email.To(msg.To); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	email.Subject(msg.Subject) // Set subject

	tmpl := m.tmpl.Lookup(TemplateName) // Body template
	if tmpl == nil {
		return nil, fmt.Errorf("mail template %q not found", TemplateName)
	}
	if err := email.SetBodyHTMLTemplate(tmpl, msg.Body); err != nil {
		return nil, fmt.Errorf("render mail body: %w", err)
	}
	return email, nil
}
