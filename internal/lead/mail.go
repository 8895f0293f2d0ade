package lead

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
)

// MailConfig configures the SMTP notification sent for each submission.
type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	To       string `env:"LEADS_INBOX"`
}

// Enabled reports whether enough is configured to send mail.
func (c MailConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.From) != "" && strings.TrimSpace(c.To) != ""
}

// MailSink emails each submission, with its documents attached, to the
// agency inbox.
type MailSink struct {
	config MailConfig
	send   func(m ...*gomail.Message) error
}

// NewMailSink returns a sink that dials the configured SMTP server for
// every delivery.
func NewMailSink(config MailConfig) *MailSink {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return &MailSink{config: config, send: dialer.DialAndSend}
}

// Deliver sends the notification, giving up when ctx ends first.
func (m *MailSink) Deliver(ctx context.Context, s Submission) error {
	msg, err := m.Message(s)
	if err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- m.send(msg) }()
	select {
	case <-ctx.Done():
		return fmt.Errorf("send lead notification %s: %w", s.Reference, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send lead notification %s: %w", s.Reference, err)
		}
		return nil
	}
}

// Message builds the notification for s.
func (m *MailSink) Message(s Submission) (*gomail.Message, error) {
	var html bytes.Buffer
	if err := mailBody(s).Render(&html); err != nil {
		return nil, fmt.Errorf("render lead notification: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", m.config.To)
	if email := strings.TrimSpace(s.Fields.Email); email != "" {
		msg.SetHeader("Reply-To", email)
	}
	msg.SetHeader("Subject", fmt.Sprintf("New application: %s (%s)", s.Fields.FullName, s.Reference))
	msg.SetBody("text/plain", plainBody(s))
	msg.AddAlternative("text/html", html.String())

	for kind, doc := range s.Documents() {
		data := doc.Data
		msg.Attach(string(kind)+"-"+doc.FileName,
			gomail.SetHeader(map[string][]string{"Content-Type": {doc.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return msg, nil
}

type mailRow struct {
	label string
	value string
}

// mailRows lists the submission for the agency, which reads English.
func mailRows(s Submission) []mailRow {
	en := platformi18n.NewPrinter(language.English)
	return []mailRow{
		{"Reference", s.Reference},
		{"Submitted", s.SubmittedAt.UTC().Format("2006-01-02 15:04 MST")},
		{"Language", s.Locale},
		{"Name", s.Fields.FullName},
		{"Age", s.Fields.Age},
		{"Academic level", en.T(AcademicLevelLabelKey(s.Fields.AcademicLevel))},
		{"Major", s.Fields.Major},
		{"WhatsApp", s.Fields.WhatsAppNumber},
		{"Email", s.Fields.Email},
	}
}

func plainBody(s Submission) string {
	var b strings.Builder
	b.WriteString("A new application was submitted.\n\n")
	for _, row := range mailRows(s) {
		fmt.Fprintf(&b, "%s: %s\n", row.label, row.value)
	}
	return b.String()
}

func mailBody(s Submission) g.Node {
	return h.HTML(
		h.Body(
			h.H2(g.Text("New application")),
			h.Table(
				g.Map(mailRows(s), func(row mailRow) g.Node {
					return h.Tr(h.Th(g.Attr("align", "left"), g.Text(row.label)), h.Td(g.Text(row.value)))
				}),
			),
		),
	)
}
