package lead

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Submission is a finished form handed to the agency.
type Submission struct {
	Reference   string
	Locale      string
	Fields      Fields
	Passport    *Document
	Diploma     *Document
	SubmittedAt time.Time
}

// NewSubmission captures d as submitted under reference.
func NewSubmission(d Draft, reference string, now time.Time) Submission {
	return Submission{
		Reference:   reference,
		Locale:      d.Locale,
		Fields:      d.Fields,
		Passport:    d.Passport,
		Diploma:     d.Diploma,
		SubmittedAt: now,
	}
}

// Documents returns the attached documents by slot, skipping empty ones.
func (s Submission) Documents() map[DocumentKind]*Document {
	out := map[DocumentKind]*Document{}
	if s.Passport != nil {
		out[DocumentPassport] = s.Passport
	}
	if s.Diploma != nil {
		out[DocumentDiploma] = s.Diploma
	}
	return out
}

// Sink receives submissions.
type Sink interface {
	Deliver(ctx context.Context, s Submission) error
}

// LogSink writes each submission to a structured log.
type LogSink struct {
	Logger *slog.Logger
}

// Deliver logs s. Document contents are not logged.
func (l LogSink) Deliver(ctx context.Context, s Submission) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "form submitted",
		"reference", s.Reference,
		"locale", s.Locale,
		slog.Group("fields",
			"full_name", s.Fields.FullName,
			"age", s.Fields.Age,
			"academic_level", s.Fields.AcademicLevel,
			"major", s.Fields.Major,
			"whatsapp_number", s.Fields.WhatsAppNumber,
			"email", s.Fields.Email,
		),
		documentAttr("passport", s.Passport),
		documentAttr("diploma", s.Diploma),
	)
	return nil
}

func documentAttr(name string, d *Document) slog.Attr {
	if d == nil {
		return slog.String(name, "")
	}
	return slog.Group(name, "file_name", d.FileName, "content_type", d.ContentType, "size", d.Size)
}

// MultiSink delivers to every sink in order and joins their errors.
type MultiSink []Sink

// Deliver fans s out to each sink.
func (m MultiSink) Deliver(ctx context.Context, s Submission) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Deliver(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
