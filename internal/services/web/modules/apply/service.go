package apply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/educonsult/site/internal/lead"
	"github.com/educonsult/site/internal/platform/timeouts"
	apperrors "github.com/educonsult/site/internal/services/web/platform/errors"
	"github.com/educonsult/site/internal/services/web/storage"
)

// Notice keys shown above the form.
const (
	noticeIncomplete   = "form.error.incomplete"
	noticeAgeRange     = "form.error.age_range"
	noticeFileTooLarge = "form.error.file_too_large"
	noticeFileType     = "form.error.file_type"
	noticeSubmitFailed = "form.error.submit_failed"
	noticeTransition   = "form.error.transition"
	noticeExpired      = "form.error.expired"
)

// errDraftExpired reports a draft cookie whose draft is gone.
var errDraftExpired = errors.New("apply: draft expired")

type service struct {
	store  storage.DraftStore
	sink   lead.Sink
	config Config
}

func newService(store storage.DraftStore, sink lead.Sink, config Config) service {
	return service{store: store, sink: sink, config: config}
}

// load returns the draft named by draftID. An empty id yields a fresh,
// unsaved draft; an id without a stored draft yields a fresh draft and
// errDraftExpired.
func (s service) load(ctx context.Context, draftID string, locale string) (lead.Draft, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID != "" {
		draft, ok, err := s.store.GetDraft(ctx, draftID)
		if err != nil {
			return lead.Draft{}, apperrors.Wrap(apperrors.KindUnavailable, "", fmt.Errorf("load draft: %w", err))
		}
		if ok {
			return draft, nil
		}
	}
	fresh, err := s.newDraft(locale)
	if err != nil {
		return lead.Draft{}, err
	}
	if draftID != "" {
		return fresh, errDraftExpired
	}
	return fresh, nil
}

func (s service) newDraft(locale string) (lead.Draft, error) {
	draftID, err := s.config.NewDraftID()
	if err != nil {
		return lead.Draft{}, apperrors.Wrap(apperrors.KindUnavailable, "", fmt.Errorf("new draft id: %w", err))
	}
	return lead.NewDraft(draftID, locale, s.config.Now()), nil
}

func (s service) save(ctx context.Context, draft lead.Draft) error {
	if err := s.store.PutDraft(ctx, draft, s.config.DraftTTL); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "", fmt.Errorf("save draft: %w", err))
	}
	return nil
}

// next stores input and advances. A refused move still keeps the typed
// answers and reports the notice to show.
func (s service) next(ctx context.Context, draft *lead.Draft, input lead.Fields) (string, error) {
	now := s.config.Now()
	draft.Apply(input, now)
	notice := ""
	if err := draft.Next(now); err != nil {
		notice = transitionNotice(*draft, err)
	}
	if err := s.save(ctx, *draft); err != nil {
		return "", err
	}
	return notice, nil
}

// back stores the typed answers and returns one step.
func (s service) back(ctx context.Context, draft *lead.Draft, input lead.Fields) (string, error) {
	now := s.config.Now()
	draft.Apply(input, now)
	notice := ""
	if err := draft.Back(now); err != nil {
		notice = transitionNotice(*draft, err)
	}
	if err := s.save(ctx, *draft); err != nil {
		return "", err
	}
	return notice, nil
}

// attach stores a validated upload. The returned notice explains a
// rejected file.
func (s service) attach(draft *lead.Draft, kind lead.DocumentKind, fileName string, data []byte) string {
	doc, err := lead.NewDocument(fileName, data)
	if err != nil {
		return documentNotice(err)
	}
	if err := draft.Attach(kind, doc, s.config.Now()); err != nil {
		return documentNotice(err)
	}
	return ""
}

// submit delivers a complete draft. On success the draft moves to the
// success screen with its reference and drops the uploaded files. A
// failed delivery leaves the draft on the documents step.
func (s service) submit(ctx context.Context, draft *lead.Draft) (string, error) {
	before := *draft
	now := s.config.Now()
	if err := draft.Submit(now); err != nil {
		if saveErr := s.save(ctx, *draft); saveErr != nil {
			return "", saveErr
		}
		return transitionNotice(*draft, err), nil
	}

	reference := s.config.NewReference()
	deliverCtx, cancel := context.WithTimeout(ctx, timeouts.MailSend)
	defer cancel()
	if err := s.sink.Deliver(deliverCtx, lead.NewSubmission(*draft, reference, now)); err != nil {
		*draft = before
		if saveErr := s.save(ctx, *draft); saveErr != nil {
			return "", saveErr
		}
		return noticeSubmitFailed, fmt.Errorf("deliver %s: %w", reference, err)
	}

	draft.Reference = reference
	draft.Passport = nil
	draft.Diploma = nil
	return "", s.save(ctx, *draft)
}

// reset empties the form under a new draft id, so a submitted reference
// is never reused, and discards the old draft.
func (s service) reset(ctx context.Context, draft *lead.Draft) error {
	previous := draft.ID
	draftID, err := s.config.NewDraftID()
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "", fmt.Errorf("new draft id: %w", err))
	}
	if previous != draftID {
		if err := s.store.DeleteDraft(ctx, previous); err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, "", fmt.Errorf("delete draft: %w", err))
		}
	}
	draft.ID = draftID
	draft.Reset(s.config.Now())
	return s.save(ctx, *draft)
}

func transitionNotice(draft lead.Draft, err error) string {
	switch {
	case errors.Is(err, lead.ErrStepIncomplete):
		if draft.Step == lead.StepPersonal && strings.TrimSpace(draft.Fields.Age) != "" {
			for _, field := range lead.MissingFields(draft, lead.StepPersonal) {
				if field == "age" {
					return noticeAgeRange
				}
			}
		}
		return noticeIncomplete
	default:
		return noticeTransition
	}
}

func documentNotice(err error) string {
	switch {
	case errors.Is(err, lead.ErrDocumentTooLarge):
		return noticeFileTooLarge
	case errors.Is(err, lead.ErrInvalidTransition):
		return noticeTransition
	default:
		return noticeFileType
	}
}
