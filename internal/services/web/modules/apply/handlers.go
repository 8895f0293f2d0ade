package apply

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/educonsult/site/internal/lead"
	platformi18n "github.com/educonsult/site/internal/platform/i18n"
	"github.com/educonsult/site/internal/services/shared/i18nhttp"
	module "github.com/educonsult/site/internal/services/web/module"
	apperrors "github.com/educonsult/site/internal/services/web/platform/errors"
	"github.com/educonsult/site/internal/services/web/platform/flash"
	"github.com/educonsult/site/internal/services/web/platform/formcookie"
	"github.com/educonsult/site/internal/services/web/platform/httpx"
	"github.com/educonsult/site/internal/services/web/platform/publichandler"
	"github.com/educonsult/site/internal/services/web/routepath"
	webtemplates "github.com/educonsult/site/internal/services/web/templates"
)

// multipartMemory is the part of an upload kept in memory while parsing.
const multipartMemory = 8 << 20

// formOverheadBytes covers the text fields and multipart framing around
// the two documents.
const formOverheadBytes = 1 << 20

type handlers struct {
	publichandler.Base
	service service
	config  Config
}

func newHandlers(s service, deps module.Dependencies, config Config) handlers {
	return handlers{Base: publichandler.NewBase(deps), service: s, config: config}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := h.formPage(r)
	draftID, _ := formcookie.Read(r)
	draft, err := h.service.load(r.Context(), draftID, page.Locale())
	if errors.Is(err, errDraftExpired) {
		formcookie.Clear(w, r, h.config.RequestMeta)
	} else if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view := webtemplates.NewApplyView(draft, "")
	if notice, ok := flash.ReadAndClear(w, r, h.config.RequestMeta); ok {
		view.Notice = notice.Key
		view.NoticeKind = string(notice.Kind)
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.ApplyForm(page, view))
}

func (h handlers) handleNext(w http.ResponseWriter, r *http.Request) {
	if err := h.parseAnyForm(w, r); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form"))
		return
	}
	draft, ok := h.loadForPost(w, r)
	if !ok {
		return
	}
	notice, err := h.service.next(r.Context(), &draft, fieldsFromForm(r))
	h.finish(w, r, draft, notice, err)
}

func (h handlers) handleBack(w http.ResponseWriter, r *http.Request) {
	parseErr := h.parseAnyForm(w, r)
	if parseErr != nil && !isTooLarge(parseErr) {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form"))
		return
	}
	draft, ok := h.loadForPost(w, r)
	if !ok {
		return
	}
	input := fieldsFromForm(r)
	if parseErr != nil {
		input = draft.Fields
	}
	notice, err := h.service.back(r.Context(), &draft, input)
	h.finish(w, r, draft, notice, err)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	parseErr := h.parseAnyForm(w, r)
	if parseErr != nil && !isTooLarge(parseErr) {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form"))
		return
	}
	draft, ok := h.loadForPost(w, r)
	if !ok {
		return
	}
	if parseErr != nil {
		h.renderForm(w, r, draft, http.StatusUnprocessableEntity, noticeFileTooLarge)
		return
	}
	if draft.Step == lead.StepDocuments {
		for _, kind := range []lead.DocumentKind{lead.DocumentPassport, lead.DocumentDiploma} {
			if notice := h.attachUpload(r, &draft, kind); notice != "" {
				// Keep any document accepted earlier in this request.
				h.finish(w, r, draft, notice, h.service.save(r.Context(), draft))
				return
			}
		}
	}
	notice, err := h.service.submit(r.Context(), &draft)
	if notice == noticeSubmitFailed {
		h.Logger().ErrorContext(r.Context(), "lead delivery failed", "draft_id", draft.ID, "error", err)
		h.renderForm(w, r, draft, http.StatusServiceUnavailable, notice)
		return
	}
	h.finish(w, r, draft, notice, err)
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadForPost(w, r)
	if !ok {
		return
	}
	if err := h.service.reset(r.Context(), &draft); err != nil {
		h.WriteError(w, r, err)
		return
	}
	formcookie.Write(w, r, draft.ID, h.config.DraftTTL, h.config.RequestMeta)
	h.redirectToForm(w, r)
}

// loadForPost resolves the visitor's draft for a form action. When the
// draft has expired the visitor is sent back to a fresh form.
func (h handlers) loadForPost(w http.ResponseWriter, r *http.Request) (lead.Draft, bool) {
	draftID, _ := formcookie.Read(r)
	draft, err := h.service.load(r.Context(), draftID, platformi18n.LocaleString(i18nhttp.FromRequest(r)))
	if errors.Is(err, errDraftExpired) {
		formcookie.Clear(w, r, h.config.RequestMeta)
		flash.Write(w, r, flash.NoticeWarning(noticeExpired), h.config.RequestMeta)
		h.redirectToForm(w, r)
		return lead.Draft{}, false
	}
	if err != nil {
		h.WriteError(w, r, err)
		return lead.Draft{}, false
	}
	return draft, true
}

// finish completes a form action: a refused move re-renders the step
// with its notice, an accepted one redirects back to the form.
func (h handlers) finish(w http.ResponseWriter, r *http.Request, draft lead.Draft, notice string, err error) {
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	formcookie.Write(w, r, draft.ID, h.config.DraftTTL, h.config.RequestMeta)
	if notice != "" {
		h.renderForm(w, r, draft, http.StatusUnprocessableEntity, notice)
		return
	}
	h.redirectToForm(w, r)
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, draft lead.Draft, statusCode int, notice string) {
	page := h.formPage(r)
	page.Path = routepath.Apply
	page.RawQuery = ""
	h.WritePage(w, r, page, statusCode, webtemplates.ApplyForm(page, webtemplates.NewApplyView(draft, notice)))
}

func (h handlers) formPage(r *http.Request) webtemplates.Page {
	page := h.Page(r, "")
	page.Title = page.T("form.title")
	return page
}

func (h handlers) redirectToForm(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, i18nhttp.LocalizedPath(routepath.Apply, i18nhttp.FromRequest(r), ""))
}

// parseAnyForm parses url-encoded and multipart bodies within the upload
// budget.
func (h handlers) parseAnyForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.config.MaxUploadBytes+formOverheadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

// attachUpload reads one document slot. An empty slot keeps the document
// uploaded earlier.
func (h handlers) attachUpload(r *http.Request, draft *lead.Draft, kind lead.DocumentKind) string {
	file, header, err := r.FormFile(string(kind))
	if errors.Is(err, http.ErrMissingFile) {
		return ""
	}
	if err != nil {
		return noticeFileType
	}
	defer file.Close()
	if header.Size > h.config.MaxUploadBytes {
		return noticeFileTooLarge
	}
	data, err := readUpload(file, h.config.MaxUploadBytes)
	if err != nil {
		return noticeFileTooLarge
	}
	return h.service.attach(draft, kind, header.Filename, data)
}

var errUploadTooLarge = errors.New("apply: upload exceeds limit")

func readUpload(file multipart.File, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func fieldsFromForm(r *http.Request) lead.Fields {
	return lead.Fields{
		FullName:       r.PostFormValue("full_name"),
		Age:            r.PostFormValue("age"),
		AcademicLevel:  r.PostFormValue("academic_level"),
		Major:          r.PostFormValue("major"),
		WhatsAppNumber: r.PostFormValue("whatsapp_number"),
		Email:          r.PostFormValue("email"),
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
