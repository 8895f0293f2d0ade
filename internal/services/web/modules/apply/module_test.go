package apply

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/educonsult/site/internal/lead"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/flash"
	"github.com/educonsult/site/internal/services/web/platform/formcookie"
	"github.com/educonsult/site/internal/services/web/routepath"
	"github.com/educonsult/site/internal/services/web/storage"
	"github.com/educonsult/site/internal/services/web/storage/memory"
)

var (
	fixedNow  = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	pdfBytes  = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")
	testDraft = "draft-1"
)

type recordingSink struct {
	mu          sync.Mutex
	err         error
	submissions []lead.Submission
}

func (s *recordingSink) Deliver(_ context.Context, submission lead.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.submissions = append(s.submissions, submission)
	return nil
}

func (s *recordingSink) delivered() []lead.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]lead.Submission(nil), s.submissions...)
}

type failingStore struct{}

func (failingStore) GetDraft(context.Context, string) (lead.Draft, bool, error) {
	return lead.Draft{}, false, errors.New("redis: connection refused")
}

func (failingStore) PutDraft(context.Context, lead.Draft, time.Duration) error {
	return errors.New("redis: connection refused")
}

func (failingStore) DeleteDraft(context.Context, string) error { return nil }

func (failingStore) Close() error { return nil }

type harness struct {
	t       *testing.T
	store   *memory.Store
	sink    *recordingSink
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.New()
	sink := &recordingSink{}
	return &harness{t: t, store: store, sink: sink, handler: mountHandler(t, store, sink)}
}

func mountHandler(t *testing.T, store storage.DraftStore, sink lead.Sink) http.Handler {
	t.Helper()
	mount, err := New(module.Dependencies{}, store, sink, Config{
		Now:          func() time.Time { return fixedNow },
		NewDraftID:   func() (string, error) { return testDraft, nil },
		NewReference: func() string { return "EDU-TEST" },
	}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func (h *harness) seed(draft lead.Draft) {
	h.t.Helper()
	if err := h.store.PutDraft(context.Background(), draft, time.Hour); err != nil {
		h.t.Fatalf("PutDraft() error = %v", err)
	}
}

func (h *harness) draft() lead.Draft {
	h.t.Helper()
	draft, ok, err := h.store.GetDraft(context.Background(), testDraft)
	if err != nil || !ok {
		h.t.Fatalf("GetDraft() = %v, %v", ok, err)
	}
	return draft
}

func (h *harness) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func postForm(target string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

type upload struct {
	field string
	name  string
	data  []byte
}

func postMultipart(t *testing.T, target string, uploads []upload, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := mw.CreateFormFile(u.field, u.name)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write(u.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func draftCookie() *http.Cookie {
	return &http.Cookie{Name: formcookie.Name, Value: testDraft}
}

func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func completeDraft(step lead.Step) lead.Draft {
	draft := lead.NewDraft(testDraft, "en", fixedNow)
	draft.Step = step
	draft.Fields = lead.Fields{
		FullName:       "Sara Ahmed",
		Age:            "21",
		AcademicLevel:  "bachelor",
		Major:          "Computer Engineering",
		WhatsAppNumber: "+905551112233",
		Email:          "sara@example.com",
	}
	return draft
}

func TestModuleIDAndPrefix(t *testing.T) {
	t.Parallel()

	m := New(module.Dependencies{}, memory.New(), nil, Config{})
	if got := m.ID(); got != "apply" {
		t.Fatalf("ID() = %q, want %q", got, "apply")
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.ApplyPrefix {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.ApplyPrefix)
	}
}

func TestMountRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := New(module.Dependencies{}, nil, nil, Config{}).Mount(); err == nil {
		t.Fatalf("Mount() error = nil, want missing store error")
	}
}

func TestIndexRendersFirstStep(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.serve(httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{"Step 1: Personal Info", "Step 1 of 4", `action="/apply/next?lang=en"`, `name="full_name"`, "<title>Let&#39;s Get You Started!"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if h.store.Len() != 0 {
		t.Fatalf("viewing the form stored %d drafts, want 0", h.store.Len())
	}
}

func TestIndexRendersArabicRTL(t *testing.T) {
	t.Parallel()

	body := newHarness(t).serve(httptest.NewRequest(http.MethodGet, "/apply?lang=ar", nil)).Body.String()
	if !strings.Contains(body, `dir="rtl"`) || !strings.Contains(body, `action="/apply/next?lang=ar"`) {
		t.Fatalf("body missing Arabic layout markers")
	}
}

func TestNextRefusesIncompleteStep(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.serve(postForm("/apply/next?lang=en", url.Values{"full_name": {"Sara"}}))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Please fill in all required fields to continue.") {
		t.Fatalf("body missing incomplete notice")
	}
	if !strings.Contains(body, `value="Sara"`) {
		t.Fatalf("body lost the typed name")
	}
	if c := responseCookie(rr, formcookie.Name); c == nil || c.Value != testDraft {
		t.Fatalf("draft cookie = %+v, want %q", c, testDraft)
	}
	if got := h.draft(); got.Step != lead.StepPersonal || got.Fields.FullName != "Sara" {
		t.Fatalf("stored draft = %+v", got)
	}
}

func TestNextReportsAgeOutOfRange(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.serve(postForm("/apply/next?lang=en", url.Values{"full_name": {"Sara"}, "age": {"12"}}))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "Age must be a number between 16 and 100.") {
		t.Fatalf("body missing age notice")
	}
}

func TestNextAdvancesCompleteStep(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.serve(postForm("/apply/next?lang=en", url.Values{"full_name": {"  Sara Ahmed "}, "age": {"21"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/apply?lang=en" {
		t.Fatalf("Location = %q, want %q", got, "/apply?lang=en")
	}
	draft := h.draft()
	if draft.Step != lead.StepAcademic || draft.Fields.FullName != "Sara Ahmed" {
		t.Fatalf("stored draft = %+v", draft)
	}

	body := h.serve(func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil)
		req.AddCookie(draftCookie())
		return req
	}()).Body.String()
	if !strings.Contains(body, "Step 2: Your Academic Goals") {
		t.Fatalf("follow-up page missing step 2")
	}
}

func TestBackKeepsTypedAnswers(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	draft := lead.NewDraft(testDraft, "en", fixedNow)
	draft.Fields.FullName = "Sara"
	draft.Fields.Age = "21"
	draft.Step = lead.StepAcademic
	h.seed(draft)

	rr := h.serve(postForm("/apply/back?lang=en", url.Values{"major": {"Medicine"}}, draftCookie()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	got := h.draft()
	if got.Step != lead.StepPersonal || got.Fields.Major != "Medicine" || got.Fields.FullName != "Sara" {
		t.Fatalf("stored draft = %+v", got)
	}
}

func TestBackFromFirstStepIsRefused(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seed(lead.NewDraft(testDraft, "en", fixedNow))
	rr := h.serve(postForm("/apply/back?lang=en", url.Values{}, draftCookie()))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "That step isn&#39;t available right now.") {
		t.Fatalf("body missing transition notice")
	}
}

func TestSubmitDeliversAndShowsSuccess(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seed(completeDraft(lead.StepDocuments))

	rr := h.serve(postMultipart(t, "/apply/submit?lang=en", []upload{
		{field: "passport", name: "passport.png", data: pngBytes},
		{field: "diploma", name: "diploma.pdf", data: pdfBytes},
	}, draftCookie()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusSeeOther, rr.Body.String())
	}

	delivered := h.sink.delivered()
	if len(delivered) != 1 {
		t.Fatalf("delivered = %d, want 1", len(delivered))
	}
	got := delivered[0]
	if got.Reference != "EDU-TEST" || got.Fields.Email != "sara@example.com" {
		t.Fatalf("submission = %+v", got)
	}
	if got.Passport == nil || got.Passport.ContentType != "image/png" {
		t.Fatalf("passport = %+v, want png", got.Passport)
	}
	if got.Diploma == nil || got.Diploma.ContentType != "application/pdf" {
		t.Fatalf("diploma = %+v, want pdf", got.Diploma)
	}

	stored := h.draft()
	if stored.Step != lead.StepDone || stored.Reference != "EDU-TEST" {
		t.Fatalf("stored draft = %+v", stored)
	}
	if stored.Passport != nil || stored.Diploma != nil {
		t.Fatalf("stored draft kept documents after delivery")
	}

	req := httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil)
	req.AddCookie(draftCookie())
	body := h.serve(req).Body.String()
	for _, marker := range []string{"All Done!", "EDU-TEST", `action="/apply/reset?lang=en"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("success page missing %q", marker)
		}
	}
}

func TestSubmitRejectsUnsupportedFile(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seed(completeDraft(lead.StepDocuments))

	rr := h.serve(postMultipart(t, "/apply/submit?lang=en", []upload{
		{field: "passport", name: "passport.txt", data: []byte("just text")},
	}, draftCookie()))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "Please upload a PDF, JPG or PNG file.") {
		t.Fatalf("body missing file type notice")
	}
	if len(h.sink.delivered()) != 0 {
		t.Fatalf("unsupported upload was delivered")
	}
}

func TestSubmitKeepsAcceptedUploadWhenAnotherIsRejected(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seed(completeDraft(lead.StepDocuments))

	rr := h.serve(postMultipart(t, "/apply/submit?lang=en", []upload{
		{field: "passport", name: "passport.pdf", data: pdfBytes},
		{field: "diploma", name: "diploma.txt", data: []byte("just text")},
	}, draftCookie()))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	stored := h.draft()
	if stored.Passport == nil || stored.Passport.FileName != "passport.pdf" {
		t.Fatalf("stored passport = %+v, want passport.pdf", stored.Passport)
	}
	if stored.Diploma != nil {
		t.Fatalf("stored diploma = %+v, want nil", stored.Diploma)
	}

	rr = h.serve(postMultipart(t, "/apply/submit?lang=en", []upload{
		{field: "diploma", name: "diploma.png", data: pngBytes},
	}, draftCookie()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("retry status = %d, want %d: %s", rr.Code, http.StatusSeeOther, rr.Body.String())
	}
	if got := len(h.sink.delivered()); got != 1 {
		t.Fatalf("delivered = %d, want 1", got)
	}
}

func TestSubmitWithoutDocumentsIsIncomplete(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seed(completeDraft(lead.StepDocuments))

	rr := h.serve(postMultipart(t, "/apply/submit?lang=en", nil, draftCookie()))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "Please fill in all required fields to continue.") {
		t.Fatalf("body missing incomplete notice")
	}
}

func TestSubmitKeepsDraftWhenDeliveryFails(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sink.err = errors.New("smtp: connection refused")
	h.seed(completeDraft(lead.StepDocuments))

	rr := h.serve(postMultipart(t, "/apply/submit?lang=en", []upload{
		{field: "passport", name: "passport.png", data: pngBytes},
		{field: "diploma", name: "diploma.pdf", data: pdfBytes},
	}, draftCookie()))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "We couldn&#39;t send your application.") {
		t.Fatalf("body missing delivery notice")
	}
	if strings.Contains(body, "connection refused") {
		t.Fatalf("body leaked internal error text")
	}
	stored := h.draft()
	if stored.Step != lead.StepDocuments || stored.Reference != "" {
		t.Fatalf("stored draft = %+v, want documents step", stored)
	}
	if stored.Passport == nil || stored.Diploma == nil {
		t.Fatalf("stored draft lost its uploads")
	}
}

func TestResetStartsOver(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	done := completeDraft(lead.StepDone)
	done.Reference = "EDU-TEST"
	h.seed(done)

	rr := h.serve(postForm("/apply/reset?lang=ar", url.Values{}, draftCookie()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/apply?lang=ar" {
		t.Fatalf("Location = %q, want %q", got, "/apply?lang=ar")
	}
	got := h.draft()
	if got.Step != lead.StepPersonal || got.Fields != (lead.Fields{}) || got.Reference != "" {
		t.Fatalf("stored draft = %+v, want empty first step", got)
	}
}

func TestExpiredDraftRedirectsWithNotice(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.serve(postForm("/apply/next?lang=en", url.Values{"full_name": {"Sara"}, "age": {"21"}}, draftCookie()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if c := responseCookie(rr, formcookie.Name); c == nil || c.MaxAge >= 0 {
		t.Fatalf("draft cookie = %+v, want cleared", c)
	}
	notice := responseCookie(rr, flash.CookieName)
	if notice == nil {
		t.Fatalf("missing flash cookie")
	}
	if h.store.Len() != 0 {
		t.Fatalf("expired action stored %d drafts, want 0", h.store.Len())
	}

	req := httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil)
	req.AddCookie(notice)
	follow := h.serve(req)
	body := follow.Body.String()
	if !strings.Contains(body, "Your previous application expired. Please start again.") {
		t.Fatalf("body missing expired notice")
	}
	if !strings.Contains(body, "notice-warning") {
		t.Fatalf("expired notice should use the warning style")
	}
	if c := responseCookie(follow, flash.CookieName); c == nil || c.MaxAge >= 0 {
		t.Fatalf("flash cookie = %+v, want cleared", c)
	}
}

func TestIndexClearsExpiredDraftCookie(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil)
	req.AddCookie(draftCookie())
	rr := h.serve(req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if c := responseCookie(rr, formcookie.Name); c == nil || c.MaxAge >= 0 {
		t.Fatalf("draft cookie = %+v, want cleared", c)
	}
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	handler := mountHandler(t, failingStore{}, &recordingSink{})
	req := httptest.NewRequest(http.MethodGet, "/apply?lang=en", nil)
	req.AddCookie(draftCookie())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Fatalf("body leaked internal error text")
	}
}

func TestActionsRejectGet(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	for _, path := range []string{routepath.ApplyNext, routepath.ApplyBack, routepath.ApplySubmit, routepath.ApplyReset} {
		rr := h.serve(httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusMethodNotAllowed)
		}
		if got := rr.Header().Get("Allow"); got != http.MethodPost {
			t.Fatalf("GET %s Allow = %q, want %q", path, got, http.MethodPost)
		}
	}
}

func TestUnknownApplyPathIsNotFound(t *testing.T) {
	t.Parallel()

	rr := newHarness(t).serve(httptest.NewRequest(http.MethodGet, "/apply/elsewhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
