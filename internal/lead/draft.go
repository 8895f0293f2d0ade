package lead

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrStepIncomplete reports a forward move from a step whose required
	// fields are not all filled in.
	ErrStepIncomplete = errors.New("lead: step is incomplete")
	// ErrInvalidTransition reports a move the current step does not offer.
	ErrInvalidTransition = errors.New("lead: transition not allowed from this step")
)

const (
	MinAge = 16
	MaxAge = 100
)

// Fields are the text answers of the form.
type Fields struct {
	FullName       string `json:"full_name"`
	Age            string `json:"age"`
	AcademicLevel  string `json:"academic_level"`
	Major          string `json:"major"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`
}

// Draft is the in-progress form of one visitor.
type Draft struct {
	ID       string    `json:"id"`
	Step     Step      `json:"step"`
	Locale   string    `json:"locale"`
	Fields   Fields    `json:"fields"`
	Passport *Document `json:"passport,omitempty"`
	Diploma  *Document `json:"diploma,omitempty"`
	// Reference identifies the delivered submission once the draft is done.
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// completeness flattens a draft for per-step validation. Form tags name
// the inputs reported by MissingFields.
type completeness struct {
	FullName       string    `form:"full_name" validate:"required"`
	Age            string    `form:"age" validate:"required,age"`
	AcademicLevel  string    `form:"academic_level" validate:"required,oneof=bachelor master diploma phd associate"`
	Major          string    `form:"major" validate:"required"`
	WhatsAppNumber string    `form:"whatsapp_number" validate:"required"`
	Email          string    `form:"email" validate:"required"`
	Passport       *Document `form:"passport" validate:"required"`
	Diploma        *Document `form:"diploma" validate:"required"`
}

func completenessOf(d Draft) completeness {
	return completeness{
		FullName:       d.Fields.FullName,
		Age:            d.Fields.Age,
		AcademicLevel:  d.Fields.AcademicLevel,
		Major:          d.Fields.Major,
		WhatsAppNumber: d.Fields.WhatsAppNumber,
		Email:          d.Fields.Email,
		Passport:       d.Passport,
		Diploma:        d.Diploma,
	}
}

var stepFields = map[Step][]string{
	StepPersonal:  {"FullName", "Age"},
	StepAcademic:  {"AcademicLevel", "Major"},
	StepContact:   {"WhatsAppNumber", "Email"},
	StepDocuments: {"Passport", "Diploma"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("age", validAge); err != nil {
		panic(err)
	}
	return v
}

func validAge(fl validator.FieldLevel) bool {
	age, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil && age >= MinAge && age <= MaxAge
}

// NewDraft returns an empty draft at the first step.
func NewDraft(id, locale string, now time.Time) Draft {
	return Draft{ID: id, Step: StepPersonal, Locale: locale, CreatedAt: now, UpdatedAt: now}
}

// MissingFields returns the form names of step's required fields that are
// empty or invalid. Steps outside the data range have none.
func MissingFields(d Draft, step Step) []string {
	names, ok := stepFields[step]
	if !ok {
		return nil
	}
	err := validate.StructPartial(completenessOf(d), names...)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing
}

// StepComplete reports whether step's required fields are all filled in.
// The success step is always complete.
func StepComplete(d Draft, step Step) bool {
	if step == StepDone {
		return true
	}
	if !step.Valid() {
		return false
	}
	return len(MissingFields(d, step)) == 0
}

// Apply copies the answers that belong to the draft's current step from
// input, trimmed. Answers for other steps are ignored.
func (d *Draft) Apply(input Fields, now time.Time) {
	switch d.Step {
	case StepPersonal:
		d.Fields.FullName = strings.TrimSpace(input.FullName)
		d.Fields.Age = strings.TrimSpace(input.Age)
	case StepAcademic:
		d.Fields.AcademicLevel = strings.TrimSpace(input.AcademicLevel)
		d.Fields.Major = strings.TrimSpace(input.Major)
	case StepContact:
		d.Fields.WhatsAppNumber = strings.TrimSpace(input.WhatsAppNumber)
		d.Fields.Email = strings.TrimSpace(input.Email)
	default:
		return
	}
	d.UpdatedAt = now
}

// Attach stores an uploaded document. Only the documents step accepts
// uploads.
func (d *Draft) Attach(kind DocumentKind, doc *Document, now time.Time) error {
	if d.Step != StepDocuments {
		return ErrInvalidTransition
	}
	switch kind {
	case DocumentPassport:
		d.Passport = doc
	case DocumentDiploma:
		d.Diploma = doc
	default:
		return ErrUnsupportedDocument
	}
	d.UpdatedAt = now
	return nil
}

// Next advances one step. It is offered on steps 1 to 3 and only once the
// current step is complete; step 4 finishes through Submit.
func (d *Draft) Next(now time.Time) error {
	if d.Step < StepPersonal || d.Step >= StepDocuments {
		return ErrInvalidTransition
	}
	if !StepComplete(*d, d.Step) {
		return ErrStepIncomplete
	}
	d.Step++
	d.UpdatedAt = now
	return nil
}

// Back returns one step. It is offered on steps 2 to 4.
func (d *Draft) Back(now time.Time) error {
	if d.Step <= StepPersonal || d.Step >= StepDone {
		return ErrInvalidTransition
	}
	d.Step--
	d.UpdatedAt = now
	return nil
}

// Submit moves a complete draft from the documents step to the success
// screen.
func (d *Draft) Submit(now time.Time) error {
	if d.Step != StepDocuments {
		return ErrInvalidTransition
	}
	for s := StepPersonal; s <= StepDocuments; s++ {
		if !StepComplete(*d, s) {
			return ErrStepIncomplete
		}
	}
	d.Step = StepDone
	d.UpdatedAt = now
	return nil
}

// Reset discards every answer and returns to the first step.
func (d *Draft) Reset(now time.Time) {
	*d = NewDraft(d.ID, d.Locale, now)
}
