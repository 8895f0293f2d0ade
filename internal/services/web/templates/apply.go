package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/educonsult/site/internal/lead"
	"github.com/educonsult/site/internal/services/web/routepath"
)

// ApplyView is the lead form state shown to the visitor.
type ApplyView struct {
	Step     lead.Step
	Fields   lead.Fields
	Passport string
	Diploma  string
	// Complete reports whether the current step may move forward.
	Complete bool
	// Notice is the catalog key of a message about the last attempt.
	Notice string
	// NoticeKind selects the notice style; empty means error.
	NoticeKind string
	Reference  string
}

// NewApplyView derives the view of d with an optional notice.
func NewApplyView(d lead.Draft, notice string) ApplyView {
	step := d.Step.Clamp()
	return ApplyView{
		Step:      step,
		Fields:    d.Fields,
		Passport:  d.Passport.DisplayName(),
		Diploma:   d.Diploma.DisplayName(),
		Complete:  lead.StepComplete(d, step),
		Notice:    notice,
		Reference: d.Reference,
	}
}

type stepCopy struct {
	title    string
	subtitle string
	why      string
	label    string
}

var stepCopies = map[lead.Step]stepCopy{
	lead.StepPersonal:  {title: "form.personal_info", subtitle: "form.personal_subtitle", why: "form.age_reason", label: "form.step1.title"},
	lead.StepAcademic:  {title: "form.academic_goals", subtitle: "form.academic_subtitle", why: "form.academic_reason", label: "form.step2.title"},
	lead.StepContact:   {title: "form.contact_info", subtitle: "form.contact_subtitle", why: "form.contact_reason", label: "form.step3.title"},
	lead.StepDocuments: {title: "form.documents", subtitle: "form.documents_subtitle", why: "form.documents_reason", label: "form.step4.title"},
}

// ApplyForm renders the lead form at view.Step.
func ApplyForm(p Page, view ApplyView) templ.Component {
	return Component(func(context.Context) g.Node {
		if view.Step == lead.StepDone {
			return applySection(p, applySuccess(p, view))
		}
		return applySection(p, g.Group([]g.Node{
			h.Header(
				h.Class("section-header"),
				h.H1(g.Text(p.T("form.title"))),
				h.P(g.Text(p.T("form.subtitle"))),
			),
			progress(p, view.Step),
			g.If(view.Notice != "", h.Div(h.Class(noticeClass(view.NoticeKind)), g.Attr("role", "alert"), g.Text(p.T(view.Notice)))),
			stepForm(p, view),
		}))
	})
}

func noticeClass(kind string) string {
	if kind == "" {
		kind = "error"
	}
	return "notice notice-" + kind
}

func applySection(p Page, body g.Node) g.Node {
	return h.Section(
		h.Class("apply-page"),
		h.Div(
			h.Class("container apply-container"),
			h.A(h.Class(rowClass(p, "back-link")), h.Href(p.Href(routepath.Root)), BackArrow(p.RTL(), "icon"), g.Text(p.T("nav.backHome"))),
			h.Div(h.Class("card apply-card"), body),
		),
	)
}

func progress(p Page, current lead.Step) g.Node {
	return h.Div(
		h.Class("progress"),
		h.P(h.Class("progress-label"), g.Text(p.Tf("form.step_of", int(current), lead.DataSteps))),
		h.Ol(
			h.Class(rowClass(p, "progress-markers")),
			g.Map(lead.Progress(current), func(m lead.Marker) g.Node {
				return h.Li(
					h.Class("marker marker-"+string(m.State)),
					g.If(m.State == lead.MarkerCurrent, g.Attr("aria-current", "step")),
					h.Span(h.Class("marker-dot"), g.If(m.State == lead.MarkerDone, Icon("check", "icon")), g.If(m.State != lead.MarkerDone, g.Text(strconv.Itoa(int(m.Step))))),
					h.Span(h.Class("marker-label"), g.Text(p.T(stepCopies[m.Step].label))),
					g.If(m.Connector != lead.ConnectorNone, h.Span(h.Class("connector connector-"+string(m.Connector)))),
				)
			}),
		),
	)
}

func stepForm(p Page, view ApplyView) g.Node {
	copy := stepCopies[view.Step]
	documents := view.Step == lead.StepDocuments
	return h.Form(
		h.ID("apply-form"),
		h.Class("apply-form"),
		h.Method("post"),
		h.Action(p.Href(routepath.ApplyNext)),
		g.If(documents, h.EncType("multipart/form-data")),
		g.Attr("data-gated"),
		g.Attr("data-step", strconv.Itoa(int(view.Step))),
		h.H2(g.Text(p.T(copy.title))),
		h.P(h.Class("step-subtitle"), g.Text(p.T(copy.subtitle))),
		stepFields(p, view),
		h.Div(
			h.Class("why-box"),
			h.Strong(g.Text(p.T("form.why_ask"))),
			h.P(g.Text(p.T(copy.why))),
		),
		h.Div(
			h.Class(rowClass(p, "form-actions")),
			g.If(!documents, h.Button(
				h.Type("submit"),
				h.Class(rowClass(p, "btn btn-primary")),
				g.Attr("data-gate"),
				g.If(!view.Complete, h.Disabled()),
				g.Text(p.T("form.next_step")),
				ForwardArrow(p.RTL(), "icon"),
			)),
			g.If(documents, h.Button(
				h.Type("submit"),
				h.Class("btn btn-primary"),
				g.Attr("formaction", p.Href(routepath.ApplySubmit)),
				g.Attr("data-gate"),
				g.If(!view.Complete, h.Disabled()),
				g.Text(p.T("form.submit")),
			)),
			// Last in the DOM so Enter submits forward; CSS shows it first.
			g.If(view.Step > lead.StepPersonal, h.Button(
				h.Type("submit"),
				h.Class(rowClass(p, "btn btn-secondary btn-back")),
				g.Attr("formaction", p.Href(routepath.ApplyBack)),
				g.Attr("formnovalidate"),
				BackArrow(p.RTL(), "icon"),
				g.Text(p.T("form.back")),
			)),
		),
	)
}

func stepFields(p Page, view ApplyView) g.Node {
	f := view.Fields
	switch view.Step {
	case lead.StepPersonal:
		return g.Group([]g.Node{
			textField(p, "full_name", "form.full_name", "text", f.FullName, "form.placeholder.name"),
			h.Div(
				h.Class("field"),
				h.Label(h.For("age"), g.Text(p.T("form.age"))),
				h.Input(
					h.ID("age"), h.Name("age"), h.Type("number"), h.Value(f.Age),
					h.Min(strconv.Itoa(lead.MinAge)), h.Max(strconv.Itoa(lead.MaxAge)),
					h.Placeholder(p.T("form.placeholder.age")),
					h.Required(), g.Attr("data-required"),
				),
			),
		})
	case lead.StepAcademic:
		return g.Group([]g.Node{
			h.Div(
				h.Class("field"),
				h.Label(h.For("academic_level"), g.Text(p.T("form.academic_level"))),
				h.Select(
					h.ID("academic_level"), h.Name("academic_level"),
					h.Required(), g.Attr("data-required"),
					h.Option(h.Value(""), g.If(f.AcademicLevel == "", h.Selected()), g.Text(p.T("form.select_level"))),
					g.Map(lead.AcademicLevels(), func(level lead.AcademicLevel) g.Node {
						return h.Option(h.Value(level.Value), g.If(level.Value == f.AcademicLevel, h.Selected()), g.Text(p.T(level.LabelKey)))
					}),
				),
			),
			textField(p, "major", "form.major", "text", f.Major, "form.placeholder.major"),
		})
	case lead.StepContact:
		return g.Group([]g.Node{
			textField(p, "whatsapp_number", "form.whatsapp", "tel", f.WhatsAppNumber, "form.placeholder.whatsapp"),
			textField(p, "email", "form.email", "email", f.Email, "form.placeholder.email"),
		})
	case lead.StepDocuments:
		return g.Group([]g.Node{
			uploadField(p, lead.DocumentPassport, "form.passport", view.Passport),
			uploadField(p, lead.DocumentDiploma, "form.diploma", view.Diploma),
		})
	default:
		return nil
	}
}

func textField(p Page, name string, labelKey string, inputType string, value string, placeholderKey string) g.Node {
	return h.Div(
		h.Class("field"),
		h.Label(h.For(name), g.Text(p.T(labelKey))),
		h.Input(
			h.ID(name), h.Name(name), h.Type(inputType), h.Value(value),
			h.Placeholder(p.T(placeholderKey)),
			g.If(inputType == "tel" || inputType == "email", g.Attr("dir", "ltr")),
			h.Required(), g.Attr("data-required"),
		),
	)
}

func uploadField(p Page, kind lead.DocumentKind, labelKey string, current string) g.Node {
	name := string(kind)
	return h.Div(
		h.Class("field upload-field"),
		h.Label(h.For(name), g.Text(p.T(labelKey))),
		h.Label(
			h.Class(rowClass(p, "upload-slot")),
			h.For(name),
			Icon("upload", "icon"),
			h.Span(h.Class("upload-name"), g.Text(uploadLabel(p, current))),
		),
		h.Input(
			h.ID(name), h.Name(name), h.Type("file"), h.Class("visually-hidden"),
			h.Accept(lead.AcceptedExtensions),
			g.If(current == "", h.Required()),
			g.Attr("data-required"),
			g.If(current != "", g.Attr("data-filled")),
		),
	)
}

func uploadLabel(p Page, current string) string {
	if current != "" {
		return current
	}
	return p.T("form.choose_file")
}

func applySuccess(p Page, view ApplyView) g.Node {
	return h.Div(
		h.Class("apply-success"),
		h.Div(h.Class("success-icon"), Icon("check", "icon")),
		h.H1(g.Text(p.T("form.success"))),
		h.P(g.Text(p.T("form.success_message"))),
		g.If(view.Reference != "", h.P(
			h.Class("reference"),
			g.Text(p.T("form.reference")+" "),
			h.Strong(g.Attr("dir", "ltr"), g.Text(view.Reference)),
		)),
		h.Div(
			h.Class("why-box"),
			h.Strong(g.Text(p.T("form.what_next"))),
			h.Ul(
				h.Li(h.Class(rowClass(p, "value")), Icon("check", "icon"), g.Text(p.T("form.review_24h"))),
				h.Li(h.Class(rowClass(p, "value")), Icon("check", "icon"), g.Text(p.T("form.contact_whatsapp"))),
				h.Li(h.Class(rowClass(p, "value")), Icon("check", "icon"), g.Text(p.T("form.present_offers"))),
			),
		),
		h.Form(
			h.Method("post"),
			h.Action(p.Href(routepath.ApplyReset)),
			h.Button(h.Type("submit"), h.Class("btn btn-primary"), g.Text(p.T("form.close"))),
		),
	)
}
