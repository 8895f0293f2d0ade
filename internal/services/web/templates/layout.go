package templates

import (
	"context"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/educonsult/site/internal/services/web/routepath"
)

const (
	stylesheetPath = routepath.StaticPrefix + "site.css"
	scriptPath     = routepath.StaticPrefix + "site.js"
)

// Layout wraps the templ children on ctx in the document shell: head,
// navigation, footer and WhatsApp widget.
func Layout(p Page) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return document(p, children(ctx))
	})
}

func document(p Page, body g.Node) g.Node {
	bodyClass := "site"
	if p.Locale() == "ar" {
		bodyClass += " arabic"
	}
	return g.Group([]g.Node{
		h.Doctype(
			h.HTML(
				h.Lang(p.Locale()),
				g.Attr("dir", p.Dir()),
				h.Head(
					h.Meta(h.Charset("utf-8")),
					h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
					h.TitleEl(g.Text(p.HeadTitle())),
					h.Meta(h.Name("description"), h.Content(p.HeadDescription())),
					h.Link(h.Rel("stylesheet"), h.Href(stylesheetPath)),
					h.Script(h.Src(scriptPath), h.Defer()),
				),
				h.Body(
					h.Class(bodyClass),
					Navigation(p),
					h.Main(h.ID("main"), body),
					Footer(p),
					WhatsAppWidget(p),
				),
			),
		),
	})
}

type navItem struct {
	section  string
	labelKey string
}

var navItems = []navItem{
	{section: routepath.SectionServices, labelKey: "nav.services"},
	{section: routepath.SectionUniversities, labelKey: "nav.universities"},
	{section: routepath.SectionBlog, labelKey: "nav.blog"},
	{section: routepath.SectionAbout, labelKey: "nav.about"},
	{section: routepath.SectionFAQ, labelKey: "nav.faq"},
}

// NavHref links a navigation entry. The blog entry opens the listing page;
// the others jump to their landing page section.
func NavHref(p Page, section string) string {
	if section == routepath.SectionBlog {
		return p.Href(routepath.Blog)
	}
	return p.SectionHref(section)
}

// Navigation renders the fixed top bar with the mobile menu.
func Navigation(p Page) g.Node {
	links := func(class string) g.Node {
		return g.Map(navItems, func(item navItem) g.Node {
			return h.A(h.Class(class), h.Href(NavHref(p, item.section)), g.Text(p.T(item.labelKey)))
		})
	}
	return h.Nav(
		h.ID("site-nav"),
		h.Class("site-nav"),
		g.Attr("data-hide-on-scroll", "100"),
		h.Div(
			h.Class(rowClass(p, "nav-bar")),
			h.A(
				h.Class("brand"),
				h.Href(p.Href(routepath.Root)),
				Icon("cap", "icon brand-icon"),
				h.Span(
					h.Class("brand-text"),
					h.Strong(g.Text("EduConsult")),
					h.Span(h.Class("brand-tagline"), g.Text(p.T("nav.partner"))),
				),
			),
			h.Div(h.Class(rowClass(p, "nav-links")), links("nav-link")),
			h.Div(
				h.Class(rowClass(p, "nav-actions")),
				h.A(h.Class("language-toggle"), h.Href(p.ToggleURL()), g.Attr("data-language-toggle"), g.Text(p.T("nav.switch_language"))),
				h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Apply)), g.Text(p.T("nav.apply"))),
				h.Button(
					h.Type("button"),
					h.Class("menu-toggle"),
					g.Attr("aria-label", p.T("nav.menu")),
					g.Attr("aria-controls", "mobile-menu"),
					g.Attr("aria-expanded", "false"),
					Icon("menu", "icon"),
				),
			),
		),
		h.Div(
			h.ID("mobile-menu"),
			h.Class("mobile-menu"),
			g.Attr("hidden"),
			links("mobile-link"),
			h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Apply)), g.Text(p.T("nav.apply"))),
		),
	)
}

// Footer renders quick links and the agency's contact data.
func Footer(p Page) g.Node {
	content := p.content()
	tag := p.Tag()
	return h.Footer(
		h.Class("site-footer"),
		h.Div(
			h.Class("footer-grid"),
			h.Div(
				h.Class("footer-brand"),
				h.Strong(g.Text("EduConsult")),
				h.P(g.Text(p.T("footer.tagline"))),
			),
			h.Div(
				h.H4(g.Text(p.T("footer.quick_links"))),
				h.Ul(g.Map(navItems, func(item navItem) g.Node {
					return h.Li(h.A(h.Href(NavHref(p, item.section)), g.Text(p.T(item.labelKey))))
				})),
			),
			h.Div(
				h.H4(g.Text(p.T("footer.contact_info"))),
				h.Ul(
					h.Class("contact-list"),
					h.Li(h.Class(rowClass(p, "contact-item")), Icon("phone", "icon"),
						h.A(h.Href(PhoneHref(p)), g.Attr("dir", "ltr"), g.Text(p.WhatsAppNumber))),
					h.Li(h.Class(rowClass(p, "contact-item")), Icon("mail", "icon"),
						h.A(h.Href("mailto:"+content.Contact.Email), g.Text(content.Contact.Email))),
					h.Li(h.Class(rowClass(p, "contact-item")), Icon("map-pin", "icon"),
						h.Span(g.Text(content.Contact.Address.In(tag)))),
					h.Li(h.Class(rowClass(p, "contact-item")), Icon("clock", "icon"),
						h.Span(g.Text(content.Contact.Hours.In(tag)))),
				),
			),
		),
		h.P(h.Class("copyright"), g.Text(p.T("footer.copyright"))),
	)
}
