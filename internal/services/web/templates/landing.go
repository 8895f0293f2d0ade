package templates

import (
	"context"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/educonsult/site/internal/services/web/routepath"
	"github.com/educonsult/site/internal/site"
)

// FeaturedPostCount is the number of posts highlighted on the landing page.
const FeaturedPostCount = 3

// LandingView is the landing page state.
type LandingView struct {
	// Featured lists the highlighted posts; badges are assigned by
	// position.
	Featured []BlogCard
}

// FeaturedBadgeKey returns the badge of the featured card at index: the
// first is the most important, the rest are featured.
func FeaturedBadgeKey(index int) string {
	if index == 0 {
		return "blog.most_important"
	}
	return "blog.featured"
}

// Landing renders the landing page body.
func Landing(p Page, view LandingView) templ.Component {
	return Component(func(context.Context) g.Node {
		return g.Group([]g.Node{
			hero(p),
			services(p),
			universities(p),
			featuredBlog(p, view.Featured),
			about(p),
			faq(p),
		})
	})
}

func hero(p Page) g.Node {
	return h.Section(
		h.ID("hero"),
		h.Class("hero"),
		h.Div(
			h.Class("container hero-inner"),
			h.Span(h.Class(rowClass(p, "hero-badge")), Icon("shield", "icon"), g.Text(p.T("hero.badge"))),
			h.H1(
				g.Text(p.T("hero.title1")+" "),
				h.Span(h.Class("highlight"), g.Text(p.T("hero.title2"))),
				g.Text(" "+p.T("hero.title3")),
			),
			h.P(h.Class("lead"), g.Text(p.T("hero.subtitle"))),
			h.A(
				h.Class(rowClass(p, "btn btn-primary btn-large")),
				h.Href(p.Href(routepath.Apply)),
				g.Text(p.T("hero.cta")),
				ForwardArrow(p.RTL(), "icon"),
			),
		),
	)
}

func sectionHeader(title string, subtitle string) g.Node {
	return h.Header(
		h.Class("section-header"),
		h.H2(SplitHeading(title)),
		g.If(subtitle != "", h.P(g.Text(subtitle))),
	)
}

func services(p Page) g.Node {
	content := p.content()
	return h.Section(
		h.ID(routepath.SectionServices),
		h.Class("section services"),
		h.Div(
			h.Class("container"),
			sectionHeader(p.T("services.title"), p.T("services.subtitle")),
			h.Div(
				h.Class("card-grid"),
				g.Map(content.Services, func(s site.Service) g.Node {
					return h.Div(
						h.Class("card service-card"),
						g.Attr("data-service", s.ID),
						h.Div(h.Class("service-icon"), Icon(s.Icon, "icon")),
						h.H3(g.Text(p.T(s.TitleKey()))),
						h.P(g.Text(p.T(s.DescKey()))),
					)
				}),
			),
			h.Div(
				h.Class(rowClass(p, "badges")),
				g.Map(content.Badges, func(b site.Badge) g.Node {
					return h.Span(h.Class(rowClass(p, "badge")), Icon(b.Icon, "icon"), g.Text(p.T(b.Label)))
				}),
			),
			h.P(h.Class("services-note"), g.Text(p.T("services.note"))),
		),
	)
}

func universities(p Page) g.Node {
	content := p.content()
	tag := p.Tag()
	return h.Section(
		h.ID(routepath.SectionUniversities),
		h.Class("section universities"),
		h.Div(
			h.Class("container"),
			sectionHeader(p.T("universities.title"), p.T("universities.subtitle")),
			h.Div(
				h.Class("stats"),
				g.Map(content.Stats, func(s site.Stat) g.Node {
					return h.Div(
						h.Class("stat"),
						h.Strong(h.Class("stat-value"), g.Attr("dir", "ltr"), g.Text(p.printer().Number(s.Value)+s.Suffix)),
						h.Span(h.Class("stat-label"), g.Text(p.T(s.Label))),
					)
				}),
			),
			h.Div(
				h.Class("card-grid"),
				g.Map(content.Universities, func(u site.University) g.Node {
					return h.Div(
						h.Class("card university-card"),
						g.Attr("data-university", u.ID),
						h.Div(h.Class(rowClass(p, "university-title")), Icon("building", "icon"), h.H3(g.Text(u.Name.In(tag)))),
						h.Table(
							h.Class("university-facts"),
							h.Tr(h.Th(g.Text(p.T("universities.location"))), h.Td(g.Text(p.T(u.CityKey())))),
							h.Tr(h.Th(g.Text(p.T("universities.programs"))), h.Td(g.Text(p.printer().Number(u.Programs)+"+"))),
							h.Tr(h.Th(g.Text(p.T("universities.students_count"))), h.Td(g.Text(p.printer().Number(u.Students)+"+"))),
							h.Tr(h.Th(g.Text(p.T("universities.specialties"))), h.Td(g.Text(u.Specialties.In(tag)))),
						),
					)
				}),
			),
			h.Div(
				h.Class("cta-box"),
				h.P(g.Text(p.T("universities.cta_text"))),
				h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Apply)), g.Text(p.T("universities.cta_button"))),
			),
		),
	)
}

func featuredBlog(p Page, cards []BlogCard) g.Node {
	return h.Section(
		h.ID(routepath.SectionBlog),
		h.Class("section featured-blog"),
		h.Div(
			h.Class("container"),
			sectionHeader(p.T("blog.title"), p.T("blog.subtitle")),
			h.Div(
				h.Class("card-grid"),
				g.Map(cards, func(card BlogCard) g.Node { return blogCard(p, card) }),
			),
			h.Div(
				h.Class("section-actions"),
				h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Blog)), g.Text(p.T("blog.view_all"))),
			),
		),
	)
}

func about(p Page) g.Node {
	content := p.content()
	return h.Section(
		h.ID(routepath.SectionAbout),
		h.Class("section about"),
		h.Div(
			h.Class("container about-grid"),
			h.Div(
				h.H2(SplitHeading(p.T("about.title"))),
				h.H3(g.Text(p.T("about.hero_title"))),
				h.P(h.Class("lead"), g.Text(p.T("about.hero_subtitle"))),
				h.P(g.Text(p.T("about.description1"))),
				h.P(g.Text(p.T("about.description2"))),
			),
			h.Div(
				h.Class("card values-card"),
				h.H3(g.Text(p.T("about.values_title"))),
				h.Ul(
					h.Class("values"),
					g.Map(content.Values, func(key string) g.Node {
						return h.Li(h.Class(rowClass(p, "value")), Icon("check", "icon"), g.Text(p.T(key)))
					}),
				),
				h.Div(
					h.Class(rowClass(p, "licensed")),
					Icon("shield", "icon"),
					h.Div(
						h.Strong(g.Text(p.T("about.licensed"))),
						h.P(g.Text(p.T("about.licensed_desc"))),
					),
				),
			),
		),
	)
}

func faq(p Page) g.Node {
	content := p.content()
	return h.Section(
		h.ID(routepath.SectionFAQ),
		h.Class("section faq"),
		h.Div(
			h.Class("container"),
			sectionHeader(p.T("faq.title"), p.T("faq.subtitle")),
			h.Div(
				h.Class("faq-list"),
				g.Map(content.FAQ, func(q site.FAQ) g.Node {
					return h.Details(
						h.Class("faq-item"),
						g.El("summary", g.Text(p.T(q.QuestionKey()))),
						h.P(g.Text(p.T(q.AnswerKey()))),
					)
				}),
			),
			h.Div(
				h.Class("cta-box"),
				h.P(g.Text(p.T("faq.cta_text"))),
				h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Apply)), g.Text(p.T("faq.cta_button"))),
			),
		),
	)
}
