package templates

import (
	"context"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/educonsult/site/internal/blog"
	"github.com/educonsult/site/internal/services/shared/i18nhttp"
	"github.com/educonsult/site/internal/services/web/routepath"
)

// Blog listing query parameters.
const (
	CategoryParam = "category"
	SearchParam   = "q"
)

const categoryStripID = "category-strip"

// BlogCard is a post summary as shown in listings.
type BlogCard struct {
	ID            string
	URL           string
	Title         string
	Excerpt       string
	Author        string
	Date          string
	ReadTime      string
	Image         string
	CategoryLabel string
	CategoryIcon  string
	Views         string
	Badge         string
}

// NewBlogCard localizes post for p.
func NewBlogCard(p Page, post blog.Post, category blog.Category) BlogCard {
	tag := p.Tag()
	label := category.Name.In(tag)
	if label == "" {
		label = p.T("blog.category_general")
	}
	return BlogCard{
		ID:            post.ID,
		URL:           p.Href(routepath.BlogPost(post.ID)),
		Title:         post.Title.In(tag),
		Excerpt:       post.Excerpt.In(tag),
		Author:        post.Author.In(tag),
		Date:          post.DisplayDate(tag),
		ReadTime:      post.ReadTime.In(tag),
		Image:         post.Image,
		CategoryLabel: label,
		CategoryIcon:  category.Icon,
		Views:         p.printer().Number(post.Views),
	}
}

// BlogCategoryLink is one pill of the category strip.
type BlogCategoryLink struct {
	ID     string
	Icon   string
	Label  string
	Count  int
	URL    string
	Active bool
}

// BlogListView is the listing page state.
type BlogListView struct {
	Categories []BlogCategoryLink
	// Category is the selected category id.
	Category string
	// Heading is the selected category's name.
	Heading string
	Search  string
	Posts   []BlogCard
}

func (v BlogListView) searching() bool {
	return blog.Query{Category: v.Category, Search: v.Search}.Active()
}

// BlogPostView is the detail page state.
type BlogPostView struct {
	Card  BlogCard
	Topic string
	// Body is sanitized HTML.
	Body string
}

// BlogListURL links the listing filtered by category and search in p's
// language.
func BlogListURL(p Page, category string, search string) string {
	query := url.Values{i18nhttp.LangParam: {p.Locale()}}
	if category != "" && category != blog.AllCategory {
		query.Set(CategoryParam, category)
	}
	if search = strings.TrimSpace(search); search != "" {
		query.Set(SearchParam, search)
	}
	return (&url.URL{Path: routepath.Blog, RawQuery: query.Encode()}).String()
}

// BlogList renders the listing page body.
func BlogList(p Page, view BlogListView) templ.Component {
	return Component(func(context.Context) g.Node {
		return h.Section(
			h.Class("blog-page"),
			h.Div(
				h.Class("container"),
				h.A(h.Class(rowClass(p, "back-link")), h.Href(p.Href(routepath.Root)), BackArrow(p.RTL(), "icon"), g.Text(p.T("nav.backHome"))),
				h.Header(
					h.Class("section-header"),
					h.H1(SplitHeading(p.T("blog.title"))),
					h.P(g.Text(p.T("blog.subtitle"))),
				),
				blogSearchForm(p, view),
				categoryStrip(p, view.Categories),
				resultsHeader(p, view),
				g.If(len(view.Posts) == 0, emptyState(p, view)),
				g.If(len(view.Posts) > 0, h.Div(
					h.Class("card-grid"),
					g.Map(view.Posts, func(card BlogCard) g.Node { return blogCard(p, card) }),
				)),
			),
		)
	})
}

func blogSearchForm(p Page, view BlogListView) g.Node {
	return h.Form(
		h.Class(rowClass(p, "search-form")),
		h.Method("get"),
		h.Action(routepath.Blog),
		g.Attr("role", "search"),
		h.Input(h.Type("hidden"), h.Name(i18nhttp.LangParam), h.Value(p.Locale())),
		g.If(view.Category != "" && view.Category != blog.AllCategory,
			h.Input(h.Type("hidden"), h.Name(CategoryParam), h.Value(view.Category))),
		Icon("search", "icon search-icon"),
		h.Input(
			h.Type("search"),
			h.Name(SearchParam),
			h.Value(view.Search),
			h.Placeholder(p.T("blog.search_placeholder")),
			g.Attr("aria-label", p.T("blog.search")),
		),
		h.Button(h.Type("submit"), h.Class("btn btn-primary"), g.Text(p.T("blog.search"))),
	)
}

func categoryStrip(p Page, categories []BlogCategoryLink) g.Node {
	buttons := ScrollButtons(p.RTL())
	return h.Div(
		h.Class("category-scroller"),
		scrollControl(p, categoryStripID, buttons[0]),
		h.Div(
			h.ID(categoryStripID),
			h.Class("category-strip"),
			g.Map(categories, func(c BlogCategoryLink) g.Node {
				class := "category-pill"
				if c.Active {
					class += " active"
				}
				return h.A(
					h.Class(class),
					h.Href(c.URL),
					g.If(c.Active, g.Attr("aria-current", "page")),
					g.Attr("data-category", c.ID),
					h.Span(h.Class("category-icon"), g.Text(c.Icon)),
					h.Span(h.Class("category-label"), g.Text(c.Label)),
					h.Span(h.Class("category-count"), g.Text(p.printer().Number(c.Count))),
				)
			}),
		),
		scrollControl(p, categoryStripID, buttons[1]),
	)
}

func resultsHeader(p Page, view BlogListView) g.Node {
	return h.Div(
		h.Class("results-header"),
		h.H2(
			g.Text(view.Heading),
			h.Span(h.Class("results-count"), g.Text(" ("+p.Tf("blog.post_count", len(view.Posts))+")")),
		),
		g.If(view.searching(), h.P(
			h.Class("results-search"),
			g.Text(p.T("blog.results_for")+" "),
			h.Strong(g.Text(`"`+view.Search+`"`)),
		)),
	)
}

func emptyState(p Page, view BlogListView) g.Node {
	searching := view.searching()
	message := p.T("blog.empty_category")
	if searching {
		message = p.Tf("blog.no_match", view.Search)
	}
	return h.Div(
		h.Class("empty-state"),
		h.H3(g.Text(p.T("blog.no_posts"))),
		h.P(g.Text(message)),
		g.If(searching, h.A(
			h.Class("btn btn-primary"),
			h.Href(BlogListURL(p, view.Category, "")),
			g.Text(p.T("blog.clear_search")),
		)),
	)
}

func blogMeta(p Page, card BlogCard, withViews bool) g.Node {
	return h.Div(
		h.Class(rowClass(p, "post-meta")),
		h.Span(h.Class("meta-item"), Icon("user", "icon"), g.Text(card.Author)),
		h.Span(h.Class("meta-item"), Icon("calendar", "icon"), g.Text(card.Date)),
		h.Span(h.Class("meta-item"), Icon("clock", "icon"), g.Text(card.ReadTime)),
		g.If(withViews, h.Span(h.Class("meta-item"), Icon("eye", "icon"), g.Text(card.Views+" "+p.T("blog.views")))),
	)
}

func blogCard(p Page, card BlogCard) g.Node {
	return h.Article(
		h.Class("card post-card"),
		g.Attr("data-post", card.ID),
		h.Div(
			h.Class("card-image"),
			g.If(card.Image != "", h.Img(h.Src(card.Image), h.Alt(card.Title), g.Attr("loading", "lazy"))),
			h.Span(h.Class("category-badge"), g.Text(card.CategoryIcon+" "+card.CategoryLabel)),
			g.If(card.Badge != "", h.Span(h.Class("featured-badge"), g.Text(card.Badge))),
		),
		h.Div(
			h.Class("card-body"),
			blogMeta(p, card, card.Badge == ""),
			h.H3(h.A(h.Href(card.URL), g.Text(card.Title))),
			h.P(h.Class("excerpt"), g.Text(card.Excerpt)),
			h.A(
				h.Class(rowClass(p, "btn btn-primary read-more")),
				h.Href(card.URL),
				g.Text(p.T("blog.read_more")),
				ForwardArrow(p.RTL(), "icon"),
			),
		),
	)
}

// BlogPost renders one post.
func BlogPost(p Page, view BlogPostView) templ.Component {
	card := view.Card
	return Component(func(context.Context) g.Node {
		return h.Article(
			h.Class("post-page container"),
			h.A(h.Class(rowClass(p, "back-link")), h.Href(p.Href(routepath.Blog)), BackArrow(p.RTL(), "icon"), g.Text(p.T("blog.back_to_blog"))),
			h.Header(
				h.Class("post-header"),
				h.Span(h.Class("category-badge"), g.Text(card.CategoryIcon+" "+card.CategoryLabel)),
				h.H1(g.Text(card.Title)),
				g.If(view.Topic != "", h.P(h.Class("post-topic"), g.Text(view.Topic))),
				blogMeta(p, card, true),
			),
			g.If(card.Image != "", h.Img(h.Class("post-image"), h.Src(card.Image), h.Alt(card.Title))),
			h.Div(h.Class("post-body"), g.Raw(view.Body)),
			h.Div(
				h.Class("post-cta"),
				h.A(h.Class("btn btn-primary"), h.Href(p.Href(routepath.Apply)), g.Text(p.T("hero.cta"))),
			),
		)
	})
}
