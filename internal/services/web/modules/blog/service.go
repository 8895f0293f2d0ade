package blog

import (
	"strings"

	"golang.org/x/text/language"

	blogcatalog "github.com/educonsult/site/internal/blog"
	apperrors "github.com/educonsult/site/internal/services/web/platform/errors"
)

type categorySummary struct {
	category blogcatalog.Category
	count    int
}

type listing struct {
	category   blogcatalog.Category
	search     string
	categories []categorySummary
	posts      []blogcatalog.Post
}

type service struct {
	catalog  *blogcatalog.Catalog
	renderer *blogcatalog.Renderer
}

func newService(catalog *blogcatalog.Catalog, renderer *blogcatalog.Renderer) service {
	if catalog == nil {
		catalog = blogcatalog.Default()
	}
	if renderer == nil {
		renderer = blogcatalog.NewRenderer()
	}
	return service{catalog: catalog, renderer: renderer}
}

// list filters the catalog. Unknown categories select every post.
func (s service) list(rawCategory string, rawSearch string, tag language.Tag) listing {
	categoryID := s.catalog.NormalizeCategory(rawCategory)
	category, _ := s.catalog.Category(categoryID)
	search := strings.TrimSpace(rawSearch)

	all := s.catalog.Posts()
	counts := blogcatalog.CountByCategory(all)
	categories := s.catalog.Categories()
	summaries := make([]categorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, categorySummary{category: c, count: counts[c.ID]})
	}
	return listing{
		category:   category,
		search:     search,
		categories: summaries,
		posts:      blogcatalog.Filter(all, blogcatalog.Query{Category: categoryID, Search: search}, tag),
	}
}

func (s service) category(id string) blogcatalog.Category {
	category, _ := s.catalog.Category(id)
	return category
}

func (s service) post(id string) (blogcatalog.Post, error) {
	post, ok := s.catalog.Post(strings.TrimSpace(id))
	if !ok {
		return blogcatalog.Post{}, apperrors.E(apperrors.KindNotFound, "post "+id+" not found")
	}
	return post, nil
}

// body renders the post's content for tag as sanitized HTML.
func (s service) body(post blogcatalog.Post, tag language.Tag) (string, error) {
	html, err := s.renderer.Render(post.Content.In(tag))
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnknown, "", err)
	}
	return html, nil
}
