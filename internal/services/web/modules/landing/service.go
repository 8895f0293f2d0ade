package landing

import (
	"github.com/educonsult/site/internal/blog"
	webtemplates "github.com/educonsult/site/internal/services/web/templates"
)

type featuredPost struct {
	post     blog.Post
	category blog.Category
}

type service struct {
	catalog *blog.Catalog
}

func newService(catalog *blog.Catalog) service {
	if catalog == nil {
		catalog = blog.Default()
	}
	return service{catalog: catalog}
}

// featured returns the highlighted posts with their categories.
func (s service) featured() []featuredPost {
	posts := blog.Featured(s.catalog.Posts(), webtemplates.FeaturedPostCount)
	out := make([]featuredPost, 0, len(posts))
	for _, post := range posts {
		category, _ := s.catalog.Category(post.Category)
		out = append(out, featuredPost{post: post, category: category})
	}
	return out
}

func (service) healthBody() string {
	return "ok"
}
