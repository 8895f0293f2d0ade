package blog

import (
	"net/http"

	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/publichandler"
	webtemplates "github.com/educonsult/site/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: publichandler.NewBase(deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.Page(r, "")
	page.Title = page.T("blog.title")
	result := h.service.list(query.Get(webtemplates.CategoryParam), query.Get(webtemplates.SearchParam), page.Tag())

	view := webtemplates.BlogListView{
		Category: result.category.ID,
		Heading:  result.category.Name.In(page.Tag()),
		Search:   result.search,
	}
	for _, summary := range result.categories {
		view.Categories = append(view.Categories, webtemplates.BlogCategoryLink{
			ID:     summary.category.ID,
			Icon:   summary.category.Icon,
			Label:  summary.category.Name.In(page.Tag()),
			Count:  summary.count,
			URL:    webtemplates.BlogListURL(page, summary.category.ID, result.search),
			Active: summary.category.ID == result.category.ID,
		})
	}
	for _, post := range result.posts {
		view.Posts = append(view.Posts, webtemplates.NewBlogCard(page, post, h.service.category(post.Category)))
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.BlogList(page, view))
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.post(r.PathValue("postID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	page := h.Page(r, "")
	body, err := h.service.body(post, page.Tag())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	category := h.service.category(post.Category)
	card := webtemplates.NewBlogCard(page, post, category)
	page.Title = card.Title
	page.Description = card.Excerpt
	h.WritePage(w, r, page, http.StatusOK, webtemplates.BlogPost(page, webtemplates.BlogPostView{
		Card:  card,
		Topic: category.Topic.In(page.Tag()),
		Body:  body,
	}))
}
