package landing

import (
	"net/http"

	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/platform/httpx"
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
	page := h.Page(r, "")
	featured := h.service.featured()
	cards := make([]webtemplates.BlogCard, 0, len(featured))
	for i, entry := range featured {
		card := webtemplates.NewBlogCard(page, entry.post, entry.category)
		card.Badge = page.T(webtemplates.FeaturedBadgeKey(i))
		cards = append(cards, card)
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.Landing(page, webtemplates.LandingView{Featured: cards}))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, h.service.healthBody())
}
