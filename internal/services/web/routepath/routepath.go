// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Health       = "/up"
	StaticPrefix = "/static/"

	Blog            = "/blog"
	BlogPrefix      = "/blog/"
	BlogPostPattern = BlogPrefix + "{postID}"

	Apply       = "/apply"
	ApplyPrefix = "/apply/"
	ApplyNext   = "/apply/next"
	ApplyBack   = "/apply/back"
	ApplySubmit = "/apply/submit"
	ApplyReset  = "/apply/reset"
)

// Section anchors on the landing page.
const (
	SectionServices     = "services"
	SectionUniversities = "universities"
	SectionBlog         = "blog"
	SectionAbout        = "about"
	SectionFAQ          = "faq"
)

// BlogPost returns the detail path for postID.
func BlogPost(postID string) string {
	return BlogPrefix + escapeSegment(postID)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
