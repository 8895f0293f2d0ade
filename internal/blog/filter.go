package blog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Query selects posts on the listing page.
type Query struct {
	// Category is a category id; empty or AllCategory matches every post.
	Category string
	// Search is matched against the localized title, excerpt and author.
	Search string
}

// Active reports whether the query narrows the listing by search term.
func (q Query) Active() bool {
	return strings.TrimSpace(q.Search) != ""
}

// Filter returns the posts matching q in tag's locale, keeping their order.
func Filter(posts []Post, q Query, tag language.Tag) []Post {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(q.Search))
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if !inCategory(post, q.Category) {
			continue
		}
		if needle != "" && !containsFolded(folder, needle, post.Title.In(tag), post.Excerpt.In(tag), post.Author.In(tag)) {
			continue
		}
		out = append(out, post)
	}
	return out
}

func inCategory(post Post, category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || category == AllCategory || post.Category == category
}

func containsFolded(folder cases.Caser, needle string, haystacks ...string) bool {
	for _, haystack := range haystacks {
		if strings.Contains(folder.String(haystack), needle) {
			return true
		}
	}
	return false
}

// CountByCategory returns the number of posts per category id; AllCategory
// counts every post.
func CountByCategory(posts []Post) map[string]int {
	counts := map[string]int{AllCategory: len(posts)}
	for _, post := range posts {
		counts[post.Category]++
	}
	return counts
}

// Featured returns up to n featured posts in order.
func Featured(posts []Post, n int) []Post {
	out := make([]Post, 0, n)
	for _, post := range posts {
		if len(out) == n {
			break
		}
		if post.Featured {
			out = append(out, post)
		}
	}
	return out
}
