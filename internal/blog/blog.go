// Package blog holds the site's bilingual blog posts and the category and
// search filters used by the listing page.
package blog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
)

// AllCategory selects every post.
const AllCategory = "all"

//go:embed posts.yaml
var embeddedPosts []byte

var defaultCatalog = mustLoadEmbedded()

// Localized carries one string per supported locale.
type Localized = platformi18n.Text

// Category groups posts on the listing page.
type Category struct {
	ID    string    `yaml:"id"`
	Icon  string    `yaml:"icon"`
	Color string    `yaml:"color"`
	Name  Localized `yaml:"name"`
	Topic Localized `yaml:"topic"`
}

// Post is one immutable blog entry.
type Post struct {
	ID        string    `yaml:"id"`
	Category  string    `yaml:"category"`
	Published time.Time `yaml:"published"`
	Featured  bool      `yaml:"featured"`
	Views     int       `yaml:"views"`
	Image     string    `yaml:"image"`
	Title     Localized `yaml:"title"`
	Excerpt   Localized `yaml:"excerpt"`
	Author    Localized `yaml:"author"`
	ReadTime  Localized `yaml:"read_time"`
	Date      Localized `yaml:"date"`
	// Content is Markdown.
	Content Localized `yaml:"content"`
}

// DisplayDate returns the post's date as written for tag's locale, falling
// back to the ISO publication date.
func (p Post) DisplayDate(tag language.Tag) string {
	if value := strings.TrimSpace(p.Date.In(tag)); value != "" {
		return value
	}
	return p.Published.Format(time.DateOnly)
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
	Posts      []Post     `yaml:"posts"`
}

// Catalog is the loaded, read-only set of categories and posts.
type Catalog struct {
	categories []Category
	posts      []Post
	categoryBy map[string]int
	postBy     map[string]int
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog
}

// Load parses a posts file.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	if len(file.Categories) == 0 || file.Categories[0].ID != AllCategory {
		return nil, errors.New("posts: first category must be " + AllCategory)
	}

	c := &Catalog{
		categories: file.Categories,
		posts:      file.Posts,
		categoryBy: make(map[string]int, len(file.Categories)),
		postBy:     make(map[string]int, len(file.Posts)),
	}
	for i, category := range file.Categories {
		if _, dup := c.categoryBy[category.ID]; dup {
			return nil, fmt.Errorf("posts: duplicate category %q", category.ID)
		}
		c.categoryBy[category.ID] = i
	}
	for i, post := range file.Posts {
		if strings.TrimSpace(post.ID) == "" {
			return nil, fmt.Errorf("posts: post %d has no id", i)
		}
		if _, dup := c.postBy[post.ID]; dup {
			return nil, fmt.Errorf("posts: duplicate post %q", post.ID)
		}
		if post.Category == AllCategory {
			return nil, fmt.Errorf("posts: post %q cannot use the %s category", post.ID, AllCategory)
		}
		if _, ok := c.categoryBy[post.Category]; !ok {
			return nil, fmt.Errorf("posts: post %q has unknown category %q", post.ID, post.Category)
		}
		c.postBy[post.ID] = i
	}
	return c, nil
}

// Categories returns the categories in display order, "all" first.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.categoryBy[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// NormalizeCategory returns id when it names a category and AllCategory
// otherwise.
func (c *Catalog) NormalizeCategory(id string) string {
	id = strings.TrimSpace(id)
	if _, ok := c.categoryBy[id]; ok {
		return id
	}
	return AllCategory
}

// Posts returns every post in publication order as authored.
func (c *Catalog) Posts() []Post {
	return append([]Post(nil), c.posts...)
}

// Post looks up a post by id.
func (c *Catalog) Post(id string) (Post, bool) {
	i, ok := c.postBy[id]
	if !ok {
		return Post{}, false
	}
	return c.posts[i], true
}

func mustLoadEmbedded() *Catalog {
	c, err := Load(embeddedPosts)
	if err != nil {
		panic(err)
	}
	return c
}
