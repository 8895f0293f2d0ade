// Package site holds the landing page content that is not prose: figures,
// partner universities, service tiles and the order of FAQ entries. Prose
// lives in the locale catalog and is referenced here by key.
package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	platformi18n "github.com/educonsult/site/internal/platform/i18n"
)

//go:embed content.yaml
var embeddedContent []byte

var defaultContent = mustLoadEmbedded()

// Cities are the locations a partner university may be in. Each has a
// catalog label universities.<city>.
var Cities = []string{"nicosia", "famagusta", "kyrenia"}

// Contact is the agency's published contact data besides the phone number.
type Contact struct {
	Email   string            `yaml:"email"`
	Address platformi18n.Text `yaml:"address"`
	Hours   platformi18n.Text `yaml:"hours"`
}

// Stat is one headline figure of the universities section.
type Stat struct {
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
	// Label is a catalog key.
	Label string `yaml:"label"`
}

// Badge is a highlighted promise under the services grid.
type Badge struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

// Service is one tile of the services grid. Its copy lives under
// service.<id>.title and service.<id>.desc.
type Service struct {
	ID   string `yaml:"id"`
	Icon string `yaml:"icon"`
}

// TitleKey returns the catalog key of the service title.
func (s Service) TitleKey() string { return "service." + s.ID + ".title" }

// DescKey returns the catalog key of the service description.
func (s Service) DescKey() string { return "service." + s.ID + ".desc" }

// University is one partner institution.
type University struct {
	ID          string            `yaml:"id"`
	City        string            `yaml:"city"`
	Programs    int               `yaml:"programs"`
	Students    int               `yaml:"students"`
	Name        platformi18n.Text `yaml:"name"`
	Specialties platformi18n.Text `yaml:"specialties"`
}

// CityKey returns the catalog key of the university's city.
func (u University) CityKey() string { return "universities." + u.City }

// FAQ is one question of the FAQ section, stored under faq.<id>.q and
// faq.<id>.a.
type FAQ string

// QuestionKey returns the catalog key of the question.
func (f FAQ) QuestionKey() string { return "faq." + string(f) + ".q" }

// AnswerKey returns the catalog key of the answer.
func (f FAQ) AnswerKey() string { return "faq." + string(f) + ".a" }

// Content is the landing page data.
type Content struct {
	Contact      Contact      `yaml:"contact"`
	Stats        []Stat       `yaml:"stats"`
	Badges       []Badge      `yaml:"badges"`
	Services     []Service    `yaml:"services"`
	Universities []University `yaml:"universities"`
	FAQ          []FAQ        `yaml:"faq"`
	Values       []string     `yaml:"values"`
}

// Default returns the embedded content.
func Default() *Content {
	return defaultContent
}

// Load parses and validates a content file.
func Load(data []byte) (*Content, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var content Content
	if err := decoder.Decode(&content); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	if err := content.validate(); err != nil {
		return nil, err
	}
	return &content, nil
}

// Keys returns every catalog key the content refers to.
func (c *Content) Keys() []string {
	var keys []string
	for _, stat := range c.Stats {
		keys = append(keys, stat.Label)
	}
	for _, badge := range c.Badges {
		keys = append(keys, badge.Label)
	}
	for _, service := range c.Services {
		keys = append(keys, service.TitleKey(), service.DescKey())
	}
	for _, university := range c.Universities {
		keys = append(keys, university.CityKey())
	}
	for _, faq := range c.FAQ {
		keys = append(keys, faq.QuestionKey(), faq.AnswerKey())
	}
	return append(keys, c.Values...)
}

func (c *Content) validate() error {
	var errs []error
	if strings.TrimSpace(c.Contact.Email) == "" {
		errs = append(errs, errors.New("contact email is required"))
	}
	seen := map[string]bool{}
	for _, service := range c.Services {
		if service.ID == "" || seen["service:"+service.ID] {
			errs = append(errs, fmt.Errorf("service id %q is empty or duplicated", service.ID))
		}
		seen["service:"+service.ID] = true
	}
	for _, university := range c.Universities {
		if university.ID == "" || seen["university:"+university.ID] {
			errs = append(errs, fmt.Errorf("university id %q is empty or duplicated", university.ID))
		}
		seen["university:"+university.ID] = true
		if !knownCity(university.City) {
			errs = append(errs, fmt.Errorf("university %q has unknown city %q", university.ID, university.City))
		}
		if university.Name.En == "" || university.Name.Ar == "" {
			errs = append(errs, fmt.Errorf("university %q needs a name in every locale", university.ID))
		}
	}
	for _, faq := range c.FAQ {
		if faq == "" || seen["faq:"+string(faq)] {
			errs = append(errs, fmt.Errorf("faq id %q is empty or duplicated", faq))
		}
		seen["faq:"+string(faq)] = true
	}
	return errors.Join(errs...)
}

func knownCity(city string) bool {
	for _, known := range Cities {
		if city == known {
			return true
		}
	}
	return false
}

func mustLoadEmbedded() *Content {
	content, err := Load(embeddedContent)
	if err != nil {
		panic(err)
	}
	return content
}
