// Package catalog loads the site's string tables from embedded YAML files.
//
// Each file lives at locales/<locale>/<namespace>.yaml, repeats its locale
// and namespace in the document, and may only define keys under that
// namespace ("form.yaml" holds "form.*"). Loading fails on any mismatch.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other locale is checked against.
const BaseLocale = "en"

// tableFile is the on-disk shape of one string table.
type tableFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale.
type Bundle struct {
	messages   map[string]map[string]string
	namespaces map[string][]string
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = sync.OnceValue(func() *Bundle { return mustLoad(embedded) })

// Default returns the string tables compiled into the binary. It panics on
// the first call if they do not load.
func Default() *Bundle {
	return defaultBundle()
}

// LoadEmbedded parses the compiled-in tables afresh.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/*/*.yaml table in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no catalog files found")
	}
	slices.Sort(paths)

	bundle := &Bundle{messages: map[string]map[string]string{}, namespaces: map[string][]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		table, err := decodeTable(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, table); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func decodeTable(data []byte) (tableFile, error) {
	var table tableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return tableFile{}, errors.New("empty catalog file")
		}
		return tableFile{}, err
	}
	if len(table.Messages) == 0 {
		return tableFile{}, errors.New("missing messages")
	}
	return table, nil
}

func (b *Bundle) add(p string, table tableFile) error {
	locale := strings.TrimSpace(table.Locale)
	namespace := strings.TrimSpace(table.Namespace)
	if want := path.Base(path.Dir(p)); locale != want {
		return fmt.Errorf("locale %q must match path locale %q", locale, want)
	}
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); namespace != want {
		return fmt.Errorf("namespace %q must match file name %q", namespace, want)
	}

	messages, ok := b.messages[locale]
	if !ok {
		messages = map[string]string{}
		b.messages[locale] = messages
	}
	for key, value := range table.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, namespace+".") || len(key) == len(namespace)+1 {
			return fmt.Errorf("key %q is outside namespace %q", key, namespace)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("duplicate key %q in locale %q", key, locale)
		}
		messages[key] = value
	}
	b.namespaces[locale] = append(b.namespaces[locale], namespace)
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.messages[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.messages))
}

// Namespaces returns the sorted table names loaded for locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(slices.Values(b.namespaces[strings.TrimSpace(locale)]))
}

// Message returns the value of key in exactly this locale. There is no
// fallback to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	value, ok := b.messages[strings.TrimSpace(locale)][strings.TrimSpace(key)]
	return value, ok
}

// LocaleMessages returns a copy of every message defined for locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	out := maps.Clone(b.messages[strings.TrimSpace(locale)])
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// MissingKeys lists, in sorted order, the base-locale keys that locale does
// not define.
func (b *Bundle) MissingKeys(locale string) []string {
	if b == nil {
		return nil
	}
	target := b.messages[strings.TrimSpace(locale)]
	var missing []string
	for key := range b.messages[BaseLocale] {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

func mustLoad(fsys fs.FS) *Bundle {
	bundle, err := LoadFromFS(fsys)
	if err != nil {
		panic(err)
	}
	return bundle
}
