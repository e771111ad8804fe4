package normalize

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/freight-orders/constants"
)

//go:embed translations/*.yaml
var catalogs embed.FS

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Translator renders a dotted catalog key ("package_type.CARTON") for display.
type Translator interface {
	Translate(key string) string
}

// CatalogTranslator serves one locale from the embedded YAML catalogs.
// Unknown keys come back unchanged.
type CatalogTranslator struct {
	locale  string
	entries map[string]string
}

func NewCatalogTranslator(locale string) (*CatalogTranslator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	b, err := catalogs.ReadFile("translations/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}
	var groups map[string]map[string]string
	if err := yaml.Unmarshal(b, &groups); err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", locale, err)
	}
	entries := make(map[string]string)
	for group, kv := range groups {
		for k, v := range kv {
			entries[group+"."+k] = v
		}
	}
	return &CatalogTranslator{locale: locale, entries: entries}, nil
}

func (t *CatalogTranslator) Locale() string { return t.locale }

func (t *CatalogTranslator) Translate(key string) string {
	if v, ok := t.entries[key]; ok {
		return v
	}
	return key
}

// PackageTypes maps task-sheet unit vocabulary to translated package type names.
type PackageTypes struct {
	Translator Translator
}

func (p PackageTypes) Map(raw string) string {
	tag, _ := constants.CanonicalPackageType(raw)
	key := "package_type." + string(tag)
	if p.Translator == nil {
		return key
	}
	return p.Translator.Translate(key)
}
