package taskpdf

import (
	"log/slog"

	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
)

// Extractor turns task-sheet lines into an order. It holds only read-only
// collaborators and is safe for concurrent use.
type Extractor struct {
	logger    *slog.Logger
	countries normalize.CountryResolver
	packages  normalize.PackageTypes
	dates     normalize.DateParser
}

type Option func(*Extractor)

func WithCountryResolver(r normalize.CountryResolver) Option {
	return func(e *Extractor) {
		if r != nil {
			e.countries = r
		}
	}
}

func WithTranslator(t normalize.Translator) Option {
	return func(e *Extractor) {
		if t != nil {
			e.packages = normalize.PackageTypes{Translator: t}
		}
	}
}

func WithDateParser(p normalize.DateParser) Option {
	return func(e *Extractor) {
		if p != nil {
			e.dates = p
		}
	}
}

func NewExtractor(logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		logger:    logger,
		countries: normalize.RegionResolver{},
		dates:     normalize.LayoutDateParser{},
	}
	if tr, err := normalize.NewCatalogTranslator(normalize.DefaultLocale); err == nil {
		e.packages = normalize.PackageTypes{Translator: tr}
	}
	for _, o := range opts {
		o(e)
	}
	return e
}
