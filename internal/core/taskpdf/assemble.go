package taskpdf

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

// Assemble runs every extractor over seq and merges the results. Callers are
// expected to check IsTaskSheet first. attachmentFilename may be empty.
func (e *Extractor) Assemble(seq []string, attachmentFilename string) (*entity.Order, error) {
	if seq == nil {
		return nil, ErrNoLines
	}
	x := lines.New(seq)

	header := ExtractHeader(x)
	loading, destination := sections(x)

	order := &entity.Order{
		Customer: entity.Customer{
			Side:    customerSide,
			Details: ExtractDetails(x),
		},
		AttachmentFilenames:  attachmentFilenames(attachmentFilename),
		LoadingLocations:     e.ExtractLocations(loading),
		DestinationLocations: e.ExtractLocations(destination),
		Cargos:               e.ExtractCargos(x),
		OrderReference:       header.OrderReference,
		TransportNumbers:     header.TransportNumbers,
		FreightPrice:         header.FreightPrice,
		FreightCurrency:      header.FreightCurrency,
		Incoterms:            ExtractIncoterms(x),
	}
	if c := ExtractContainerInfo(x); !c.IsEmpty() {
		order.Container = &c
	}

	e.logger.Debug("taskpdf.assemble.ok",
		"lines", x.Len(),
		"order_reference", deref(order.OrderReference),
		"loading_locations", len(order.LoadingLocations),
		"destination_locations", len(order.DestinationLocations),
		"incoterms", order.Incoterms,
		"container", order.Container != nil,
	)
	return order, nil
}

// ExtractTaskSheet classifies seq and assembles it when it is a task sheet.
func (e *Extractor) ExtractTaskSheet(seq []string, attachmentFilename string) (*entity.Order, error) {
	if seq == nil {
		return nil, ErrNoLines
	}
	if !IsTaskSheet(seq) {
		return nil, ErrNotTaskSheet
	}
	return e.Assemble(seq, attachmentFilename)
}

func attachmentFilenames(name string) []string {
	if name == "" {
		return []string{}
	}
	return []string{cases.Lower(language.Und).String(name)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
