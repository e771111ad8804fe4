package taskpdf

import (
	"strings"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

const defaultPackageCount = 1

// ExtractCargos returns the single load of a task sheet.
func (e *Extractor) ExtractCargos(x *lines.Index) []entity.CargoItem {
	item := entity.CargoItem{PackageCount: defaultPackageCount}

	if v, ok := x.Offset(LabelLoad, cargoValueOffset); ok {
		item.Title = ptr(v)
	}
	if v, ok := x.Offset(LabelAmount, cargoValueOffset); ok && v != "" {
		if n := normalize.ParseDecimal(v); n != nil {
			item.PackageCount = *n
		}
	}
	if v, ok := x.Offset(LabelUnit, cargoValueOffset); ok {
		item.PackageType = ptr(e.packages.Map(v))
	}
	if v, ok := x.Offset(LabelWeight, cargoValueOffset); ok && v != "" {
		item.Weight = normalize.ParseDecimal(v)
	}
	if v, ok := x.Offset(LabelLoadingMeter, cargoValueOffset); ok && v != "" {
		item.LDM = normalize.ParseDecimal(v)
	}

	item.Number = joinNonEmpty(cargoNumberSeparator,
		referenceAfter(x, PrefixLoadingReference),
		referenceAfter(x, PrefixUnloadingReference),
	)

	return []entity.CargoItem{item}
}

func referenceAfter(x *lines.Index, prefix string) *string {
	i, ok := x.FindFirstPrefix(prefix)
	if !ok {
		return nil
	}
	line, _ := x.At(i)
	_, value, found := strings.Cut(line, referenceSeparator)
	if !found {
		return nil
	}
	return &value
}
