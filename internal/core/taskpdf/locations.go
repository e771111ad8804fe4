package taskpdf

import (
	"regexp"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

// ExtractLocations walks a loading or unloading section in six-line blocks and
// returns one entry per block, in document order.
func (e *Extractor) ExtractLocations(section []string) []entity.LocationEntry {
	x := lines.New(section)
	out := []entity.LocationEntry{}
	for start := 0; start < x.Len(); start += stopBlockSize {
		block := x.Slice(start, stopBlockSize)
		if len(block) < stopMinLines {
			continue
		}
		out = append(out, e.extractLocation(lines.New(block)))
	}
	return out
}

func (e *Extractor) extractLocation(block *lines.Index) entity.LocationEntry {
	datetime, _ := block.At(stopDatetimeOffset)
	address, _ := block.At(stopAddressOffset)
	return entity.LocationEntry{
		CompanyAddress: e.ParseAddress(address),
		Time:           normalize.ParseTimeWindow(datetime, e.dates),
	}
}

// company , street , CC-postal city
var (
	reAddress    = regexp.MustCompile(`(?i)^(.+?)\s*, +(.+?)\s*, +([A-Z]{1,2}-?[0-9]{4,}) +(.+)$`)
	reNonDigits  = regexp.MustCompile(`[^0-9]`)
	reNonLetterI = regexp.MustCompile(`(?i)[^A-Z]`)
)

// ParseAddress splits a stop address line. Title mirrors company. When the line
// does not have the expected shape every field is nil.
func (e *Extractor) ParseAddress(line string) entity.AddressFields {
	m := reAddress.FindStringSubmatch(line)
	if m == nil {
		return entity.AddressFields{}
	}
	company, street, postal, city := m[1], m[2], m[3], m[4]

	var country *string
	if iso, ok := e.countries.Resolve(reNonLetterI.ReplaceAllString(postal, "")); ok {
		country = &iso
	}

	return entity.AddressFields{
		Company:       ptr(company),
		Title:         ptr(company),
		StreetAddress: ptr(street),
		City:          ptr(city),
		PostalCode:    ptr(reNonDigits.ReplaceAllString(postal, "")),
		Country:       country,
	}
}

// sections returns the loading and destination sections, each bounded by its
// opening label and the next section label.
func sections(x *lines.Index) (loading, destination []string) {
	loadIdx, loadOK := x.FindFirstEqual(LabelLoadingSequence)
	unloadIdx, unloadOK := x.FindFirstEqual(LabelUnloadingSequence)
	regardsIdx, regardsOK := x.FindFirstEqual(LabelBestRegards)

	loading, destination = []string{}, []string{}
	if loadOK && unloadOK && unloadIdx > loadIdx {
		loading = x.Slice(loadIdx+1, unloadIdx-1-loadIdx)
	}
	if unloadOK && regardsOK && regardsIdx > unloadIdx {
		destination = x.Slice(unloadIdx+1, regardsIdx-1-unloadIdx)
	}
	return loading, destination
}
