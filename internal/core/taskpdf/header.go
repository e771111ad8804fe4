package taskpdf

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
)

// Header carries the reference fields from the top of a task sheet.
type Header struct {
	OrderReference   *string
	TruckNumber      *string
	TrailerNumber    *string
	TransportNumbers string
	FreightPrice     *float64
	FreightCurrency  *string
}

var (
	reTrailerPlate = regexp.MustCompile(`^[A-Z]{2}[0-9]{3}( |$)`)
	reNonLetters   = regexp.MustCompile(`[^a-zA-Z]+`)
)

// ExtractHeader reads the tour, vehicle and freight fields. A missing anchor
// leaves its field nil.
func ExtractHeader(x *lines.Index) Header {
	var h Header

	if v, ok := x.Offset(LabelTourNumber, headerValueOffset); ok {
		h.OrderReference = ptr(strings.Trim(v, "* "))
	}

	truckIdx, truckOK := x.FindFirstEqual(LabelTruckTrailer)
	if truckOK {
		if v, ok := x.At(truckIdx + headerValueOffset); ok {
			h.TruckNumber = ptr(strings.TrimSpace(v))
		}
	}

	// the trailer plate is somewhere between the truck and vehicle type labels
	if vehicleIdx, ok := x.FindFirstEqual(LabelVehicleType); truckOK && ok {
		if i, ok := x.FindFirstBetween(truckIdx, vehicleIdx, reTrailerPlate.MatchString); ok {
			line, _ := x.At(i)
			token, _, _ := strings.Cut(line, " ")
			h.TrailerNumber = ptr(token)
		}
	}

	h.TransportNumbers = joinNonEmpty(transportNumberSeparator, h.TruckNumber, h.TrailerNumber)

	if raw, ok := x.Offset(LabelFreightRate, headerValueOffset); ok {
		h.FreightCurrency = ptr(reNonLetters.ReplaceAllString(raw, ""))
		h.FreightPrice = normalize.ParseDecimal(normalize.StripNumeric(raw))
	}

	return h
}

func ptr[T any](v T) *T { return &v }

func joinNonEmpty(sep string, parts ...*string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != nil && *p != "" {
			kept = append(kept, *p)
		}
	}
	return strings.Join(kept, sep)
}
