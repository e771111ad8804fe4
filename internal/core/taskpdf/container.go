package taskpdf

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/freight-orders/constants"
	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

var reContainerNumber = regexp.MustCompile(`[A-Z]{4}\d{7}`)

// bookingLabels introduce a booking reference.
var bookingLabels = []string{
	"Booking reference",
	"Shipment",
	"Pervežimo užsakymas Nr.",
	"Tournumber",
	"*** F",
}

// shippingLineLabels introduce the carrier name.
var shippingLineLabels = []string{
	"Shipping line",
	"Vežėjas",
	"Dopravce",
	"Forwarder",
}

// knownCarriers print their own name in front of the carrier field. Each new
// carrier needs an entry here.
var knownCarriers = []string{
	"Access Logistic",
	"Delamode",
	"Skoda",
	"Chronopost",
	"Sappi",
	"SWISS KRONO",
}

var (
	bookingPatterns      = labelPatterns(bookingLabels, `\s*[:#* ]*([\w-]+)`)
	shippingLinePatterns = labelPatterns(append(append([]string{}, shippingLineLabels...), knownCarriers...), `\s*:\s*([\w\s.-]+)`)
)

func labelPatterns(labels []string, value string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(labels))
	for i, l := range labels {
		out[i] = regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(l) + `)` + value)
	}
	return out
}

// firstCapture returns the trimmed second group of the first pattern matching line.
func firstCapture(patterns []*regexp.Regexp, line string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2]), true
		}
	}
	return "", false
}

// ExtractContainerInfo scans every line; a later match overwrites an earlier one
// for the same field, since container details are scattered over the sheet.
func ExtractContainerInfo(x *lines.Index) entity.ContainerInfo {
	var c entity.ContainerInfo
	for _, raw := range x.Lines() {
		line := strings.TrimSpace(raw)

		if m := reContainerNumber.FindString(line); m != "" {
			c.ContainerNumber = ptr(m)
		}

		upper := strings.ToUpper(line)
		for _, t := range constants.ContainerTypes {
			if strings.Contains(upper, t) {
				c.ContainerType = ptr(t)
				break
			}
		}

		if v, ok := firstCapture(bookingPatterns, line); ok {
			c.BookingReference = ptr(v)
		}
		if v, ok := firstCapture(shippingLinePatterns, line); ok {
			c.ShippingLine = ptr(v)
		}
	}
	return c
}
