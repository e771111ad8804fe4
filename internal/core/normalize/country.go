package normalize

import (
	"strings"

	"golang.org/x/text/language"
)

// CountryResolver maps the letters found in front of a postal code to an ISO 3166 code.
type CountryResolver interface {
	Resolve(letters string) (string, bool)
}

// vehicleCodes are international vehicle registration codes that differ from ISO alpha-2.
var vehicleCodes = map[string]string{
	"A":  "AT",
	"B":  "BE",
	"D":  "DE",
	"E":  "ES",
	"F":  "FR",
	"H":  "HU",
	"I":  "IT",
	"L":  "LU",
	"M":  "MT",
	"N":  "NO",
	"P":  "PT",
	"S":  "SE",
	"V":  "VA",
	"FL": "LI",
	"UK": "GB",
}

// RegionResolver accepts vehicle registration letters and ISO alpha-2 codes.
type RegionResolver struct{}

func (RegionResolver) Resolve(letters string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(letters))
	if code == "" {
		return "", false
	}
	if iso, ok := vehicleCodes[code]; ok {
		code = iso
	}
	if len(code) != 2 {
		return "", false
	}
	r, err := language.ParseRegion(code)
	if err != nil {
		return "", false
	}
	r = r.Canonicalize()
	if !r.IsCountry() {
		return "", false
	}
	return r.String(), true
}
