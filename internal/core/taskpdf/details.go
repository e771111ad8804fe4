package taskpdf

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

// detailRule locates a line containing label (any line when label is empty)
// that pattern matches, and reads capture group.
type detailRule struct {
	label   string
	pattern *regexp.Regexp
	group   int
}

func rule(label, pattern string, group int) detailRule {
	return detailRule{label: label, pattern: regexp.MustCompile(pattern), group: group}
}

func (r detailRule) apply(x *lines.Index) (string, bool) {
	i, ok := x.FindFirst(func(l string, _ int) bool {
		return strings.Contains(l, r.label) && r.pattern.MatchString(l)
	})
	if !ok {
		return "", false
	}
	line, _ := x.At(i)
	m := r.pattern.FindStringSubmatch(line)
	return strings.TrimSpace(m[r.group]), true
}

// detailChain is tried in order; the first rule that matches wins.
type detailChain []detailRule

func (c detailChain) resolve(x *lines.Index) *string {
	for _, r := range c {
		if v, ok := r.apply(x); ok {
			return &v
		}
	}
	return nil
}

// Counterparty label vocabulary from Lithuanian, Czech, German and English sheets.
var (
	companyChain = detailChain{
		rule("Vežėjas:", `(?i)Vežėjas:\s*([\pL\pN_\s.-]+)`, 1),
		rule("Dopravce / Spediteur / Forwarder:", `(?i):\s*([\pL\pN_\s.-]+)`, 1),
		rule("To:", `(?i)To:\s*([\pL\pN_\s.-]+)`, 1),
	}
	companyCodeChain = detailChain{
		rule("Į. k./Reg. no.", `(?i)Į\. k\./Reg\. no\.\s*([\pL\pN_]+)`, 1),
		rule("NÁLOŽNÍ LIST / VERLADESCHEIN / LOADING LIST", `\d+`, 0),
	}
	vatCodeChain = detailChain{
		rule("PVM k./VAT No.", `(?i)PVM k\./VAT No\.\s*([\pL\pN_]+)`, 1),
		rule("DIČ:", `(?i)DIČ:([\pL\pN_]+)`, 1),
		rule("USt.-ID:", `(?i)USt\.-ID:\s*([\pL\pN_]+)`, 1),
	}
	emailChain = detailChain{
		rule("Email:", `(?i)Email:\s*([\pL\pN_@.-]+)`, 1),
		rule("El. paštas:", `(?i)El\. paštas:\s*([\pL\pN_@.-]+)`, 1),
	}
	contactPersonChain = detailChain{
		rule("Contactperson:", `(?i)Contactperson:\s*([\pL\pN_\s]+)`, 1),
		rule("Řidič / Fahrer / Driver:", `(?i):\s*([\pL\pN_\s]+)`, 1),
		rule("Kontaktas:", `(?i)Kontaktas:\s*([\pL\pN_\s]+)`, 1),
	}
	streetAddressChain = detailChain{
		rule("Pasikrovimo adresas:", `(?i)Pasikrovimo adresas:\s*([\pL\pN_\s.,#-]+)`, 1),
		rule("Pristatymo adresas:", `(?i)Pristatymo adresas:\s*([\pL\pN_\s.,#-]+)`, 1),
	}
	titleChain = detailChain{
		rule("F.A.O.:", `(?i)F\.A\.O\.:?\s*([\pL\pN_\s]+)`, 1),
		rule("Za / für / on behalf of", `(?i)Za / für / on behalf of\s*([\pL\pN_\s.-]+)`, 1),
	}
	cityChain = detailChain{
		// the last comma-terminated word: "To: Acme GmbH, Hauptstr 5, Berlin, DE" gives Berlin
		rule("To:", `(?i)To:\s*[\pL\pN_\s,]*([\pL\pN_]{2,})\s*,`, 1),
		rule("Pristatymo adresas:", `(?i)[\pL\pN_]+\s*,\s*([\pL\pN_]{2,})\s*,`, 1),
	}
	countryChain = detailChain{
		rule("", `\b([A-Z]{2})\b`, 1),
		rule("Pristatymo adresas:", `(?i),\s*([A-Z]{2})\s*$`, 1),
	}
	postalCodeChain = detailChain{
		// group 1 leaves the separating comma out of the postal code
		rule("Pristatymo adresas:", `(\d{4,5}\s*[A-Z]*)\s*,`, 1),
		rule("To:", `(?i),\s*(\d{4,5}\s*[A-Z]*),`, 1),
	}
	commentChain = detailChain{
		rule("Tournumber:", `(?i)Tournumber:\s*([\pL\pN_*]+)`, 1),
		rule("Prašome įkelti visus CMR/POD/Pristatymo dokumentus", `(?i)Prašome.*$`, 0),
	}
)

// ExtractDetails fills the counterparty fields; a field no rule matches stays nil.
func ExtractDetails(x *lines.Index) entity.CustomerDetails {
	return entity.CustomerDetails{
		Company:       companyChain.resolve(x),
		CompanyCode:   companyCodeChain.resolve(x),
		VATCode:       vatCodeChain.resolve(x),
		Email:         emailChain.resolve(x),
		ContactPerson: contactPersonChain.resolve(x),
		StreetAddress: streetAddressChain.resolve(x),
		Title:         titleChain.resolve(x),
		City:          cityChain.resolve(x),
		Country:       countryChain.resolve(x),
		PostalCode:    postalCodeChain.resolve(x),
		Comment:       commentChain.resolve(x),
	}
}
