package taskpdf

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/freight-orders/constants"
	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
)

var incotermPatterns = compileIncoterms(constants.Incoterms)

func compileIncoterms(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return out
}

// ExtractIncoterms lists every incoterm mentioned as a whole word anywhere in
// the document, in vocabulary order. Empty when none is found.
func ExtractIncoterms(x *lines.Index) string {
	seen := make(map[string]struct{})
	var found []string
	for i, re := range incotermPatterns {
		if _, ok := x.FindFirstMatch(re); !ok {
			continue
		}
		term := strings.ToUpper(constants.Incoterms[i])
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		found = append(found, term)
	}
	return strings.Join(found, incotermSeparator)
}
