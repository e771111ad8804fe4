package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var reNonNumeric = regexp.MustCompile(`[^0-9,.]`)

// StripNumeric keeps digits, commas and dots only.
func StripNumeric(s string) string {
	return reNonNumeric.ReplaceAllString(s, "")
}

// ParseDecimal reads a number written with either comma or dot as the decimal
// separator. When both occur, the last one is the decimal separator. When only
// one kind occurs, a single occurrence is decimal and repeated ones group thousands.
// Returns nil when nothing numeric is left.
func ParseDecimal(raw string) *float64 {
	s := StripNumeric(raw)
	if s == "" {
		return nil
	}

	dec := decimalSeparator(s)
	last := -1
	if dec != 0 {
		last = strings.LastIndexByte(s, dec)
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case i == last:
			b.WriteByte('.')
		case c == ',' || c == '.':
			// grouping
		default:
			b.WriteByte(c)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &f
}

func decimalSeparator(s string) byte {
	comma := strings.LastIndexByte(s, ',')
	dot := strings.LastIndexByte(s, '.')
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			return ','
		}
		return '.'
	case comma >= 0:
		if strings.Count(s, ",") == 1 {
			return ','
		}
	case dot >= 0:
		if strings.Count(s, ".") == 1 {
			return '.'
		}
	}
	return 0
}
