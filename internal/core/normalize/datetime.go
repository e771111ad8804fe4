package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

// ISOLayout renders instants in UTC with microseconds.
const ISOLayout = "2006-01-02T15:04:05.000000Z"

var ErrUnparseableDate = errors.New("unparseable date")

// DateParser turns a "date[ time]" token into an instant.
type DateParser interface {
	Parse(token string) (time.Time, error)
}

// LayoutDateParser understands dd.mm.yyyy, dd.mm.yy, dd.mm. and dd.mm, optionally
// followed by H, HH:MM or HH:MM:SS. Dates without a year take ReferenceYear
// (current year when zero).
type LayoutDateParser struct {
	Location      *time.Location
	ReferenceYear int
}

func (p LayoutDateParser) Parse(token string) (time.Time, error) {
	token = strings.TrimSpace(token)
	datePart, clock, _ := strings.Cut(token, " ")

	fields := strings.Split(strings.TrimSuffix(datePart, "."), ".")
	switch len(fields) {
	case 2:
		fields = append(fields, strconv.Itoa(p.year()))
	case 3:
		if len(fields[2]) == 2 {
			fields[2] = "20" + fields[2]
		}
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, token)
	}

	value := strings.Join(fields, ".")
	layout := "2.1.2006"
	if clock = strings.TrimSpace(clock); clock != "" {
		value += " " + clock
		switch strings.Count(clock, ":") {
		case 0:
			layout += " 15"
		case 1:
			layout += " 15:04"
		case 2:
			layout += " 15:04:05"
		default:
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, token)
		}
	}

	t, err := time.ParseInLocation(layout, value, p.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnparseableDate, err)
	}
	return t, nil
}

func (p LayoutDateParser) year() int {
	if p.ReferenceYear > 0 {
		return p.ReferenceYear
	}
	return time.Now().In(p.location()).Year()
}

func (p LayoutDateParser) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// date, optional start time, optional "-end time"
var reDateWindow = regexp.MustCompile(`^([0-9.]+) ?([0-9:]+)?-?([0-9:]+)?$`)

// ParseTimeWindow splits a "DATE[ TIME][-TIME]" token and parses each side on its
// own; a side that fails to parse stays nil. A token that does not have the shape
// yields an empty window.
func ParseTimeWindow(token string, parser DateParser) entity.TimeWindow {
	m := reDateWindow.FindStringSubmatch(token)
	if m == nil {
		return entity.TimeWindow{}
	}

	fromToken, toToken := m[1], m[1]
	if m[2] != "" {
		fromToken += " " + m[2]
	}
	if m[3] != "" {
		toToken += " " + m[3]
	}

	return entity.NewTimeWindow(parseInstant(parser, fromToken), parseInstant(parser, toToken))
}

func parseInstant(parser DateParser, token string) *string {
	t, err := parser.Parse(token)
	if err != nil {
		return nil
	}
	s := t.UTC().Format(ISOLayout)
	return &s
}
