// Package lines provides a read-only view over the text lines of one document.
package lines

import (
	"regexp"
	"strings"
)

// Index is immutable after construction and safe for concurrent readers.
type Index struct {
	lines []string
}

// New copies lines so later changes by the caller do not leak in.
func New(lines []string) *Index {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Index{lines: cp}
}

func (x *Index) Len() int { return len(x.lines) }

// Lines returns a copy of the underlying sequence.
func (x *Index) Lines() []string {
	return x.Slice(0, len(x.lines))
}

// At returns the line at i; ok is false when i is out of range.
func (x *Index) At(i int) (line string, ok bool) {
	if i < 0 || i >= len(x.lines) {
		return "", false
	}
	return x.lines[i], true
}

// FindFirst returns the first index, scanning from 0, where pred holds.
func (x *Index) FindFirst(pred func(line string, i int) bool) (int, bool) {
	for i, l := range x.lines {
		if pred(l, i) {
			return i, true
		}
	}
	return -1, false
}

// FindFirstEqual finds the first line exactly equal to label.
func (x *Index) FindFirstEqual(label string) (int, bool) {
	return x.FindFirst(func(l string, _ int) bool { return l == label })
}

// FindFirstPrefix finds the first line starting with prefix.
func (x *Index) FindFirstPrefix(prefix string) (int, bool) {
	return x.FindFirst(func(l string, _ int) bool { return strings.HasPrefix(l, prefix) })
}

// FindFirstContaining finds the first line containing sub.
func (x *Index) FindFirstContaining(sub string) (int, bool) {
	return x.FindFirst(func(l string, _ int) bool { return strings.Contains(l, sub) })
}

// FindFirstMatch finds the first line matched by re.
func (x *Index) FindFirstMatch(re *regexp.Regexp) (int, bool) {
	return x.FindFirst(func(l string, _ int) bool { return re.MatchString(l) })
}

// FindFirstBetween restricts pred to the open interval (lo, hi).
func (x *Index) FindFirstBetween(lo, hi int, pred func(line string) bool) (int, bool) {
	return x.FindFirst(func(l string, i int) bool { return i > lo && i < hi && pred(l) })
}

// Offset reads the line delta positions after the first exact occurrence of label.
func (x *Index) Offset(label string, delta int) (string, bool) {
	i, ok := x.FindFirstEqual(label)
	if !ok {
		return "", false
	}
	return x.At(i + delta)
}

// Slice returns up to length lines starting at start, clamped to the sequence.
func (x *Index) Slice(start, length int) []string {
	if start < 0 {
		start = 0
	}
	if length <= 0 || start >= len(x.lines) {
		return []string{}
	}
	end := start + length
	if end > len(x.lines) {
		end = len(x.lines)
	}
	out := make([]string, end-start)
	copy(out, x.lines[start:end])
	return out
}
