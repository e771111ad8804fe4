package constants

import "strings"

const (
	PDF = "PDF"
	TXT = "TXT"
)

// FileTypes holds the source formats a task sheet can arrive in.
var FileTypes = []string{PDF, TXT}

// AllowedExtensions holds the default file extensions picked up by directory ingest.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to one of FileTypes, or "" when unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "txt":
		return TXT
	default:
		return ""
	}
}
