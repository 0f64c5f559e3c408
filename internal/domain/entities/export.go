package entities

import (
	"sort"
	"strings"
)

// ExportFormat identifies a rendered payload kind
type ExportFormat string

const (
	FormatJSON ExportFormat = "JSON"
	FormatHTML ExportFormat = "HTML"
	FormatPDF  ExportFormat = "PDF"
	FormatTXT  ExportFormat = "TXT"
)

// ParseFormats upper-cases identifiers and expands comma-separated entries.
// Unknown identifiers are kept; the exporter skips them.
func ParseFormats(raw []string) []ExportFormat {
	out := make([]ExportFormat, 0, len(raw))
	seen := make(map[ExportFormat]bool, len(raw))
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			f := ExportFormat(strings.ToUpper(strings.TrimSpace(part)))
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// MIMEType returns the content type served for the format
func (f ExportFormat) MIMEType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain"
	}
}

// FileName returns the download name for the format
func (f ExportFormat) FileName() string {
	return "meeting_minutes." + strings.ToLower(string(f))
}

// ExportBundle maps a format to its rendered bytes
type ExportBundle map[ExportFormat][]byte

// Formats returns the bundle keys in canonical order
func (b ExportBundle) Formats() []ExportFormat {
	out := make([]ExportFormat, 0, len(b))
	for f := range b {
		out = append(out, f)
	}
	return SortFormats(out)
}

var formatRank = map[ExportFormat]int{FormatJSON: 0, FormatHTML: 1, FormatPDF: 2, FormatTXT: 3}

// SortFormats orders formats JSON, HTML, PDF, TXT with unknown identifiers
// last in lexical order. The slice is sorted in place and returned.
func SortFormats(formats []ExportFormat) []ExportFormat {
	sort.SliceStable(formats, func(i, j int) bool {
		ri, iKnown := formatRank[formats[i]]
		rj, jKnown := formatRank[formats[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return formats[i] < formats[j]
		}
	})
	return formats
}
