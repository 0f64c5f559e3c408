package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

const utf8Family = "body"

// PDFRenderer lays the plain document out on A4 pages. Without a font file
// it uses the cp1252 core fonts, which cannot show non-Latin text.
type PDFRenderer struct {
	now      func() time.Time
	fontPath string
}

// NewPDFRenderer creates a renderer stamping documents with now(). fontPath
// optionally names a TrueType font embedded for UTF-8 text.
func NewPDFRenderer(now func() time.Time, fontPath string) PDFRenderer {
	if now == nil {
		now = time.Now
	}
	return PDFRenderer{now: now, fontPath: fontPath}
}

// fonts registers the body font and returns its family with a text encoder
func (r PDFRenderer) fonts(pdf *fpdf.Fpdf) (string, func(string) string) {
	if r.fontPath == "" {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	}
	for _, style := range []string{"", "B", "I"} {
		pdf.AddUTF8Font(utf8Family, style, filepath.Base(r.fontPath))
	}
	return utf8Family, func(s string) string { return s }
}

func (r PDFRenderer) Render(record entities.MinutesRecord) ([]byte, error) {
	fontDir := ""
	if r.fontPath != "" {
		fontDir = filepath.Dir(r.fontPath)
	}
	pdf := fpdf.New("P", "mm", "A4", fontDir)
	pdf.SetTitle("Meeting Minutes - "+record.MeetingInfo.Title, true)
	pdf.SetCreationDate(r.now())
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	family, tr := r.fonts(pdf)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("loading pdf font: %w", err)
	}
	pdf.AddPage()

	lines := strings.Split(plainDocument(record), "\n")
	pdf.SetFont(family, "B", 16)
	pdf.MultiCell(0, 8, tr(lines[0]), "", "L", false)
	pdf.Ln(2)

	for _, line := range lines[1:] {
		switch {
		case isHeading(line):
			pdf.Ln(3)
			pdf.SetFont(family, "B", 13)
			pdf.MultiCell(0, 7, tr(line), "", "L", false)
		case line == "":
			pdf.Ln(2)
		default:
			pdf.SetFont(family, "", 11)
			pdf.MultiCell(0, 5.5, tr(line), "", "L", false)
		}
	}

	pdf.Ln(6)
	pdf.SetFont(family, "I", 9)
	pdf.MultiCell(0, 5, "Generated on "+r.now().Format(timestampLayout), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isHeading(line string) bool {
	switch line {
	case "Summary:", "Key Decisions:", "Action Items:", "Next Steps:", "Full Transcript:":
		return true
	}
	return false
}
