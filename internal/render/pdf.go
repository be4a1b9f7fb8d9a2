// Package render produces the downloadable PDF from formatted CV lines.
package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"cvbien-backend/internal/display"
)

// Layout constants, A4 portrait in millimetres.
const (
	pageMargin    = 18.0
	bottomLimit   = 279.0
	bulletIndent  = 5.0
	sectionGapTop = 4.0
)

// BuildPDF renders formatted lines into a single-column A4 PDF and returns
// the document bytes. Content that overflows a page continues on the next.
func BuildPDF(lines []display.Line) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	// Core fonts are cp1252; translate so accented French text survives.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range lines {
		switch line.Kind {
		case display.KindTitle:
			doc.SetFont("Helvetica", "B", 18)
			doc.CellFormat(0, 9, tr(line.Text), "", 1, "C", false, 0, "")
		case display.KindContact:
			doc.SetFont("Helvetica", "", 9)
			doc.SetTextColor(90, 90, 90)
			doc.CellFormat(0, 5, tr(line.Text), "", 1, "C", false, 0, "")
			doc.SetTextColor(0, 0, 0)
		case display.KindHeadline:
			doc.SetFont("Helvetica", "I", 11)
			doc.CellFormat(0, 6, tr(line.Text), "", 1, "C", false, 0, "")
		case display.KindSection:
			doc.Ln(sectionGapTop)
			doc.SetFont("Helvetica", "B", 12)
			doc.CellFormat(0, 7, tr(line.Text), "B", 1, "L", false, 0, "")
			doc.Ln(1.5)
		case display.KindBullet:
			writeBullet(doc, tr, line)
		default:
			writeSpans(doc, tr, line.Spans, 0)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBullet(doc *fpdf.Fpdf, tr func(string) string, line display.Line) {
	doc.SetFont("Helvetica", "", 10)
	doc.SetX(pageMargin)
	doc.CellFormat(bulletIndent, 5, tr("•"), "", 0, "L", false, 0, "")
	spans := trimBulletMarker(line.Spans)
	writeSpans(doc, tr, spans, bulletIndent)
}

// writeSpans emits one logical line as a sequence of styled cells wrapped
// manually at the printable width.
func writeSpans(doc *fpdf.Fpdf, tr func(string) string, spans []display.Span, indent float64) {
	pageWidth, _ := doc.GetPageSize()
	limit := pageWidth - 2*pageMargin - indent

	for _, span := range spans {
		style := ""
		if span.Bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		for _, chunk := range wrapText(doc, tr(span.Text), limit) {
			if doc.GetX() > pageMargin+indent && doc.GetX()+doc.GetStringWidth(chunk) > pageWidth-pageMargin {
				doc.Ln(5)
				doc.SetX(pageMargin + indent)
			}
			doc.CellFormat(doc.GetStringWidth(chunk)+0.5, 5, chunk, "", 0, "L", false, 0, "")
		}
	}
	doc.Ln(5)
}

// wrapText splits text into chunks no wider than limit, breaking on spaces.
func wrapText(doc *fpdf.Fpdf, text string, limit float64) []string {
	if doc.GetStringWidth(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var current string
	for _, word := range splitWords(text) {
		candidate := current
		if candidate != "" {
			candidate += " "
		}
		candidate += word
		if current != "" && doc.GetStringWidth(candidate) > limit {
			chunks = append(chunks, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func splitWords(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		if r == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// trimBulletMarker drops the leading "•" or "-" marker from the first span;
// the renderer draws its own bullet glyph.
func trimBulletMarker(spans []display.Span) []display.Span {
	if len(spans) == 0 {
		return spans
	}
	out := make([]display.Span, len(spans))
	copy(out, spans)
	text := out[0].Text
	for _, marker := range []string{"•", "-"} {
		if len(text) >= len(marker) && text[:len(marker)] == marker {
			text = text[len(marker):]
			break
		}
	}
	for len(text) > 0 && text[0] == ' ' {
		text = text[1:]
	}
	out[0].Text = text
	return out
}
