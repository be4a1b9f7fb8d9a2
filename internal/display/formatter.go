// Package display classifies optimized-CV text into typed lines for the
// on-screen preview. The upstream rewrite collaborator emits plain text with
// an inline <B>...</B> bold convention and occasionally stray Markdown
// asterisks or a conversational sign-off; this package normalizes all of
// that into a render-ready line sequence.
package display

import "strings"

// Kind labels the presentation role of a formatted line.
type Kind string

const (
	KindTitle    Kind = "title"
	KindContact  Kind = "contact"
	KindHeadline Kind = "headline"
	KindSection  Kind = "section"
	KindBullet   Kind = "bullet"
	KindBody     Kind = "body"
)

// Span is a run of text within a line, optionally bold.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Line is one display line with its classification and formatted spans.
type Line struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
	Spans []Span `json:"spans"`
}

// sectionTitles is the canonical whitelist of exact section headers the
// rewrite prompt asks for (case-sensitive on purpose).
var sectionTitles = map[string]struct{}{
	"PROFESSIONAL SUMMARY":        {},
	"EDUCATION":                   {},
	"PROFESSIONAL EXPERIENCE":     {},
	"TECHNICAL SKILLS":            {},
	"CERTIFICATIONS & ACHIEVEMENTS": {},
	"EXPERIENCE PROFESSIONNELLE":  {},
	"FORMATION":                   {},
	"COMPETENCES":                 {},
	"COMPÉTENCES":                 {},
}

// closingPhrases flags conversational sign-offs the generator sometimes
// appends; those lines must never render on a printed resume.
var closingPhrases = []string{
	"merci", "thank you", "cordialement", "sincerely", "salutations", "regards",
	"conclusion", "en résumé", "in summary", "finalement",
	"pour finir", "to conclude", "par conséquent", "consequently",
	"n'hésitez pas", "don't hesitate", "contactez-moi", "contact me",
	"ce cv est optimisé", "this cv is optimized", "optimisé pour tenir", "optimized to fit",
}

// FormatLines classifies each non-empty line of optimized CV text.
// Rules apply top to bottom, first match wins. The formatter never fails:
// anything unrecognized becomes a body line, so no visible text is dropped
// beyond blank lines and the closing-phrase blacklist.
func FormatLines(text string) []Line {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	var out []Line
	for i, line := range lines {
		if isClosingPhrase(line) {
			continue
		}
		out = append(out, Line{
			Kind:  classify(line, i),
			Text:  plainText(line),
			Spans: formatSpans(line),
		})
	}
	return out
}

func classify(line string, index int) Kind {
	if index == 0 && isNameLine(line) {
		return KindTitle
	}
	if strings.Contains(line, "@") || strings.Contains(line, "|") ||
		strings.Contains(line, "LinkedIn") || strings.Contains(line, "http") {
		return KindContact
	}
	if index == 1 && !isSectionTitle(line) &&
		!strings.Contains(line, "PROFESSIONAL") && !strings.Contains(line, "EXPERIENCE") {
		return KindHeadline
	}
	if isSectionTitle(line) {
		return KindSection
	}
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") {
		return KindBullet
	}
	return KindBody
}

func isNameLine(line string) bool {
	return len(line) > 3 && len(line) < 50 &&
		line == strings.ToUpper(line) &&
		!strings.Contains(line, "@") &&
		!isSectionTitle(line)
}

func isSectionTitle(line string) bool {
	_, ok := sectionTitles[line]
	return ok
}

func isClosingPhrase(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range closingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// formatSpans splits a line on <B>...</B> markers into plain and bold spans.
// Stray asterisks are stripped, not bolded: only the explicit <B> convention
// produces bold output, so leftover Markdown emphasis from the generator
// disappears instead of leaking literal stars into the render.
func formatSpans(line string) []Span {
	var spans []Span
	rest := line
	for {
		start := strings.Index(rest, "<B>")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+3:], "</B>")
		if end < 0 {
			break
		}
		if before := stripStars(rest[:start]); before != "" {
			spans = append(spans, Span{Text: before})
		}
		if bold := stripStars(rest[start+3 : start+3+end]); bold != "" {
			spans = append(spans, Span{Text: bold, Bold: true})
		}
		rest = rest[start+3+end+4:]
	}
	if tail := stripStars(rest); tail != "" {
		spans = append(spans, Span{Text: tail})
	}
	return spans
}

func plainText(line string) string {
	var b strings.Builder
	for _, span := range formatSpans(line) {
		b.WriteString(span.Text)
	}
	return strings.TrimSpace(b.String())
}

func stripStars(s string) string {
	return strings.ReplaceAll(s, "*", "")
}
