package llm

import (
	"regexp"
	"strings"
)

// Header tags the rewrite prompt asks the model to emit. ParseTagged lifts
// their contents to the top of the document in canonical order.
var (
	nameTagRe    = regexp.MustCompile(`(?s)<NAME>(.*?)</NAME>`)
	contactTagRe = regexp.MustCompile(`(?s)<CONTACT>(.*?)</CONTACT>`)
	titleTagRe   = regexp.MustCompile(`(?s)<TITLE>(.*?)</TITLE>`)
	summaryTagRe = regexp.MustCompile(`(?s)<SUMMARY>(.*?)</SUMMARY>`)

	markdownBoldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// ParseTagged reassembles canonical resume text from a tagged model
// response: name, contact, title, then a PROFESSIONAL SUMMARY section, then
// the remaining body with header tags removed. A response without tags comes
// back nearly unchanged, so malformed output degrades gracefully instead of
// failing the generation.
func ParseTagged(response string) string {
	name := firstMatch(nameTagRe, response)
	contact := firstMatch(contactTagRe, response)
	title := firstMatch(titleTagRe, response)
	if title == "" {
		title = "Profil Professionnel"
	}
	summary := firstMatch(summaryTagRe, response)

	body := response
	for _, re := range []*regexp.Regexp{nameTagRe, contactTagRe, titleTagRe, summaryTagRe} {
		body = re.ReplaceAllString(body, "")
	}
	body = strings.TrimSpace(body)
	// The prompt asks for <B>, but models still slip in Markdown emphasis.
	body = markdownBoldRe.ReplaceAllString(body, "<B>$1</B>")

	var b strings.Builder
	for _, part := range []string{name, contact, title} {
		if part != "" {
			b.WriteString(part)
			b.WriteString("\n\n")
		}
	}
	if summary != "" {
		b.WriteString("PROFESSIONAL SUMMARY\n")
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	return strings.TrimSpace(b.String())
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
