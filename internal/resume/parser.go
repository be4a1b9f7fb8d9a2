package resume

import (
	"regexp"
	"strings"
)

// section identifies the active bucket during the line scan.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionExperience
	sectionEducation
	sectionSkills
	sectionLanguages
)

// sectionTrigger switches the scan to a section when any of its markers
// appears (case-insensitive substring) in a line. The triggering line is
// consumed as a header and never appended as content. Order matters: the
// first matching trigger wins, so "professional experience" is listed under
// experience even though it also contains "professional".
type sectionTrigger struct {
	target  section
	markers []string
}

var sectionTriggers = []sectionTrigger{
	{sectionExperience, []string{"expérience", "experience", "professional experience"}},
	{sectionEducation, []string{"formation", "éducation", "education", "academic"}},
	{sectionSkills, []string{"compétences", "competences", "skills", "technical skills"}},
	{sectionLanguages, []string{"langues", "languages"}},
	{sectionSummary, []string{"résumé", "summary", "profil", "profile"}},
}

// locationMarkers is a coarse city/country allow-list for the header zone.
var locationMarkers = []string{"France", "Paris", "Lyon", "UK", "London", "New York"}

var phoneRe = regexp.MustCompile(`\+?[0-9\s\-\(\)]{10,}`)

const headerZoneLines = 10

// headerRule assigns one header field from a line. Rules run in order on
// every unconsumed header-zone line; the first rule whose field is still
// empty and whose predicate matches claims the line.
type headerRule struct {
	assigned func(*Parsed) bool
	match    func(*Parsed, string) bool
	assign   func(*Parsed, string)
}

var headerRules = []headerRule{
	{
		assigned: func(p *Parsed) bool { return p.Name != "" },
		match: func(_ *Parsed, line string) bool {
			lower := strings.ToLower(line)
			return len(line) > 3 && len(line) < 50 &&
				line == strings.ToUpper(line) &&
				!strings.Contains(line, "@") && !strings.Contains(line, "http") &&
				!strings.Contains(lower, "cv") && !strings.Contains(lower, "resume")
		},
		assign: func(p *Parsed, line string) { p.Name = line },
	},
	{
		assigned: func(p *Parsed) bool { return p.Title != "" },
		match: func(p *Parsed, line string) bool {
			return p.Name != "" && len(line) > 5 && len(line) < 100 &&
				!strings.Contains(line, "@") && !strings.Contains(line, "http") &&
				line != p.Name
		},
		assign: func(p *Parsed, line string) { p.Title = line },
	},
	{
		assigned: func(p *Parsed) bool { return p.Email != "" },
		match:    func(_ *Parsed, line string) bool { return strings.Contains(line, "@") },
		assign:   func(p *Parsed, line string) { p.Email = line },
	},
	{
		assigned: func(p *Parsed) bool { return p.Phone != "" },
		match:    func(_ *Parsed, line string) bool { return phoneRe.MatchString(line) },
		assign:   func(p *Parsed, line string) { p.Phone = line },
	},
	{
		assigned: func(p *Parsed) bool { return p.Location != "" },
		match: func(_ *Parsed, line string) bool {
			if len(line) <= 3 || len(line) >= 50 {
				return false
			}
			for _, marker := range locationMarkers {
				if strings.Contains(line, marker) {
					return true
				}
			}
			return false
		},
		assign: func(p *Parsed, line string) { p.Location = line },
	},
}

// Parse scans resume text line by line and buckets content into header
// fields and sections. It is a pure function, total over all inputs:
// unrecognized structure degrades to empty fields, never an error. The
// scoring engine is keyword-based, so a missed field does not corrupt
// downstream results.
func Parse(text string) Parsed {
	parsed := Parsed{RawText: text}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	current := sectionNone
	inHeader := true
	var summaryBuf []string

	for i, line := range lines {
		if target, ok := matchSection(line); ok {
			current = target
			inHeader = false
			continue
		}

		if inHeader && i < headerZoneLines {
			if applyHeaderRules(&parsed, line) {
				continue
			}
		}

		switch current {
		case sectionExperience:
			if len(line) > 10 {
				parsed.Experience = append(parsed.Experience, line)
			}
		case sectionEducation:
			if len(line) > 10 {
				parsed.Education = append(parsed.Education, line)
			}
		case sectionSkills:
			if len(line) > 3 {
				parsed.Skills = append(parsed.Skills, splitSkills(line)...)
			}
		case sectionLanguages:
			if len(line) > 5 {
				parsed.Languages = append(parsed.Languages, line)
			}
		case sectionSummary:
			if len(line) > 20 {
				summaryBuf = append(summaryBuf, line)
			}
		}
	}

	parsed.Summary = strings.TrimSpace(strings.Join(summaryBuf, " "))
	return parsed
}

func matchSection(line string) (section, bool) {
	lower := strings.ToLower(line)
	for _, trigger := range sectionTriggers {
		for _, marker := range trigger.markers {
			if strings.Contains(lower, marker) {
				return trigger.target, true
			}
		}
	}
	return sectionNone, false
}

func applyHeaderRules(parsed *Parsed, line string) bool {
	for _, rule := range headerRules {
		if rule.assigned(parsed) {
			continue
		}
		if rule.match(parsed, line) {
			rule.assign(parsed, line)
			return true
		}
	}
	return false
}

// splitSkills breaks a skills line on commas, bullets, dashes and
// semicolons, keeping trimmed tokens longer than 2 characters.
func splitSkills(line string) []string {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '•' || r == '-' || r == ';'
	})
	var out []string
	for _, p := range parts {
		if token := strings.TrimSpace(p); len(token) > 2 {
			out = append(out, token)
		}
	}
	return out
}
