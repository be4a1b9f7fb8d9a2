package llm

import "strings"

// Supported prompt languages. French is the default: the product's primary
// audience writes French job offers, and a tie should not flip the output
// language.
const (
	LanguageFrench  = "french"
	LanguageEnglish = "english"
	LanguageDutch   = "dutch"
)

var (
	frenchMarkers = []string{
		"recherche", "poste", "entreprise", "expérience", "compétences",
		"mission", "profil", "candidat", "équipe", "développement",
	}
	englishMarkers = []string{
		"looking for", "position", "company", "experience", "skills",
		"mission", "profile", "candidate", "team", "development",
	}
	dutchMarkers = []string{
		"zoeken", "functie", "bedrijf", "ervaring", "vaardigheden",
		"missie", "profiel", "kandidaat", "team", "ontwikkeling",
	}
)

// DetectLanguage guesses the language of a job description by counting
// marker keywords per language. Dutch wins only on a strict majority, then
// English; anything else falls back to French.
func DetectLanguage(jobDescription string) string {
	lower := strings.ToLower(jobDescription)

	french := countMarkers(lower, frenchMarkers)
	english := countMarkers(lower, englishMarkers)
	dutch := countMarkers(lower, dutchMarkers)

	switch {
	case dutch > french && dutch > english:
		return LanguageDutch
	case english > french && english > dutch:
		return LanguageEnglish
	default:
		return LanguageFrench
	}
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}
