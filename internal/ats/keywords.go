package ats

import (
	"sort"
	"strings"
	"unicode"
)

const maxKeywords = 20

// stopWords is a bilingual (French/English) set of low-signal tokens:
// articles, conjunctions, pronouns and common auxiliary verbs.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "mais", "donc", "or", "ni", "car",
		"the", "a", "an", "and", "but", "in", "on", "at", "to", "for", "of", "with", "by", "is", "are", "was", "were",
		"be", "been", "have", "has", "had", "do", "does", "did", "will", "would", "could", "should", "may", "might",
		"je", "tu", "il", "elle", "nous", "vous", "ils", "elles", "mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses",
		"notre", "nos", "votre", "vos", "leur", "leurs", "ce", "cette", "ces", "cet", "que", "qui", "quoi", "où", "quand", "comment", "pourquoi",
	} {
		stopWords[w] = struct{}{}
	}
}

// ExtractKeywords returns the most significant terms of a free-text blob,
// ranked by descending frequency, at most 20 entries. Ties keep the order in
// which tokens were first seen, so the result is deterministic. Empty input
// and stop-word-only input both yield an empty slice; callers must treat
// that as "cannot score", not as an error.
func ExtractKeywords(text string) []string {
	cleaned := normalize(text)
	if cleaned == "" {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Split(cleaned, " ") {
		if len(tok) < 3 {
			continue
		}
		if _, skip := stopWords[tok]; skip {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// normalize lowercases, maps every non-alphanumeric rune to a space and
// collapses whitespace runs.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
