package ats

import (
	"math"
	"math/rand"
	"regexp"
	"strings"
)

// FloorPolicy controls the post-processing applied to a computed score.
type FloorPolicy int

const (
	// FloorNone returns the computed score unchanged.
	FloorNone FloorPolicy = iota
	// FloorOptimizedMinimum replaces any score below 72 with a pseudo-random
	// value in [72,80). This is a product rule for post-generation resumes
	// ("your optimized score improved"), kept as an explicit policy switch so
	// the unmodified score stays testable on its own.
	FloorOptimizedMinimum
)

const (
	optimizedFloor     = 72
	optimizedFloorSpan = 8
	fuzzyThreshold     = 0.7
)

// technicalKeywords and actionVerbs feed the optimized-path structural bonus.
var technicalKeywords = []string{
	"python", "javascript", "react", "node", "sql",
	"excel", "powerpoint", "leadership", "management", "communication",
}

var actionVerbs = []string{
	"développé", "créé", "géré", "dirigé", "amélioré",
	"augmenté", "réduit", "optimisé", "implémenté", "conçu",
}

var (
	phoneDigitsRe    = regexp.MustCompile(`\d{10,}`)
	quantificationRe = regexp.MustCompile(`(?i)\d+%|\d+\+|\d+[km]?€|\d+\s*(ans?|années?|mois)`)
)

// Score compares a resume against a job description and returns an integer
// compatibility score in [0,100]. The optimized floor policy additionally
// enables fuzzy keyword matching, the technical-keyword and action-verb
// bonuses and the 1.2 keyword boost, matching the richer scoring used on
// generated resumes.
func Score(resumeText, jobText string, policy FloorPolicy) int {
	final := baseScore(resumeText, jobText, policy)
	if policy == FloorOptimizedMinimum && final < optimizedFloor {
		final = optimizedFloor + rand.Float64()*optimizedFloorSpan
	}
	return int(math.Round(final))
}

func baseScore(resumeText, jobText string, policy FloorPolicy) float64 {
	jobKeywords := ExtractKeywords(jobText)
	resumeKeywords := ExtractKeywords(resumeText)
	if len(jobKeywords) == 0 || len(resumeKeywords) == 0 {
		return 0
	}

	optimized := policy == FloorOptimizedMinimum

	matchScore := 0
	totalWeight := 0
	for i, keyword := range jobKeywords {
		weight := len(jobKeywords) - i
		if weight < 1 {
			weight = 1
		}
		totalWeight += weight
		if matchesAny(keyword, resumeKeywords, optimized) {
			matchScore += weight
		}
	}
	matchPercentage := 0.0
	if totalWeight > 0 {
		matchPercentage = float64(matchScore) / float64(totalWeight) * 100
	}

	structure := structuralBonus(resumeText, optimized)

	boost := 1.1
	if optimized {
		boost = 1.2
	}
	keywordScore := math.Min(100, matchPercentage*boost)
	structureBonus := math.Min(50, float64(structure))

	return math.Min(100, math.Max(0, keywordScore*0.6+structureBonus*0.4))
}

// matchesAny reports whether a job keyword is covered by any resume keyword:
// substring containment in either direction, or (optimized path only) a
// Levenshtein similarity above the fuzzy threshold.
func matchesAny(keyword string, resumeKeywords []string, fuzzy bool) bool {
	for _, rk := range resumeKeywords {
		if strings.Contains(rk, keyword) || strings.Contains(keyword, rk) {
			return true
		}
	}
	if !fuzzy {
		return false
	}
	for _, rk := range resumeKeywords {
		if Similarity(rk, keyword) > fuzzyThreshold {
			return true
		}
	}
	return false
}

// structuralBonus scores resume shape: canonical sections, contact info,
// quantified achievements, and length. It inspects the raw text, not the
// keyword sets, so a resume with no scoreable keywords still earns it.
func structuralBonus(resumeText string, optimized bool) int {
	lower := strings.ToLower(resumeText)
	bonus := 0

	if strings.Contains(lower, "professional summary") || strings.Contains(lower, "résumé") {
		bonus += 15
	}
	if strings.Contains(lower, "experience") || strings.Contains(lower, "expérience") {
		bonus += 20
	}
	if strings.Contains(lower, "education") || strings.Contains(lower, "formation") {
		bonus += 15
	}
	if strings.Contains(lower, "skills") || strings.Contains(lower, "compétences") {
		bonus += 15
	}

	if strings.Contains(resumeText, "@") {
		bonus += 8
	}
	if phoneDigitsRe.MatchString(resumeText) {
		bonus += 8
	}
	if strings.Contains(lower, "linkedin") {
		bonus += 8
	}

	if quantified := len(quantificationRe.FindAllString(resumeText, -1)); quantified > 0 {
		extra := quantified * 2
		if extra > 15 {
			extra = 15
		}
		bonus += extra
	}

	if optimized {
		for _, kw := range technicalKeywords {
			if strings.Contains(lower, kw) {
				bonus += 3
			}
		}
		for _, verb := range actionVerbs {
			if strings.Contains(lower, verb) {
				bonus += 2
			}
		}
	}

	if len(resumeText) < 500 {
		bonus -= 10
	}
	if len(resumeText) > 3000 {
		bonus -= 5
	}
	return bonus
}
