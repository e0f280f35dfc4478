// Package significance classifies clinical-significance labels into a fixed
// set of coarse classes used by the track aggregation pipeline.
package significance

import (
	"regexp"
	"strings"
)

// Class is a coarse clinical-significance bucket for a variant.
type Class string

const (
	Pathogenic Class = "pathogenic"
	Benign     Class = "benign"
	Uncertain  Class = "uncertain"
	Predicted  Class = "predicted"
)

// Classes returns all classes in their canonical display order.
func Classes() []Class {
	return []Class{Pathogenic, Benign, Uncertain, Predicted}
}

// Valid reports whether c is one of the four known classes.
func Valid(c Class) bool {
	switch c {
	case Pathogenic, Benign, Uncertain, Predicted:
		return true
	}
	return false
}

// Coerce maps any unknown class value to Predicted.
func Coerce(c Class) Class {
	if Valid(c) {
		return c
	}
	return Predicted
}

var (
	rePathogenic = regexp.MustCompile(`(?i)\blikely\s*pathogenic\b|\bpathogenic\b`)
	reBenign     = regexp.MustCompile(`(?i)\blikely\s*benign\b|\bbenign\b`)
	reUncertain  = regexp.MustCompile(`(?i)\bVUS\b|\buncertain\b|\bconflicting\b`)
	rePredicted  = regexp.MustCompile(`(?i)\b(predicted|computational|in\s*silico)\b`)

	// Weak secondary signal. Low precision: a description mentioning a
	// disease is not evidence of pathogenicity, but the heuristic is kept
	// unchanged from the established behavior. Do not extend the word list.
	reDiseaseWord = regexp.MustCompile(`(?i)\b(disease|cancer|tumou?r)\b`)
)

// ClassifyText classifies a free-text feature description.
// Patterns are checked in strict priority order; pathogenic wins over benign,
// benign over uncertain, and so on. Empty or blank input is Predicted.
func ClassifyText(text string) Class {
	t := strings.TrimSpace(text)
	if t == "" {
		return Predicted
	}
	switch {
	case rePathogenic.MatchString(t):
		return Pathogenic
	case reBenign.MatchString(t):
		return Benign
	case reUncertain.MatchString(t):
		return Uncertain
	case rePredicted.MatchString(t):
		return Predicted
	case reDiseaseWord.MatchString(t):
		return Pathogenic
	}
	return Predicted
}

// ClassifyTokens classifies a controlled-vocabulary significance list, as
// returned by the EBI Proteins API (clinicalSignificances). Tokens are joined
// and matched by substring in priority order. Empty or nil input is Predicted.
func ClassifyTokens(tokens []string) Class {
	if len(tokens) == 0 {
		return Predicted
	}
	t := strings.ToLower(strings.Join(tokens, " "))
	switch {
	case strings.Contains(t, "pathogenic") || strings.Contains(t, "likely_pathogenic"):
		return Pathogenic
	case strings.Contains(t, "benign") || strings.Contains(t, "likely_benign"):
		return Benign
	case strings.Contains(t, "uncertain") || strings.Contains(t, "vus") || strings.Contains(t, "conflicting"):
		return Uncertain
	}
	return Predicted
}
