// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     enhance
// Description: Validation of model output before it replaces real text
// License:     MIT
// ============================================================================

package enhance

import (
	"strings"
)

// Small instruction models fail in recognizable ways: they echo the prompt,
// answer in the wrong language, duplicate their own opening, or pad the text
// with commentary. Every rewrite is checked against the input and rejected
// on the first sign of trouble; the caller then keeps the unenhanced text.

var roleMarkers = []string{
	"assistant",
	"system:",
	"user:",
	"<|im_start|>",
	"<|im_end|>",
	"[INST]",
	"[/INST]",
}

var promptLabels = []string{
	"spanish:",
	"english:",
	"translation:",
	"original:",
	"improved:",
	"enhanced:",
	"output:",
	"answer:",
	"here is",
	"here's",
}

// Spanish function words that should not survive a translation into English.
var spanishMarkers = map[string]bool{
	"que":     true,
	"por":     true,
	"está":    true,
	"pero":    true,
	"como":    true,
	"cuando":  true,
	"donde":   true,
	"así":     true,
	"también": true,
	"porque":  true,
	"entonces": true,
}

// CleanResponse strips wrapping quotes and leading label lines from a model
// reply.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)

	for {
		trimmed := false
		for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"«", "»"}} {
			if len(text) >= 2 && strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
				text = strings.TrimSpace(text[len(pair[0]) : len(text)-len(pair[1])])
				trimmed = true
			}
		}
		if !trimmed {
			break
		}
	}

	lower := strings.ToLower(text)
	for _, label := range promptLabels {
		if strings.HasPrefix(lower, label) {
			text = strings.TrimSpace(text[len(label):])
			lower = strings.ToLower(text)
		}
	}

	return text
}

// ValidateEnhancement checks a rewritten English translation against the
// original. It returns the cleaned candidate and whether it is usable.
func ValidateEnhancement(original, candidate string) (string, bool) {
	cleaned := CleanResponse(candidate)

	if len(cleaned) < 3 {
		return cleaned, false
	}

	lower := strings.ToLower(cleaned)
	for _, marker := range roleMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return cleaned, false
		}
	}
	for _, label := range promptLabels {
		if strings.Contains(lower, label) {
			return cleaned, false
		}
	}

	if hasDuplicatedOpening(cleaned) {
		return cleaned, false
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		spanish := 0
		for _, w := range words {
			if spanishMarkers[strings.Trim(w, ".,;:!?")] {
				spanish++
			}
		}
		if float64(spanish)/float64(len(words)) > 0.2 {
			return cleaned, false
		}
	}

	origLen := len(strings.TrimSpace(original))
	if origLen > 0 {
		ratio := float64(len(cleaned)) / float64(origLen)
		if ratio < 0.5 || ratio > 1.5 {
			return cleaned, false
		}
	}

	if wordOverlap(original, cleaned) < 0.5 {
		return cleaned, false
	}

	return cleaned, true
}

// ValidateCleanup checks a cleaned-up Spanish transcript. The rules are
// looser than for translations; the text stays in the same language so
// overlap and contamination checks do not apply.
func ValidateCleanup(original, candidate string) (string, bool) {
	cleaned := CleanResponse(candidate)

	if len(cleaned) < 3 {
		return cleaned, false
	}

	lower := strings.ToLower(cleaned)
	for _, marker := range roleMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return cleaned, false
		}
	}

	if strings.Count(cleaned, "\n") > 2 {
		return cleaned, false
	}

	origLen := len(strings.TrimSpace(original))
	if origLen > 0 && len(cleaned) > origLen*2 {
		return cleaned, false
	}

	return cleaned, true
}

// hasDuplicatedOpening reports whether the first three words reappear later
// in the text, the signature of a model restarting its own answer.
func hasDuplicatedOpening(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < 6 {
		return false
	}
	opening := strings.Join(words[:3], " ")
	joined := strings.Join(words, " ")
	return strings.Count(joined, opening) > 1
}

// wordOverlap returns the fraction of the original's words that appear in
// the candidate.
func wordOverlap(original, candidate string) float64 {
	origWords := strings.Fields(strings.ToLower(original))
	if len(origWords) == 0 {
		return 1.0
	}

	candSet := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(candidate)) {
		candSet[strings.Trim(w, ".,;:!?\"'")] = true
	}

	matched := 0
	for _, w := range origWords {
		if candSet[strings.Trim(w, ".,;:!?\"'")] {
			matched++
		}
	}
	return float64(matched) / float64(len(origWords))
}
