// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     textproc
// Description: Rule-based text cleanup, the fallback when no LLM is available
// License:     MIT
// ============================================================================

package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Spanish filler words dropped during rule-based cleanup. Only removed as
// standalone words; "esteban" must not lose its "este".
var fillerWords = map[string]bool{
	"este":  true,
	"eh":    true,
	"ehh":   true,
	"mmm":   true,
	"mm":    true,
	"um":    true,
	"uhm":   true,
	"ah":    true,
	"oh":    true,
	"bueno": true,
	"pues":  true,
}

// Fillers spanning more than one word cannot be matched per token; they are
// stripped from the text before the word walk.
var multiWordFillers = regexp.MustCompile(`(?i)\bo sea\b[.,]?`)

// SimpleCleanup applies rule-based tidying to a raw transcript: filler
// removal, stutter collapse, capitalization and a terminal period.
func SimpleCleanup(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	text = multiWordFillers.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	kept := words[:0]
	prev := ""
	for _, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,;:!?"))
		if fillerWords[key] {
			continue
		}
		// collapse dictation stutter ("el el código")
		if key != "" && key == prev {
			continue
		}
		prev = key
		kept = append(kept, w)
	}
	text = strings.Join(kept, " ")

	text = multiSpace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	text = Capitalize(text)

	last, _ := utf8.DecodeLastRuneInString(text)
	switch last {
	case '.', '!', '?', ':', ';', ',':
	default:
		text += "."
	}

	return text
}

// Capitalize upper-cases the first letter, leaving the rest untouched.
func Capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// Postprocess runs the corrections applied to every pipeline result right
// before injection, whatever path produced it.
func Postprocess(text string) string {
	text = CorrectTerms(text)
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
