// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     textproc
// Description: Technical term corrections for mis-heard developer vocabulary
// License:     MIT
// ============================================================================

package textproc

import (
	"regexp"
	"strings"
)

// Whisper hears Spanish phonetics, so English developer vocabulary comes out
// mangled in predictable ways. The map below collects the corrections
// observed in real dictation sessions.

var termCorrections = map[string]string{
	// tools and platforms
	"trinme":     "README",
	"rid mi":     "README",
	"git jab":    "GitHub",
	"git hub":    "GitHub",
	"guitjab":    "GitHub",
	"git lab":    "GitLab",
	"douker":     "Docker",
	"doker":      "Docker",
	"cubernetes": "Kubernetes",
	"yenkins":    "Jenkins",

	// languages and formats
	"faison":       "Python",
	"paiton":       "Python",
	"yasón":        "JSON",
	"yason":        "JSON",
	"llamale":      "YAML",
	"llamel":       "YAML",
	"javascrip":    "JavaScript",
	"taipescript":  "TypeScript",
	"ese que ele":  "SQL",
	"esequele":     "SQL",
	"marcdown":     "Markdown",

	// commands and concepts
	"enpiem":      "npm",
	"ene pe eme":  "npm",
	"comit":       "commit",
	"pul recuest": "pull request",
	"pulrequest":  "pull request",
	"merch":       "merge",
	"deplóy":      "deploy",
	"bakend":      "backend",
	"fronend":     "frontend",
	"endpoin":     "endpoint",
	"localjost":   "localhost",
}

// contextualPatterns handle corrections that need surrounding words to be
// safe. Plain map lookups would misfire on ordinary Spanish here.
var contextualPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\barchivo\s+rid\s*mi\b`), "archivo README"},
	{regexp.MustCompile(`(?i)\bhacer\s+(un\s+)?comit\b`), "hacer ${1}commit"},
	{regexp.MustCompile(`(?i)\brepositorio\s+de\s+git\s+jab\b`), "repositorio de GitHub"},
	{regexp.MustCompile(`(?i)\bbase\s+de\s+datos\s+ese\s+que\s+ele\b`), "base de datos SQL"},
	{regexp.MustCompile(`(?i)\bcomando\s+enpiem\b`), "comando npm"},
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// CorrectTerms replaces mis-transcribed technical vocabulary. Matching is
// case-insensitive on word boundaries; trailing punctuation survives.
func CorrectTerms(text string) string {
	if text == "" {
		return text
	}

	for _, p := range contextualPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}

	words := strings.Fields(text)
	// multi-word keys first, longest wins
	lower := strings.ToLower(strings.Join(words, " "))
	for from, to := range termCorrections {
		if !strings.Contains(from, " ") {
			continue
		}
		if strings.Contains(lower, from) {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`)
			text = re.ReplaceAllString(text, to)
			words = strings.Fields(text)
			lower = strings.ToLower(strings.Join(words, " "))
		}
	}

	for i, word := range words {
		core, trailing := splitTrailingPunct(word)
		if replacement, ok := termCorrections[strings.ToLower(core)]; ok {
			words[i] = replacement + trailing
		}
	}

	return multiSpace.ReplaceAllString(strings.Join(words, " "), " ")
}

// splitTrailingPunct separates a word from punctuation stuck to its end.
func splitTrailingPunct(word string) (core, trailing string) {
	core = word
	for len(core) > 0 {
		last := core[len(core)-1]
		if last == '.' || last == ',' || last == ';' || last == ':' || last == '!' || last == '?' {
			trailing = string(last) + trailing
			core = core[:len(core)-1]
			continue
		}
		break
	}
	return core, trailing
}
