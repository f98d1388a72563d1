package languages

import (
	"strings"
	"unicode"
)

// Script- and character-class heuristics for a fast provisional
// language guess. This is a latency hide for the UI while the model
// round trip is pending, not a correctness fallback: ambiguous Latin
// text simply comes back as English with low confidence.

type scriptRange struct {
	code  string
	table *unicode.RangeTable
}

var scriptRanges = []scriptRange{
	{"zh", unicode.Han},
	{"ja", unicode.Hiragana},
	{"ja", unicode.Katakana},
	{"ko", unicode.Hangul},
	{"ru", unicode.Cyrillic},
	{"ar", unicode.Arabic},
	{"he", unicode.Hebrew},
	{"hi", unicode.Devanagari},
	{"th", unicode.Thai},
	{"el", unicode.Greek},
}

// Characteristic letters that separate the Latin-script languages the
// product supports. Checked only when no non-Latin script dominates.
var latinMarkers = []struct {
	code    string
	letters string
}{
	{"de", "äöüß"},
	{"pl", "ąćęłńśźż"},
	{"tr", "ğışİ"},
	{"pt", "ãõ"},
	{"es", "¿¡ñ"},
	{"fr", "àâçèêëîïôùûœ"},
	{"vi", "ơưđạảấầẩẫậắằẳẵặẹẻẽếềểễệ"},
}

// DetectHeuristic guesses the language of text from its characters.
// Confidence is the share of letters that voted for the winning
// script, or a fixed low value for Latin-marker and default guesses.
func DetectHeuristic(text string) (string, float64) {
	votes := make(map[string]int)
	letters := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for _, sr := range scriptRanges {
			if unicode.Is(sr.table, r) {
				votes[sr.code]++
				break
			}
		}
	}

	if letters == 0 {
		return "en", 0
	}

	best, bestVotes := "", 0
	for code, n := range votes {
		if n > bestVotes {
			best, bestVotes = code, n
		}
	}

	// Japanese text mixes kana with Han characters; any kana at all
	// outweighs a Han majority.
	if votes["ja"] > 0 && best == "zh" {
		best = "ja"
	}

	if best != "" {
		return best, float64(bestVotes) / float64(letters)
	}

	lower := strings.ToLower(text)
	for _, marker := range latinMarkers {
		if strings.ContainsAny(lower, marker.letters) {
			return marker.code, 0.5
		}
	}

	return "en", 0.3
}
