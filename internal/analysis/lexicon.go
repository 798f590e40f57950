package analysis

import (
	"strings"
	"unicode"
)

// KeywordTally counts how many phrases of each tier occur in one text.
type KeywordTally struct {
	High   int
	Medium int
	Low    int
}

// NormalizeText lowercases text, drops apostrophes so "can't" and "cant"
// agree, turns any other punctuation into a space and collapses whitespace.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case r == '\'' || r == '’' || r == '‘':
			continue
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CountMatches returns the number of phrases that occur in normalized as a
// substring. Each phrase counts at most once.
func CountMatches(normalized string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if phrase != "" && strings.Contains(normalized, phrase) {
			count++
		}
	}
	return count
}

func Scan(normalized string, lexicon Lexicon) KeywordTally {
	return KeywordTally{
		High:   CountMatches(normalized, lexicon.High),
		Medium: CountMatches(normalized, lexicon.Medium),
		Low:    CountMatches(normalized, lexicon.Low),
	}
}

func (t KeywordTally) Weighted(w TierWeights) float64 {
	return float64(t.High)*w.High + float64(t.Medium)*w.Medium + float64(t.Low)*w.Low
}

func containsAny(normalized string, phrases []string) bool {
	return CountMatches(normalized, phrases) > 0
}

// distinctMatches counts phrases present in normalized across several tiers,
// counting a phrase listed in more than one tier once.
func distinctMatches(normalized string, tiers ...[]string) int {
	seen := make(map[string]struct{})
	for _, tier := range tiers {
		for _, phrase := range tier {
			if phrase == "" {
				continue
			}
			if _, ok := seen[phrase]; ok {
				continue
			}
			if strings.Contains(normalized, phrase) {
				seen[phrase] = struct{}{}
			}
		}
	}
	return len(seen)
}
