// Package relevance scores how well a name matches the text of its
// implementation and proposes alternatives for poor matches.
package relevance

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/phobologic/namecheck/internal/naming"
)

// SuggestionThreshold is the score below which a rename is suggested.
const SuggestionThreshold = 0.7

// Reasons attached to scores.
const (
	ReasonNoMeaningfulParts = "Name doesn't contain meaningful parts"
	ReasonTooGeneric        = "Name is too generic"
	ReasonTooShort          = "Name is too short"

	ReasonWrongName        = "Name different from implementation - Wrong name"
	ReasonConsiderChanging = "Name somewhat reflects implementation - Consider changing"
	ReasonNeedsImprovement = "Name reflects implementation - needs improvement"
	ReasonGood             = "Name reflects implementation - good"
	ReasonWell             = "Name reflects implementation well"
)

const (
	emptyNameScore  = 0.5
	genericPenalty  = 0.2
	shortPenalty    = 0.3
	shortNameLength = 2
	minWholeWordLen = 2
)

// stopTokens carry no meaning on their own (accessor and predicate prefixes).
var stopTokens = map[string]struct{}{
	"get":   {},
	"set":   {},
	"is":    {},
	"has":   {},
	"on":    {},
	"class": {},
}

var genericNames = map[string]struct{}{
	"test":    {},
	"helper":  {},
	"util":    {},
	"utility": {},
	"misc":    {},
}

// bands are evaluated in order; the first upper bound above the score wins.
var bands = []struct {
	below  float64
	reason string
}{
	{0.3, ReasonWrongName},
	{0.5, ReasonConsiderChanging},
	{0.6, ReasonNeedsImprovement},
	{0.7, ReasonGood},
}

// Classifications lists every reason Score can end with.
var Classifications = []string{
	ReasonWrongName,
	ReasonConsiderChanging,
	ReasonNeedsImprovement,
	ReasonGood,
	ReasonWell,
}

// Score computes a relevance score in [0, 1] for name against implementation,
// along with the reasons that produced it. The last reason is always one of
// Classifications, chosen from the score before clamping.
func Score(name, implementation string) (float64, []string) {
	var reasons []string
	var score float64

	parts := MeaningfulTokens(name)
	if len(parts) == 0 {
		score = emptyNameScore
		reasons = append(reasons, ReasonNoMeaningfulParts)
	} else {
		lowered := strings.ToLower(implementation)
		var found float64
		for _, part := range parts {
			found += matchWeight(part, implementation, lowered)
		}
		score = found / float64(len(parts))
	}

	if _, ok := genericNames[strings.ToLower(name)]; ok {
		score -= genericPenalty
		reasons = append(reasons, ReasonTooGeneric)
	}

	if utf8.RuneCountInString(name) <= shortNameLength {
		score -= shortPenalty
		reasons = append(reasons, ReasonTooShort)
	}

	reasons = append(reasons, classify(score))

	return clamp(score), reasons
}

// MeaningfulTokens splits name and drops the stop tokens.
func MeaningfulTokens(name string) []string {
	var kept []string
	for _, p := range naming.Split(name) {
		if _, stop := stopTokens[p]; !stop {
			kept = append(kept, p)
		}
	}
	return kept
}

// matchWeight returns 1 for a whole-word hit, 0.5 for a plain substring hit
// and 0 otherwise. Tokens of two characters or fewer never count as whole words.
func matchWeight(part, implementation, lowered string) float64 {
	if utf8.RuneCountInString(part) > minWholeWordLen && containsWord(implementation, part) {
		return 1
	}
	if strings.Contains(lowered, part) {
		return 0.5
	}
	return 0
}

// wordPatterns caches compiled whole-word patterns by token.
var wordPatterns sync.Map

// containsWord reports a case-insensitive match of word bounded by non-word
// characters. Word characters are Unicode letters, digits and underscore.
func containsWord(text, word string) bool {
	return wordPattern(word).MatchString(text)
}

func wordPattern(word string) *regexp.Regexp {
	if re, ok := wordPatterns.Load(word); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(word) + `(?:$|[^\p{L}\p{N}_])`)
	actual, _ := wordPatterns.LoadOrStore(word, re)
	return actual.(*regexp.Regexp)
}

func classify(score float64) string {
	for _, b := range bands {
		if score < b.below {
			return b.reason
		}
	}
	return ReasonWell
}

func clamp(score float64) float64 {
	return max(0.0, min(1.0, score))
}
