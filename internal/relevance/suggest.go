package relevance

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/phobologic/namecheck/internal/naming"
)

// NoSuggestion is returned when the implementation has no usable words.
const NoSuggestion = "Consider adding a clear docstring to help determine a better name"

const (
	suggestionPrefix = "Consider: "
	suggestionWords  = 3
	minWordLen       = 3
)

var wordRunRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]struct{}{
	"the":    {},
	"and":    {},
	"for":    {},
	"with":   {},
	"from":   {},
	"self":   {},
	"none":   {},
	"true":   {},
	"false":  {},
	"return": {},
}

// Suggest proposes a replacement for originalName built from the most frequent
// words in implementation, formatted in the same case style as the original.
func Suggest(originalName, implementation string) string {
	words := TopWords(implementation, suggestionWords)
	if len(words) == 0 {
		return NoSuggestion
	}
	return suggestionPrefix + formatLike(originalName, words)
}

// TopWords returns up to n of the most frequent words of three or more ASCII
// letters in text, lowercased, skipping stop words. Ties keep first-seen order.
func TopWords(text string, n int) []string {
	type wordCount struct {
		word  string
		count int
	}

	var counts []wordCount
	index := make(map[string]int)
	for _, w := range wordRunRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) < minWordLen || !isASCIILetters(w) {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if i, ok := index[w]; ok {
			counts[i].count++
			continue
		}
		index[w] = len(counts)
		counts = append(counts, wordCount{word: w, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	words := make([]string, len(counts))
	for i, c := range counts {
		words[i] = c.word
	}
	return words
}

func formatLike(original string, words []string) string {
	if naming.HasDelimiter(original) {
		return strings.Join(words, naming.Delimiter)
	}
	first, _ := firstRune(original)
	if unicode.IsUpper(first) {
		var b strings.Builder
		for _, w := range words {
			b.WriteString(capitalize(w))
		}
		return b.String()
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
