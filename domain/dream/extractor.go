package dream

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// Extractor pulls named entities (people, places, objects) out of a
// dream entry. Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// titlecasePattern matches capitalized words and multi-word phrases
// ("Blue Ocean", "Moon"). A crude proxy for proper nouns, good enough
// when no language model is available.
var titlecasePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// FallbackExtractor extracts Titlecase words and phrases with a regex.
// It never fails; an entry with no capitalized terms yields no entities.
type FallbackExtractor struct{}

// Extract implements Extractor.
func (FallbackExtractor) Extract(_ context.Context, text string) ([]string, error) {
	return NormalizeEntities(titlecasePattern.FindAllString(text, -1)), nil
}

// NormalizeEntities strips, capitalizes each word, and dedupes while
// preserving first-seen order. Empty strings are dropped.
func NormalizeEntities(items []string) []string {
	out := []string{}
	seen := make(map[string]bool)

	for _, item := range items {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}

		words := strings.Fields(s)
		for i, w := range words {
			words[i] = capitalize(w)
		}
		s = strings.Join(words, " ")

		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return out
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
