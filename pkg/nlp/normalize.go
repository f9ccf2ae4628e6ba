package nlp

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#.]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText приводит текст к упрощённому виду для сравнения:
// - нижний регистр
// - заменяет все не-буквенно-цифровые символы на пробелы (кроме + # . для "c++", "c#", "node.js")
// - схлопывает пробелы
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanList trims items, drops blanks and removes case-insensitive duplicates
// keeping the first spelling. Never returns nil.
func CleanList(items []string) []string {
	trimmed := lo.FilterMap(items, func(s string, _ int) (string, bool) {
		s = reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
		return s, s != ""
	})
	return lo.UniqBy(trimmed, func(s string) string { return strings.ToLower(s) })
}

// ContainsFold reports whether query occurs in text after normalization.
// An empty query matches everything.
func ContainsFold(text, query string) bool {
	q := NormalizeText(query)
	if q == "" {
		return true
	}
	return strings.Contains(NormalizeText(text), q)
}
