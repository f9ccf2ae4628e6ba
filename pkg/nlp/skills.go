package nlp

import (
	"strings"

	"github.com/samber/lo"
)

// skillAliases связывает распространённые сокращения навыков в обе стороны.
var skillAliases = map[string][]string{
	"go":         {"golang"},
	"golang":     {"go"},
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd", "ci/cd"},
	"cicd":       {"ci cd", "ci/cd"},
	"ci/cd":      {"ci cd", "cicd"},
}

// SkillVariants returns the normalized skill followed by its known aliases.
// Multi-word skills also get a variant with every word replaced by its alias.
func SkillVariants(skill string) []string {
	base := NormalizeText(skill)
	if base == "" {
		return []string{}
	}
	out := append([]string{base}, skillAliases[base]...)

	words := strings.Split(base, " ")
	if len(words) > 1 {
		expanded := lo.Map(words, func(w string, _ int) string {
			if alias, ok := skillAliases[w]; ok {
				return alias[0]
			}
			return w
		})
		out = append(out, strings.Join(expanded, " "))
	}
	return lo.Uniq(out)
}

// HasSkill reports whether any of skills matches query or one of its aliases.
// An empty query matches everything.
func HasSkill(skills []string, query string) bool {
	variants := SkillVariants(query)
	if len(variants) == 0 {
		return true
	}
	return lo.SomeBy(skills, func(s string) bool {
		return lo.Contains(variants, NormalizeText(s))
	})
}
