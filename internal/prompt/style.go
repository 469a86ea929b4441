package prompt

import (
	"fmt"
	"strings"
)

// Style is a named formatting convention for generated commit messages
type Style string

const (
	StyleSimple       Style = "simple"
	StyleStandard     Style = "standard"
	StyleProfessional Style = "professional"
	StyleEnterprise   Style = "enterprise"
)

// DefaultStyle is used when no professionalism level is configured
const DefaultStyle = StyleStandard

// Styles lists every style in ascending order of formality
func Styles() []Style {
	return []Style{StyleSimple, StyleStandard, StyleProfessional, StyleEnterprise}
}

// styleRules holds the rule text rendered into the prompt for each style
var styleRules = map[Style][]string{
	StyleSimple: {
		"Write one short plain-English sentence per message, ideally under 50 characters.",
		"Do not use type prefixes, scopes, or emoji.",
		"Start with a capitalized verb in the imperative mood (\"Add\", \"Fix\", \"Update\").",
	},
	StyleStandard: {
		"Follow the Conventional Commits format: <type>: <description>.",
		"Allowed types: feat, fix, docs, style, refactor, perf, test, chore, build, ci.",
		"Keep each message under 72 characters, lowercase description, imperative mood, no trailing period.",
	},
	StyleProfessional: {
		"Follow the Conventional Commits format with a scope when one is evident: <type>(<scope>): <description>.",
		"Allowed types: feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert.",
		"Be precise about what changed and why; name the affected component.",
		"Keep each message under 72 characters, imperative mood, no trailing period.",
	},
	StyleEnterprise: {
		"Follow the Conventional Commits format with a mandatory scope: <type>(<scope>): <description>.",
		"Allowed types: feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert.",
		"Use formal, audit-friendly wording that states the business or technical impact.",
		"Mark breaking changes with \"!\" after the scope, e.g. feat(api)!: ...",
		"Keep each message under 72 characters and on a single line, imperative mood, no trailing period.",
	},
}

// Rules returns the formatting rules for the style
func (s Style) Rules() []string {
	return styleRules[s]
}

// IsValid reports whether s is one of the known styles
func (s Style) IsValid() bool {
	_, ok := styleRules[s]
	return ok
}

// String returns the string representation of the style
func (s Style) String() string {
	return string(s)
}

// ParseStyle parses a professionalism level name, case-insensitively.
// An empty name yields DefaultStyle.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultStyle, nil
	}
	s := Style(name)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown style %q (expected one of: simple, standard, professional, enterprise)", name)
	}
	return s, nil
}
