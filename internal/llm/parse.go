package llm

import (
	"regexp"
	"strings"
)

var (
	boldPattern  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	parenPattern = regexp.MustCompile(`[^,\n]+\([^)]+\)`)
	splitPattern = regexp.MustCompile(`[,\n]`)
)

// ParseSuggestions extracts up to MaxSuggestions entries from a model reply.
// It tries **bold** spans first, then "name (detail)" fragments, then a
// plain comma/newline split.
func ParseSuggestions(text string) []string {
	if strings.Contains(text, "**") {
		var out []string
		for _, m := range boldPattern.FindAllStringSubmatch(text, -1) {
			out = appendTrimmed(out, m[1])
		}
		if len(out) > 0 {
			return limit(out)
		}
	}

	if strings.Contains(text, "(") && strings.Contains(text, ")") {
		var out []string
		for _, m := range parenPattern.FindAllString(text, -1) {
			out = appendTrimmed(out, m)
		}
		if len(out) > 0 {
			return limit(out)
		}
	}

	out := []string{}
	for _, part := range splitPattern.Split(text, -1) {
		out = appendTrimmed(out, part)
	}
	return limit(out)
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

func limit(s []string) []string {
	if len(s) > MaxSuggestions {
		return s[:MaxSuggestions]
	}
	return s
}
