package utils

import (
	"strings"
)

// SplitTechstack turns a comma-joined techstack into trimmed, lower-cased entries.
func SplitTechstack(techstack string) []string {
	parts := strings.Split(techstack, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = NormalizeTech(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func NormalizeTech(tech string) string {
	return strings.ToLower(strings.TrimSpace(tech))
}

func NormalizeTechstack(techstack []string) []string {
	out := make([]string, 0, len(techstack))
	for _, t := range techstack {
		if t = NormalizeTech(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// StripFences removes a surrounding markdown code fence from model output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
