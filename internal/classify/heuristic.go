// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"
)

// noiseMarkers flag event-log and installer chatter that regex harvesting
// tends to pick up from pasted log excerpts (R1.2).
var noiseMarkers = []string{
	"service control manager",
	"msiinstaller",
	"eventlog",
}

// bareExeRe matches a lone executable reference with nothing trailing it.
var bareExeRe = regexp.MustCompile(`(?i)^\S+\.exe$`)

// ContainsNoise reports whether s carries a known log/installer noise
// marker. The QA pass reuses this check.
func ContainsNoise(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range noiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// heuristicAccept applies the rule gate every classifier variant enforces
// (R1.1-R1.4): no noise markers, no argv-style array literals, no strings
// opening with a bracket or brace, and no bare executable reference
// without arguments.
func heuristicAccept(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	if ContainsNoise(t) {
		return false
	}
	if strings.HasPrefix(t, "[") || strings.HasPrefix(t, "{") {
		return false
	}
	lower := strings.ToLower(t)
	if strings.Contains(lower, "argv") || strings.Contains(t, `["`) {
		return false
	}
	if bareExeRe.MatchString(t) {
		return false
	}
	return true
}
