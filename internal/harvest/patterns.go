// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest proposes raw command-line candidates from article text.
// patterns.go holds the built-in pattern table and the external override
// resource loader.
// Implements: prd001-harvest (R1, R2); docs/ARCHITECTURE § Harvesting.
package harvest

import (
	"fmt"
	"os"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// namedPattern pairs a pattern identifier with its compiled regex. Order
// matters: earlier patterns win ties during overlap resolution.
type namedPattern struct {
	name string
	re   *regexp.Regexp
}

// builtinPatterns is the ordered table of command-shaped patterns (R1.1).
// All are case-insensitive and line-bounded.
var builtinPatterns = []namedPattern{
	// Absolute or UNC path to an executable, with optional arguments.
	{"abs_path_exe", regexp.MustCompile(`(?im)(?:[A-Za-z]:\\|\\\\)[^\s"'<>|]+\.exe\b(?:[ \t]+[^\r\n]+)?`)},

	// Bare name.exe followed by arguments.
	{"bare_exe_args", regexp.MustCompile(`(?im)\b[\w.-]+\.exe[ \t]+[^\r\n]+`)},

	// powershell / powershell.exe invocations.
	{"powershell", regexp.MustCompile(`(?im)\bpowershell(?:\.exe)?[ \t]+[^\r\n]+`)},

	// Specific System32 utilities with arguments.
	{"system32_util", regexp.MustCompile(`(?im)\b(?:net|ipconfig|setspn|quser)(?:\.exe)?[ \t]+[^\r\n]+`)},

	// Quoted path containing embedded spaces, with optional arguments.
	{"quoted_path", regexp.MustCompile(`(?im)"[A-Za-z]:\\[^"\r\n]* [^"\r\n]*"(?:[ \t]+[^\r\n]+)?`)},
}

// parsePatternFile decodes a YAML name-to-pattern mapping, preserving the
// file's entry order. Entries that fail to compile are returned as
// warnings, not errors (R2.3).
func parsePatternFile(data []byte) ([]namedPattern, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing pattern file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("pattern file must be a name-to-pattern mapping")
	}

	var patterns []namedPattern
	var warnings []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		expr := root.Content[i+1].Value

		re, err := regexp.Compile(expr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("pattern %q: %v", name, err))
			continue
		}
		patterns = append(patterns, namedPattern{name: name, re: re})
	}
	return patterns, warnings, nil
}

// loadPatternFile reads and parses the override resource at path.
func loadPatternFile(path string) ([]namedPattern, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}
	return parsePatternFile(data)
}

// mergePatterns overlays overrides onto base: an override with a known
// name replaces that entry in place, an unknown name is appended (R2.2).
func mergePatterns(base, overrides []namedPattern) []namedPattern {
	merged := make([]namedPattern, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.name] = i
	}

	for _, o := range overrides {
		if i, ok := index[o.name]; ok {
			merged[i] = o
			continue
		}
		index[o.name] = len(merged)
		merged = append(merged, o)
	}
	return merged
}
