// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank implements the score-and-rank extraction engine: segment
// the content into candidate spans with byte offsets, score each against
// prototype command embeddings, and select through a cascading threshold.
// Kept as the experimental variant; internal/pipeline is authoritative.
// Implements: prd004-rank (R1-R3); docs/ARCHITECTURE § Ranking.
package rank

import (
	"regexp"
	"strings"
)

const (
	// DefaultMaxCandidates caps segmentation output.
	DefaultMaxCandidates = 200

	minSegmentLen = 10
	maxSegmentLen = 800

	// contextWindow is the number of context bytes kept on each side of a
	// span; the full snippet is twice this wide.
	contextWindow = 40
)

// Candidate is one proposed span. Start and End are byte offsets into the
// source content and content[Start:End] == Text always holds.
type Candidate struct {
	Text    string
	Start   int
	End     int
	Context string
}

// commandRe is the broad alternation covering PowerShell one-liners,
// cmd.exe /c|/k, absolute Windows executable paths with arguments, quoted
// executables with arguments, native Windows utilities, LOLBins, and bare
// name.exe with arguments (R1.4).
var commandRe = regexp.MustCompile(`(?im)(?:` +
	`\bpowershell(?:\.exe)?[ \t]+[^\r\n]+` +
	`|\bcmd(?:\.exe)?[ \t]+/[ck][ \t]+[^\r\n]+` +
	`|(?:[A-Za-z]:\\|\\\\)[^\s"'<>|]+\.exe\b(?:[ \t]+[^\r\n]+)?` +
	`|"[^"\r\n]+\.exe"[ \t]+[^\r\n]+` +
	`|\b(?:net|ipconfig|setspn|quser|whoami|tasklist|schtasks|reg|sc|wmic)(?:\.exe)?[ \t]+[^\r\n]+` +
	`|\b(?:rundll32|regsvr32|mshta|certutil|bitsadmin|msiexec|wscript|cscript|installutil|msbuild)(?:\.exe)?[ \t]+[^\r\n]+` +
	`|\bbash[ \t]+-c[ \t]+[^\r\n]+` +
	`|\b[\w.-]+\.exe[ \t]+\S[^\r\n]*` +
	`)`)

// quotedExeRe matches a quoted reference containing an executable.
var quotedExeRe = regexp.MustCompile(`(?i)"[^"\r\n]*\.exe[^"\r\n]*"`)

// exeRunRe matches a bare executable token plus up to six following
// whitespace-separated tokens.
var exeRunRe = regexp.MustCompile(`(?i)\b[\w.-]+\.exe\b(?:[ \t]+[^\s"]+){0,6}`)

// segment is a raw slice of the content with its byte offset.
type segment struct {
	text  string
	start int
}

// SegmentCandidates proposes candidate spans from content, capped at
// maxCandidates (non-positive uses the default). Segmentation is by
// newline, falling back to punctuation boundaries for single-line input;
// surviving segments are mined for tighter embedded sub-spans, and the
// raw content is rescanned with the alternation regex when the cap has
// headroom, so commands split across segment boundaries are not lost
// (R1.1-R1.5).
func SegmentCandidates(content string, maxCandidates int) []Candidate {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	collector := newCollector(content, maxCandidates)

	for _, seg := range splitSegments(content) {
		trimmed, start := trimOffsets(seg.text, seg.start)
		if !keepSegment(trimmed) {
			continue
		}
		collector.add(trimmed, start)
		mineSubSpans(collector, trimmed, start)
		if collector.full() {
			break
		}
	}

	// Commands can straddle segment boundaries; a direct scan catches them.
	if !collector.full() {
		for _, loc := range commandRe.FindAllStringIndex(content, -1) {
			text, start := trimOffsets(content[loc[0]:loc[1]], loc[0])
			collector.add(text, start)
			if collector.full() {
				break
			}
		}
	}

	return collector.candidates
}

// splitSegments cuts content into offset-tracked segments: by newline
// normally, by punctuation clause boundaries when the content is a single
// line. A period only splits when it ends a clause, so dotted tokens like
// net.exe stay intact.
func splitSegments(content string) []segment {
	if strings.ContainsRune(strings.TrimRight(content, "\r\n"), '\n') {
		return splitOn(content, func(i int) bool { return content[i] == '\n' })
	}
	return splitOn(content, func(i int) bool {
		switch content[i] {
		case ';', '|', ',':
			return true
		case '.':
			return i+1 == len(content) || content[i+1] == ' ' || content[i+1] == '\t'
		}
		return false
	})
}

// splitOn splits content at separator bytes, recording each piece's byte
// offset. Separators are dropped.
func splitOn(content string, isSep func(int) bool) []segment {
	var segments []segment
	start := 0
	for i := 0; i < len(content); i++ {
		if isSep(i) {
			if i > start {
				segments = append(segments, segment{text: content[start:i], start: start})
			}
			start = i + 1
		}
	}
	if start < len(content) {
		segments = append(segments, segment{text: content[start:], start: start})
	}
	return segments
}

// keepSegment filters segments by length, structure, and a broad
// command-likeness signal (R1.2).
func keepSegment(text string) bool {
	if len(text) < minSegmentLen || len(text) > maxSegmentLen {
		return false
	}
	if len(strings.Fields(text)) < 2 && !strings.ContainsAny(text, `\/-|`) {
		return false
	}
	return looksCommandLike(text)
}

// exeBoundaryRe detects an executable suffix at a token boundary.
var exeBoundaryRe = regexp.MustCompile(`(?i)\.exe\b`)

// looksCommandLike reports the broad command signal: a path separator, an
// executable suffix, a known shell name, or a long-option marker.
func looksCommandLike(text string) bool {
	lower := strings.ToLower(text)
	switch {
	case strings.ContainsAny(text, `\/`):
		return true
	case exeBoundaryRe.MatchString(text):
		return true
	case strings.Contains(lower, "powershell"),
		strings.Contains(lower, "cmd.exe"),
		strings.Contains(lower, "bash -c"):
		return true
	case strings.Contains(text, "--"):
		return true
	}
	return false
}

// mineSubSpans extracts tighter spans inside a surviving segment: quoted
// executable references, bare executable token runs, and alternation
// matches (R1.3).
func mineSubSpans(c *collector, segText string, segStart int) {
	for _, re := range []*regexp.Regexp{quotedExeRe, exeRunRe, commandRe} {
		for _, loc := range re.FindAllStringIndex(segText, -1) {
			text, start := trimOffsets(segText[loc[0]:loc[1]], segStart+loc[0])
			c.add(text, start)
			if c.full() {
				return
			}
		}
	}
}

// collector accumulates candidates, deduplicating by span identity and
// enforcing the cap.
type collector struct {
	content    string
	max        int
	seen       map[spanKey]struct{}
	candidates []Candidate
}

type spanKey struct {
	text  string
	start int
}

func newCollector(content string, max int) *collector {
	return &collector{content: content, max: max, seen: make(map[spanKey]struct{})}
}

func (c *collector) full() bool { return len(c.candidates) >= c.max }

func (c *collector) add(text string, start int) {
	if text == "" || c.full() {
		return
	}
	key := spanKey{text: text, start: start}
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.candidates = append(c.candidates, Candidate{
		Text:    text,
		Start:   start,
		End:     start + len(text),
		Context: contextSnippet(c.content, start, start+len(text)),
	})
}

// trimOffsets trims surrounding whitespace while keeping the byte offset
// aligned with the trimmed text.
func trimOffsets(text string, start int) (string, int) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", start
	}
	return trimmed, start + strings.Index(text, trimmed)
}

// contextSnippet returns the fixed-width window around a span with
// newlines flattened to spaces.
func contextSnippet(content string, start, end int) string {
	ctxStart := start - contextWindow
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + contextWindow
	if ctxEnd > len(content) {
		ctxEnd = len(content)
	}
	snippet := content[ctxStart:ctxEnd]
	snippet = strings.ReplaceAll(snippet, "\r", " ")
	snippet = strings.ReplaceAll(snippet, "\n", " ")
	return snippet
}
