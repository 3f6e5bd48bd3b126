// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the command
// extraction pipelines. See docs/ARCHITECTURE § Data Model.
package types

// QACorrections records the changes the QA validation pass made to the
// grounded command list. The pass is monotonic: it removes items but never
// adds any, so Added stays empty (prd003-qa R2.3).
type QACorrections struct {
	// Removed lists command strings dropped by QA validation.
	Removed []string `json:"removed" yaml:"removed"`

	// Added is always empty; present for interface symmetry with Removed.
	Added []string `json:"added" yaml:"added"`

	// Summary is "QA validation applied" when the pass ran, "None." otherwise.
	Summary string `json:"summary" yaml:"summary"`
}

// ExtractionResult is the output of the classify-then-filter pipeline.
// Every entry in CmdlineItems occurs verbatim in the source article
// (grounding invariant, prd001-harvest R4.1).
type ExtractionResult struct {
	// CmdlineItems holds the grounded command strings in first-seen order,
	// with no duplicates.
	CmdlineItems []string `json:"cmdline_items" yaml:"cmdline_items"`

	// Count equals len(CmdlineItems).
	Count int `json:"count" yaml:"count"`

	// QACorrections describes what the QA pass changed.
	QACorrections QACorrections `json:"qa_corrections" yaml:"qa_corrections"`
}

// RankedCommand is one scored span from the score-and-rank engine. Start
// and End are byte offsets into the source content; Content[Start:End]
// equals Text (prd004-rank R1.2).
type RankedCommand struct {
	// Text is the exact command span as it appears in the source.
	Text string `json:"text" yaml:"text"`

	// Start is the byte offset of the span in the source content.
	Start int `json:"start" yaml:"start"`

	// End is the byte offset one past the span in the source content.
	End int `json:"end" yaml:"end"`

	// Context is a fixed-width snippet of the surrounding source text,
	// with newlines flattened to spaces.
	Context string `json:"context" yaml:"context"`

	// Score is the maximum cosine similarity to any prototype command,
	// in [0, 1]. Regex-fallback results carry 0.0 and should be treated
	// as low-trust.
	Score float64 `json:"score" yaml:"score"`
}
