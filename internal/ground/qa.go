// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ground

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/cmdextract/internal/classify"
	"github.com/pdiddy/cmdextract/pkg/types"
)

// QAValidator is the optional second-pass check over grounded commands.
// Disabled, it is the identity. Enabled, it applies a deterministic rule
// set; the configured model identifier is carried for a future live-model
// pass but unused today (R2.1). The pass is monotonic: it never adds
// strings and never grows the input (R2.3).
type QAValidator struct {
	cfg    types.QAConfig
	logger *zap.Logger
}

// NewQAValidator builds a validator from config. A nil logger disables
// logging.
func NewQAValidator(cfg types.QAConfig, logger *zap.Logger) *QAValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QAValidator{cfg: cfg, logger: logger}
}

// Enabled reports whether the pass will filter anything.
func (v *QAValidator) Enabled() bool { return v.cfg.Enabled }

// Validate returns the commands that survive the QA rules, in input
// order. When the validator is disabled it returns the input unchanged.
func (v *QAValidator) Validate(commands []string, article string) []string {
	if !v.cfg.Enabled {
		return commands
	}

	kept := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if qaAccept(cmd, article) {
			kept = append(kept, cmd)
		}
	}

	v.logger.Debug("qa validation",
		zap.Int("in", len(commands)),
		zap.Int("kept", len(kept)))
	return kept
}

// qaAccept applies the deterministic QA rules (R2.2): non-empty, present
// in the article, names an executable, carries at least one argument, and
// is free of the classifier's noise markers.
func qaAccept(cmd, article string) bool {
	trimmed := strings.TrimSpace(cmd)
	if trimmed == "" {
		return false
	}
	if !strings.Contains(article, cmd) {
		return false
	}
	if !strings.Contains(strings.ToLower(trimmed), ".exe") {
		return false
	}
	if len(strings.Fields(trimmed)) < 2 {
		return false
	}
	if classify.ContainsNoise(trimmed) {
		return false
	}
	return true
}
