// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/cmdextract/pkg/types"
)

// heuristicConfig avoids model loading in tests.
func heuristicConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Encoder: types.EncoderConfig{Mode: types.ModeHeuristic},
	}
}

func TestExtractCommandsGrounding(t *testing.T) {
	article := "The dropper launched its payload.\n" +
		`"C:\Program Files\App\app.exe" -flag1 -flag2` + "\n" +
		"Lateral movement followed.\n"

	e := New(heuristicConfig(), nil)
	result := e.ExtractCommands(context.Background(), article)

	want := `"C:\Program Files\App\app.exe" -flag1 -flag2`
	if !reflect.DeepEqual(result.CmdlineItems, []string{want}) {
		t.Fatalf("CmdlineItems = %q, want [%q]", result.CmdlineItems, want)
	}
	for _, item := range result.CmdlineItems {
		if !strings.Contains(article, item) {
			t.Errorf("item %q not grounded in article", item)
		}
	}
	if result.Count != len(result.CmdlineItems) {
		t.Errorf("Count = %d, want %d", result.Count, len(result.CmdlineItems))
	}
	if result.QACorrections.Summary != "None." {
		t.Errorf("Summary = %q, want %q", result.QACorrections.Summary, "None.")
	}
}

func TestExtractCommandsPowershellVerbatim(t *testing.T) {
	article := "Stage two:\npowershell.exe -ExecutionPolicy Bypass -enc AAA==\n"

	e := New(heuristicConfig(), nil)
	result := e.ExtractCommands(context.Background(), article)

	want := "powershell.exe -ExecutionPolicy Bypass -enc AAA=="
	if !reflect.DeepEqual(result.CmdlineItems, []string{want}) {
		t.Errorf("CmdlineItems = %q, want [%q]", result.CmdlineItems, want)
	}
}

func TestExtractCommandsRepeatedCommandDeduplicated(t *testing.T) {
	article := "cmd.exe /c whoami\nUnrelated line.\ncmd.exe /c whoami\n"

	e := New(heuristicConfig(), nil)
	result := e.ExtractCommands(context.Background(), article)

	if result.Count != 1 {
		t.Errorf("Count = %d, want 1 (items %q)", result.Count, result.CmdlineItems)
	}
}

func TestExtractCommandsEmptyInput(t *testing.T) {
	e := New(heuristicConfig(), nil)

	for _, input := range []string{"", "   \n\t"} {
		result := e.ExtractCommands(context.Background(), input)
		if result.Count != 0 || len(result.CmdlineItems) != 0 {
			t.Errorf("ExtractCommands(%q) = %+v, want empty result", input, result)
		}
		if result.QACorrections.Summary != "None." {
			t.Errorf("Summary = %q, want %q", result.QACorrections.Summary, "None.")
		}
	}
}

func TestExtractCommandsLogChatter(t *testing.T) {
	article := "Service Control Manager/7036; Velociraptor running\n" +
		"Windows EventLog service started at boot.\n" +
		`MsiInstaller/11707; Product installed successfully "C:\Program Files\App\app.exe" /S` + "\n"

	e := New(heuristicConfig(), nil)
	result := e.ExtractCommands(context.Background(), article)

	// Pure log chatter yields nothing, but the quoted command embedded in
	// the installer line is still surfaced as its own span.
	want := []string{`"C:\Program Files\App\app.exe" /S`}
	if !reflect.DeepEqual(result.CmdlineItems, want) {
		t.Errorf("CmdlineItems = %q, want %q", result.CmdlineItems, want)
	}
}

func TestExtractCommandsQARemovals(t *testing.T) {
	article := "First step:\nipconfig /all\nThen:\ncmd.exe /c whoami\n"

	cfg := heuristicConfig()
	cfg.QA = types.QAConfig{Enabled: true}
	e := New(cfg, nil)
	result := e.ExtractCommands(context.Background(), article)

	// ipconfig /all has no .exe token, so QA drops it; the cmd.exe command stays.
	if !reflect.DeepEqual(result.CmdlineItems, []string{"cmd.exe /c whoami"}) {
		t.Errorf("CmdlineItems = %q", result.CmdlineItems)
	}
	if !reflect.DeepEqual(result.QACorrections.Removed, []string{"ipconfig /all"}) {
		t.Errorf("Removed = %q, want [ipconfig /all]", result.QACorrections.Removed)
	}
	if len(result.QACorrections.Added) != 0 {
		t.Errorf("Added = %q, want empty", result.QACorrections.Added)
	}
	if result.QACorrections.Summary != "QA validation applied" {
		t.Errorf("Summary = %q", result.QACorrections.Summary)
	}
}

func TestExtractCommandsQANeverGrows(t *testing.T) {
	article := "cmd.exe /c whoami\nipconfig /all\nnet user guest /active:no\n"

	base := New(heuristicConfig(), nil)
	withQA := heuristicConfig()
	withQA.QA = types.QAConfig{Enabled: true}
	qa := New(withQA, nil)

	plain := base.ExtractCommands(context.Background(), article)
	validated := qa.ExtractCommands(context.Background(), article)

	if validated.Count > plain.Count {
		t.Errorf("QA grew the result: %d > %d", validated.Count, plain.Count)
	}
}

func TestExtractCommandsIdempotent(t *testing.T) {
	article := "setspn -Q */svc\n\"C:\\Tools\\My App\\scan.exe\" --deep\n"

	e := New(heuristicConfig(), nil)
	first := e.ExtractCommands(context.Background(), article)
	second := e.ExtractCommands(context.Background(), article)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls disagree:\n%+v\n%+v", first, second)
	}
}

func TestRunMatchesExtractCommands(t *testing.T) {
	article := "quser console\n"

	e := New(heuristicConfig(), nil)
	a := e.ExtractCommands(context.Background(), article)
	b := e.Run(context.Background(), article)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Run() differs from ExtractCommands(): %+v vs %+v", a, b)
	}
}
