// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/cmdextract/pkg/types"
)

// fakeProvider maps texts to fixed vectors so similarity outcomes are
// deterministic: command-shaped texts embed to [1,0], everything else to
// [0,1].
type fakeProvider struct {
	err   error
	calls int
}

func commandVector(text string) []float32 {
	if strings.Contains(strings.ToLower(text), ".exe") {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func (f *fakeProvider) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = commandVector(t)
	}
	return out, nil
}

func (f *fakeProvider) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return commandVector(text), nil
}

func (f *fakeProvider) Dimension() int { return 2 }
func (f *fakeProvider) Close() error   { return nil }

// --- heuristic gate ---

func TestHeuristicRejectsNoise(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
	}{
		{"service control manager line", "Service Control Manager/7036; Velociraptor running"},
		{"argv array literal", `Velociraptor/1000; ARGV: ["C:\Program Files\Velociraptor\Velociraptor.exe", "-v"]`},
		{"msiinstaller line", `MsiInstaller/11707; Product installed successfully "C:\Program Files\App\app.exe" /S`},
		{"bare exe without arguments", "calc.exe"},
		{"leading bracket", `["cmd.exe", "/c", "dir"]`},
		{"leading brace", `{"command": "cmd.exe /c dir"}`},
		{"empty string", ""},
	}

	c := &HeuristicClassifier{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), []string{tt.candidate})
			if len(got) != 0 {
				t.Errorf("Classify(%q) = %q, want empty", tt.candidate, got)
			}
		})
	}
}

func TestHeuristicAcceptsCommands(t *testing.T) {
	candidates := []string{
		`"C:\Program Files\App\app.exe" -flag1 -flag2`,
		"powershell.exe -ExecutionPolicy Bypass -enc AAA==",
		"net user admin P@ssw0rd /add",
	}

	c := &HeuristicClassifier{}
	got := c.Classify(context.Background(), candidates)
	if !reflect.DeepEqual(got, candidates) {
		t.Errorf("Classify() = %q, want %q", got, candidates)
	}
}

func TestHeuristicDeduplicatesPreservingOrder(t *testing.T) {
	c := &HeuristicClassifier{}
	got := c.Classify(context.Background(), []string{
		"cmd.exe /c whoami",
		"ipconfig.exe /all",
		"cmd.exe /c whoami",
	})
	want := []string{"cmd.exe /c whoami", "ipconfig.exe /all"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classify() = %q, want %q", got, want)
	}
}

// --- embedding classifier ---

func TestEmbeddingClassifierAcceptsByMargin(t *testing.T) {
	c := NewEmbeddingClassifier(&fakeProvider{}, nil)

	got := c.Classify(context.Background(), []string{
		`"C:\Program Files\App\app.exe" -flag1 -flag2`,
		"net stop service then reboot the host",
	})
	want := []string{`"C:\Program Files\App\app.exe" -flag1 -flag2`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classify() = %q, want %q", got, want)
	}
}

func TestEmbeddingClassifierAppliesHeuristicGate(t *testing.T) {
	c := NewEmbeddingClassifier(&fakeProvider{}, nil)

	// calc.exe would embed as command-like, but the gate rejects it first.
	got := c.Classify(context.Background(), []string{"calc.exe"})
	if len(got) != 0 {
		t.Errorf("Classify() = %q, want empty", got)
	}
}

func TestEmbeddingClassifierDegradesOnProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model gone")}
	c := NewEmbeddingClassifier(provider, nil)

	candidates := []string{"cmd.exe /c whoami"}
	got := c.Classify(context.Background(), candidates)
	if !reflect.DeepEqual(got, candidates) {
		t.Errorf("degraded Classify() = %q, want heuristic result %q", got, candidates)
	}

	callsAfterFirst := provider.calls
	got = c.Classify(context.Background(), candidates)
	if !reflect.DeepEqual(got, candidates) {
		t.Errorf("second degraded Classify() = %q, want %q", got, candidates)
	}
	if provider.calls != callsAfterFirst {
		t.Errorf("degraded classifier must stop calling the provider: %d calls after first, %d now",
			callsAfterFirst, provider.calls)
	}
}

func TestEmbeddingClassifierIdempotent(t *testing.T) {
	c := NewEmbeddingClassifier(&fakeProvider{}, nil)
	candidates := []string{
		"rundll32.exe shell32.dll,Control_RunDLL",
		"cmd.exe /c whoami",
	}

	first := c.Classify(context.Background(), candidates)
	second := c.Classify(context.Background(), candidates)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls disagree: %q vs %q", first, second)
	}
}

// --- factory ---

func TestNewHeuristicModeSkipsProvider(t *testing.T) {
	c := New(types.EncoderConfig{Mode: types.ModeHeuristic}, nil)
	if _, ok := c.(*HeuristicClassifier); !ok {
		t.Errorf("New(heuristic) = %T, want *HeuristicClassifier", c)
	}
}
