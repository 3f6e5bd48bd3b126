// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ground

import (
	"reflect"
	"testing"

	"github.com/pdiddy/cmdextract/pkg/types"
)

func TestFilter(t *testing.T) {
	article := "Prose before.\ncmd.exe /c whoami\nMore prose.\nipconfig /all\n"

	tests := []struct {
		name       string
		candidates []string
		want       []string
	}{
		{
			name:       "keeps literal substrings only",
			candidates: []string{"cmd.exe /c whoami", "cmd.exe /c hostname", "ipconfig /all"},
			want:       []string{"cmd.exe /c whoami", "ipconfig /all"},
		},
		{
			name:       "case drift is rejected",
			candidates: []string{"CMD.EXE /C WHOAMI"},
			want:       nil,
		},
		{
			name:       "whitespace drift is rejected",
			candidates: []string{"cmd.exe  /c whoami"},
			want:       nil,
		},
		{
			name:       "duplicates collapse in first-seen order",
			candidates: []string{"ipconfig /all", "cmd.exe /c whoami", "ipconfig /all"},
			want:       []string{"ipconfig /all", "cmd.exe /c whoami"},
		},
		{
			name:       "empty candidates skipped",
			candidates: []string{"", "cmd.exe /c whoami"},
			want:       []string{"cmd.exe /c whoami"},
		},
		{
			name:       "no candidates",
			candidates: nil,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.candidates, article)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterEmptyArticle(t *testing.T) {
	if got := Filter([]string{"cmd.exe /c whoami"}, ""); got != nil {
		t.Errorf("Filter with empty article = %q, want nil", got)
	}
}

func TestQAValidateDisabledIsIdentity(t *testing.T) {
	v := NewQAValidator(types.QAConfig{Enabled: false}, nil)
	in := []string{"anything at all", "even this"}

	got := v.Validate(in, "unrelated article")
	if !reflect.DeepEqual(got, in) {
		t.Errorf("disabled Validate() = %q, want input unchanged", got)
	}
}

func TestQAValidateRules(t *testing.T) {
	article := `The chain ran "C:\Program Files\App\app.exe" -flag1 -flag2 and` + "\n" +
		`later calc.exe appeared. MsiInstaller noise: setup.exe /quiet was logged.` + "\n" +
		`ipconfig /all ran too. MsiInstaller wrote evil.exe /s here.`

	v := NewQAValidator(types.QAConfig{Enabled: true, Model: "reserved-model"}, nil)

	tests := []struct {
		name string
		cmd  string
		want bool
	}{
		{"full command accepted", `"C:\Program Files\App\app.exe" -flag1 -flag2`, true},
		{"not in article", "cmd.exe /c whoami", false},
		{"bare exe no argument", "calc.exe", false},
		{"no exe token", "ipconfig /all", false},
		{"noise marker", "MsiInstaller wrote evil.exe /s", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate([]string{tt.cmd}, article)
			if kept := len(got) == 1; kept != tt.want {
				t.Errorf("Validate(%q) kept=%v, want %v", tt.cmd, kept, tt.want)
			}
		})
	}
}

func TestQAValidateMonotonic(t *testing.T) {
	article := "app.exe -x ran; noise lines follow."
	v := NewQAValidator(types.QAConfig{Enabled: true}, nil)

	inputs := [][]string{
		{"app.exe -x", "not present", "calc.exe"},
		{},
		{"", "", ""},
	}
	for _, in := range inputs {
		got := v.Validate(in, article)
		if len(got) > len(in) {
			t.Errorf("Validate grew output: %d in, %d out", len(in), len(got))
		}
		for _, s := range got {
			found := false
			for _, orig := range in {
				if s == orig {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate invented %q", s)
			}
		}
	}
}
