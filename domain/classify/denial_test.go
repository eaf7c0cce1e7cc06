package classify

import (
	"strings"
	"testing"
)

func TestProtectSentinels(t *testing.T) {
	lex := DefaultLexicon()

	out := protectSentinels(&lex, "terminated for a non-safety reason")
	if strings.Contains(out, "non-safety") {
		t.Errorf("non-safety phrase not protected: %q", out)
	}
	if !strings.Contains(out, sentinelNonSafety) {
		t.Errorf("sentinel missing from protected text: %q", out)
	}

	out = protectSentinels(&lex, "finding had no benefit-risk impact")
	if !strings.Contains(out, sentinelNoBenefitRiskImpact) {
		t.Errorf("benefit-risk sentinel missing: %q", out)
	}
}

func TestExplicitDenialFlags(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name         string
		text         string
		wantSafety   bool
		wantEfficacy bool
	}{
		{"plain text", "terminated due to toxicity", false, false},
		{"no safety concerns", "sponsor decision; no safety concerns", true, false},
		{"safety unchanged", "the safety profile was unchanged", true, false},
		{"efficacy not cause", "termination was not due to efficacy", false, true},
		{"benefit-risk impact denies both", "finding had no benefit-risk impact", true, true},
		{"non-efficacy phrase", "stopped for non-efficacy reasons", false, true},
		{"denial scoped to its clause", "no safety concerns. efficacy was the problem", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSafety, gotEfficacy := explicitDenialFlags(&lex, NormalizeText(tt.text))
			if gotSafety != tt.wantSafety || gotEfficacy != tt.wantEfficacy {
				t.Errorf("explicitDenialFlags(%q) = (%v, %v), want (%v, %v)",
					tt.text, gotSafety, gotEfficacy, tt.wantSafety, tt.wantEfficacy)
			}
		})
	}
}

func TestSplitClauses(t *testing.T) {
	got := splitClauses("one. two; three: four")
	want := []string{"one", "two", "three", "four"}
	if len(got) != len(want) {
		t.Fatalf("splitClauses = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitClauses = %v, want %v", got, want)
		}
	}
}
