package classify

import "testing"

func TestClauseStart(t *testing.T) {
	tests := []struct {
		text string
		idx  int
		want int
	}{
		{"toxicity observed", 5, 0},
		{"stopped. toxicity observed", 15, 8},
		{"stopped; then: toxicity", 20, 14},
	}
	for _, tt := range tests {
		if got := clauseStart(tt.text, tt.idx); got != tt.want {
			t.Errorf("clauseStart(%q, %d) = %d, want %d", tt.text, tt.idx, got, tt.want)
		}
	}
}

// TestNegationClauseClamp verifies a negation in a previous sentence never
// leaks across the clause boundary.
func TestNegationClauseClamp(t *testing.T) {
	lex := DefaultLexicon()

	text := "not a safety study. toxicity was observed"
	idx := 20 // "toxicity"
	if negatedNear(&lex, text, idx, negationLookbackWindow) {
		t.Error("negation from previous clause leaked across the boundary")
	}

	text = "terminated, not due to toxicity"
	idx = 23 // "toxicity"
	if !negatedNear(&lex, text, idx, negationLookbackWindow) {
		t.Error("in-clause negation not detected")
	}
}

func TestTermPositions(t *testing.T) {
	got := termPositions("toxicity and more toxicity", "toxicity")
	want := []int{0, 18}
	if len(got) != len(want) {
		t.Fatalf("termPositions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("termPositions = %v, want %v", got, want)
		}
	}
}

func TestCausalNear(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name string
		text string
		idx  int
		want bool
	}{
		{"cue before term", "terminated due to toxicity", 18, true},
		{"cue after term", "toxicity was the cause, resulting from dosing", 0, true},
		{"no cue", "toxicity was observed during the study", 0, false},
		{"negated cue", "terminated, not due to toxicity concerns", 23, false},
		{"cue across clause boundary", "due to funding. toxicity was also seen", 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := causalNear(&lex, tt.text, tt.idx); got != tt.want {
				t.Errorf("causalNear(%q, %d) = %v, want %v", tt.text, tt.idx, got, tt.want)
			}
		})
	}
}
