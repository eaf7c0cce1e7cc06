package classify

import "strings"

// Window sizes for negation and causal-proximity scanning, in characters.
// All lookbacks are additionally clamped to the enclosing clause so cues in a
// previous sentence never leak across a boundary.
const (
	negationLookbackWindow  = 50
	causalProximityWindow   = 90
	causalCueNegationWindow = 25
)

// clauseStart returns the index just past the last clause boundary
// (`.`, `;` or `:`) before idx, or 0 if the clause starts the text.
func clauseStart(text string, idx int) int {
	if idx > len(text) {
		idx = len(text)
	}
	prefix := text[:idx]
	start := max3(
		strings.LastIndexByte(prefix, '.'),
		strings.LastIndexByte(prefix, ';'),
		strings.LastIndexByte(prefix, ':'),
	)
	if start == -1 {
		return 0
	}
	return start + 1
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// negatedNear reports whether a negation cue appears in the clause-scoped
// window before the occurrence at idx.
func negatedNear(lex *Lexicon, text string, idx, window int) bool {
	cs := clauseStart(text, idx)
	start := idx - window
	if cs > start {
		start = cs
	}
	if start < 0 {
		start = 0
	}
	context := text[start:idx]
	for _, cue := range lex.NegationCues {
		if strings.Contains(context, cue) {
			return true
		}
	}
	return false
}

// termPositions returns every non-overlapping occurrence offset of term.
func termPositions(text, term string) []int {
	var positions []int
	start := 0
	for {
		i := strings.Index(text[start:], term)
		if i == -1 {
			break
		}
		positions = append(positions, start+i)
		start += i + len(term)
	}
	return positions
}

// hasUnnegatedTerm reports whether at least one occurrence of term survives
// the negation scan.
func hasUnnegatedTerm(lex *Lexicon, text, term string) bool {
	for _, idx := range termPositions(text, term) {
		if !negatedNear(lex, text, idx, negationLookbackWindow) {
			return true
		}
	}
	return false
}

// causalNear reports whether a causal cue sits within the clause-scoped
// window around the occurrence at idx, and that cue is itself not negated
// (a tighter lookback catches "not due to").
func causalNear(lex *Lexicon, text string, idx int) bool {
	cs := clauseStart(text, idx)
	start := idx - causalProximityWindow
	if cs > start {
		start = cs
	}
	if start < 0 {
		start = 0
	}
	end := idx + causalProximityWindow
	if end > len(text) {
		end = len(text)
	}
	context := text[start:end]

	for _, cue := range lex.CausalCues {
		m := cue.FindStringIndex(context)
		if m == nil {
			continue
		}
		cueStart := start + m[0]
		if negatedNear(lex, text, cueStart, causalCueNegationWindow) {
			continue
		}
		return true
	}
	return false
}
