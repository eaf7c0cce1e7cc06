package classify

import (
	"fmt"
	"strings"
)

// Scoring constants. Thresholds are calibrated so one ambiguous term never
// triggers a verdict but two corroborating, non-negated, causally linked
// terms do.
const (
	denialPenalty       = 3
	causalBonus         = 2
	endpointPhraseBonus = 3
	futilityPhraseBonus = 3
)

const (
	dimSafety     = "saf"
	dimEfficacy   = "eff"
	dimRegulatory = "reg"
)

// scoreDimension walks every occurrence of every term in the dimension's
// table: non-negated occurrences add the term's weight (default 1), and a
// causally linked occurrence earns a further bonus. An explicit denial of the
// dimension subtracts a fixed penalty up front.
//
// The efficacy dimension carries two extra phrase bonuses: "primary endpoint"
// co-occurring with a failure phrase, and an un-negated "futility" mention.
func scoreDimension(lex *Lexicon, text string, terms []string, weights map[string]int, denied bool, dim string) DimensionScore {
	var ds DimensionScore

	if denied {
		ds.Score -= denialPenalty
		ds.Evidence = append(ds.Evidence, dim+":explicit_denial")
	}

	for _, term := range terms {
		positions := termPositions(text, term)
		if len(positions) == 0 {
			continue
		}
		weight := weights[term]
		if weight == 0 {
			weight = 1
		}
		for _, idx := range positions {
			if negatedNear(lex, text, idx, negationLookbackWindow) {
				continue
			}
			ds.Score += weight
			ds.Evidence = append(ds.Evidence, fmt.Sprintf("%s:term:%s(w=%d)", dim, term, weight))
			if causalNear(lex, text, idx) {
				ds.Score += causalBonus
				ds.Evidence = append(ds.Evidence, fmt.Sprintf("%s:causal_near:%s", dim, term))
			}
		}
	}

	if dim == dimEfficacy {
		if strings.Contains(text, "primary endpoint") &&
			(strings.Contains(text, "not met") || strings.Contains(text, "failed") || strings.Contains(text, "did not meet")) {
			if !denied {
				ds.Score += endpointPhraseBonus
				ds.Evidence = append(ds.Evidence, "eff:endpoint_not_met_phrase")
			}
		}
		if strings.Contains(text, "futility") && !denied && hasUnnegatedTerm(lex, text, "futility") {
			ds.Score += futilityPhraseBonus
			ds.Evidence = append(ds.Evidence, "eff:futility_phrase")
		}
	}

	return ds
}

// findTerms returns the subset of terms present in the text, in table order.
// Used for the operational dimension, which is a plain membership test with
// no weighting or negation awareness.
func findTerms(text string, terms []string) []string {
	var hits []string
	for _, t := range terms {
		if strings.Contains(text, t) {
			hits = append(hits, t)
		}
	}
	return hits
}
