package classify

import "strings"

// protectSentinels substitutes sentinel tokens for "no benefit-risk impact"
// and "non-safety"/"non-efficacy" phrasings so the scanner cannot also count
// them as ordinary negated mentions of "safety"/"efficacy".
func protectSentinels(lex *Lexicon, text string) string {
	out := text
	for _, p := range lex.NoBenefitRiskImpactPhrases {
		out = strings.ReplaceAll(out, p, sentinelNoBenefitRiskImpact)
	}
	for _, p := range lex.NonSafetyPhrases {
		out = strings.ReplaceAll(out, p, sentinelNonSafety)
	}
	for _, p := range lex.NonEfficacyPhrases {
		out = strings.ReplaceAll(out, p, sentinelNonEfficacy)
	}
	return out
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// splitClauses splits on `.`, `;` and `:` and drops empty pieces.
func splitClauses(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ';' || r == ':'
	})
	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			clauses = append(clauses, c)
		}
	}
	return clauses
}

// clauseNegatesCause catches both explicit negations ("not due to") and
// contraction forms ("wasn't due to") inside a single clause.
func clauseNegatesCause(clause string) bool {
	for _, phrase := range []string{
		"not due to", "n't due to",
		"not because of", "n't because of",
		"not prompted by", "n't prompted by",
		"not related to", "n't related to",
		"unrelated to",
	} {
		if strings.Contains(clause, phrase) {
			return true
		}
	}
	return false
}

func clauseDeniesConcern(clause string) bool {
	if strings.Contains(clause, "no ") && (strings.Contains(clause, "concern") || strings.Contains(clause, "signal")) {
		return true
	}
	if strings.Contains(clause, "without") && strings.Contains(clause, "concern") {
		return true
	}
	return clauseNegatesCause(clause)
}

// explicitDenialFlags scans each clause of the raw (unprotected) text for
// explicit non-safety / non-efficacy statements. A "no benefit-risk impact"
// phrasing denies both dimensions at once.
func explicitDenialFlags(lex *Lexicon, textRaw string) (deniesSafety, deniesEfficacy bool) {
	for _, clause := range splitClauses(textRaw) {
		if containsAny(clause, lex.NonSafetyPhrases) {
			deniesSafety = true
		}
		if containsAny(clause, lex.NonEfficacyPhrases) {
			deniesEfficacy = true
		}
		if containsAny(clause, lex.NoBenefitRiskImpactPhrases) {
			deniesSafety = true
			deniesEfficacy = true
		}

		if strings.Contains(clause, "safety") ||
			strings.Contains(clause, "risk benefit") ||
			strings.Contains(clause, "risk/benefit") ||
			strings.Contains(clause, "risk-benefit") {
			if clauseDeniesConcern(clause) {
				deniesSafety = true
			}
			if strings.Contains(clause, "unchanged") || strings.Contains(clause, "no change") {
				deniesSafety = true
			}
		}

		if strings.Contains(clause, "efficacy") || strings.Contains(clause, "endpoint") {
			if clauseDeniesConcern(clause) {
				deniesEfficacy = true
			}
		}
	}
	return deniesSafety, deniesEfficacy
}
