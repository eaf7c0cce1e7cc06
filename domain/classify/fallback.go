package classify

import "strings"

// snippetWindow is the total width of the mined description snippet; the
// window is centered on the first stop-related cue (±180 characters).
const snippetWindow = 360

// looksGenericWhyStopped reports whether the structured field is a boilerplate
// pointer ("see detailed description") rather than a real reason.
func (e *Engine) looksGenericWhyStopped(whyStopped string) bool {
	t := NormalizeText(whyStopped)
	if t == "" {
		return true
	}
	return containsAny(t, e.lex.GenericWhyStoppedPhrases)
}

// ExtractStopSnippet pulls a bounded chunk around the first stop-related cue
// in description text, so the full background narrative never reaches the
// classifier. Returns "" when no cue is found.
func (e *Engine) ExtractStopSnippet(description string) string {
	t := NormalizeText(description)
	if t == "" {
		return ""
	}

	first := -1
	for _, cue := range e.lex.StopSnippetCues {
		if i := strings.Index(t, cue); i != -1 && (first == -1 || i < first) {
			first = i
		}
	}
	if first == -1 {
		return ""
	}

	start := first - snippetWindow/2
	if start < 0 {
		start = 0
	}
	end := first + snippetWindow/2
	if end > len(t) {
		end = len(t)
	}
	return strings.TrimSpace(t[start:end])
}

// ClassifyWithFallback runs the primary classification on the structured
// why-stopped field and, when the result is UNCLEAR or the field is a generic
// placeholder, mines the description fields for a stop-reason snippet and
// re-classifies on the augmented text. Registries often hide the real reason
// in free-form description fields.
//
// The mined verdict replaces the primary one only when it is not itself
// UNCLEAR and either the primary was UNCLEAR or the mined confidence is
// strictly higher.
func (e *Engine) ClassifyWithFallback(whyStopped, briefSummary, detailedDescription string) Classification {
	base := e.Classify(whyStopped)

	if base.Label != LabelUnclear && !e.looksGenericWhyStopped(whyStopped) {
		return base
	}

	snippet := e.ExtractStopSnippet(detailedDescription)
	if snippet == "" {
		snippet = e.ExtractStopSnippet(briefSummary)
	}
	if snippet == "" {
		return base
	}

	alt := e.Classify(whyStopped + " " + snippet)
	if alt.Label == LabelUnclear {
		return base
	}

	if base.Label == LabelUnclear || alt.Confidence.Rank() > base.Confidence.Rank() {
		evidence := "augmented_from_description;" + alt.Evidence
		if len(evidence) > maxEvidenceLen {
			evidence = evidence[:maxEvidenceLen]
		}
		return Classification{
			Label:      alt.Label,
			Reason:     alt.Reason,
			Confidence: alt.Confidence,
			Evidence:   evidence,
		}
	}
	return base
}
