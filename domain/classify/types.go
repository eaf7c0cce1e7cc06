package classify

// Label is the top-level verdict on why a trial stopped
type Label string

const (
	LabelBiologicalFailure Label = "BIOLOGICAL_FAILURE"
	LabelNonBiological     Label = "NON_BIOLOGICAL"
	LabelUnclear           Label = "UNCLEAR"
)

// Reason is the finer stop-reason bucket. The same closed set is used by the
// enrichment aggregator; consumers must treat any other string as a defect.
type Reason string

const (
	ReasonSafety       Reason = "SAFETY"
	ReasonEfficacy     Reason = "EFFICACY/FUTILITY"
	ReasonOperational  Reason = "OPERATIONAL"
	ReasonRegulatory   Reason = "REGULATORY"
	ReasonOtherUnknown Reason = "OTHER/UNKNOWN"
)

// Confidence expresses how strong the matched evidence was
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Rank orders confidence levels for fallback-acceptance comparisons
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Classification is the immutable verdict for one trial's stop reason.
// Evidence is an audit trail of matched-term and rule tags.
//
// INVARIANTS:
// - Label == BIOLOGICAL_FAILURE implies Reason in {SAFETY, EFFICACY/FUTILITY}
// - Label == UNCLEAR implies Reason == OTHER/UNKNOWN and Confidence == LOW,
//   unless the value came from a manual override
type Classification struct {
	Label      Label      `json:"label"`
	Reason     Reason     `json:"reason"`
	Confidence Confidence `json:"confidence"`
	Evidence   string     `json:"evidence"`
}

// Unclear is the verdict for empty or uninterpretable input
func Unclear(evidence string) Classification {
	return Classification{
		Label:      LabelUnclear,
		Reason:     ReasonOtherUnknown,
		Confidence: ConfidenceLow,
		Evidence:   evidence,
	}
}

// IsBiological reports whether the verdict blames the drug's biology
func (c Classification) IsBiological() bool {
	return c.Label == LabelBiologicalFailure
}

// DimensionScore is a signed accumulator plus its ordered evidence trail,
// built fresh per classification call and never persisted.
type DimensionScore struct {
	Score    int
	Evidence []string
}
