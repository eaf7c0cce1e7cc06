package classify

import (
	"fmt"
	"strings"
)

// Decision thresholds for the rule cascade.
const (
	highBiologicalThreshold   = 6
	mediumBiologicalThreshold = 2

	// The regulatory path is the most conservative: regulatory and
	// operational language overlap heavily in registry text, and a false
	// REGULATORY is costlier than a false negative.
	regulatoryAloneThreshold    = 4
	regulatoryAloneHighScore    = 6
	regulatoryOverrideThreshold = 6

	operationalDilution = 1

	maxEvidenceTags = 14
	maxEvidenceLen  = 2000
)

// Engine is the rule-based stop-reason classifier. It is a pure function of
// its text input plus the injected lexicon: no hidden state, safe to call
// concurrently.
type Engine struct {
	lex   Lexicon
	rules []rule
}

// rule is one step of the priority-ordered cascade. A rule may return a
// terminal verdict, or mutate the context and return nil to fall through.
// Rules are evaluated top to bottom; the first verdict wins.
type rule struct {
	name  string
	apply func(*Engine, *scoringContext) *Classification
}

// scoringContext holds everything the cascade reads: it is built fresh per
// classification call and discarded afterwards.
type scoringContext struct {
	raw  string // normalized input, before sentinel protection
	text string // normalized input with protected phrases substituted

	deniesSafety   bool
	deniesEfficacy bool

	operationalHits []string

	safety     DimensionScore
	efficacy   DimensionScore
	regulatory DimensionScore
}

func (c *scoringContext) operationalPresent() bool {
	return len(c.operationalHits) > 0
}

// bestBiological returns the stronger of the two biological dimensions,
// tie broken toward SAFETY.
func (c *scoringContext) bestBiological() (Reason, DimensionScore) {
	if c.safety.Score >= c.efficacy.Score {
		return ReasonSafety, c.safety
	}
	return ReasonEfficacy, c.efficacy
}

// NewEngine builds a classifier around an immutable lexicon.
func NewEngine(lex Lexicon) *Engine {
	e := &Engine{lex: lex}
	e.rules = []rule{
		{name: "empty_input", apply: ruleEmptyInput},
		{name: "non_safety_sentinel", apply: ruleNonSafetySentinel},
		{name: "no_benefit_risk_impact", apply: ruleNoBenefitRiskImpact},
		{name: "operational_dilution", apply: ruleOperationalDilution},
		{name: "denial_override", apply: ruleDenialOverride},
		{name: "biological_high", apply: ruleBiologicalHigh},
		{name: "biological_medium", apply: ruleBiologicalMedium},
		{name: "regulatory", apply: ruleRegulatory},
		{name: "operational", apply: ruleOperational},
		{name: "unclear", apply: ruleUnclear},
	}
	return e
}

// NewDefaultEngine builds a classifier with the production lexicon.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultLexicon())
}

// Classify converts one free-text "why stopped" string into a verdict.
// It is total: no input, however malformed, produces an error.
func (e *Engine) Classify(whyStopped string) Classification {
	ctx := e.newScoringContext(whyStopped)
	for _, r := range e.rules {
		if verdict := r.apply(e, ctx); verdict != nil {
			return *verdict
		}
	}
	// The cascade ends in an unconditional rule; this is unreachable.
	return Unclear("")
}

func (e *Engine) newScoringContext(whyStopped string) *scoringContext {
	ctx := &scoringContext{raw: NormalizeText(whyStopped)}
	if ctx.raw == "" {
		return ctx
	}

	ctx.deniesSafety, ctx.deniesEfficacy = explicitDenialFlags(&e.lex, ctx.raw)
	ctx.text = protectSentinels(&e.lex, ctx.raw)
	ctx.operationalHits = findTerms(ctx.text, e.lex.OperationalTerms)

	ctx.safety = scoreDimension(&e.lex, ctx.text, e.lex.SafetyTerms, e.lex.SafetyWeights, ctx.deniesSafety, dimSafety)
	ctx.efficacy = scoreDimension(&e.lex, ctx.text, e.lex.EfficacyTerms, e.lex.EfficacyWeights, ctx.deniesEfficacy, dimEfficacy)
	ctx.regulatory = e.regulatoryScore(ctx)

	return ctx
}

// regulatoryScore applies the anchor gate: without an explicit regulator,
// authority or hold phrase the whole dimension stays at zero. An explicit
// denial, or a missing positive cue, also keeps it at zero. When operational
// language co-occurs, the score is shaved by one to bias toward OPERATIONAL.
func (e *Engine) regulatoryScore(ctx *scoringContext) DimensionScore {
	if !e.lex.RegulatoryAnchor.MatchString(ctx.text) {
		return DimensionScore{}
	}
	for _, pat := range e.lex.RegulatoryNegations {
		if pat.MatchString(ctx.text) {
			return DimensionScore{}
		}
	}
	if !containsAny(ctx.text, e.lex.RegulatoryPositiveCues) {
		return DimensionScore{}
	}

	ds := scoreDimension(&e.lex, ctx.text, e.lex.RegulatoryTerms, e.lex.RegulatoryWeights, false, dimRegulatory)
	if ctx.operationalPresent() {
		ds.Score -= operationalDilution
	}
	return ds
}

// --- cascade rules, in evaluation order ---

func ruleEmptyInput(_ *Engine, ctx *scoringContext) *Classification {
	if ctx.raw == "" {
		v := Unclear("")
		return &v
	}
	return nil
}

func ruleNonSafetySentinel(e *Engine, ctx *scoringContext) *Classification {
	if containsAny(ctx.raw, e.lex.NonSafetyPhrases) && ctx.operationalPresent() {
		return &Classification{
			Label:      LabelNonBiological,
			Reason:     ReasonOperational,
			Confidence: ConfidenceHigh,
			Evidence:   "special:non_safety_reason;operational:" + strings.Join(ctx.operationalHits, "|"),
		}
	}
	return nil
}

func ruleNoBenefitRiskImpact(e *Engine, ctx *scoringContext) *Classification {
	if containsAny(ctx.raw, e.lex.NoBenefitRiskImpactPhrases) && ctx.operationalPresent() {
		return &Classification{
			Label:      LabelNonBiological,
			Reason:     ReasonOperational,
			Confidence: ConfidenceHigh,
			Evidence:   "special:no_benefit_risk_impact;operational:" + strings.Join(ctx.operationalHits, "|"),
		}
	}
	return nil
}

// Operational language dilutes biological confidence.
func ruleOperationalDilution(_ *Engine, ctx *scoringContext) *Classification {
	if ctx.operationalPresent() {
		ctx.safety.Score -= operationalDilution
		ctx.efficacy.Score -= operationalDilution
	}
	return nil
}

// Explicit denial of both biological dimensions overrides any residual score.
func ruleDenialOverride(_ *Engine, ctx *scoringContext) *Classification {
	if ctx.operationalPresent() && ctx.deniesSafety && ctx.deniesEfficacy {
		return &Classification{
			Label:      LabelNonBiological,
			Reason:     ReasonOperational,
			Confidence: ConfidenceHigh,
			Evidence:   "operational:" + strings.Join(ctx.operationalHits, "|") + ";denial:both",
		}
	}
	return nil
}

func ruleBiologicalHigh(_ *Engine, ctx *scoringContext) *Classification {
	reason, best := ctx.bestBiological()
	if best.Score >= highBiologicalThreshold {
		return &Classification{
			Label:      LabelBiologicalFailure,
			Reason:     reason,
			Confidence: ConfidenceHigh,
			Evidence:   scoredEvidence(best),
		}
	}
	return nil
}

func ruleBiologicalMedium(_ *Engine, ctx *scoringContext) *Classification {
	reason, best := ctx.bestBiological()
	if best.Score >= mediumBiologicalThreshold && !ctx.operationalPresent() {
		return &Classification{
			Label:      LabelBiologicalFailure,
			Reason:     reason,
			Confidence: ConfidenceMedium,
			Evidence:   scoredEvidence(best),
		}
	}
	return nil
}

func ruleRegulatory(_ *Engine, ctx *scoringContext) *Classification {
	_, best := ctx.bestBiological()
	if best.Score >= mediumBiologicalThreshold || ctx.regulatory.Score <= 0 {
		return nil
	}

	if !ctx.operationalPresent() && ctx.regulatory.Score >= regulatoryAloneThreshold {
		conf := ConfidenceMedium
		if ctx.regulatory.Score >= regulatoryAloneHighScore {
			conf = ConfidenceHigh
		}
		return &Classification{
			Label:      LabelNonBiological,
			Reason:     ReasonRegulatory,
			Confidence: conf,
			Evidence:   scoredEvidence(ctx.regulatory),
		}
	}

	// Strong explicit regulatory evidence can override operational language.
	if ctx.operationalPresent() && ctx.regulatory.Score >= regulatoryOverrideThreshold {
		return &Classification{
			Label:      LabelNonBiological,
			Reason:     ReasonRegulatory,
			Confidence: ConfidenceHigh,
			Evidence:   scoredEvidence(ctx.regulatory),
		}
	}
	return nil
}

func ruleOperational(_ *Engine, ctx *scoringContext) *Classification {
	if ctx.operationalPresent() {
		return &Classification{
			Label:      LabelNonBiological,
			Reason:     ReasonOperational,
			Confidence: ConfidenceHigh,
			Evidence:   "operational:" + strings.Join(ctx.operationalHits, "|"),
		}
	}
	return nil
}

// Terminal rule: records both raw scores so an unexpected UNCLEAR can be
// diagnosed from the evidence alone.
func ruleUnclear(_ *Engine, ctx *scoringContext) *Classification {
	v := Unclear(fmt.Sprintf("safety_score=%d;efficacy_score=%d;reg_score=%d",
		ctx.safety.Score, ctx.efficacy.Score, ctx.regulatory.Score))
	return &v
}

// scoredEvidence renders "score=N;" plus at most maxEvidenceTags trail tags.
func scoredEvidence(ds DimensionScore) string {
	tags := ds.Evidence
	if len(tags) > maxEvidenceTags {
		tags = tags[:maxEvidenceTags]
	}
	return fmt.Sprintf("score=%d;%s", ds.Score, strings.Join(tags, ","))
}
