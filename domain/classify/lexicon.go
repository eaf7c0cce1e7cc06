package classify

import "regexp"

// Lexicon is the immutable configuration data the engine scores against.
// It is injected at construction and never mutated at run time, so one
// Lexicon value is safe to share across concurrent classifications.
//
// Term lists are ordered: evidence tags come out in scan order, which keeps
// the audit trail reproducible across runs.
type Lexicon struct {
	SafetyTerms      []string
	EfficacyTerms    []string
	OperationalTerms []string
	RegulatoryTerms  []string

	// Weights per dimension; terms absent from the map score weight 1.
	SafetyWeights     map[string]int
	EfficacyWeights   map[string]int
	RegulatoryWeights map[string]int

	NegationCues []string
	CausalCues   []*regexp.Regexp

	// Regulatory scoring is disabled entirely unless the anchor matches.
	// The bare word "regulatory" must never unlock the REGULATORY bucket.
	RegulatoryAnchor       *regexp.Regexp
	RegulatoryNegations    []*regexp.Regexp
	RegulatoryPositiveCues []string

	// Phrases replaced by sentinel tokens before scanning, so an explicit
	// "non-safety" cannot be double-counted as a negated "safety" mention.
	NoBenefitRiskImpactPhrases []string
	NonSafetyPhrases           []string
	NonEfficacyPhrases         []string

	// Placeholder why-stopped strings that trigger description mining.
	GenericWhyStoppedPhrases []string
	StopSnippetCues          []string
}

// Sentinel tokens substituted for protected phrases. Underscored so they can
// never collide with lexicon terms.
const (
	sentinelNoBenefitRiskImpact = "no_benefit_risk_impact"
	sentinelNonSafety           = "non_safety"
	sentinelNonEfficacy         = "non_efficacy"
)

// DefaultLexicon returns the calibrated production term tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		SafetyTerms: []string{
			"safety", "safety concern", "safety concerns",
			"safety issue", "safety issues",
			"safety reasons",
			"adverse event", "adverse events",
			"adverse effect", "adverse effects",
			"serious adverse",
			"sae", "saes",
			"toxicity", "toxic",
			"unacceptable toxicity",
			"dose limiting", "dose-limiting", "dose limiting toxicity", "dlt", "dlts",
			"intolerable",
			"unacceptable risk",
			"risk/benefit", "risk benefit", "risk-benefit",
			"safety profile",
			// Regulatory / monitoring committee signals
			"clinical hold", "fda clinical hold", "regulatory hold",
			"dsmb", "data safety monitoring board",
			"dmc", "data monitoring committee",
		},

		EfficacyTerms: []string{
			"efficacy concern", "efficacy concerns",
			"lack of efficacy",
			"insufficient efficacy",
			"no efficacy",
			"ineffective",
			"no benefit",
			"no signal of activity",
			"no signal of efficacy",
			"no activity",
			"unmet primary endpoint",
			"unmet endpoint",
			"failed to meet",
			"did not meet",
			"primary endpoint",
			"endpoint not met",
			"end point not met",
			"end-point not met",
			"futility",
			"futile",
			"futility analysis",
			"interim analysis",
			"stopping for futility",
			"lack of response",
			"no response",
			"no clinical benefit",
			"no meaningful benefit",
		},

		// Operational/admin phrasing is the main driver of OTHER/UNKNOWN when
		// coverage is thin, so this list is deliberately broad.
		OperationalTerms: []string{
			"recruit", "recruitment", "enrollment", "enrolment", "accrual",
			"insufficient accrual", "slow accrual", "low accrual", "poor accrual",
			"unable to enroll", "unable to enrol",
			"no participants enrolled", "no patients enrolled", "no subjects enrolled",
			"not enough participants", "insufficient enrollment", "insufficient enrolment",

			"funding", "budget", "financial",
			"lack of funds", "insufficient funds", "not funded", "lack of resources",

			"administrative", "logistical", "site closure", "site closed", "site closures", "staffing",
			"regulatory delay", "protocol deviation",

			"sponsor decision", "sponsor's decision", "sponsors decision",
			"sponsor request", "per sponsor request", "at sponsor request",
			"terminated by sponsor", "sponsor withdrew support", "withdrew support",
			"sponsor-initiated", "sponsor initiated",

			"company decision", "business decision", "business reasons", "corporate decision",
			"strategic decision", "strategic reasons",
			"prioritisation", "prioritization",
			"portfolio", "commercial reasons",

			"external environment", "changes in the external environment",
			"development halted", "development has been halted", "programme halted", "program halted",
			"no longer pursuing",
			"competitive landscape", "competitive", "market dynamics", "market",

			"covid", "pandemic",

			"investigator decision", "investigator request",
			"pi decision", "pi request", "pi left", "pi left institution",
			"principal investigator left", "investigator left",

			"study never started", "never started", "never initiated", "not initiated",

			"drug supply", "drug supply issues", "supply issues", "manufacturing issues",
			"contract issues", "agreement issues",

			"feasibility", "feasibility issues", "not feasible",
		},

		RegulatoryTerms: []string{
			"fda", "food and drug administration",
			"ema", "european medicines agency",
			"mhra", "medicines and healthcare products regulatory agency",
			"health canada",
			"tga", "therapeutic goods administration",
			"anvisa",
			"pmda",
			"nmpa",
			"competent authority",
			"health authority",
			"regulatory authority", "regulatory authorities",
			"regulator", "regulatory",

			"clinical hold", "fda clinical hold", "regulatory hold",
			"inspection", "gcp", "good clinical practice",
			"audit", "audit findings",
			"non-compliance", "noncompliance",
			"warning letter",
			"approval not obtained", "not approved by", "not approved",
			"regulatory approval",
		},

		SafetyWeights: map[string]int{
			"safety concerns": 2,
			"safety concern":  2,
			"safety issues":   2,
			"safety issue":    2,
			"safety reasons":  3,
			"adverse event":   2,
			"adverse events":  2,
			"serious adverse": 3,
			"toxicity":        2,
			"unacceptable toxicity": 3,
			"unacceptable risk":     3,
			"risk/benefit":          2,
			"risk benefit":          2,
			"risk-benefit":          2,
			"safety profile":        2,
			"clinical hold":         3,
			"fda clinical hold":     3,
			"regulatory hold":       2,
			"dsmb":                  2,
			"data safety monitoring board": 3,
			"dmc":                          2,
			"data monitoring committee":    3,
		},

		EfficacyWeights: map[string]int{
			"efficacy concerns":     2,
			"efficacy concern":      2,
			"lack of efficacy":      3,
			"insufficient efficacy": 3,
			"no efficacy":           3,
			"ineffective":           2,
			"no benefit":            2,
			"no clinical benefit":   3,
			"no meaningful benefit": 3,
			"lack of response":      2,
			"no response":           2,
			"unmet primary endpoint": 3,
			"unmet endpoint":         2,
			"endpoint not met":       3,
			"did not meet":           3,
			"failed to meet":         3,
			"futility":               3,
			"futility analysis":      3,
			"stopping for futility":  3,
			// Raised so "interim analysis" alone can contribute.
			"interim analysis":     2,
			"no signal of activity": 3,
			"no signal of efficacy": 3,
			"no activity":           2,
		},

		RegulatoryWeights: map[string]int{
			"fda": 5,
			"food and drug administration": 5,
			"ema":                          5,
			"european medicines agency":    5,
			"mhra":                         5,
			"health canada":                5,
			"tga":                          4,
			"therapeutic goods administration": 5,
			"anvisa":                           5,
			"pmda":                             5,
			"nmpa":                             5,
			"competent authority":              4,
			"health authority":                 4,
			"regulatory authority":             4,
			"regulatory authorities":           4,
			"regulator":                        3,
			"regulatory":                       2,

			"clinical hold":        5,
			"fda clinical hold":    6,
			"regulatory hold":      5,
			"warning letter":       5,
			"inspection":           4,
			"audit":                3,
			"audit findings":       4,
			"gcp":                  4,
			"good clinical practice": 4,
			"non-compliance":         4,
			"noncompliance":          4,
			"approval not obtained":  4,
			"not approved by":        4,
			"not approved":           3,
			"regulatory approval":    4,
		},

		NegationCues: []string{
			"no ", "not ", "without ", "none ", "neither ", "nor ",

			// Contraction forms matter for registry prose ("wasn't due to").
			"n't ",

			"not due to", "not because of", "not prompted by", "not related to",
			"unrelated to", "not caused by", "not attributable to",

			"n't due to", "n't because of", "n't prompted by", "n't related to",

			"cannot ", "can't ", "won't ", "didn't ", "doesn't ", "don't ",
			"isn't ", "aren't ", "wasn't ", "weren't ",
		},

		CausalCues: []*regexp.Regexp{
			regexp.MustCompile(`\bdue to\b`),
			regexp.MustCompile(`\bbecause of\b`),
			regexp.MustCompile(`\bsecondary to\b`),
			regexp.MustCompile(`\bas a result of\b`),
			regexp.MustCompile(`\bresulting from\b`),
			regexp.MustCompile(`\bprompted by\b`),
			regexp.MustCompile(`\bdriven by\b`),
			regexp.MustCompile(`\brelated to\b`),
		},

		// Only these tokens can unlock the REGULATORY bucket. Vague language
		// like "on hold" or "unable to open" must not be mislabeled.
		RegulatoryAnchor: regexp.MustCompile(`\b(` +
			`fda|food and drug administration|ema|european medicines agency|mhra|health canada|` +
			`therapeutic goods administration|tga|anvisa|pmda|nmpa|` +
			`regulatory authority|regulatory authorities|health authority|health authorities|competent authority|` +
			`regulatory agency|regulatory agencies|regulator|regulators|` +
			`clinical hold|fda clinical hold|regulatory hold|` +
			`regulatory request|regulatory requests` +
			`)\b`),

		// Hard block: the text explicitly states the stop was NOT regulatory.
		RegulatoryNegations: []*regexp.Regexp{
			regexp.MustCompile(`(?is)\bnot\s+due\s+to\b.{0,120}\bregulat`),
			regexp.MustCompile(`(?is)\bnot\s+because\s+of\b.{0,120}\bregulat`),
			regexp.MustCompile(`(?is)\bno\s+request(?:s)?\s+from\b.{0,120}\bregulat`),
			regexp.MustCompile(`(?is)\bnot\s+requested\s+by\b.{0,120}\bregulat`),
			regexp.MustCompile(`(?is)\bwithout\b.{0,120}\bregulat`),
			regexp.MustCompile(`(?is)\bno\b.{0,60}\bregulatory\b.{0,60}\brequest`),
			regexp.MustCompile(`(?is)\bno\b.{0,60}\brequest\b.{0,60}\bregulatory`),
			regexp.MustCompile(`(?is)\bno\b.{0,60}\bregulatory\b.{0,60}\bconcern`),
			regexp.MustCompile(`(?is)\bno\b.{0,60}\bregulatory\b.{0,60}\bissue`),
		},

		// A positive cue must also be present before regulatory scoring runs;
		// generic mentions like "regulatory developments" stay inert.
		RegulatoryPositiveCues: []string{
			"due to", "because of", "at the request of", "requested by", "required by",
			"per fda", "per ema", "based on fda", "based on ema", "fda feedback", "ema feedback",
			"following fda", "following ema", "as requested by",
			"clinical hold", "fda clinical hold", "regulatory hold", "placed on hold by",
			"approval not obtained", "not approved by", "not approved", "regulatory approval",
			"inspection", "audit", "gcp", "non-compliance", "warning letter",
			"ind", "cta",
			"regulatory request", "regulatory requests",
		},

		NoBenefitRiskImpactPhrases: []string{
			"no benefit-risk impact",
			"no benefit risk impact",
			"no impact on benefit-risk",
			"no impact on benefit risk",
			"no impact to benefit-risk",
			"no impact to benefit risk",
		},

		NonSafetyPhrases:   []string{"non-safety", "non safety", "non–safety", "nonsafety"},
		NonEfficacyPhrases: []string{"non-efficacy", "non efficacy", "non–efficacy", "nonefficacy"},

		GenericWhyStoppedPhrases: []string{
			"see detailed description",
			"see the detailed description",
			"see study description",
			"see description",
			"see details",
			"reason described",
			"refer to",
		},

		StopSnippetCues: []string{
			"terminated", "withdrawn", "suspended",
			"stopped", "halted", "discontinued",
			"clinical hold",
		},
	}
}
