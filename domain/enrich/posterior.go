package enrich

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCredibleZ is the one-sided 95% normal quantile used for the
// credible bounds.
const DefaultCredibleZ = 1.645

// PosteriorSummary is the Beta-Binomial shrinkage summary for one (n,k) cell
// against a cohort baseline rate.
type PosteriorSummary struct {
	Mean float64 `json:"mean"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	// ProbAboveBaseline approximates P(p > baseline) under the posterior.
	ProbAboveBaseline float64 `json:"prob_above_baseline"`
}

// Posterior combines a Beta(a,b) prior with observed (n,k) and summarizes the
// posterior with a normal approximation: mean ± z·sd clipped to [0,1], and a
// tail probability against the baseline rate. The approximation trades
// exactness for speed and determinism; it degrades for very small n, which is
// why consumers enforce a minimum sample size before displaying results.
func Posterior(prior Prior, n, k int, baselineRate, z float64) PosteriorSummary {
	alpha := prior.A + float64(k)
	beta := prior.B + float64(n-k)
	denom := alpha + beta
	if denom <= 0 {
		return PosteriorSummary{ProbAboveBaseline: 0.5}
	}

	mean := alpha / denom
	variance := (alpha * beta) / (denom * denom * (denom + 1))

	s := PosteriorSummary{Mean: mean, Low: mean, High: mean}
	if variance > 0 {
		sd := math.Sqrt(variance)
		s.Low = clamp01(mean - z*sd)
		s.High = clamp01(mean + z*sd)
		s.ProbAboveBaseline = distuv.UnitNormal.CDF((mean - baselineRate) / sd)
		return s
	}

	// Degenerate posterior: all mass at the mean.
	switch {
	case mean > baselineRate:
		s.ProbAboveBaseline = 1
	case mean < baselineRate:
		s.ProbAboveBaseline = 0
	default:
		s.ProbAboveBaseline = 0.5
	}
	return s
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
