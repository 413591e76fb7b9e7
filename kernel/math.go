package kernel

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// expArgLimit is the magnitude beyond which exp()'s argument is
// clamped before evaluation, keeping every sigmoid finite instead of
// over/underflowing (SPEC_FULL.md §9, "Numeric safety").
const expArgLimit = 700.0

func clampExpArg(x float64) float64 {
	if x > expArgLimit {
		return expArgLimit
	}
	if x < -expArgLimit {
		return -expArgLimit
	}
	return x
}

// Sigmoid returns 1/(1+exp(-x)), saturating to 0/1 for large |x|.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-clampExpArg(x)))
}

// ReciprocitySigmoid maps an unbounded reciprocity value into (-1, 1)
// via 2*sigmoid(beta*r) - 1. Sign-preserving: negative r always yields
// a negative result, positive r a positive one, and r=0 maps to
// exactly 0.
func ReciprocitySigmoid(r float64) float64 {
	return 2*Sigmoid(Beta*r) - 1
}

// QualityMultiplier maps q in [0,1] to [0.5, 1.5].
func QualityMultiplier(q float64) float64 {
	return 0.5 + q
}

// ToneMultiplier maps tau in [-1,1] to [0.4, 1.0].
func ToneMultiplier(tau float64) float64 {
	return 0.7 + 0.3*tau
}

// SafeLog returns ln(max(x, Epsilon)), always finite.
func SafeLog(x float64) float64 {
	if x < Epsilon {
		x = Epsilon
	}
	return math.Log(x)
}

// ExchangeRatioLog computes safe_log(in/(out+epsilon)).
func ExchangeRatioLog(in, out float64) float64 {
	return SafeLog(in / (out + Epsilon))
}

// BayesianUpdate folds a new weighted observation w into an existing
// belief b: b + w*(1-b). Monotone non-decreasing in b for any
// w in [0,1]; equality holds only when b=1 or w=0.
func BayesianUpdate(b, w float64) float64 {
	return b + w*(1-b)
}

// EMA computes an exponential moving average step: lambda*old +
// (1-lambda)*new. Idempotent when new == old.
func EMA(old, newVal, lambda float64) float64 {
	return lambda*old + (1-lambda)*newVal
}

// TimeDecay returns exp(age * ln(0.5) / halfLife), 0 if halfLife is 0.
func TimeDecay(age, halfLife float64) float64 {
	if halfLife == 0 {
		return 0
	}
	return math.Exp(age * math.Ln2 * -1 / halfLife)
}

// Mean returns the arithmetic mean of vs, or fallback if vs is empty.
func Mean(vs []float64, fallback float64) float64 {
	if len(vs) == 0 {
		return fallback
	}
	return stat.Mean(vs, nil)
}

// Variance returns the population variance of vs around its own mean,
// 0 if vs has fewer than two elements. Uses gonum's variance and
// rescales from the sample (n-1) form stat.Variance reports to the
// population (n) form the detection formulas are specified against.
func Variance(vs []float64) float64 {
	n := len(vs)
	if n < 2 {
		return 0
	}
	sampleVar := stat.Variance(vs, nil)
	return sampleVar * float64(n-1) / float64(n)
}

// WeightedMean returns sum(values[i]*weights[i])/sum(weights), or
// fallback when the total weight is below epsilon.
func WeightedMean(values, weights []float64, fallback float64) float64 {
	var num, den float64
	for i, v := range values {
		num += v * weights[i]
		den += weights[i]
	}
	if den < Epsilon {
		return fallback
	}
	return num / den
}
