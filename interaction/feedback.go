package interaction

import (
	"math"

	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/scalar"
)

// Feedback is structured 1-5 star user feedback about an interaction,
// supplementing the bare quality/tone observables the core protocol
// takes as given inputs (SPEC_FULL.md §12; symbiont-core/src/
// interaction.rs Feedback).
type Feedback struct {
	Helpfulness uint8
	Accuracy    uint8
	Relevance   uint8
	Timeliness  uint8
	WouldReuse  bool
}

func clampStar(v uint8) uint8 {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// NewFeedback clamps each rating into [1,5].
func NewFeedback(helpfulness, accuracy, relevance, timeliness uint8, wouldReuse bool) Feedback {
	return Feedback{
		Helpfulness: clampStar(helpfulness),
		Accuracy:    clampStar(accuracy),
		Relevance:   clampStar(relevance),
		Timeliness:  clampStar(timeliness),
		WouldReuse:  wouldReuse,
	}
}

func PerfectFeedback() Feedback { return NewFeedback(5, 5, 5, 5, true) }
func PoorFeedback() Feedback    { return NewFeedback(1, 1, 1, 1, false) }
func NeutralFeedback() Feedback { return NewFeedback(3, 3, 3, 3, false) }

// ComputeQuality maps the weighted star ratings, with a reuse
// multiplier, into a normalized [0,1] quality score.
//
// Q_raw = omega_help*helpfulness + omega_acc*accuracy +
//
//	omega_rel*relevance + omega_time*timeliness
//
// Q_multiplied = Q_raw * (reuse_boost if would_reuse else
// reuse_penalty) Q_normalized maps the resulting [0.8, 6.0] range to
// [0, 1].
func (f Feedback) ComputeQuality() scalar.Score {
	qRaw := kernel.OmegaHelp*float64(f.Helpfulness) +
		kernel.OmegaAcc*float64(f.Accuracy) +
		kernel.OmegaRel*float64(f.Relevance) +
		kernel.OmegaTime*float64(f.Timeliness)

	multiplier := kernel.ReusePenalty
	if f.WouldReuse {
		multiplier = kernel.ReuseBoost
	}
	qMultiplied := qRaw * multiplier
	qNormalized := (qMultiplied - 0.8) / (6.0 - 0.8)
	return scalar.NewScore(qNormalized)
}

// ToneSignals are the nine raw engagement/friendliness/collaboration
// signals the protocol folds into a single tone score.
type ToneSignals struct {
	LatencyScore float64
	Elaboration  float64
	Questions    float64

	Affirmative    float64
	Hedging        float64
	Acknowledgment float64

	Alternatives float64
	BuildOn      float64
	CreditGiving float64
}

func PositiveTone() ToneSignals {
	return ToneSignals{0.8, 0.8, 0.5, 0.8, 0.2, 0.8, 0.6, 0.7, 0.6}
}

func NegativeTone() ToneSignals {
	return ToneSignals{0, 0, 0, 0, 1, 0, 0, 0, 0}
}

func NeutralTone() ToneSignals {
	return ToneSignals{0.5, 0.5, 0.3, 0.5, 0.5, 0.5, 0.3, 0.3, 0.3}
}

// ComputeTone folds the nine signals into tau = tanh(w_e*E + w_f*F +
// w_c*C), where E is engagement, F is friendliness (centered at 0),
// and C is collaboration.
func (t ToneSignals) ComputeTone() scalar.SignedScore {
	e := 0.4*t.LatencyScore + 0.4*t.Elaboration + 0.2*t.Questions
	f := 0.5*(t.Affirmative-0.5) + 0.3*(0.5-t.Hedging) + 0.2*t.Acknowledgment
	c := 0.5*t.Alternatives + 0.3*t.BuildOn + 0.2*t.CreditGiving

	raw := kernel.ToneWeightEngagement*e +
		kernel.ToneWeightFriendliness*f +
		kernel.ToneWeightCollaboration*c

	return scalar.NewSignedScore(math.Tanh(raw))
}
