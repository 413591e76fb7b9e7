// Package kernel holds the protocol's numeric constants and the pure
// math functions built on top of them: sigmoids, EMA, Bayesian belief
// update, and the safe log/div helpers that keep every formula finite.
// Mirrors symbiont-core's constants.rs (left a doc-only stub in the
// original source — the authoritative values live in the protocol
// specification's constants table instead) plus the formulas spread
// across connection.rs, trust.rs, and interaction.rs.
package kernel

import "time"

// Connection reinforcement (Physarum update, §4.2).
const (
	Gamma = 0.1  // reinforcement scale
	Mu    = 0.5  // volume exponent
	Alpha = 0.01 // weight decay rate
	Delta = 0.2  // threat penalty scale
	Theta = 0.5  // quality bias in reciprocity update
)

// EMA and sigmoid shape.
const (
	Lambda  = 0.9   // EMA memory
	Beta    = 2.0   // reciprocity sigmoid steepness
	Epsilon = 0.001 // safe_log / safe_div floor
)

// Trust bootstrapping and probation.
const (
	SwiftTrustBase      = 0.4
	ProbationCount      = 50
	ProbationThreshold  = 0.6
	ProbationPromoteCap = 0.8
)

// Feedback quality weights (§ Feedback.compute_quality).
const (
	OmegaHelp    = 0.4
	OmegaAcc     = 0.3
	OmegaRel     = 0.2
	OmegaTime    = 0.1
	ReuseBoost   = 1.2
	ReusePenalty = 0.8
)

// Tone weights (§ ToneSignals.compute_tone).
const (
	ToneWeightEngagement    = 0.4
	ToneWeightFriendliness  = 0.35
	ToneWeightCollaboration = 0.25
)

// Defense signalling.
const (
	PropagateThreshold  = 0.6
	DecayPerHop         = 0.8
	MinSignal           = 0.1
	MaxHops             = 5
	PrimingSensitivity  = 0.1
	PrimingDecay        = 0.99
	PrimingRevertFloor  = 0.1
	PrimingPrimedFloor  = 0.3
	ActionThreshold     = 0.7
	ConfidenceMemory    = 0.95
)

// Detection.
const (
	CollusionThreshold  = 0.85
	CollusionDenseBand  = 0.8
	DiversityThreshold  = 0.3
	AdversaryDrop       = 0.3
	AdversaryInterval   = 100
	StrategicMinHistory = 100
	QualityFraudMinHist = 30
)

// Trust aggregation weights (Q, R, S, D) — sum to 1.
const (
	TrustWeightQuality    = 0.4
	TrustWeightReciprocal = 0.2
	TrustWeightSocial     = 0.2
	TrustWeightDiversity  = 0.2
	DiversityCapBonus     = 0.3
	TrustCapLowDiversity  = 0.7
	TrustCapNormal        = 1.0
)

// Connection lifecycle.
const (
	IdleThreshold = 100_000 * time.Millisecond
)
