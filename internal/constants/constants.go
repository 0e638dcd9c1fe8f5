// Package constants provides named constants used throughout the hippo
// codebase. This centralizes tuning values for better maintainability
// and documentation.
package constants

// Localization constants.
const (
	// PlaceCellActiveThreshold is the minimum activation for a place cell
	// to contribute to the position estimate or the activity traces.
	PlaceCellActiveThreshold = 0.1

	// GridActivationStep is added to the occupied grid cell at each scale
	// per tick.
	GridActivationStep = 0.1

	// GridDecayFactor is the multiplicative decay applied to every grid
	// cell once per tick, before the current cells are bumped.
	GridDecayFactor = 0.99

	// EstimateBlendCentroid is the weight of the place-cell centroid when
	// blending into the previous position estimate. The previous estimate
	// keeps the complement.
	EstimateBlendCentroid = 0.3

	// ConfidenceRange is the estimate error, in world units, at which
	// position confidence reaches its floor.
	ConfidenceRange = 100.0

	// ConfidenceFloor is the minimum position confidence while any place
	// cell is active.
	ConfidenceFloor = 0.1

	// FallbackConfidence is the position confidence assigned when no
	// place cell covers the agent and the estimate snaps to ground truth.
	FallbackConfidence = 0.3

	// RecalibrationDistance is the single-tick estimate jump, in world
	// units, that counts as a position recalibration.
	RecalibrationDistance = 5.0

	// HeadDirectionCellCount is the number of head-direction cells,
	// spaced uniformly over the full circle.
	HeadDirectionCellCount = 8

	// HeadDirectionIdleDecay is the multiplicative decay applied to
	// head-direction activations on ticks where the agent did not move.
	HeadDirectionIdleDecay = 0.9
)

// Landmark graph constants.
const (
	// DiscoveryThreshold is the minimum distance from every known
	// landmark before a new one may be discovered.
	DiscoveryThreshold = 50.0

	// DiscoveryRatePerSecond is the expected landmark discovery rate in
	// unmapped space. The per-tick probability is derived from dt so
	// behavior is frame-rate independent.
	DiscoveryRatePerSecond = 0.01

	// ConnectionRadius is the distance within which landmarks are
	// considered co-observed and pairwise connected.
	ConnectionRadius = 100.0

	// NewConnectionConfidence is the starting confidence of a connection.
	NewConnectionConfidence = 0.5

	// ConnectionStrengthenStep is added to a connection's confidence each
	// tick its endpoints are co-observed.
	ConnectionStrengthenStep = 0.01

	// ObservationSalienceStep is added to a landmark's salience each tick
	// it is observed.
	ObservationSalienceStep = 0.01

	// NewLandmarkSalience is the starting salience of a discovered landmark.
	NewLandmarkSalience = 0.8

	// NewLandmarkConfidence is the starting position confidence of a
	// discovered landmark.
	NewLandmarkConfidence = 0.9

	// LandmarkTTLSeconds is how long a landmark survives without being
	// observed before the maintenance pass prunes it.
	LandmarkTTLSeconds = 300

	// GridMaintenanceDecay is the multiplicative decay applied to grid
	// activations during map maintenance.
	GridMaintenanceDecay = 0.999

	// GridActivationFloor is the activation at or below which a grid cell
	// is dropped from the map.
	GridActivationFloor = 0.01
)

// Synaptic plasticity constants.
const (
	// SynapticLearningRate scales Hebbian weight deltas.
	SynapticLearningRate = 0.01

	// SynapticDecayRate is subtracted from every weight per second.
	SynapticDecayRate = 0.005

	// TraceDecayBase is the per-second base of activity trace decay:
	// traces are multiplied by TraceDecayBase^dt.
	TraceDecayBase = 0.9

	// TraceFloor is the trace value at or below which a trace is removed.
	TraceFloor = 0.01

	// ActiveTraceThreshold is the minimum trace for a concept to join the
	// Hebbian pairwise update.
	ActiveTraceThreshold = 0.2

	// MaxActiveConcepts bounds the active set for the quadratic Hebbian
	// loop; strongest traces win.
	MaxActiveConcepts = 12

	// LTPThreshold is the trace level both endpoints must exceed for
	// long-term potentiation.
	LTPThreshold = 0.8

	// LTPBoost is the fixed weight boost applied by LTP.
	LTPBoost = 0.1

	// SynapticChangeEpsilon is the minimum weight change worth reporting.
	SynapticChangeEpsilon = 0.001

	// ConceptQuantum is the quantization step, in world units, used to
	// derive concept identifiers from place-field centers.
	ConceptQuantum = 10.0
)

// Path learning constants.
const (
	// PathLearningRate is the TD step size toward observed reward.
	PathLearningRate = 0.1

	// PathDiscountFactor is reserved for a multi-step TD extension; the
	// single-step update does not consume it.
	PathDiscountFactor = 0.9

	// RecencyWindowSeconds is the short-horizon filter: only experiences
	// younger than this train the value map.
	RecencyWindowSeconds = 5

	// RetentionWindowSeconds is how long experiences are retained before
	// expiring regardless of consumption.
	RetentionWindowSeconds = 60

	// PathChangeEpsilon is the minimum value change worth reporting.
	PathChangeEpsilon = 0.01
)

// Exploration/exploitation adaptation constants. Success rates between
// the low and high thresholds leave the dial untouched; the dead band
// prevents oscillation from single outlier outcomes.
const (
	// HighSuccessRate is the success rate above which exploration shrinks.
	HighSuccessRate = 0.8

	// LowSuccessRate is the success rate below which exploration grows.
	LowSuccessRate = 0.4

	// ExplorationShrinkFactor multiplies the exploration rate on success.
	ExplorationShrinkFactor = 0.95

	// ExplorationGrowFactor multiplies the exploration rate on failure.
	ExplorationGrowFactor = 1.05

	// ExplorationRateMin and ExplorationRateMax bound the dial.
	ExplorationRateMin = 0.05
	ExplorationRateMax = 0.5

	// StrategyConfidenceStep is the additive adjustment to strategy
	// confidence per adaptation.
	StrategyConfidenceStep = 0.01

	// StrategyConfidenceMin and StrategyConfidenceMax bound confidence.
	StrategyConfidenceMin = 0.1
	StrategyConfidenceMax = 1.0

	// AttemptResetCount is the attempt count past which the recent
	// attempt/success counters reset.
	AttemptResetCount = 20
)

// Memory consolidation constants.
const (
	// ConsolidationIntervalSeconds is the simulated time between
	// consolidation passes.
	ConsolidationIntervalSeconds = 90

	// StrongWeightThreshold is the synaptic weight above which
	// consolidation reinforces.
	StrongWeightThreshold = 0.7

	// WeightConsolidationBoost is added to strong synaptic weights.
	WeightConsolidationBoost = 0.01

	// StrongValueThreshold is the path value above which consolidation
	// reinforces.
	StrongValueThreshold = 0.7

	// ValueConsolidationBoost is added to strong path values.
	ValueConsolidationBoost = 0.02

	// ConnectionBackflowFactor scales synaptic weight into spatial
	// connection confidence during consolidation.
	ConnectionBackflowFactor = 0.01
)

// Simulation constants.
const (
	// DefaultTickSeconds is the simulated tick duration when none is
	// configured.
	DefaultTickSeconds = 0.1
)
