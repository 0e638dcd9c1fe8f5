// Package consolidation implements the low-frequency, sleep-like
// maintenance pass that nudges already-strong synaptic weights and path
// values upward and feeds synaptic strength back into spatial connection
// confidence. The pass is gated by elapsed simulated time accumulated
// per agent, never by tick-rate-coupled coin flips.
package consolidation

import (
	"time"

	"github.com/vantorre/hippo/internal/constants"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/pathlearn"
	"github.com/vantorre/hippo/internal/plasticity"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Config holds tunable parameters for memory consolidation.
type Config struct {
	// Interval is the simulated time between consolidation passes.
	Interval time.Duration

	// WeightThreshold and WeightBoost reinforce strong synapses.
	WeightThreshold float64
	WeightBoost     float64

	// ValueThreshold and ValueBoost reinforce strong path values.
	ValueThreshold float64
	ValueBoost     float64

	// BackflowFactor scales synaptic weight into connection confidence.
	BackflowFactor float64

	// ConceptQuantum maps landmark positions onto concept IDs; must match
	// the plasticity engine's quantum.
	ConceptQuantum float64
}

// DefaultConfig returns the default consolidation configuration.
func DefaultConfig() Config {
	return Config{
		Interval:        constants.ConsolidationIntervalSeconds * time.Second,
		WeightThreshold: constants.StrongWeightThreshold,
		WeightBoost:     constants.WeightConsolidationBoost,
		ValueThreshold:  constants.StrongValueThreshold,
		ValueBoost:      constants.ValueConsolidationBoost,
		BackflowFactor:  constants.ConnectionBackflowFactor,
		ConceptQuantum:  constants.ConceptQuantum,
	}
}

// SynapseStore is the slice of the plasticity engine consolidation needs.
type SynapseStore interface {
	ReinforceStrong(min, boost float64) []plasticity.Change
	Weight(models.SynapseKey) (float64, bool)
}

// ValueStore is the slice of the path learner consolidation needs.
type ValueStore interface {
	ReinforceStrong(min, boost float64) []pathlearn.Change
}

// ConnectionGraph is the slice of the spatial map consolidation needs.
type ConnectionGraph interface {
	Connections() []models.SpatialConnection
	LandmarkPosition(id string) (vecmath.Vec2, bool)
	RaiseConfidence(a, b string, delta float64) bool
}

// Result reports what one consolidation pass changed.
type Result struct {
	// Ran reports whether the interval elapsed and the pass executed.
	Ran bool

	SynapseChanges          []plasticity.Change
	ValueChanges            []pathlearn.Change
	ConnectionsStrengthened int
}

// Consolidator accumulates simulated time and runs the pass when the
// interval elapses. One per agent; not safe for concurrent use.
type Consolidator struct {
	cfg     Config
	elapsed time.Duration
}

// New creates a consolidator.
func New(cfg Config) *Consolidator {
	return &Consolidator{cfg: cfg}
}

// Step advances the accumulator by dt and runs one consolidation pass if
// the interval has elapsed. Time beyond the interval carries over so a
// long tick cannot swallow a pass.
func (c *Consolidator) Step(dt time.Duration, syn SynapseStore, vals ValueStore, graph ConnectionGraph) Result {
	c.elapsed += dt
	if c.cfg.Interval <= 0 || c.elapsed < c.cfg.Interval {
		return Result{}
	}
	c.elapsed -= c.cfg.Interval

	res := Result{Ran: true}
	res.SynapseChanges = syn.ReinforceStrong(c.cfg.WeightThreshold, c.cfg.WeightBoost)
	res.ValueChanges = vals.ReinforceStrong(c.cfg.ValueThreshold, c.cfg.ValueBoost)
	res.ConnectionsStrengthened = c.backflow(syn, graph)
	return res
}

// backflow raises the confidence of every spatial connection whose
// endpoint landmarks map onto a weighted synapse, by weight*factor.
func (c *Consolidator) backflow(syn SynapseStore, graph ConnectionGraph) int {
	count := 0
	for _, conn := range graph.Connections() {
		posA, okA := graph.LandmarkPosition(conn.A)
		posB, okB := graph.LandmarkPosition(conn.B)
		if !okA || !okB {
			continue
		}

		key := models.NewSynapseKey(
			plasticity.Quantize(posA, c.cfg.ConceptQuantum),
			plasticity.Quantize(posB, c.cfg.ConceptQuantum),
		)
		w, ok := syn.Weight(key)
		if !ok || w <= 0 {
			continue
		}
		if graph.RaiseConfidence(conn.A, conn.B, w*c.cfg.BackflowFactor) {
			count++
		}
	}
	return count
}

// Pending returns the accumulated simulated time toward the next pass.
func (c *Consolidator) Pending() time.Duration { return c.elapsed }
