// Package plasticity implements the synaptic learning engine: decaying
// activity traces per concept, pairwise Hebbian strengthening, synaptic
// decay, and long-term potentiation over a weighted concept-pair map.
//
// Update order within a tick is fixed: trace decay and refresh, Hebbian,
// decay, LTP — so LTP checks see the freshest traces and weights.
package plasticity

import (
	"math"
	"sort"

	"github.com/vantorre/hippo/internal/constants"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Config holds tunable parameters for the plasticity engine.
type Config struct {
	// LearningRate scales Hebbian weight deltas.
	LearningRate float64

	// DecayRate is subtracted from every weight per second.
	DecayRate float64

	// TraceDecayBase is the per-second base of trace decay (base^dt).
	TraceDecayBase float64

	// TraceFloor is the trace value at or below which a trace is removed.
	TraceFloor float64

	// ActiveTraceThreshold gates concepts into the Hebbian pair loop.
	ActiveTraceThreshold float64

	// MaxActiveConcepts bounds the quadratic pair loop; the strongest
	// traces win when more concepts are active.
	MaxActiveConcepts int

	// LTPThreshold is the trace level both endpoints must exceed for LTP.
	LTPThreshold float64

	// LTPBoost is the fixed weight boost LTP applies.
	LTPBoost float64

	// ChangeEpsilon is the minimum weight change worth reporting.
	ChangeEpsilon float64

	// ConceptQuantum is the coordinate quantization step for concept IDs.
	ConceptQuantum float64
}

// DefaultConfig returns the default plasticity configuration.
func DefaultConfig() Config {
	return Config{
		LearningRate:         constants.SynapticLearningRate,
		DecayRate:            constants.SynapticDecayRate,
		TraceDecayBase:       constants.TraceDecayBase,
		TraceFloor:           constants.TraceFloor,
		ActiveTraceThreshold: constants.ActiveTraceThreshold,
		MaxActiveConcepts:    constants.MaxActiveConcepts,
		LTPThreshold:         constants.LTPThreshold,
		LTPBoost:             constants.LTPBoost,
		ChangeEpsilon:        constants.SynapticChangeEpsilon,
		ConceptQuantum:       constants.ConceptQuantum,
	}
}

// LearningKind labels what produced a weight change.
type LearningKind uint8

const (
	KindHebbian LearningKind = iota
	KindLTP
	KindDecay
)

// String returns the lowercase name of the learning kind.
func (k LearningKind) String() string {
	switch k {
	case KindHebbian:
		return "hebbian"
	case KindLTP:
		return "long-term-potentiation"
	case KindDecay:
		return "decay"
	default:
		return "unknown"
	}
}

// Change is one reported synaptic weight change.
type Change struct {
	Kind      LearningKind
	Synapse   models.SynapseKey
	OldWeight float64
	NewWeight float64
}

// ConceptActivation is one active concept feeding the trace map,
// typically derived from an active place cell.
type ConceptActivation struct {
	Concept    models.ConceptID
	Activation float64
}

// Quantize derives the concept identifier for a position by quantizing
// its coordinates to the given step.
func Quantize(pos vecmath.Vec2, quantum float64) models.ConceptID {
	if quantum <= 0 {
		quantum = constants.ConceptQuantum
	}
	return models.ConceptID{
		QX: int32(math.Floor(pos.X / quantum)),
		QY: int32(math.Floor(pos.Y / quantum)),
	}
}

// Engine is one agent's synaptic plasticity state. Not safe for
// concurrent use.
type Engine struct {
	cfg     Config
	weights map[models.SynapseKey]float64
	traces  map[models.ConceptID]float64
}

// NewEngine creates an empty plasticity engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		weights: make(map[models.SynapseKey]float64),
		traces:  make(map[models.ConceptID]float64),
	}
}

// Step runs one plasticity tick: trace decay and refresh from the active
// concepts, Hebbian pair updates, synaptic decay, then LTP. dt is the
// tick duration in seconds. Changes above the epsilon are returned in
// application order.
func (e *Engine) Step(active []ConceptActivation, dt float64) []Change {
	e.decayTraces(dt)
	e.refreshTraces(active)
	e.pruneTraces()

	changes := e.hebbian()
	changes = append(changes, e.decayWeights(dt)...)
	changes = append(changes, e.potentiate()...)
	return changes
}

// decayTraces applies time-scaled exponential decay to every trace.
func (e *Engine) decayTraces(dt float64) {
	if dt <= 0 {
		return
	}
	factor := math.Pow(e.cfg.TraceDecayBase, dt)
	for id, tr := range e.traces {
		e.traces[id] = tr * factor
	}
}

// refreshTraces overwrites traces for currently active concepts.
func (e *Engine) refreshTraces(active []ConceptActivation) {
	for _, a := range active {
		e.traces[a.Concept] = vecmath.Clamp01(a.Activation)
	}
}

// pruneTraces removes traces at or below the floor.
func (e *Engine) pruneTraces() {
	for id, tr := range e.traces {
		if tr <= e.cfg.TraceFloor {
			delete(e.traces, id)
		}
	}
}

// activeConcepts returns concepts with trace above the Hebbian threshold,
// capped at MaxActiveConcepts by trace strength and sorted canonically so
// pair iteration is deterministic.
func (e *Engine) activeConcepts() []models.ConceptID {
	var ids []models.ConceptID
	for id, tr := range e.traces {
		if tr > e.cfg.ActiveTraceThreshold {
			ids = append(ids, id)
		}
	}

	if limit := e.cfg.MaxActiveConcepts; limit > 0 && len(ids) > limit {
		sort.Slice(ids, func(i, j int) bool {
			ti, tj := e.traces[ids[i]], e.traces[ids[j]]
			if ti != tj {
				return ti > tj
			}
			return ids[i].Less(ids[j])
		})
		ids = ids[:limit]
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// hebbian strengthens the synapse of every active concept pair by
// learning_rate * trace_i * trace_j, capped at 1.
func (e *Engine) hebbian() []Change {
	ids := e.activeConcepts()

	var changes []Change
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			key := models.NewSynapseKey(ids[i], ids[j])
			old := e.weights[key]
			delta := e.cfg.LearningRate * e.traces[ids[i]] * e.traces[ids[j]]
			next := math.Min(1, old+delta)
			e.weights[key] = next
			if math.Abs(next-old) > e.cfg.ChangeEpsilon {
				changes = append(changes, Change{Kind: KindHebbian, Synapse: key, OldWeight: old, NewWeight: next})
			}
		}
	}
	return changes
}

// decayWeights subtracts decay_rate*dt from every weight, floors at zero
// and deletes entries that reach it.
func (e *Engine) decayWeights(dt float64) []Change {
	if dt <= 0 {
		return nil
	}
	step := e.cfg.DecayRate * dt

	var changes []Change
	for key, w := range e.weights {
		next := math.Max(0, w-step)
		if math.Abs(next-w) > e.cfg.ChangeEpsilon {
			changes = append(changes, Change{Kind: KindDecay, Synapse: key, OldWeight: w, NewWeight: next})
		}
		if next == 0 {
			delete(e.weights, key)
			continue
		}
		e.weights[key] = next
	}
	return changes
}

// potentiate applies the fixed LTP boost to every synapse whose two
// endpoint traces both exceed the threshold.
func (e *Engine) potentiate() []Change {
	var changes []Change
	for key, w := range e.weights {
		if e.traces[key.Pre] <= e.cfg.LTPThreshold || e.traces[key.Post] <= e.cfg.LTPThreshold {
			continue
		}
		next := math.Min(1, w+e.cfg.LTPBoost)
		if math.Abs(next-w) > e.cfg.ChangeEpsilon {
			changes = append(changes, Change{Kind: KindLTP, Synapse: key, OldWeight: w, NewWeight: next})
		}
		e.weights[key] = next
	}
	return changes
}

// ReinforceStrong adds boost to every weight above min, capped at 1.
// Used by the consolidation pass.
func (e *Engine) ReinforceStrong(min, boost float64) []Change {
	var changes []Change
	for key, w := range e.weights {
		if w <= min {
			continue
		}
		next := math.Min(1, w+boost)
		if next != w {
			changes = append(changes, Change{Kind: KindLTP, Synapse: key, OldWeight: w, NewWeight: next})
		}
		e.weights[key] = next
	}
	return changes
}

// Weight returns the weight of a synapse, if present.
func (e *Engine) Weight(key models.SynapseKey) (float64, bool) {
	w, ok := e.weights[key]
	return w, ok
}

// Weights returns a copy of the weight map.
func (e *Engine) Weights() map[models.SynapseKey]float64 {
	out := make(map[models.SynapseKey]float64, len(e.weights))
	for k, v := range e.weights {
		out[k] = v
	}
	return out
}

// Trace returns the activity trace of a concept, 0 if absent.
func (e *Engine) Trace(id models.ConceptID) float64 { return e.traces[id] }

// Traces returns a copy of the trace map.
func (e *Engine) Traces() map[models.ConceptID]float64 {
	out := make(map[models.ConceptID]float64, len(e.traces))
	for k, v := range e.traces {
		out[k] = v
	}
	return out
}

// SynapseCount returns the number of weighted connections held.
func (e *Engine) SynapseCount() int { return len(e.weights) }
