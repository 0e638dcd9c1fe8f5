// Package agent composes the five spatial cognition subsystems into one
// per-agent Cognition and drives them in tick order: localization, then
// landmark graph maintenance, then synaptic plasticity, then path value
// learning, then consolidation. The agent's true position is read once
// at the start of the tick and treated as immutable for the rest of it.
package agent

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/vantorre/hippo/internal/consolidation"
	"github.com/vantorre/hippo/internal/events"
	"github.com/vantorre/hippo/internal/localization"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/pathlearn"
	"github.com/vantorre/hippo/internal/plasticity"
	"github.com/vantorre/hippo/internal/spatialmap"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Config aggregates the subsystem configurations.
type Config struct {
	Localization  localization.Config
	Map           spatialmap.Config
	Plasticity    plasticity.Config
	Path          pathlearn.Config
	Consolidation consolidation.Config
}

// DefaultConfig returns defaults for every subsystem.
func DefaultConfig() Config {
	return Config{
		Localization:  localization.DefaultConfig(),
		Map:           spatialmap.DefaultConfig(),
		Plasticity:    plasticity.DefaultConfig(),
		Path:          pathlearn.DefaultConfig(),
		Consolidation: consolidation.DefaultConfig(),
	}
}

// Cognition is one agent's spatial cognition state. It is exclusively
// owned by its agent: not safe for concurrent use, but fully independent
// of every other agent's Cognition.
type Cognition struct {
	id           string
	cfg          Config
	net          *localization.Network
	smap         *spatialmap.Map
	engine       *plasticity.Engine
	learner      *pathlearn.Learner
	consolidator *consolidation.Consolidator
	sink         events.Sink
	log          *slog.Logger
}

// New creates a Cognition over the given place fields. sink may be nil
// to discard emitted records; log may be nil to discard logging.
func New(id string, cfg Config, placeCells []models.PlaceCell, rng *rand.Rand, sink events.Sink, log *slog.Logger) *Cognition {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cognition{
		id:           id,
		cfg:          cfg,
		net:          localization.NewNetwork(cfg.Localization, placeCells),
		smap:         spatialmap.New(cfg.Map, rng),
		engine:       plasticity.NewEngine(cfg.Plasticity),
		learner:      pathlearn.NewLearner(cfg.Path),
		consolidator: consolidation.New(cfg.Consolidation),
		sink:         sink,
		log:          log.With("agent", id),
	}
}

// Tick runs one full cognition step from the agent's true position.
// dt is the simulated tick duration in seconds.
func (c *Cognition) Tick(truePos vecmath.Vec2, now time.Time, dt float64) {
	est := c.net.Update(truePos, dt)
	if est.Recalibrated {
		c.emit(events.Event{
			Time:       now,
			Kind:       events.KindSpatialMapUpdated,
			UpdateType: events.UpdatePositionRecalibrated,
		})
	}

	res := c.smap.Maintain(est.Position, truePos, now, dt)
	c.net.MaintainGrid()
	c.emitMapChanges(now, res)

	changes := c.engine.Step(c.activeConcepts(), dt)
	c.emitSynapticChanges(now, changes)

	pathChanges := c.learner.Step(now)
	c.emitPathChanges(now, pathChanges)

	cres := c.consolidator.Step(secondsToDuration(dt), c.engine, c.learner, c.smap)
	if cres.Ran {
		c.log.Debug("memory consolidation",
			"synapses", len(cres.SynapseChanges),
			"values", len(cres.ValueChanges),
			"connections", cres.ConnectionsStrengthened)
	}
}

// ReportTraversal records a completed path traversal from the navigation
// collaborator.
func (c *Cognition) ReportTraversal(exp models.PathExperience) {
	c.learner.Record(exp)
}

// activeConcepts maps active place cells onto concept activations via
// quantized field centers.
func (c *Cognition) activeConcepts() []plasticity.ConceptActivation {
	cells := c.net.ActivePlaceCells()
	if len(cells) == 0 {
		return nil
	}
	out := make([]plasticity.ConceptActivation, 0, len(cells))
	for _, cell := range cells {
		out = append(out, plasticity.ConceptActivation{
			Concept:    plasticity.Quantize(cell.Center, c.cfg.Plasticity.ConceptQuantum),
			Activation: cell.Activation,
		})
	}
	return out
}

func (c *Cognition) emitMapChanges(now time.Time, res spatialmap.Result) {
	for _, lm := range res.Discovered {
		pos := lm.CognitivePosition
		c.emit(events.Event{
			Time:         now,
			Kind:         events.KindLandmarkDiscovered,
			LandmarkID:   lm.ID,
			Position:     &pos,
			LandmarkType: lm.Type.String(),
		})
		c.emit(events.Event{
			Time:       now,
			Kind:       events.KindSpatialMapUpdated,
			UpdateType: events.UpdateLandmarkAdded,
		})
		c.log.Debug("landmark discovered", "landmark", lm.ID, "type", lm.Type.String())
	}
	for _, conn := range res.Strengthened {
		c.emit(events.Event{
			Time:       now,
			Kind:       events.KindSpatialMapUpdated,
			UpdateType: events.UpdateConnectionStrengthened,
			Connection: fmt.Sprintf("%s-%s", conn.A, conn.B),
			NewWeight:  conn.Confidence,
		})
	}
}

func (c *Cognition) emitSynapticChanges(now time.Time, changes []plasticity.Change) {
	for _, ch := range changes {
		var lt events.LearningType
		switch ch.Kind {
		case plasticity.KindHebbian:
			lt = events.LearningHebbian
		case plasticity.KindLTP:
			lt = events.LearningLTP
		case plasticity.KindDecay:
			lt = events.LearningDecay
		}
		c.emit(events.Event{
			Time:         now,
			Kind:         events.KindSynapticLearning,
			Connection:   synapseLabel(ch.Synapse),
			OldWeight:    ch.OldWeight,
			NewWeight:    ch.NewWeight,
			LearningType: lt,
		})
	}
}

func (c *Cognition) emitPathChanges(now time.Time, changes []pathlearn.Change) {
	for _, ch := range changes {
		c.emit(events.Event{
			Time:         now,
			Kind:         events.KindSynapticLearning,
			Connection:   ch.Segment.String(),
			OldWeight:    ch.OldValue,
			NewWeight:    ch.NewValue,
			LearningType: events.LearningReinforcement,
			Reward:       ch.Reward,
		})
	}
}

func (c *Cognition) emit(e events.Event) {
	if c.sink == nil {
		return
	}
	e.Agent = c.id
	if err := c.sink.Record(e); err != nil {
		c.log.Debug("event sink write failed", "kind", e.Kind, "error", err)
	}
}

func synapseLabel(key models.SynapseKey) string {
	return fmt.Sprintf("(%d,%d)~(%d,%d)", key.Pre.QX, key.Pre.QY, key.Post.QX, key.Post.QY)
}

func secondsToDuration(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}

// Snapshot is the queryable state exposed to goal-selection, navigation
// and presentation collaborators. All slices are copies.
type Snapshot struct {
	Agent              string
	EstimatedPosition  vecmath.Vec2
	PositionConfidence float64
	Heading            float64
	Speed              float64
	Landmarks          []models.Landmark
	Connections        []models.SpatialConnection
	ExplorationRate    float64
	StrategyConfidence float64
	SynapseCount       int
	GridCells          int
}

// Snapshot returns a race-free copy of the queryable state.
func (c *Cognition) Snapshot() Snapshot {
	adaptive := c.learner.Adaptive()
	return Snapshot{
		Agent:              c.id,
		EstimatedPosition:  c.net.EstimatedPosition(),
		PositionConfidence: c.net.Confidence(),
		Heading:            c.net.Heading(),
		Speed:              c.net.Speed(),
		Landmarks:          c.smap.Landmarks(),
		Connections:        c.smap.Connections(),
		ExplorationRate:    adaptive.ExplorationRate,
		StrategyConfidence: adaptive.StrategyConfidence,
		SynapseCount:       c.engine.SynapseCount(),
		GridCells:          c.net.GridSize(),
	}
}

// ID returns the agent identifier.
func (c *Cognition) ID() string { return c.id }

// Map exposes the landmark graph for the pathfinding collaborator.
func (c *Cognition) Map() *spatialmap.Map { return c.smap }

// PathValue returns the learned value of a segment, 0.0 when unknown.
func (c *Cognition) PathValue(seg models.PathSegment) float64 {
	return c.learner.Value(seg)
}

// Weights returns a copy of the synaptic weight map.
func (c *Cognition) Weights() map[models.SynapseKey]float64 {
	return c.engine.Weights()
}

// Traces returns a copy of the concept activity traces.
func (c *Cognition) Traces() map[models.ConceptID]float64 {
	return c.engine.Traces()
}

// PathValues returns a copy of the learned path value map.
func (c *Cognition) PathValues() map[models.PathSegment]float64 {
	return c.learner.Values()
}

// Localization exposes the localization network for inspection.
func (c *Cognition) Localization() *localization.Network { return c.net }

// Adaptive returns the exploration/exploitation state.
func (c *Cognition) Adaptive() pathlearn.Adaptive { return c.learner.Adaptive() }
