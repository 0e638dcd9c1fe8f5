package simulation

import (
	"math"
	"math/rand"
	"time"

	"github.com/vantorre/hippo/internal/agent"
	"github.com/vantorre/hippo/internal/events"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Scenario defines a complete simulation experiment for one agent.
type Scenario struct {
	Name       string
	PlaceCells []models.PlaceCell

	// Config overrides the default agent configuration when non-nil.
	Config *agent.Config

	// Start is the agent's initial true position.
	Start vecmath.Vec2

	// Ticks is the number of cognition steps to run.
	Ticks int

	// Dt is the simulated tick duration in seconds. 0 defaults to 0.1.
	Dt float64

	// Seed seeds the scenario RNG shared by the walk and discovery.
	Seed int64

	// Walk produces the next true position. When nil the agent stays at
	// Start.
	Walk func(tick int, pos vecmath.Vec2, rng *rand.Rand) vecmath.Vec2

	// Traversals, when non-nil, is called each tick to inject completed
	// path experiences before the cognition step.
	Traversals func(tick int, now time.Time) []models.PathExperience
}

// TickSnapshot is the captured state after one tick.
type TickSnapshot struct {
	Tick     int
	Position vecmath.Vec2
	Snapshot agent.Snapshot
}

// Result captures the run: per-tick snapshots, the emitted events, and
// the live cognition for direct inspection.
type Result struct {
	Ticks     []TickSnapshot
	Events    *events.MemorySink
	Cognition *agent.Cognition
}

// Final returns the last captured snapshot.
func (r Result) Final() agent.Snapshot {
	if len(r.Ticks) == 0 {
		return agent.Snapshot{}
	}
	return r.Ticks[len(r.Ticks)-1].Snapshot
}

// StraightWalk returns a walk function moving at speed units/second in
// the given heading, assuming a 0.1s tick.
func StraightWalk(speed, heading float64) func(int, vecmath.Vec2, *rand.Rand) vecmath.Vec2 {
	step := vecmath.Vec2{X: math.Cos(heading), Y: math.Sin(heading)}.Scale(speed * 0.1)
	return func(_ int, pos vecmath.Vec2, _ *rand.Rand) vecmath.Vec2 {
		return pos.Add(step)
	}
}

// RandomWalk returns a walk function taking uniformly random steps of at
// most maxStep per tick.
func RandomWalk(maxStep float64) func(int, vecmath.Vec2, *rand.Rand) vecmath.Vec2 {
	return func(_ int, pos vecmath.Vec2, rng *rand.Rand) vecmath.Vec2 {
		return pos.Add(vecmath.Vec2{
			X: (rng.Float64()*2 - 1) * maxStep,
			Y: (rng.Float64()*2 - 1) * maxStep,
		})
	}
}

// GridPlaceCells lays out place fields on a regular grid covering
// [0,extent] in both axes.
func GridPlaceCells(extent, spacing, radius float64) []models.PlaceCell {
	var cells []models.PlaceCell
	for x := 0.0; x <= extent; x += spacing {
		for y := 0.0; y <= extent; y += spacing {
			cells = append(cells, models.PlaceCell{
				Center:        vecmath.Vec2{X: x, Y: y},
				Radius:        radius,
				MaxActivation: 1.0,
			})
		}
	}
	return cells
}
