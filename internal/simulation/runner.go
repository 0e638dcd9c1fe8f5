package simulation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vantorre/hippo/internal/agent"
	"github.com/vantorre/hippo/internal/events"
)

// Runner drives scenarios through a real Cognition with an in-memory
// event sink.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()

	cfg := agent.DefaultConfig()
	if scenario.Config != nil {
		cfg = *scenario.Config
	}
	dt := scenario.Dt
	if dt == 0 {
		dt = 0.1
	}

	rng := rand.New(rand.NewSource(scenario.Seed))
	sink := events.NewMemorySink(0)
	cog := agent.New(scenario.Name, cfg, scenario.PlaceCells, rng, sink, nil)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pos := scenario.Start
	ticks := make([]TickSnapshot, 0, scenario.Ticks)

	for i := 0; i < scenario.Ticks; i++ {
		if scenario.Walk != nil {
			pos = scenario.Walk(i, pos, rng)
		}
		now = now.Add(time.Duration(dt * float64(time.Second)))

		if scenario.Traversals != nil {
			for _, exp := range scenario.Traversals(i, now) {
				cog.ReportTraversal(exp)
			}
		}

		cog.Tick(pos, now, dt)
		ticks = append(ticks, TickSnapshot{
			Tick:     i,
			Position: pos,
			Snapshot: cog.Snapshot(),
		})
	}

	return Result{
		Ticks:     ticks,
		Events:    sink,
		Cognition: cog,
	}
}
