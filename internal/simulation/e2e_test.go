package simulation

import (
	"testing"
	"time"

	"github.com/vantorre/hippo/internal/agent"
	"github.com/vantorre/hippo/internal/events"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

func TestStationaryAgentLocalizes(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "stationary",
		PlaceCells: []models.PlaceCell{
			{Center: vecmath.Vec2{}, Radius: 50, MaxActivation: 1.0},
		},
		Ticks: 1,
	})

	final := result.Final()
	if final.EstimatedPosition.Distance(vecmath.Vec2{}) > 1e-9 {
		t.Errorf("expected estimate at origin, got %v", final.EstimatedPosition)
	}
	if final.PositionConfidence != 1.0 {
		t.Errorf("expected confidence 1.0 at zero error, got %f", final.PositionConfidence)
	}

	cells := result.Cognition.Localization().ActivePlaceCells()
	if len(cells) != 1 {
		t.Fatalf("expected 1 active place cell, got %d", len(cells))
	}
	if cells[0].Activation != 1.0 {
		t.Errorf("expected full activation at field center, got %f", cells[0].Activation)
	}

	// One cell per grid scale, freshly bumped then maintenance-decayed.
	if final.GridCells != len(models.GridScales) {
		t.Errorf("expected %d grid cells, got %d", len(models.GridScales), final.GridCells)
	}
	key := models.GridCellKey{X: 0, Y: 0, Scale: 10}
	if v := result.Cognition.Localization().GridActivation(key); v < 0.09 || v > 0.1 {
		t.Errorf("expected first-tick grid activation just under 0.1, got %f", v)
	}
}

func TestWalkDiscoversLandmarksAndConnections(t *testing.T) {
	cfg := agent.DefaultConfig()
	cfg.Map.DiscoveryRate = 1.0
	cfg.Map.DiscoveryThreshold = 10

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:       "straight-walk",
		PlaceCells: GridPlaceCells(400, 40, 60),
		Config:     &cfg,
		Ticks:      1000,
		Seed:       3,
		Walk:       StraightWalk(3.0, 0),
	})

	AssertLandmarksDiscovered(t, result, 3)
	AssertBoundedState(t, result)

	final := result.Final()
	for _, lm := range final.Landmarks {
		if lm.Type != models.LandmarkEnvironmental {
			t.Errorf("discovered landmark %s has type %s", lm.ID, lm.Type)
		}
	}
	if len(final.Connections) == 0 {
		t.Error("expected connections between co-observed landmarks")
	}
	for _, conn := range final.Connections {
		if conn.A >= conn.B {
			t.Errorf("connection endpoints not canonically ordered: %s >= %s", conn.A, conn.B)
		}
	}

	if got := len(result.Events.Events(events.Filter{Kind: events.KindLandmarkDiscovered})); got < 3 {
		t.Errorf("expected at least 3 discovery events, got %d", got)
	}
}

func TestCoActivationFormsSynapses(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "co-activation",
		PlaceCells: []models.PlaceCell{
			{Center: vecmath.Vec2{X: 0, Y: 0}, Radius: 50, MaxActivation: 1.0},
			{Center: vecmath.Vec2{X: 20, Y: 0}, Radius: 50, MaxActivation: 1.0},
		},
		Start: vecmath.Vec2{X: 10, Y: 0},
		Ticks: 50,
	})

	AssertSynapsesFormed(t, result, 1)
	AssertBoundedState(t, result)

	// Both fields stay active, so LTP should eventually fire on top of
	// Hebbian growth.
	kinds := map[events.LearningType]int{}
	for _, e := range result.Events.Events(events.Filter{Kind: events.KindSynapticLearning}) {
		kinds[e.LearningType]++
	}
	if kinds[events.LearningHebbian] == 0 {
		t.Error("expected hebbian learning events")
	}
	if kinds[events.LearningLTP] == 0 {
		t.Error("expected long-term potentiation events")
	}
}

// TestDefaultRateDiscovery runs the stock 0.01/s discovery rate long
// enough (2000 simulated seconds) that the seeded RNG fires at least
// once. The stationary agent then suppresses further discoveries inside
// the threshold while observation refresh keeps the landmark alive far
// past its 300s TTL.
func TestDefaultRateDiscovery(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "default-rate",
		PlaceCells: []models.PlaceCell{
			{Center: vecmath.Vec2{}, Radius: 50, MaxActivation: 1.0},
		},
		Ticks: 20000,
		Seed:  1,
	})

	final := result.Final()
	if len(final.Landmarks) != 1 {
		t.Fatalf("expected exactly 1 landmark (discovered once, then suppressed), got %d", len(final.Landmarks))
	}
	lm := final.Landmarks[0]
	if lm.Type != models.LandmarkEnvironmental {
		t.Errorf("expected environmental landmark, got %s", lm.Type)
	}
	if lm.Salience < 0.8 {
		t.Errorf("expected salience at or above starting 0.8, got %f", lm.Salience)
	}
	AssertBoundedState(t, result)
}

func TestRepeatedSuccessShiftsToExploitation(t *testing.T) {
	seg := models.PathSegment{From: "nest", To: "food"}

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:       "exploitation",
		PlaceCells: []models.PlaceCell{{Center: vecmath.Vec2{}, Radius: 50, MaxActivation: 1.0}},
		Ticks:      200,
		Traversals: func(tick int, now time.Time) []models.PathExperience {
			if tick%5 != 0 {
				return nil
			}
			return []models.PathExperience{{
				Segment:   seg,
				Success:   true,
				Reward:    1.0,
				Timestamp: now,
			}}
		},
	})

	final := result.Final()
	if final.ExplorationRate != 0.05 {
		t.Errorf("expected exploration rate at floor 0.05 after sustained success, got %f", final.ExplorationRate)
	}
	if final.StrategyConfidence <= 0.55 {
		t.Errorf("expected strategy confidence to rise above start, got %f", final.StrategyConfidence)
	}
	if v := result.Cognition.PathValue(seg); v < 0.9 {
		t.Errorf("expected segment value to converge toward reward 1.0, got %f", v)
	}
	AssertBoundedState(t, result)
}
