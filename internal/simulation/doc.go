// Package simulation provides a multi-tick test harness for validating
// emergent dynamics of the spatial cognition pipeline.
//
// The simulation exercises the real localization network, landmark graph,
// plasticity engine and path learner together, no mocks. Scenarios are Go
// builders that describe a walk through the world and run a configurable
// number of cognition ticks, capturing per-tick snapshots for
// property-based assertions.
//
// Discovery RNGs are seeded per scenario so runs are reproducible.
//
// Usage:
//
//	func TestWalkDiscoversLandmarks(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:       "straight-walk",
//	        PlaceCells: cells,
//	        Ticks:      600,
//	        Walk:       simulation.StraightWalk(1.0, 0),
//	    })
//	    simulation.AssertLandmarksDiscovered(t, result, 1)
//	}
package simulation
