package simulation

import (
	"testing"
)

// AssertBoundedState asserts that every weight, trace, path value,
// confidence and salience stays inside its clamp across the whole run.
// This is the core soak invariant: nothing explodes, nothing goes
// negative, no matter the walk.
func AssertBoundedState(t *testing.T, result Result) {
	t.Helper()

	for key, w := range result.Cognition.Weights() {
		if w < 0 || w > 1 {
			t.Errorf("AssertBoundedState: synapse %v weight %.6f outside [0,1]", key, w)
		}
	}
	for id, tr := range result.Cognition.Traces() {
		if tr < 0 || tr > 1 {
			t.Errorf("AssertBoundedState: concept %v trace %.6f outside [0,1]", id, tr)
		}
	}
	for seg, v := range result.Cognition.PathValues() {
		if v < -1 || v > 1 {
			t.Errorf("AssertBoundedState: segment %s value %.6f outside [-1,1]", seg, v)
		}
	}

	for _, ts := range result.Ticks {
		s := ts.Snapshot
		if s.PositionConfidence < 0 || s.PositionConfidence > 1 {
			t.Errorf("AssertBoundedState: tick %d confidence %.6f outside [0,1]", ts.Tick, s.PositionConfidence)
		}
		if s.ExplorationRate < 0.05-1e-9 || s.ExplorationRate > 0.5+1e-9 {
			t.Errorf("AssertBoundedState: tick %d exploration rate %.6f outside [0.05,0.5]", ts.Tick, s.ExplorationRate)
		}
		for _, lm := range s.Landmarks {
			if lm.Salience < 0 || lm.Salience > 1 {
				t.Errorf("AssertBoundedState: tick %d landmark %s salience %.6f outside [0,1]", ts.Tick, lm.ID, lm.Salience)
			}
		}
		for _, conn := range s.Connections {
			if conn.Confidence < 0 || conn.Confidence > 1 {
				t.Errorf("AssertBoundedState: tick %d connection %s-%s confidence %.6f outside [0,1]",
					ts.Tick, conn.A, conn.B, conn.Confidence)
			}
		}
	}
}

// AssertLandmarksDiscovered asserts that at least min landmarks exist at
// the end of the run.
func AssertLandmarksDiscovered(t *testing.T, result Result, min int) {
	t.Helper()
	got := len(result.Final().Landmarks)
	if got < min {
		t.Errorf("AssertLandmarksDiscovered: got %d landmarks, want at least %d", got, min)
	}
}

// AssertSynapsesFormed asserts that at least min synapses exist at the
// end of the run.
func AssertSynapsesFormed(t *testing.T, result Result, min int) {
	t.Helper()
	got := result.Final().SynapseCount
	if got < min {
		t.Errorf("AssertSynapsesFormed: got %d synapses, want at least %d", got, min)
	}
}

// AssertEstimateTracks asserts the estimated position never drifts
// further than maxError from the true position after the warmup tick.
func AssertEstimateTracks(t *testing.T, result Result, maxError float64, afterTick int) {
	t.Helper()
	for _, ts := range result.Ticks {
		if ts.Tick < afterTick {
			continue
		}
		d := ts.Snapshot.EstimatedPosition.Distance(ts.Position)
		if d > maxError {
			t.Errorf("AssertEstimateTracks: tick %d estimate off by %.4f (max %.4f)", ts.Tick, d, maxError)
		}
	}
}
