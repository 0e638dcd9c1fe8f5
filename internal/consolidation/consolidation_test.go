package consolidation

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/pathlearn"
	"github.com/vantorre/hippo/internal/plasticity"
	"github.com/vantorre/hippo/internal/spatialmap"
	"github.com/vantorre/hippo/internal/vecmath"
)

// fixture builds a plasticity engine with one strong synapse, a learner
// with one strong value, and a map whose single connection's endpoints
// quantize onto that synapse.
func fixture(t *testing.T) (*plasticity.Engine, *pathlearn.Learner, *spatialmap.Map, models.SynapseKey) {
	t.Helper()

	mapCfg := spatialmap.DefaultConfig()
	mapCfg.DiscoveryRate = 0
	m := spatialmap.New(mapCfg, rand.New(rand.NewSource(7)))
	now := time.Now()
	m.AddLandmark(models.Landmark{ID: "lm-a", CognitivePosition: vecmath.Vec2{X: 5}, LastObserved: now})
	m.AddLandmark(models.Landmark{ID: "lm-b", CognitivePosition: vecmath.Vec2{X: 45}, LastObserved: now})
	m.Maintain(vecmath.Vec2{X: 25}, vecmath.Vec2{X: 25}, now, 1)
	if len(m.Connections()) != 1 {
		t.Fatalf("fixture: %d connections, want 1", len(m.Connections()))
	}

	// Concepts for landmark positions: (5,0)->Q(0,0), (45,0)->Q(4,0).
	ca := plasticity.Quantize(vecmath.Vec2{X: 5}, 10)
	cb := plasticity.Quantize(vecmath.Vec2{X: 45}, 10)
	key := models.NewSynapseKey(ca, cb)

	engCfg := plasticity.DefaultConfig()
	engCfg.DecayRate = 0
	eng := plasticity.NewEngine(engCfg)
	for i := 0; i < 200; i++ {
		eng.Step([]plasticity.ConceptActivation{
			{Concept: ca, Activation: 0.9},
			{Concept: cb, Activation: 0.9},
		}, 1)
	}
	if w, _ := eng.Weight(key); w <= 0.7 {
		t.Fatalf("fixture: synapse weight %f not strong", w)
	}

	l := pathlearn.NewLearner(pathlearn.DefaultConfig())
	ts := now
	for i := 0; i < 100; i++ {
		ts = ts.Add(time.Second)
		l.Record(models.PathExperience{
			Segment:   models.PathSegment{From: "lm-a", To: "lm-b"},
			Success:   true,
			Reward:    1.0,
			Timestamp: ts,
		})
		l.Step(ts)
	}
	if v := l.Value(models.PathSegment{From: "lm-a", To: "lm-b"}); v <= 0.7 {
		t.Fatalf("fixture: path value %f not strong", v)
	}

	return eng, l, m, key
}

func TestIntervalGating(t *testing.T) {
	eng, l, m, _ := fixture(t)
	c := New(DefaultConfig())

	// 89 one-second ticks: below the 90s interval, nothing runs.
	for i := 0; i < 89; i++ {
		if res := c.Step(time.Second, eng, l, m); res.Ran {
			t.Fatalf("tick %d: consolidation ran before the interval elapsed", i)
		}
	}
	if res := c.Step(time.Second, eng, l, m); !res.Ran {
		t.Fatal("consolidation did not run when the interval elapsed")
	}
	// The accumulator carries over; the next pass needs a full interval.
	if res := c.Step(time.Second, eng, l, m); res.Ran {
		t.Fatal("consolidation ran twice in back-to-back ticks")
	}
}

func TestConsolidationBoostsStrongMemories(t *testing.T) {
	eng, l, m, key := fixture(t)
	wBefore, _ := eng.Weight(key)
	vBefore := l.Value(models.PathSegment{From: "lm-a", To: "lm-b"})

	c := New(DefaultConfig())
	res := c.Step(90*time.Second, eng, l, m)
	if !res.Ran {
		t.Fatal("consolidation did not run")
	}

	wAfter, _ := eng.Weight(key)
	if want := math.Min(1, wBefore+0.01); math.Abs(wAfter-want) > 1e-12 {
		t.Fatalf("synapse weight: got %f, want %f", wAfter, want)
	}
	vAfter := l.Value(models.PathSegment{From: "lm-a", To: "lm-b"})
	if want := math.Min(1, vBefore+0.02); math.Abs(vAfter-want) > 1e-12 {
		t.Fatalf("path value: got %f, want %f", vAfter, want)
	}
}

func TestBackflowRaisesConnectionConfidence(t *testing.T) {
	eng, l, m, key := fixture(t)
	before := m.Connections()[0].Confidence

	c := New(DefaultConfig())
	res := c.Step(90*time.Second, eng, l, m)
	if res.ConnectionsStrengthened != 1 {
		t.Fatalf("connections strengthened: got %d, want 1", res.ConnectionsStrengthened)
	}

	after := m.Connections()[0].Confidence
	// Confidence rises by the post-reinforcement weight times the factor.
	wNow, _ := eng.Weight(key)
	want := vecmath.Clamp01(before + wNow*0.01)
	if math.Abs(after-want) > 1e-12 {
		t.Fatalf("connection confidence: got %f, want %f", after, want)
	}
}

func TestBackflowSkipsUnmappedConnections(t *testing.T) {
	_, l, m, _ := fixture(t)

	// A fresh engine has no synapse for the landmark pair.
	engCfg := plasticity.DefaultConfig()
	empty := plasticity.NewEngine(engCfg)

	c := New(DefaultConfig())
	res := c.Step(90*time.Second, empty, l, m)
	if res.ConnectionsStrengthened != 0 {
		t.Fatalf("backflow fired without a matching synapse: %d", res.ConnectionsStrengthened)
	}
}
