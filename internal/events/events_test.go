package events

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vantorre/hippo/internal/vecmath"
)

func sample(agent string, kind Kind) Event {
	return Event{
		Time:  time.Now().UTC(),
		Agent: agent,
		Kind:  kind,
	}
}

func TestFilterMatches(t *testing.T) {
	e := sample("agent-1", KindSynapticLearning)

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty filter", Filter{}, true},
		{"agent match", Filter{Agent: "agent-1"}, true},
		{"agent mismatch", Filter{Agent: "agent-2"}, false},
		{"kind match", Filter{Kind: KindSynapticLearning}, true},
		{"kind mismatch", Filter{Kind: KindLandmarkDiscovered}, false},
		{"both match", Filter{Agent: "agent-1", Kind: KindSynapticLearning}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(e); got != tt.want {
				t.Fatalf("Matches: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemorySinkOrderAndFilter(t *testing.T) {
	s := NewMemorySink(10)
	s.Record(sample("a", KindLandmarkDiscovered))
	s.Record(sample("b", KindSynapticLearning))
	s.Record(sample("a", KindSynapticLearning))

	if got := s.Len(); got != 3 {
		t.Fatalf("Len: got %d, want 3", got)
	}

	forA := s.Events(Filter{Agent: "a"})
	if len(forA) != 2 {
		t.Fatalf("agent filter: got %d events, want 2", len(forA))
	}
	if forA[0].Kind != KindLandmarkDiscovered || forA[1].Kind != KindSynapticLearning {
		t.Fatalf("events out of order: %v", forA)
	}

	limited := s.Events(Filter{Limit: 1})
	if len(limited) != 1 || limited[0].Agent != "a" {
		t.Fatalf("limit filter: got %v", limited)
	}
}

func TestMemorySinkEvictsOldest(t *testing.T) {
	s := NewMemorySink(2)
	s.Record(sample("first", KindSynapticLearning))
	s.Record(sample("second", KindSynapticLearning))
	s.Record(sample("third", KindSynapticLearning))

	if got := s.Len(); got != 2 {
		t.Fatalf("Len after overflow: got %d, want 2", got)
	}
	if got := s.Dropped(); got != 1 {
		t.Fatalf("Dropped: got %d, want 1", got)
	}
	evs := s.Events(Filter{})
	if evs[0].Agent != "second" || evs[1].Agent != "third" {
		t.Fatalf("ring buffer order wrong: %v", evs)
	}
}

func TestSQLiteSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("NewSQLiteSink: %v", err)
	}
	defer s.Close()

	pos := vecmath.Vec2{X: 3, Y: 4}
	in := Event{
		Time:         time.Now().UTC().Truncate(time.Millisecond),
		Agent:        "agent-1",
		Kind:         KindLandmarkDiscovered,
		LandmarkID:   "lm-1",
		Position:     &pos,
		LandmarkType: "environmental",
	}
	if err := s.Record(in); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(sample("agent-2", KindSynapticLearning)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	out, err := s.Dump(Filter{Agent: "agent-1"})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Dump: got %d events, want 1", len(out))
	}
	got := out[0]
	if got.LandmarkID != "lm-1" || got.LandmarkType != "environmental" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.Position == nil || *got.Position != pos {
		t.Fatalf("round trip lost position: %+v", got.Position)
	}
	if !got.Time.Equal(in.Time) {
		t.Fatalf("round trip time: got %v, want %v", got.Time, in.Time)
	}

	n, err := s.Count(Filter{})
	if err != nil || n != 2 {
		t.Fatalf("Count: got %d err=%v, want 2", n, err)
	}
}

func TestSQLiteSinkLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("NewSQLiteSink: %v", err)
	}
	defer s.Close()

	for i := 0; i < 5; i++ {
		if err := s.Record(sample("a", KindSynapticLearning)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	out, err := s.Dump(Filter{Limit: 3})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Dump limit: got %d, want 3", len(out))
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	a := NewMemorySink(10)
	b := NewMemorySink(10)
	m := NewMultiSink(a, b)

	if err := m.Record(sample("x", KindSpatialMapUpdated)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("fan out: a=%d b=%d, want 1/1", a.Len(), b.Len())
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
