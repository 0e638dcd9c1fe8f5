package models

import (
	"testing"
	"time"
)

func TestNewConnectionKeyCanonicalOrder(t *testing.T) {
	k1 := NewConnectionKey("lm-b", "lm-a")
	k2 := NewConnectionKey("lm-a", "lm-b")

	if k1 != k2 {
		t.Fatalf("NewConnectionKey: order not canonical: %v vs %v", k1, k2)
	}
	if k1.A != "lm-a" || k1.B != "lm-b" {
		t.Fatalf("NewConnectionKey: got %v, want {lm-a lm-b}", k1)
	}
}

func TestNewSynapseKeyCanonicalOrder(t *testing.T) {
	a := ConceptID{QX: 2, QY: -1}
	b := ConceptID{QX: -3, QY: 5}

	k1 := NewSynapseKey(a, b)
	k2 := NewSynapseKey(b, a)

	if k1 != k2 {
		t.Fatalf("NewSynapseKey: order not canonical: %v vs %v", k1, k2)
	}
	if k1.Pre != b || k1.Post != a {
		t.Fatalf("NewSynapseKey: got %v, want pre=%v post=%v", k1, b, a)
	}
}

func TestConceptIDLessTiebreak(t *testing.T) {
	a := ConceptID{QX: 1, QY: 2}
	b := ConceptID{QX: 1, QY: 3}

	if !a.Less(b) || b.Less(a) {
		t.Fatalf("Less: QY tiebreak broken for %v vs %v", a, b)
	}
}

func TestLandmarkTypeString(t *testing.T) {
	tests := []struct {
		typ  LandmarkType
		want string
	}{
		{LandmarkResource, "resource"},
		{LandmarkAgent, "agent"},
		{LandmarkEnvironmental, "environmental"},
		{LandmarkSocial, "social"},
		{LandmarkType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Fatalf("LandmarkType(%d).String(): got %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestLandmarkAge(t *testing.T) {
	now := time.Now()
	lm := Landmark{LastObserved: now.Add(-301 * time.Second)}

	if got := lm.Age(now); got != 301*time.Second {
		t.Fatalf("Age: got %v, want 301s", got)
	}
}

func TestPathSegmentString(t *testing.T) {
	s := PathSegment{From: "a", To: "b"}
	if got := s.String(); got != "a->b" {
		t.Fatalf("String: got %q, want %q", got, "a->b")
	}
}
