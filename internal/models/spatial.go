// Package models defines the spatial cognition data model: landmarks and
// their connections, grid and place cells, synaptic concept keys, and
// path traversal records. All state is exclusively owned by a single
// agent; mutation happens through the owning subsystem, never here.
package models

import (
	"time"

	"github.com/vantorre/hippo/internal/vecmath"
)

// LandmarkType categorizes what kind of point of interest a landmark marks.
type LandmarkType uint8

const (
	LandmarkResource      LandmarkType = iota // remembered resource location
	LandmarkAgent                             // another agent's last known position
	LandmarkEnvironmental                     // terrain feature discovered while moving
	LandmarkSocial                            // gathering spot, shared location
)

// String returns the lowercase name of the landmark type.
func (t LandmarkType) String() string {
	switch t {
	case LandmarkResource:
		return "resource"
	case LandmarkAgent:
		return "agent"
	case LandmarkEnvironmental:
		return "environmental"
	case LandmarkSocial:
		return "social"
	default:
		return "unknown"
	}
}

// Landmark is a remembered point of interest in the agent's cognitive map.
type Landmark struct {
	// ID is a stable opaque identifier.
	ID string `json:"id"`

	// CognitivePosition is where the agent believes the landmark is.
	CognitivePosition vecmath.Vec2 `json:"cognitive_position"`

	// WorldPosition is ground truth, used only for confidence scoring.
	WorldPosition vecmath.Vec2 `json:"world_position"`

	// Salience is how strongly the landmark stands out, in [0, 1].
	Salience float64 `json:"salience"`

	// PositionConfidence is trust in CognitivePosition, in [0, 1].
	PositionConfidence float64 `json:"position_confidence"`

	Type LandmarkType `json:"type"`

	// LastObserved drives the sliding-window membership test: landmarks
	// unobserved for longer than the map's TTL are pruned.
	LastObserved time.Time `json:"last_observed"`
}

// Age returns how long ago the landmark was last observed.
func (l Landmark) Age(now time.Time) time.Duration {
	return now.Sub(l.LastObserved)
}

// ConnectionKey identifies a spatial connection by its canonical endpoint
// pair. Construct with NewConnectionKey so (a,b) and (b,a) address the
// same edge.
type ConnectionKey struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewConnectionKey returns the canonical key for an unordered landmark pair.
func NewConnectionKey(a, b string) ConnectionKey {
	if b < a {
		a, b = b, a
	}
	return ConnectionKey{A: a, B: b}
}

// SpatialConnection links two landmarks the agent has observed close
// together. Endpoints are canonically ordered (A < B by landmark ID).
type SpatialConnection struct {
	A string `json:"a"`
	B string `json:"b"`

	// Distance is the measured distance between the endpoints at creation.
	Distance float64 `json:"distance"`

	// Confidence is trust in the connection, in [0, 1].
	Confidence float64 `json:"confidence"`

	// Direction is the unit vector from A to B.
	Direction vecmath.Vec2 `json:"direction"`

	// TraversalCount is how many ticks both endpoints were near the agent.
	TraversalCount uint16 `json:"traversal_count"`
}

// Key returns the canonical key for this connection.
func (c SpatialConnection) Key() ConnectionKey {
	return NewConnectionKey(c.A, c.B)
}

// GridScales are the three nested grid resolutions in world units per cell.
var GridScales = [3]float64{10, 20, 40}

// GridCellKey addresses one cell of one grid scale.
type GridCellKey struct {
	X     int16 `json:"x"`
	Y     int16 `json:"y"`
	Scale uint8 `json:"scale"` // world units per cell: 10, 20 or 40
}

// PlaceCell is a radial spatial receptive field with Gaussian falloff,
// modeled on hippocampal place cells.
type PlaceCell struct {
	Center        vecmath.Vec2 `json:"center"`
	Radius        float64      `json:"radius"`
	MaxActivation float64      `json:"max_activation"`

	// Activation is the current activation, in [0, MaxActivation].
	Activation float64 `json:"activation"`
}

// HeadDirectionCell activates when the agent's heading is near its
// preferred direction.
type HeadDirectionCell struct {
	PreferredDirection float64 `json:"preferred_direction"` // radians
	TuningWidth        float64 `json:"tuning_width"`        // radians
	Activation         float64 `json:"activation"`
}
