// Package events defines the learning and discovery records the spatial
// cognition subsystem emits for presentation, telemetry, and the
// navigation collaborator, plus sinks for collecting them. The cognitive
// map itself is never persisted; sinks only carry the emitted records.
package events

import (
	"time"

	"github.com/vantorre/hippo/internal/vecmath"
)

// Kind identifies the record type.
type Kind string

const (
	KindLandmarkDiscovered Kind = "landmark-discovered"
	KindSpatialMapUpdated  Kind = "spatial-map-updated"
	KindSynapticLearning   Kind = "synaptic-learning"
)

// UpdateType refines a spatial-map-updated record.
type UpdateType string

const (
	UpdateLandmarkAdded          UpdateType = "landmark-added"
	UpdateConnectionStrengthened UpdateType = "connection-strengthened"
	UpdatePositionRecalibrated   UpdateType = "position-recalibrated"
)

// LearningType refines a synaptic-learning record.
type LearningType string

const (
	LearningHebbian       LearningType = "hebbian"
	LearningLTP           LearningType = "long-term-potentiation"
	LearningDecay         LearningType = "decay"
	LearningReinforcement LearningType = "reinforcement"
)

// Event is one emitted record. Fields beyond Time, Agent and Kind are
// populated per kind.
type Event struct {
	Time  time.Time `json:"time"`
	Agent string    `json:"agent"`
	Kind  Kind      `json:"kind"`

	// landmark-discovered
	LandmarkID   string        `json:"landmark_id,omitempty"`
	Position     *vecmath.Vec2 `json:"position,omitempty"`
	LandmarkType string        `json:"landmark_type,omitempty"`

	// spatial-map-updated
	UpdateType UpdateType `json:"update_type,omitempty"`

	// synaptic-learning. Connection renders the synapse or path segment
	// the change applies to.
	Connection   string       `json:"connection,omitempty"`
	OldWeight    float64      `json:"old_weight,omitempty"`
	NewWeight    float64      `json:"new_weight,omitempty"`
	LearningType LearningType `json:"learning_type,omitempty"`
	Reward       float64      `json:"reward,omitempty"`
}

// Filter selects events when querying a sink or store.
// Zero fields match everything.
type Filter struct {
	Agent string
	Kind  Kind
	Limit int
}

// Matches reports whether the event passes the filter.
func (f Filter) Matches(e Event) bool {
	if f.Agent != "" && e.Agent != f.Agent {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	return true
}

// Sink consumes emitted events.
type Sink interface {
	Record(Event) error
	Close() error
}
