// Package spatialmap maintains the landmark and connection graph: points
// of interest discovered while moving, confidence-weighted edges between
// landmarks observed close together, and pruning of stale entries.
package spatialmap

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vantorre/hippo/internal/constants"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Config holds tunable parameters for landmark graph maintenance.
type Config struct {
	// DiscoveryThreshold is the minimum distance from every known
	// landmark before a new one may be discovered.
	DiscoveryThreshold float64

	// DiscoveryRate is the expected discovery rate per second in
	// unmapped space. The per-tick probability is 1-(1-rate)^dt.
	DiscoveryRate float64

	// ConnectionRadius is the co-observation distance for connecting
	// landmark pairs.
	ConnectionRadius float64

	// NewConnectionConfidence is the starting confidence of an edge.
	NewConnectionConfidence float64

	// StrengthenStep is added to an edge's confidence per co-observation.
	StrengthenStep float64

	// SalienceStep is added to a landmark's salience per observation.
	SalienceStep float64

	// LandmarkTTL is how long an unobserved landmark survives.
	LandmarkTTL time.Duration

	// NewLandmarkSalience and NewLandmarkConfidence seed discovered landmarks.
	NewLandmarkSalience   float64
	NewLandmarkConfidence float64
}

// DefaultConfig returns the default graph maintenance configuration.
func DefaultConfig() Config {
	return Config{
		DiscoveryThreshold:      constants.DiscoveryThreshold,
		DiscoveryRate:           constants.DiscoveryRatePerSecond,
		ConnectionRadius:        constants.ConnectionRadius,
		NewConnectionConfidence: constants.NewConnectionConfidence,
		StrengthenStep:          constants.ConnectionStrengthenStep,
		SalienceStep:            constants.ObservationSalienceStep,
		LandmarkTTL:             constants.LandmarkTTLSeconds * time.Second,
		NewLandmarkSalience:     constants.NewLandmarkSalience,
		NewLandmarkConfidence:   constants.NewLandmarkConfidence,
	}
}

// Result reports what one maintenance pass changed.
type Result struct {
	// Discovered holds landmarks created this pass.
	Discovered []models.Landmark

	// Strengthened holds connections created or strengthened this pass.
	Strengthened []models.SpatialConnection

	// PrunedLandmarks holds IDs of landmarks dropped for staleness.
	PrunedLandmarks []string
}

// Map is one agent's landmark graph. It is not safe for concurrent use;
// each agent owns exactly one. The RNG is injected so discovery is
// deterministic under test.
type Map struct {
	cfg         Config
	rng         *rand.Rand
	landmarks   []models.Landmark
	connections map[models.ConnectionKey]models.SpatialConnection
}

// New creates an empty landmark graph.
func New(cfg Config, rng *rand.Rand) *Map {
	return &Map{
		cfg:         cfg,
		rng:         rng,
		connections: make(map[models.ConnectionKey]models.SpatialConnection),
	}
}

// PerTickProbability converts an expected rate per second into the
// per-tick Bernoulli probability for a tick of dt seconds, so gated
// behavior is frame-rate independent.
func PerTickProbability(ratePerSecond, dt float64) float64 {
	if ratePerSecond <= 0 || dt <= 0 {
		return 0
	}
	if ratePerSecond >= 1 {
		return 1
	}
	return 1 - math.Pow(1-ratePerSecond, dt)
}

// Maintain runs one graph maintenance pass. cogPos is the agent's
// estimated position (used for proximity tests and cognitive placement);
// truePos is ground truth, recorded on new landmarks for confidence
// scoring only. dt is the tick duration in seconds.
func (m *Map) Maintain(cogPos, truePos vecmath.Vec2, now time.Time, dt float64) Result {
	var res Result

	m.refreshObserved(cogPos, now)
	if lm, ok := m.discover(cogPos, truePos, now, dt); ok {
		res.Discovered = append(res.Discovered, lm)
	}
	res.Strengthened = m.updateConnections(cogPos)
	res.PrunedLandmarks = m.prune(now)

	return res
}

// refreshObserved marks landmarks near the agent as observed, keeping
// them out of the staleness prune, and nudges their salience.
func (m *Map) refreshObserved(pos vecmath.Vec2, now time.Time) {
	for i := range m.landmarks {
		lm := &m.landmarks[i]
		if pos.Distance(lm.CognitivePosition) <= m.cfg.ConnectionRadius {
			lm.LastObserved = now
			lm.Salience = vecmath.Clamp01(lm.Salience + m.cfg.SalienceStep)
		}
	}
}

// discover creates a new environmental landmark when the agent is in
// unmapped space and the rate-derived Bernoulli draw succeeds.
func (m *Map) discover(cogPos, truePos vecmath.Vec2, now time.Time, dt float64) (models.Landmark, bool) {
	for i := range m.landmarks {
		if cogPos.Distance(m.landmarks[i].CognitivePosition) <= m.cfg.DiscoveryThreshold {
			return models.Landmark{}, false
		}
	}
	if m.rng.Float64() >= PerTickProbability(m.cfg.DiscoveryRate, dt) {
		return models.Landmark{}, false
	}

	lm := models.Landmark{
		ID:                 uuid.NewString(),
		CognitivePosition:  cogPos,
		WorldPosition:      truePos,
		Salience:           m.cfg.NewLandmarkSalience,
		PositionConfidence: m.cfg.NewLandmarkConfidence,
		Type:               models.LandmarkEnvironmental,
		LastObserved:       now,
	}
	m.landmarks = append(m.landmarks, lm)
	return lm, true
}

// updateConnections strengthens or creates edges between every pair of
// landmarks currently near the agent.
func (m *Map) updateConnections(pos vecmath.Vec2) []models.SpatialConnection {
	var nearby []*models.Landmark
	for i := range m.landmarks {
		if pos.Distance(m.landmarks[i].CognitivePosition) <= m.cfg.ConnectionRadius {
			nearby = append(nearby, &m.landmarks[i])
		}
	}

	var changed []models.SpatialConnection
	for i := 0; i < len(nearby); i++ {
		for j := i + 1; j < len(nearby); j++ {
			a, b := nearby[i], nearby[j]
			if a.ID > b.ID {
				a, b = b, a
			}

			key := models.NewConnectionKey(a.ID, b.ID)
			conn, ok := m.connections[key]
			if ok {
				if conn.TraversalCount < math.MaxUint16 {
					conn.TraversalCount++
				}
				conn.Confidence = vecmath.Clamp01(conn.Confidence + m.cfg.StrengthenStep)
			} else {
				conn = models.SpatialConnection{
					A:              a.ID,
					B:              b.ID,
					Distance:       a.CognitivePosition.Distance(b.CognitivePosition),
					Confidence:     m.cfg.NewConnectionConfidence,
					Direction:      b.CognitivePosition.Sub(a.CognitivePosition).Normalize(),
					TraversalCount: 1,
				}
			}
			m.connections[key] = conn
			changed = append(changed, conn)
		}
	}
	return changed
}

// prune drops landmarks past the TTL and cascade-deletes any connection
// referencing them, keeping the graph referentially consistent.
func (m *Map) prune(now time.Time) []string {
	var pruned []string
	kept := m.landmarks[:0]
	for _, lm := range m.landmarks {
		if lm.Age(now) > m.cfg.LandmarkTTL {
			pruned = append(pruned, lm.ID)
			continue
		}
		kept = append(kept, lm)
	}
	m.landmarks = kept

	if len(pruned) > 0 {
		gone := make(map[string]bool, len(pruned))
		for _, id := range pruned {
			gone[id] = true
		}
		for key := range m.connections {
			if gone[key.A] || gone[key.B] {
				delete(m.connections, key)
			}
		}
	}
	return pruned
}

// Landmarks returns a copy of all landmarks.
func (m *Map) Landmarks() []models.Landmark {
	out := make([]models.Landmark, len(m.landmarks))
	copy(out, m.landmarks)
	return out
}

// Landmark returns the landmark with the given ID.
func (m *Map) Landmark(id string) (models.Landmark, bool) {
	for i := range m.landmarks {
		if m.landmarks[i].ID == id {
			return m.landmarks[i], true
		}
	}
	return models.Landmark{}, false
}

// LandmarkPosition returns the cognitive position of a landmark.
func (m *Map) LandmarkPosition(id string) (vecmath.Vec2, bool) {
	lm, ok := m.Landmark(id)
	return lm.CognitivePosition, ok
}

// Connections returns a copy of all connections.
func (m *Map) Connections() []models.SpatialConnection {
	out := make([]models.SpatialConnection, 0, len(m.connections))
	for _, c := range m.connections {
		out = append(out, c)
	}
	return out
}

// Connection returns the edge between two landmarks, if present.
func (m *Map) Connection(a, b string) (models.SpatialConnection, bool) {
	c, ok := m.connections[models.NewConnectionKey(a, b)]
	return c, ok
}

// RaiseConfidence adds delta to the connection's confidence, clamped to
// [0, 1]. It reports whether the connection exists.
func (m *Map) RaiseConfidence(a, b string, delta float64) bool {
	key := models.NewConnectionKey(a, b)
	c, ok := m.connections[key]
	if !ok {
		return false
	}
	c.Confidence = vecmath.Clamp01(c.Confidence + delta)
	m.connections[key] = c
	return true
}

// Nearest returns the landmark closest to pos.
func (m *Map) Nearest(pos vecmath.Vec2) (models.Landmark, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := range m.landmarks {
		if d := pos.Distance(m.landmarks[i].CognitivePosition); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return models.Landmark{}, false
	}
	return m.landmarks[best], true
}

// ByType returns all landmarks of the given type, for collaborators that
// look up known resource or social locations.
func (m *Map) ByType(t models.LandmarkType) []models.Landmark {
	var out []models.Landmark
	for _, lm := range m.landmarks {
		if lm.Type == t {
			out = append(out, lm)
		}
	}
	return out
}

// AddLandmark inserts an externally observed landmark (e.g. a resource
// location reported by the perception collaborator). Existing IDs are
// refreshed in place.
func (m *Map) AddLandmark(lm models.Landmark) {
	for i := range m.landmarks {
		if m.landmarks[i].ID == lm.ID {
			m.landmarks[i] = lm
			return
		}
	}
	m.landmarks = append(m.landmarks, lm)
}
