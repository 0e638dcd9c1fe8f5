// Package localization maintains the multi-scale grid cell and radial
// place cell model that gives an agent an estimate of its own position.
// Activation flows from the agent's true position into place fields and
// grid cells; the estimate is a blend of the previous estimate and the
// activation-weighted place-cell centroid.
//
// Grid decay policy: the multiplicative decay runs once per tick, before
// the occupied cells are bumped. Running it once per scale per tick would
// shorten the effective grid memory threefold; once per tick keeps the
// half-life independent of the number of scales.
package localization

import (
	"math"

	"github.com/vantorre/hippo/internal/constants"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Config holds tunable parameters for the localization network.
type Config struct {
	// GridScales are the nested grid resolutions in world units per cell.
	GridScales []float64

	// GridActivationStep is added to each occupied cell per tick.
	GridActivationStep float64

	// GridDecay is the per-tick multiplicative decay of all grid cells.
	GridDecay float64

	// GridMaintenanceDecay is the decay applied by MaintainGrid.
	GridMaintenanceDecay float64

	// GridFloor is the activation at or below which MaintainGrid drops a cell.
	GridFloor float64

	// ActiveThreshold is the minimum place-cell activation that counts
	// toward the centroid estimate.
	ActiveThreshold float64

	// BlendCentroid is the centroid's weight in the position blend; the
	// previous estimate keeps the complement.
	BlendCentroid float64

	// ConfidenceRange is the estimate error at which confidence floors.
	ConfidenceRange float64

	// ConfidenceFloor is the minimum confidence with active place cells.
	ConfidenceFloor float64

	// FallbackConfidence applies when no place cell covers the agent.
	FallbackConfidence float64

	// RecalibrationDistance is the single-tick estimate jump that counts
	// as a recalibration.
	RecalibrationDistance float64

	// HeadDirectionIdleDecay decays head-direction activations on
	// stationary ticks.
	HeadDirectionIdleDecay float64
}

// DefaultConfig returns the default localization configuration.
func DefaultConfig() Config {
	return Config{
		GridScales:             models.GridScales[:],
		GridActivationStep:     constants.GridActivationStep,
		GridDecay:              constants.GridDecayFactor,
		GridMaintenanceDecay:   constants.GridMaintenanceDecay,
		GridFloor:              constants.GridActivationFloor,
		ActiveThreshold:        constants.PlaceCellActiveThreshold,
		BlendCentroid:          constants.EstimateBlendCentroid,
		ConfidenceRange:        constants.ConfidenceRange,
		ConfidenceFloor:        constants.ConfidenceFloor,
		FallbackConfidence:     constants.FallbackConfidence,
		RecalibrationDistance:  constants.RecalibrationDistance,
		HeadDirectionIdleDecay: constants.HeadDirectionIdleDecay,
	}
}

// Estimate is the localization output for one tick.
type Estimate struct {
	Position   vecmath.Vec2
	Confidence float64

	// Recalibrated reports that the estimate jumped further than the
	// recalibration distance within a single tick.
	Recalibrated bool
}

// Network holds one agent's localization state. It is not safe for
// concurrent use; each agent owns exactly one.
type Network struct {
	cfg        Config
	placeCells []models.PlaceCell
	headCells  []models.HeadDirectionCell
	grid       map[models.GridCellKey]float64

	estimate    vecmath.Vec2
	confidence  float64
	heading     float64
	speed       float64
	lastTruePos vecmath.Vec2
	initialized bool
}

// NewNetwork creates a localization network over the given place fields.
// Head-direction cells are spaced uniformly over the full circle.
func NewNetwork(cfg Config, placeCells []models.PlaceCell) *Network {
	cells := make([]models.PlaceCell, len(placeCells))
	copy(cells, placeCells)

	heads := make([]models.HeadDirectionCell, constants.HeadDirectionCellCount)
	for i := range heads {
		heads[i] = models.HeadDirectionCell{
			PreferredDirection: float64(i) * 2 * math.Pi / float64(len(heads)),
			TuningWidth:        math.Pi / 4,
		}
	}

	return &Network{
		cfg:        cfg,
		placeCells: cells,
		headCells:  heads,
		grid:       make(map[models.GridCellKey]float64),
	}
}

// Update runs one localization tick from the agent's true position.
// dt is the simulated tick duration in seconds.
func (n *Network) Update(truePos vecmath.Vec2, dt float64) Estimate {
	if !n.initialized {
		n.estimate = truePos
		n.lastTruePos = truePos
		n.initialized = true
	}

	n.updatePlaceCells(truePos)
	n.updateGrid(truePos)
	n.updateHeadDirection(truePos, dt)

	prev := n.estimate
	n.updateEstimate(truePos)
	n.lastTruePos = truePos

	return Estimate{
		Position:     n.estimate,
		Confidence:   n.confidence,
		Recalibrated: prev.Distance(n.estimate) > n.cfg.RecalibrationDistance,
	}
}

// updatePlaceCells applies the Gaussian receptive field to each cell:
// activation = max * exp(-(d/radius)^2) inside the radius, 0 outside.
func (n *Network) updatePlaceCells(pos vecmath.Vec2) {
	for i := range n.placeCells {
		c := &n.placeCells[i]
		d := pos.Distance(c.Center)
		if c.Radius <= 0 || d > c.Radius {
			c.Activation = 0
			continue
		}
		ratio := d / c.Radius
		c.Activation = c.MaxActivation * math.Exp(-ratio*ratio)
	}
}

// updateGrid decays every cell once, then bumps the occupied cell at
// each scale. Decay-before-bump keeps a fresh observation at the full
// step value.
func (n *Network) updateGrid(pos vecmath.Vec2) {
	for k, v := range n.grid {
		n.grid[k] = v * n.cfg.GridDecay
	}
	for _, scale := range n.cfg.GridScales {
		if scale <= 0 {
			continue
		}
		key := models.GridCellKey{
			X:     int16(math.Floor(pos.X / scale)),
			Y:     int16(math.Floor(pos.Y / scale)),
			Scale: uint8(scale),
		}
		n.grid[key] = vecmath.Clamp01(n.grid[key] + n.cfg.GridActivationStep)
	}
}

// updateHeadDirection derives heading and speed from the position delta.
// Stationary ticks decay activations and leave the heading unchanged.
func (n *Network) updateHeadDirection(pos vecmath.Vec2, dt float64) {
	delta := pos.Sub(n.lastTruePos)
	step := delta.Length()

	if dt <= 0 || step < 1e-9 {
		for i := range n.headCells {
			n.headCells[i].Activation *= n.cfg.HeadDirectionIdleDecay
		}
		n.speed = 0
		return
	}

	n.heading = delta.Heading()
	n.speed = step / dt

	for i := range n.headCells {
		c := &n.headCells[i]
		dTheta := vecmath.AngularDistance(n.heading, c.PreferredDirection)
		ratio := dTheta / c.TuningWidth
		c.Activation = math.Exp(-ratio * ratio)
	}
}

// updateEstimate blends the activation-weighted place-cell centroid into
// the previous estimate and scores confidence against ground truth.
// Ground-truth scoring is an explicit simplification; deployments without
// it must substitute an error proxy such as re-localization residual.
func (n *Network) updateEstimate(truePos vecmath.Vec2) {
	var centroid vecmath.Vec2
	var totalWeight float64
	for i := range n.placeCells {
		c := &n.placeCells[i]
		if c.Activation > n.cfg.ActiveThreshold {
			centroid = centroid.Add(c.Center.Scale(c.Activation))
			totalWeight += c.Activation
		}
	}

	if totalWeight == 0 {
		n.estimate = truePos
		n.confidence = n.cfg.FallbackConfidence
		return
	}

	centroid = centroid.Scale(1 / totalWeight)
	n.estimate = n.estimate.Lerp(centroid, n.cfg.BlendCentroid)

	errDist := n.estimate.Distance(truePos)
	n.confidence = math.Max(n.cfg.ConfidenceFloor, 1-errDist/n.cfg.ConfidenceRange)
}

// MaintainGrid applies the maintenance decay to every grid cell and
// drops cells at or below the activation floor. Called once per tick
// during map maintenance.
func (n *Network) MaintainGrid() {
	for k, v := range n.grid {
		v *= n.cfg.GridMaintenanceDecay
		if v <= n.cfg.GridFloor {
			delete(n.grid, k)
			continue
		}
		n.grid[k] = v
	}
}

// EstimatedPosition returns the current blended position estimate.
func (n *Network) EstimatedPosition() vecmath.Vec2 { return n.estimate }

// Confidence returns the current position confidence in [0, 1].
func (n *Network) Confidence() float64 { return n.confidence }

// Heading returns the current heading in radians.
func (n *Network) Heading() float64 { return n.heading }

// Speed returns the current speed estimate in world units per second.
func (n *Network) Speed() float64 { return n.speed }

// ActivePlaceCells returns copies of the place cells whose activation
// exceeds the active threshold.
func (n *Network) ActivePlaceCells() []models.PlaceCell {
	var active []models.PlaceCell
	for _, c := range n.placeCells {
		if c.Activation > n.cfg.ActiveThreshold {
			active = append(active, c)
		}
	}
	return active
}

// PlaceCells returns a copy of all place cells.
func (n *Network) PlaceCells() []models.PlaceCell {
	out := make([]models.PlaceCell, len(n.placeCells))
	copy(out, n.placeCells)
	return out
}

// HeadDirectionCells returns a copy of the head-direction cells.
func (n *Network) HeadDirectionCells() []models.HeadDirectionCell {
	out := make([]models.HeadDirectionCell, len(n.headCells))
	copy(out, n.headCells)
	return out
}

// GridActivation returns the activation of one grid cell, 0 if absent.
func (n *Network) GridActivation(key models.GridCellKey) float64 {
	return n.grid[key]
}

// GridSize returns the number of grid cells currently held.
func (n *Network) GridSize() int { return len(n.grid) }
