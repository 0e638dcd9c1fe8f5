// Package pathlearn keeps a rolling window of path-traversal experiences
// and learns a per-segment value via single-step temporal-difference
// updates. Recent success rate drives an exploration/exploitation dial
// with a dead band so single outlier outcomes do not flip strategy.
package pathlearn

import (
	"math"
	"time"

	"github.com/vantorre/hippo/internal/constants"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

// Config holds tunable parameters for path value learning.
type Config struct {
	// LearningRate is the TD step size toward observed reward.
	LearningRate float64

	// DiscountFactor is reserved for a multi-step TD extension; the
	// single-step update does not consume it.
	DiscountFactor float64

	// RecencyWindow is the short-horizon filter: only experiences
	// younger than this train the value map.
	RecencyWindow time.Duration

	// RetentionWindow is how long experiences are kept before expiring,
	// consumed or not.
	RetentionWindow time.Duration

	// ChangeEpsilon is the minimum value change worth reporting.
	ChangeEpsilon float64

	// HighSuccessRate and LowSuccessRate bound the adaptation dead band.
	HighSuccessRate float64
	LowSuccessRate  float64

	// ExplorationShrink and ExplorationGrow multiply the dial.
	ExplorationShrink float64
	ExplorationGrow   float64

	// ExplorationMin and ExplorationMax bound the dial.
	ExplorationMin float64
	ExplorationMax float64

	// ConfidenceStep adjusts strategy confidence per adaptation, bounded
	// by ConfidenceMin and ConfidenceMax.
	ConfidenceStep float64
	ConfidenceMin  float64
	ConfidenceMax  float64

	// AttemptReset is the attempt count past which the recent counters reset.
	AttemptReset int
}

// DefaultConfig returns the default path learning configuration.
func DefaultConfig() Config {
	return Config{
		LearningRate:      constants.PathLearningRate,
		DiscountFactor:    constants.PathDiscountFactor,
		RecencyWindow:     constants.RecencyWindowSeconds * time.Second,
		RetentionWindow:   constants.RetentionWindowSeconds * time.Second,
		ChangeEpsilon:     constants.PathChangeEpsilon,
		HighSuccessRate:   constants.HighSuccessRate,
		LowSuccessRate:    constants.LowSuccessRate,
		ExplorationShrink: constants.ExplorationShrinkFactor,
		ExplorationGrow:   constants.ExplorationGrowFactor,
		ExplorationMin:    constants.ExplorationRateMin,
		ExplorationMax:    constants.ExplorationRateMax,
		ConfidenceStep:    constants.StrategyConfidenceStep,
		ConfidenceMin:     constants.StrategyConfidenceMin,
		ConfidenceMax:     constants.StrategyConfidenceMax,
		AttemptReset:      constants.AttemptResetCount,
	}
}

// Adaptive is the exploration/exploitation state exposed to the
// goal-selection collaborator.
type Adaptive struct {
	ExplorationRate    float64 `json:"exploration_rate"`
	StrategyConfidence float64 `json:"strategy_confidence"`
	SuccessRate        float64 `json:"success_rate"`
	RecentAttempts     int     `json:"recent_attempts"`
	RecentSuccesses    int     `json:"recent_successes"`
}

// Change is one reported path value change.
type Change struct {
	Segment  models.PathSegment
	OldValue float64
	NewValue float64
	Reward   float64
}

type experience struct {
	models.PathExperience
	consumed bool
}

// Learner is one agent's path value state. Not safe for concurrent use.
type Learner struct {
	cfg         Config
	values      map[models.PathSegment]float64
	experiences []experience
	adaptive    Adaptive
}

// NewLearner creates an empty path learner with a centered dial.
func NewLearner(cfg Config) *Learner {
	return &Learner{
		cfg:    cfg,
		values: make(map[models.PathSegment]float64),
		adaptive: Adaptive{
			ExplorationRate:    (cfg.ExplorationMin + cfg.ExplorationMax) / 2,
			StrategyConfidence: (cfg.ConfidenceMin + cfg.ConfidenceMax) / 2,
		},
	}
}

// Record appends a completed-traversal experience reported by the
// navigation collaborator and counts it toward the adaptation window.
func (l *Learner) Record(exp models.PathExperience) {
	l.experiences = append(l.experiences, experience{PathExperience: exp})
	l.adaptive.RecentAttempts++
	if exp.Success {
		l.adaptive.RecentSuccesses++
	}
}

// Step runs one learning tick: TD updates from recent unconsumed
// experiences, expiry of old ones, then the exploration adaptation.
// Changes above the epsilon are returned.
func (l *Learner) Step(now time.Time) []Change {
	changes := l.learn(now)
	l.expire(now)
	l.adapt()
	return changes
}

// learn applies the single-step TD rule to experiences inside the
// recency window. Each experience trains at most once.
func (l *Learner) learn(now time.Time) []Change {
	var changes []Change
	for i := range l.experiences {
		e := &l.experiences[i]
		if e.consumed || now.Sub(e.Timestamp) >= l.cfg.RecencyWindow {
			continue
		}
		e.consumed = true

		old := l.values[e.Segment]
		tdError := e.Reward - old
		next := old + l.cfg.LearningRate*tdError
		l.values[e.Segment] = next

		if math.Abs(next-old) > l.cfg.ChangeEpsilon {
			changes = append(changes, Change{
				Segment:  e.Segment,
				OldValue: old,
				NewValue: next,
				Reward:   e.Reward,
			})
		}
	}
	return changes
}

// expire drops experiences older than the retention window.
func (l *Learner) expire(now time.Time) {
	kept := l.experiences[:0]
	for _, e := range l.experiences {
		if now.Sub(e.Timestamp) < l.cfg.RetentionWindow {
			kept = append(kept, e)
		}
	}
	l.experiences = kept
}

// adapt moves the exploration dial from the recent success rate.
// Rates inside [low, high] leave the dial untouched.
func (l *Learner) adapt() {
	a := &l.adaptive
	if a.RecentAttempts == 0 {
		return
	}
	a.SuccessRate = float64(a.RecentSuccesses) / float64(a.RecentAttempts)

	switch {
	case a.SuccessRate > l.cfg.HighSuccessRate:
		a.ExplorationRate = vecmath.Clamp(a.ExplorationRate*l.cfg.ExplorationShrink, l.cfg.ExplorationMin, l.cfg.ExplorationMax)
		a.StrategyConfidence = vecmath.Clamp(a.StrategyConfidence+l.cfg.ConfidenceStep, l.cfg.ConfidenceMin, l.cfg.ConfidenceMax)
	case a.SuccessRate < l.cfg.LowSuccessRate:
		a.ExplorationRate = vecmath.Clamp(a.ExplorationRate*l.cfg.ExplorationGrow, l.cfg.ExplorationMin, l.cfg.ExplorationMax)
		a.StrategyConfidence = vecmath.Clamp(a.StrategyConfidence-l.cfg.ConfidenceStep, l.cfg.ConfidenceMin, l.cfg.ConfidenceMax)
	}

	if a.RecentAttempts > l.cfg.AttemptReset {
		a.RecentAttempts = 0
		a.RecentSuccesses = 0
	}
}

// ReinforceStrong adds boost to every value above min, capped at 1.
// Used by the consolidation pass.
func (l *Learner) ReinforceStrong(min, boost float64) []Change {
	var changes []Change
	for seg, v := range l.values {
		if v <= min {
			continue
		}
		next := math.Min(1, v+boost)
		if next != v {
			changes = append(changes, Change{Segment: seg, OldValue: v, NewValue: next})
		}
		l.values[seg] = next
	}
	return changes
}

// Value returns the learned value of a segment, 0.0 for unknown segments.
func (l *Learner) Value(seg models.PathSegment) float64 { return l.values[seg] }

// Values returns a copy of the value map.
func (l *Learner) Values() map[models.PathSegment]float64 {
	out := make(map[models.PathSegment]float64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

// Adaptive returns the current exploration/exploitation state.
func (l *Learner) Adaptive() Adaptive { return l.adaptive }

// PendingExperiences returns the number of retained experiences.
func (l *Learner) PendingExperiences() int { return len(l.experiences) }
