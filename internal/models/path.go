package models

import (
	"fmt"
	"time"
)

// PathSegment is a directed traversal from one landmark to another.
type PathSegment struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// String renders the segment as "from->to".
func (s PathSegment) String() string {
	return fmt.Sprintf("%s->%s", s.From, s.To)
}

// PathExperience is one completed traversal, reported by the navigation
// collaborator when the agent finishes pursuing a target. Records expire
// from the learner's window after 60s whether or not they were consumed.
type PathExperience struct {
	Segment       PathSegment   `json:"segment"`
	TraversalTime time.Duration `json:"traversal_time"`
	Success       bool          `json:"success"`
	Reward        float64       `json:"reward"`
	Timestamp     time.Time     `json:"timestamp"`
}
