package events

import "sync"

// DefaultMemoryCapacity bounds the in-memory sink's ring buffer.
const DefaultMemoryCapacity = 4096

// MemorySink keeps the most recent events in a bounded ring buffer.
// It is safe for concurrent use and is the sink of choice for tests.
type MemorySink struct {
	mu     sync.Mutex
	buf    []Event
	start  int
	count  int
	capped int
}

// NewMemorySink creates a memory sink holding at most capacity events;
// capacity <= 0 selects the default.
func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemorySink{buf: make([]Event, capacity)}
}

// Record appends the event, evicting the oldest once full.
func (s *MemorySink) Record(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := (s.start + s.count) % len(s.buf)
	s.buf[idx] = e
	if s.count < len(s.buf) {
		s.count++
	} else {
		s.start = (s.start + 1) % len(s.buf)
		s.capped++
	}
	return nil
}

// Events returns the retained events matching the filter, oldest first.
func (s *MemorySink) Events(f Filter) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Event
	for i := 0; i < s.count; i++ {
		e := s.buf[(s.start+i)%len(s.buf)]
		if !f.Matches(e) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out
}

// Len returns the number of retained events.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Dropped returns how many events were evicted by the ring buffer.
func (s *MemorySink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capped
}

// Close is a no-op for the memory sink.
func (s *MemorySink) Close() error { return nil }
