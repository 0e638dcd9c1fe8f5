package events

import "errors"

// MultiSink fans every event out to all member sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink writing to every member in order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Record delivers the event to every member; all members are attempted
// even when one fails.
func (m *MultiSink) Record(e Event) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every member sink.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
