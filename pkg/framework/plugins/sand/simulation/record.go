package simulation

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// TrackResult is one policy's outcome for a slot
type TrackResult struct {
	Cost        float64
	Placed      int
	Dropped     int
	Active      int
	Activated   int
	Deactivated int
}

// SlotRecord is the per-slot output of the benchmark. Field order follows the
// CSV columns; the track details beyond Cost are in-memory only.
type SlotRecord struct {
	Ratio     float64
	PodCount  int
	NodeCount int
	Execution int
	Slot      int
	Target    int
	Static    TrackResult
	Temporal  TrackResult
}

// RecordSink consumes slot records in emission order
type RecordSink interface {
	Record(SlotRecord) error
}

// SinkFunc adapts a function to RecordSink
type SinkFunc func(SlotRecord) error

func (f SinkFunc) Record(r SlotRecord) error {
	return f(r)
}

// MultiSink fans a record out to every sink. All sinks see the record even
// when an earlier one fails.
type MultiSink []RecordSink

func (m MultiSink) Record(r SlotRecord) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(r); err != nil {
			errs = append(errs, err)
		}
	}
	return utilerrors.NewAggregate(errs)
}

// Collector keeps every record in memory
type Collector struct {
	Records []SlotRecord
}

func (c *Collector) Record(r SlotRecord) error {
	c.Records = append(c.Records, r)
	return nil
}
