package store

import (
	"context"
	"time"

	"venues-backend/metrics"
	"venues-backend/venues"
)

// Instrumented decorates a venues.Store with operation metrics.
type Instrumented struct {
	next      venues.Store
	collector *metrics.Collector
}

var _ venues.Store = (*Instrumented)(nil)

// NewInstrumented wraps next, recording every call on collector.
func NewInstrumented(next venues.Store, collector *metrics.Collector) *Instrumented {
	return &Instrumented{next: next, collector: collector}
}

func (s *Instrumented) Put(ctx context.Context, v venues.Venue) error {
	start := time.Now()
	err := s.next.Put(ctx, v)
	s.collector.ObserveStore("put", err, time.Since(start))
	return err
}

func (s *Instrumented) Get(ctx context.Context, id string) (venues.Venue, bool, error) {
	start := time.Now()
	v, ok, err := s.next.Get(ctx, id)
	s.collector.ObserveStore("get", err, time.Since(start))
	return v, ok, err
}

func (s *Instrumented) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.collector.ObserveStore("delete", err, time.Since(start))
	return err
}

func (s *Instrumented) ScanAll(ctx context.Context) ([]venues.Venue, error) {
	start := time.Now()
	list, err := s.next.ScanAll(ctx)
	s.collector.ObserveStore("scan", err, time.Since(start))
	return list, err
}
