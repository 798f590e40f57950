package utils

import (
	"sync"
)

// InFlightTracker remembers request ids that have been read but whose results
// have not been published yet. A second copy of an id arriving in that window
// is a duplicate the external dedupe store cannot see yet.
type InFlightTracker struct {
	ids sync.Map
}

func NewInFlightTracker() *InFlightTracker {
	return &InFlightTracker{}
}

// Track returns false if id is already in flight.
func (t *InFlightTracker) Track(id string) bool {
	_, loaded := t.ids.LoadOrStore(id, struct{}{})
	return !loaded
}

func (t *InFlightTracker) Release(id string) {
	t.ids.Delete(id)
}
