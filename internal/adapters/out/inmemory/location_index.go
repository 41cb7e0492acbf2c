// Package inmemory holds adapters backed by process memory. Courier locations
// are transient operational data: couriers report every few seconds, so the
// index is simply rebuilt from fresh reports after a restart and nothing is
// persisted.
package inmemory

import (
	"sort"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// LocationIndex keeps the last reported position of every courier and answers
// nearest-courier queries for dispatch. Safe for concurrent use.
type LocationIndex struct {
	mu        sync.RWMutex
	locations map[kernel.UUID]ports.CourierLocation
}

// NewLocationIndex creates an empty location index.
func NewLocationIndex() *LocationIndex {
	return &LocationIndex{
		locations: make(map[kernel.UUID]ports.CourierLocation),
	}
}

// Report records the courier's current position, replacing any earlier one.
func (i *LocationIndex) Report(courierID kernel.UUID, location kernel.GeoPoint, reportedAt time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.locations[courierID] = ports.CourierLocation{
		CourierID:  courierID,
		Location:   location,
		ReportedAt: reportedAt,
	}
}

// Get returns the courier's last reported position.
func (i *LocationIndex) Get(courierID kernel.UUID) (ports.CourierLocation, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	location, ok := i.locations[courierID]
	return location, ok
}

// Nearest returns up to limit couriers closest to the given point, nearest
// first, skipping the excluded ids. Couriers whose stored position cannot be
// measured against the target are skipped.
func (i *LocationIndex) Nearest(to kernel.GeoPoint, limit int, exclude []kernel.UUID) []ports.CourierLocation {
	if limit <= 0 {
		return nil
	}

	excluded := make(map[kernel.UUID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	type measured struct {
		location ports.CourierLocation
		distance float64
	}

	i.mu.RLock()
	candidates := make([]measured, 0, len(i.locations))
	for id, location := range i.locations {
		if _, skip := excluded[id]; skip {
			continue
		}
		distance, err := location.Location.DistanceTo(to)
		if err != nil {
			continue
		}
		candidates = append(candidates, measured{location: location, distance: distance})
	}
	i.mu.RUnlock()

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].distance < candidates[b].distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]ports.CourierLocation, 0, len(candidates))
	for _, candidate := range candidates {
		result = append(result, candidate.location)
	}
	return result
}
