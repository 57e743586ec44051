package service

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"github.com/thoas/go-funk"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
)

// Cache stores computed day estimates under a fingerprint of every input
// that can influence them. Storage, eviction and invalidation policy belong
// to the implementation; the engine only computes keys and honors hits.
type Cache interface {
	Get(key uint64) ([]api.DayEstimate, bool)
	Set(key uint64, estimates []api.DayEstimate)
}

// MemoryCache is a minimal thread-safe Cache for embedders and tests. It
// grows without bound; callers needing eviction bring their own Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[uint64][]api.DayEstimate
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[uint64][]api.DayEstimate)}
}

func (c *MemoryCache) Get(key uint64) ([]api.DayEstimate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	estimates, ok := c.entries[key]
	return estimates, ok
}

func (c *MemoryCache) Set(key uint64, estimates []api.DayEstimate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = estimates
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cacheInputs is the canonical serialization of everything that influences a
// day estimate computation. Field order is fixed and map keys marshal
// sorted, so equal inputs always produce equal bytes.
type cacheInputs struct {
	Project    api.Project         `json:"project"`
	Milestones []api.Milestone     `json:"milestones"`
	Events     []api.CalendarEvent `json:"events"`
	Settings   api.Settings        `json:"settings"`
	Holidays   []api.Holiday       `json:"holidays"`
	Window     api.DateRange       `json:"window"`
}

// cacheKey fingerprints the inputs. Milestones and events are restricted to
// the project first so unrelated records cannot invalidate its entries.
func cacheKey(project api.Project, milestones []api.Milestone, events []api.CalendarEvent, settings api.Settings, holidays []api.Holiday, window api.DateRange) (uint64, error) {
	projectMilestones := funk.Filter(milestones, func(m api.Milestone) bool {
		return m.ProjectID == project.ID
	}).([]api.Milestone)
	projectEvents := funk.Filter(events, func(ev api.CalendarEvent) bool {
		return ev.ProjectID != nil && *ev.ProjectID == project.ID
	}).([]api.CalendarEvent)

	payload, err := json.Marshal(cacheInputs{
		Project:    project,
		Milestones: projectMilestones,
		Events:     projectEvents,
		Settings:   settings,
		Holidays:   holidays,
		Window:     window,
	})
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(payload), nil
}
