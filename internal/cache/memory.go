// Package cache remembers the last successfully fetched series and warnings
// per provider identifier.
package cache

import (
	"slices"
	"sync"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/observability"
)

// Memory is a thread-safe in-memory LRU store. Reads of an unknown identifier
// return empty slices; writes replace the stored slice wholesale.
type Memory struct {
	maxEntries int
	metrics    *observability.Metrics // optional
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key      string
	series   []domain.DataPoint
	warnings []domain.Warning
	prev     *entry
	next     *entry
}

// NewMemory creates a store holding at most maxEntries identifiers. metrics
// may be nil.
func NewMemory(maxEntries int, metrics *observability.Metrics) *Memory {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Memory{
		maxEntries: maxEntries,
		metrics:    metrics,
		entries:    make(map[string]*entry),
	}
}

// Series returns a copy of the remembered series for id.
func (c *Memory) Series(id string) []domain.DataPoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(id, "series", func(e *entry) bool { return e.series != nil })
	if !ok {
		return []domain.DataPoint{}
	}
	return slices.Clone(e.series)
}

// PutSeries replaces the remembered series for id.
func (c *Memory) PutSeries(id string, series []domain.DataPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.upsert(id).series = cloneNonNil(series)
}

// Warnings returns a copy of the remembered warnings for id.
func (c *Memory) Warnings(id string) []domain.Warning {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(id, "warnings", func(e *entry) bool { return e.warnings != nil })
	if !ok {
		return []domain.Warning{}
	}
	return slices.Clone(e.warnings)
}

// PutWarnings replaces the remembered warnings for id.
func (c *Memory) PutWarnings(id string, warnings []domain.Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.upsert(id).warnings = cloneNonNil(warnings)
}

// Len returns the number of identifiers held.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Memory) lookup(key, kind string, has func(*entry) bool) (*entry, bool) {
	e, ok := c.entries[key]
	if ok && has(e) {
		c.moveToFront(e)
		c.observe(kind, "hit")
		return e, true
	}
	c.observe(kind, "miss")
	return nil, false
}

func (c *Memory) upsert(key string) *entry {
	if e, ok := c.entries[key]; ok {
		c.moveToFront(e)
		return e
	}

	e := &entry{key: key}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
	if c.metrics != nil {
		c.metrics.CacheEntries.Set(float64(len(c.entries)))
	}
	return e
}

func (c *Memory) observe(kind, result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(kind, result).Inc()
	}
}

func (c *Memory) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *Memory) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Memory) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *Memory) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

// cloneNonNil copies s, turning nil into an empty slice so the entry counts
// as remembered.
func cloneNonNil[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
