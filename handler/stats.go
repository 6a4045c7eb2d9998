package handler

import (
	"sync/atomic"

	"github.com/philipp01105/nlogconf/core"
)

// Stats counts what a handler did with the records it was given. All
// methods are safe for concurrent use.
type Stats struct {
	dropped   [core.PanicLevel + 1]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
}

// NewStats creates zeroed counters.
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped counts a record of the given level that was lost.
// Out-of-range levels count as panic.
func (s *Stats) IncrementDropped(level core.Level) {
	s.dropped[clampLevel(level)].Add(1)
}

// IncrementBlocked counts a caller that waited for queue space.
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed counts a record that was written.
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

func (s *Stats) GetDropped(level core.Level) uint64 {
	return s.dropped[clampLevel(level)].Load()
}

func (s *Stats) GetBlocked() uint64 {
	return s.blocked.Load()
}

func (s *Stats) GetProcessed() uint64 {
	return s.processed.Load()
}

// GetTotalDropped sums the dropped counters of every level.
func (s *Stats) GetTotalDropped() uint64 {
	var n uint64
	for i := range s.dropped {
		n += s.dropped[i].Load()
	}
	return n
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
}

// Snapshot is a point-in-time copy of Stats. DroppedTotal only holds
// levels with at least one drop.
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot copies the counters.
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		DroppedTotal:   make(map[core.Level]uint64),
		BlockedTotal:   s.blocked.Load(),
		ProcessedTotal: s.processed.Load(),
	}
	for i := range s.dropped {
		if n := s.dropped[i].Load(); n > 0 {
			snap.DroppedTotal[core.Level(i)] = n
		}
	}
	return snap
}

func clampLevel(level core.Level) core.Level {
	switch {
	case level < core.DebugLevel:
		return core.DebugLevel
	case level > core.PanicLevel:
		return core.PanicLevel
	default:
		return level
	}
}
