package handler

import (
	"testing"

	"github.com/philipp01105/nlogconf/core"
)

func TestParseOverflowPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    OverflowPolicy
		wantErr bool
	}{
		{"drop_newest", DropNewest, false},
		{"DropOldest", DropOldest, false},
		{"drop-oldest", DropOldest, false},
		{"block", Block, false},
		{"retry", DropNewest, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOverflowPolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOverflowPolicy(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOverflowPolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStats_Counters(t *testing.T) {
	s := NewStats()
	s.IncrementDropped(core.InfoLevel)
	s.IncrementDropped(core.FatalLevel)
	s.IncrementBlocked()
	s.IncrementProcessed()
	s.IncrementProcessed()

	snap := s.GetSnapshot()
	if snap.DroppedTotal[core.InfoLevel] != 1 {
		t.Errorf("dropped info = %d", snap.DroppedTotal[core.InfoLevel])
	}
	if snap.DroppedTotal[core.FatalLevel] != 1 {
		t.Errorf("dropped fatal = %d", snap.DroppedTotal[core.FatalLevel])
	}
	if _, ok := snap.DroppedTotal[core.WarnLevel]; ok {
		t.Error("levels without drops should be absent from the snapshot")
	}
	s.IncrementDropped(core.Level(99))
	if s.GetDropped(core.PanicLevel) != 1 {
		t.Error("out-of-range levels should count as panic")
	}
	if snap.BlockedTotal != 1 || snap.ProcessedTotal != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	if s.GetTotalDropped() != 3 {
		t.Errorf("GetTotalDropped() = %d, want 3", s.GetTotalDropped())
	}

	s.Reset()
	if s.GetTotalDropped() != 0 || s.GetProcessed() != 0 {
		t.Error("Reset() did not clear counters")
	}
}

func TestNewStoppedTimer(t *testing.T) {
	timer := NewStoppedTimer()
	select {
	case <-timer.C:
		t.Fatal("stopped timer fired")
	default:
	}
}
