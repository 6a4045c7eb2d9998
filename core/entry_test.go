package core

import (
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   Level
		wantOK bool
	}{
		{"debug", DebugLevel, true},
		{"WARNING", WarnLevel, true},
		{" Warn ", WarnLevel, true},
		{"notice", InfoLevel, true},
		{"critical", FatalLevel, true},
		{"emergency", PanicLevel, true},
		{"verbose", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupLevel(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("LookupLevel(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("LookupLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestEntryPool(t *testing.T) {
	e1 := GetEntry()
	if e1 == nil {
		t.Fatal("GetEntry() returned nil")
	}
	if len(e1.Fields) != 0 {
		t.Errorf("Expected empty fields, got %d", len(e1.Fields))
	}

	e1.Message = "test"
	e1.Channel = "app"
	e1.Fields = append(e1.Fields, Field{Key: "test", Str: "value"})
	PutEntry(e1)

	e2 := GetEntry()
	if e2 == nil {
		t.Fatal("GetEntry() returned nil after PutEntry()")
	}
	if e2.Message != "" {
		t.Errorf("Expected empty message after pool reset, got %q", e2.Message)
	}
	if e2.Channel != "" {
		t.Errorf("Expected empty channel after pool reset, got %q", e2.Channel)
	}
	if len(e2.Fields) != 0 {
		t.Errorf("Expected empty fields after pool reset, got %d", len(e2.Fields))
	}
}

func TestEntryClone(t *testing.T) {
	e := GetEntry()
	e.Level = ErrorLevel
	e.Channel = "billing"
	e.Message = "payment failed"
	e.Fields = append(e.Fields, Field{Key: "id", Type: IntType, Int64: 7})

	c := e.Clone()
	PutEntry(e)

	if c.Channel != "billing" || c.Message != "payment failed" || c.Level != ErrorLevel {
		t.Errorf("clone lost data: %+v", c)
	}
	if len(c.Fields) != 1 || c.Fields[0].Int64 != 7 {
		t.Errorf("clone fields = %+v", c.Fields)
	}
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(0)
	if !caller.Defined {
		t.Fatal("GetCaller() returned undefined CallerInfo")
	}
	if caller.File == "" || caller.ShortFile == "" {
		t.Error("Expected non-empty file")
	}
	if caller.Line == 0 {
		t.Error("Expected non-zero line number")
	}
	if caller.Function == "" {
		t.Error("Expected non-empty function name")
	}
}

func BenchmarkGetEntry(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		PutEntry(e)
	}
}
