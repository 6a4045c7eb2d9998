package logger

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler/handlertest"
)

// fieldMap flattens the fields of an entry for comparison.
func fieldMap(e *core.Entry) map[string]interface{} {
	out := make(map[string]interface{}, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Key] = f.Value()
	}
	return out
}

func newRecorded(level core.Level) (*Logger, *handlertest.Recorder) {
	rec := handlertest.NewRecorder()
	return NewBuilder().WithName("test").AddHandler(rec).WithLevel(level).Build(), rec
}

func TestLogger_LevelGate(t *testing.T) {
	l, rec := newRecorded(InfoLevel)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	want := []string{"info message", "warn message", "error message"}
	if got := rec.Messages(); !reflect.DeepEqual(got, want) {
		t.Errorf("messages = %v, want %v", got, want)
	}
	levels := []core.Level{}
	for _, e := range rec.Entries() {
		levels = append(levels, e.Level)
	}
	if !reflect.DeepEqual(levels, []core.Level{InfoLevel, WarnLevel, ErrorLevel}) {
		t.Errorf("levels = %v", levels)
	}
}

func TestLogger_Fields(t *testing.T) {
	l, rec := newRecorded(InfoLevel)

	l.Info("test",
		String("str", "value"),
		Int("int", 42),
		Bool("bool", true),
		Float64("float", 3.14),
	)

	got := fieldMap(rec.Entries()[0])
	want := map[string]interface{}{"str": "value", "int": int64(42), "bool": true, "float": 3.14}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %v, want %v", got, want)
	}
}

func TestLogger_WithIsImmutable(t *testing.T) {
	rec := handlertest.NewRecorder()
	parent := NewBuilder().
		AddHandler(rec).
		WithFields(String("parent", "value")).
		Build()
	child := parent.With(String("child", "value"))

	parent.Info("parent message")
	child.Info("child message")

	entries := rec.Entries()
	if got := fieldMap(entries[0]); !reflect.DeepEqual(got, map[string]interface{}{"parent": "value"}) {
		t.Errorf("parent fields = %v", got)
	}
	if got := fieldMap(entries[1]); !reflect.DeepEqual(got, map[string]interface{}{"parent": "value", "child": "value"}) {
		t.Errorf("child fields = %v", got)
	}
	if child.Name() != parent.Name() {
		t.Error("With should keep the channel name")
	}
}

func TestLogger_FormattedLogging(t *testing.T) {
	l, rec := newRecorded(InfoLevel)

	l.Debugf("hidden %d", 1)
	l.Infof("User %s logged in with ID %d", "alice", 123)

	if got := rec.Messages(); len(got) != 1 || got[0] != "User alice logged in with ID 123" {
		t.Errorf("messages = %v", got)
	}
}

func TestLogger_NoHandlers(t *testing.T) {
	l := NewBuilder().Build()
	l.Info("dropped")
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestLogger_Fatal(t *testing.T) {
	l, rec := newRecorded(DebugLevel)

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	l.Fatal("fatal error", String("key", "value"))

	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Level != FatalLevel || entries[0].Message != "fatal error" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestLogger_Panic(t *testing.T) {
	l, rec := newRecorded(DebugLevel)

	defer func() {
		r := recover()
		if r != "panic message" {
			t.Errorf("recovered %v, want panic message", r)
		}
		entries := rec.Entries()
		if len(entries) != 1 || entries[0].Level != PanicLevel {
			t.Errorf("unexpected entries %+v", entries)
		}
	}()

	l.Panic("panic message")
}

func TestLogger_CoarseClock(t *testing.T) {
	rec := handlertest.NewRecorder()
	l := NewBuilder().AddHandler(rec).WithCoarseClock(true).Build()

	before := time.Now().Add(-time.Second)
	l.Info("coarse", String("key", "value"))
	l.With(String("child", "value")).Info("child")

	for _, e := range rec.Entries() {
		if e.Time.Before(before) {
			t.Errorf("%q stamped %v, too far in the past", e.Message, e.Time)
		}
	}
	if got := rec.Messages(); !reflect.DeepEqual(got, []string{"coarse", "child"}) {
		t.Errorf("messages = %v", got)
	}
	if !l.UsesMicroseconds() {
		t.Error("the coarse clock keeps sub-second precision")
	}
}

func TestParseLevel_FatalPanic(t *testing.T) {
	if ParseLevel("FATAL") != FatalLevel {
		t.Error("Expected FatalLevel for 'FATAL'")
	}
	if ParseLevel("PANIC") != PanicLevel {
		t.Error("Expected PanicLevel for 'PANIC'")
	}
}

func BenchmarkLogger_LevelCheck(b *testing.B) {
	l, _ := newRecorded(InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Debug("debug message", String("key", "value"))
	}
}

func TestAny_PicksTypedFields(t *testing.T) {
	tests := []struct {
		val  interface{}
		want core.FieldType
	}{
		{"s", core.StringType},
		{7, core.IntType},
		{int64(7), core.Int64Type},
		{1.5, core.Float64Type},
		{true, core.BoolType},
		{time.Second, core.DurationType},
		{time.Unix(0, 0), core.TimeType},
		{errTest, core.ErrorType},
		{[]string{"a"}, core.AnyType},
	}
	for _, tt := range tests {
		f := Any("k", tt.val)
		if f.Type != tt.want || f.Key != "k" {
			t.Errorf("Any(%#v) = %+v, want type %v", tt.val, f, tt.want)
		}
	}
}

var errTest = errors.New("boom")
