package core

import "strings"

// Level represents the severity level of a log entry
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for fatal messages (causes os.Exit(1))
	FatalLevel
	// PanicLevel for panic messages (causes panic)
	PanicLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case PanicLevel:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// levelNames maps the symbolic names accepted in configuration to levels.
// The syslog-style names map onto the closest NLog severity.
var levelNames = map[string]Level{
	"debug":     DebugLevel,
	"info":      InfoLevel,
	"notice":    InfoLevel,
	"warn":      WarnLevel,
	"warning":   WarnLevel,
	"error":     ErrorLevel,
	"critical":  FatalLevel,
	"alert":     FatalLevel,
	"fatal":     FatalLevel,
	"emergency": PanicLevel,
	"panic":     PanicLevel,
}

// LookupLevel resolves a symbolic level name, ignoring case.
func LookupLevel(name string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= PanicLevel
}
