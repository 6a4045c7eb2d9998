package logger

import "github.com/philipp01105/nlogconf/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
	PanicLevel = core.PanicLevel
)

// ParseLevel converts a string to a Level. Names are matched without
// regard to case and include the syslog aliases (notice, warning,
// critical, alert, emergency). Unknown names yield InfoLevel.
func ParseLevel(s string) Level {
	if l, ok := core.LookupLevel(s); ok {
		return l
	}
	return InfoLevel
}
