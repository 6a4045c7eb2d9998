// Package consolehandler provides a handler that writes formatted log
// entries to stdout, stderr or any io.Writer.
//
// Level labels are coloured with ANSI codes when the writer is a
// terminal (ColorAuto) or when forced with ColorAlways. Queueing is left
// to asynchandler, which can wrap a ConsoleHandler.
package consolehandler
