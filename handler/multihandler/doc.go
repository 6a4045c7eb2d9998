// Package multihandler provides a fan-out handler that dispatches log
// entries to every child handler accepting the entry's level.
package multihandler
