// Package filehandler provides handlers that append formatted log
// entries to files.
//
// StreamHandler writes to one file, or to stdout/stderr. RotatingFileHandler
// derives a dated filename from a base name, opens a new file whenever the
// formatted date changes and removes the oldest dated files beyond
// MaxFiles.
//
// Both handlers can take an advisory file lock around each write
// (UseLocking) so several processes can share one log file.
package filehandler
