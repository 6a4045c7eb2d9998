// Package processor provides record processors: small steps a logger runs
// on every entry before dispatching it to its handlers, typically to add
// context fields (uid, tags, host name, process id, memory usage) or to
// interpolate field values into the message.
package processor
