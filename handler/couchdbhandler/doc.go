// Package couchdbhandler stores log entries as JSON documents in a
// CouchDB database over HTTP, retrying transient failures.
package couchdbhandler
