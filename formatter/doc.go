// Package formatter turns channel records into bytes.
//
// TextFormatter writes one line per record with the channel and level
// in front of the message and the record fields as a trailing JSON
// object. JSONFormatter writes one document per record with the fields
// nested under "context". Configuration picks a formatter with ByName.
//
// Both formatters append into pooled buffers. Buffers larger than
// 64 KiB are not returned to the pool.
package formatter
