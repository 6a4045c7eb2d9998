// Package sqlhandler writes log entries as rows of a database table.
//
// The "sqlite" (modernc.org/sqlite) and "mysql" (go-sql-driver/mysql)
// drivers are registered. Each row holds the channel, level name,
// message, the fields encoded as a JSON object, and the RFC 3339 time.
package sqlhandler
