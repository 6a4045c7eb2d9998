package sqlhandler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var schemas = map[string]string{
	"sqlite": `CREATE TABLE IF NOT EXISTS %s (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            channel TEXT NOT NULL,
            level TEXT NOT NULL,
            message TEXT NOT NULL,
            context TEXT,
            time TEXT NOT NULL
        )`,
	"mysql": `CREATE TABLE IF NOT EXISTS %s (
            id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
            channel VARCHAR(255) NOT NULL,
            level VARCHAR(16) NOT NULL,
            message TEXT NOT NULL,
            context TEXT,
            time VARCHAR(40) NOT NULL
        )`,
}

// SQLConfig holds configuration for SQLHandler.
type SQLConfig struct {
	// Driver is "sqlite" or "mysql"
	Driver string
	// DSN is the driver-specific data source name
	DSN string
	// Table receives one row per entry (default: logs)
	Table string
	// Level is the minimum level stored
	Level core.Level
	// Timeout bounds each insert (default: 5s)
	Timeout time.Duration
}

// SQLHandler inserts entries into a database table, creating the table
// when it does not exist.
type SQLHandler struct {
	handler.Base
	db      *sql.DB
	insert  *sql.Stmt
	table   string
	timeout time.Duration
	stats   *handler.Stats
	once    sync.Once
	err     error
}

// NewSQLHandler opens the database and prepares the table.
func NewSQLHandler(ctx context.Context, cfg SQLConfig) (*SQLHandler, error) {
	schema, ok := schemas[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if cfg.Table == "" {
		cfg.Table = "logs"
	}
	if !tableName.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid table name %q", cfg.Table)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", cfg.Driver, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, fmt.Sprintf(schema, cfg.Table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create table %s: %w", cfg.Table, err)
	}
	insert, err := db.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (channel, level, message, context, time) VALUES (?, ?, ?, ?, ?)", cfg.Table))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &SQLHandler{
		Base:    handler.NewBase(cfg.Level, true),
		db:      db,
		insert:  insert,
		table:   cfg.Table,
		timeout: cfg.Timeout,
		stats:   handler.NewStats(),
	}, nil
}

// Handle inserts one row for entry.
func (h *SQLHandler) Handle(entry *core.Entry) error {
	var fields interface{}
	if len(entry.Fields) > 0 {
		m := make(map[string]interface{}, len(entry.Fields))
		for _, f := range entry.Fields {
			m[f.Key] = f.Value()
		}
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode context: %w", err)
		}
		fields = string(data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	_, err := h.insert.ExecContext(ctx,
		entry.Channel,
		entry.Level.String(),
		entry.Message,
		fields,
		entry.Time.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		h.stats.IncrementDropped(entry.Level)
		return fmt.Errorf("insert into %s: %w", h.table, err)
	}
	h.stats.IncrementProcessed()
	return nil
}

// DB returns the underlying database handle.
func (h *SQLHandler) DB() *sql.DB {
	return h.db
}

// Stats returns a snapshot of the current statistics
func (h *SQLHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the prepared statement and the database.
func (h *SQLHandler) Close() error {
	h.once.Do(func() {
		_ = h.insert.Close()
		h.err = h.db.Close()
	})
	return h.err
}

