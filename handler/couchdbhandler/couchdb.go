package couchdbhandler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/formatter"
	"github.com/philipp01105/nlogconf/handler"
)

// Options locate the CouchDB database. Zero values take the defaults
// shown on each field.
type Options struct {
	Protocol string // http
	Host     string // localhost
	Port     int    // 5984
	DBName   string // logger
	Username string
	Password string
	// Timeout bounds each request including retries (default: 5s)
	Timeout time.Duration
	// RetryMax is the number of retries after a failed request (default: 3)
	RetryMax int
}

func (o *Options) setDefaults() {
	if o.Protocol == "" {
		o.Protocol = "http"
	}
	if o.Host == "" {
		o.Host = "localhost"
	}
	if o.Port == 0 {
		o.Port = 5984
	}
	if o.DBName == "" {
		o.DBName = "logger"
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.RetryMax < 0 {
		o.RetryMax = 0
	}
}

// URL returns the database endpoint documents are posted to.
func (o Options) URL() string {
	u := url.URL{
		Scheme: o.Protocol,
		Host:   o.Host + ":" + strconv.Itoa(o.Port),
		Path:   "/" + o.DBName,
	}
	if o.Username != "" {
		u.User = url.UserPassword(o.Username, o.Password)
	}
	return u.String()
}

// CouchDBHandler stores each entry as a JSON document in CouchDB.
type CouchDBHandler struct {
	handler.Base
	endpoint  string
	client    *retryablehttp.Client
	formatter *formatter.JSONFormatter
	stats     *handler.Stats
	mu        sync.Mutex
	buf       bytes.Buffer
}

// NewCouchDBHandler creates a handler for the database described by opts.
// No connection is made until the first entry is handled.
func NewCouchDBHandler(opts Options) *CouchDBHandler {
	opts.setDefaults()

	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = nil

	return &CouchDBHandler{
		Base:      handler.NewBase(core.DebugLevel, true),
		endpoint:  opts.URL(),
		client:    client,
		formatter: formatter.NewJSONFormatter(formatter.Config{}),
		stats:     handler.NewStats(),
	}
}

// Endpoint returns the database URL.
func (h *CouchDBHandler) Endpoint() string {
	return h.endpoint
}

// Handle posts entry as a new document.
func (h *CouchDBHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	h.buf.Reset()
	h.formatter.FormatEntry(entry, &h.buf)
	body := make([]byte, h.buf.Len())
	copy(body, h.buf.Bytes())
	h.mu.Unlock()

	req, err := retryablehttp.NewRequest(http.MethodPost, h.endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.stats.IncrementDropped(entry.Level)
		return fmt.Errorf("couchdb: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.stats.IncrementDropped(entry.Level)
		return fmt.Errorf("couchdb: unexpected status %s", resp.Status)
	}
	h.stats.IncrementProcessed()
	return nil
}

// Stats returns a snapshot of the current statistics
func (h *CouchDBHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close releases idle connections.
func (h *CouchDBHandler) Close() error {
	h.client.HTTPClient.CloseIdleConnections()
	return nil
}
