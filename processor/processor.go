package processor

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/philipp01105/nlogconf/core"
)

// Processor adds or rewrites data on an entry before it reaches the
// handlers. Processors run in attach order on the caller's goroutine and
// must not retain entry.
type Processor interface {
	Process(entry *core.Entry)
}

// Func adapts a function to the Processor interface.
type Func func(entry *core.Entry)

// Process calls f(entry).
func (f Func) Process(entry *core.Entry) { f(entry) }

func stringField(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// UIDProcessor adds a fixed random identifier to every entry, so all
// records written during one run or request can be correlated.
type UIDProcessor struct {
	mu     sync.RWMutex
	length int
	uid    string
}

// NewUIDProcessor creates a processor with a uid of length hex digits
// (1 to 32).
func NewUIDProcessor(length int) (*UIDProcessor, error) {
	if length < 1 || length > 32 {
		return nil, fmt.Errorf("uid length must be between 1 and 32, got %d", length)
	}
	p := &UIDProcessor{length: length}
	p.Reset()
	return p, nil
}

// UID returns the current identifier.
func (p *UIDProcessor) UID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.uid
}

// Reset generates a new identifier.
func (p *UIDProcessor) Reset() {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	p.mu.Lock()
	p.uid = id[:p.length]
	p.mu.Unlock()
}

// Process adds the "uid" field.
func (p *UIDProcessor) Process(entry *core.Entry) {
	entry.Fields = append(entry.Fields, stringField("uid", p.UID()))
}

// TagProcessor adds a fixed list of tags to every entry.
type TagProcessor struct {
	mu   sync.RWMutex
	tags []string
}

// NewTagProcessor creates a processor adding tags.
func NewTagProcessor(tags ...string) *TagProcessor {
	p := &TagProcessor{}
	p.SetTags(tags...)
	return p
}

// AddTags appends tags.
func (p *TagProcessor) AddTags(tags ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags[:len(p.tags):len(p.tags)], tags...)
}

// SetTags replaces the tag list.
func (p *TagProcessor) SetTags(tags ...string) {
	out := make([]string, len(tags))
	copy(out, tags)
	p.mu.Lock()
	p.tags = out
	p.mu.Unlock()
}

// Tags returns the current tags.
func (p *TagProcessor) Tags() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.tags))
	copy(out, p.tags)
	return out
}

// Process adds the "tags" field.
func (p *TagProcessor) Process(entry *core.Entry) {
	entry.Fields = append(entry.Fields, core.Field{Key: "tags", Type: core.AnyType, Any: p.Tags()})
}

// HostnameProcessor adds the machine's host name.
type HostnameProcessor struct {
	hostname string
}

// NewHostnameProcessor resolves the host name once.
func NewHostnameProcessor() *HostnameProcessor {
	name, err := os.Hostname()
	if err != nil {
		name = "unknown"
	}
	return &HostnameProcessor{hostname: name}
}

// Process adds the "hostname" field.
func (p *HostnameProcessor) Process(entry *core.Entry) {
	entry.Fields = append(entry.Fields, stringField("hostname", p.hostname))
}

// ProcessIDProcessor adds the process id.
type ProcessIDProcessor struct {
	pid int64
}

// NewProcessIDProcessor captures the current process id.
func NewProcessIDProcessor() *ProcessIDProcessor {
	return &ProcessIDProcessor{pid: int64(os.Getpid())}
}

// Process adds the "process_id" field.
func (p *ProcessIDProcessor) Process(entry *core.Entry) {
	entry.Fields = append(entry.Fields, core.Field{Key: "process_id", Type: core.Int64Type, Int64: p.pid})
}

// MemoryUsageProcessor adds the bytes of allocated heap objects.
// Reading memory statistics briefly stops the world; attach it to
// low-volume channels.
type MemoryUsageProcessor struct {
	useFormatting bool
}

// NewMemoryUsageProcessor creates the processor. With useFormatting the
// value is a human readable string such as "12 MB".
func NewMemoryUsageProcessor(useFormatting bool) *MemoryUsageProcessor {
	return &MemoryUsageProcessor{useFormatting: useFormatting}
}

// Process adds the "memory_usage" field.
func (p *MemoryUsageProcessor) Process(entry *core.Entry) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if p.useFormatting {
		entry.Fields = append(entry.Fields, stringField("memory_usage", humanize.Bytes(ms.HeapAlloc)))
		return
	}
	entry.Fields = append(entry.Fields, core.Field{Key: "memory_usage", Type: core.Int64Type, Int64: int64(ms.HeapAlloc)})
}

// PSRLogMessageProcessor replaces {key} placeholders in the message with
// the value of the field named key. Time fields use DateFormat.
type PSRLogMessageProcessor struct {
	dateFormat   string
	removeFields bool
}

// NewPSRLogMessageProcessor creates the processor. An empty dateFormat
// means RFC 3339. With removeUsedFields, fields substituted into the
// message are dropped from the entry.
func NewPSRLogMessageProcessor(dateFormat string, removeUsedFields bool) *PSRLogMessageProcessor {
	if dateFormat == "" {
		dateFormat = time.RFC3339
	}
	return &PSRLogMessageProcessor{dateFormat: dateFormat, removeFields: removeUsedFields}
}

// Process interpolates the message.
func (p *PSRLogMessageProcessor) Process(entry *core.Entry) {
	if !strings.Contains(entry.Message, "{") || len(entry.Fields) == 0 {
		return
	}

	var used map[string]struct{}
	var b strings.Builder
	msg := entry.Message
	for {
		open := strings.IndexByte(msg, '{')
		if open < 0 {
			b.WriteString(msg)
			break
		}
		end := strings.IndexByte(msg[open:], '}')
		if end < 0 {
			b.WriteString(msg)
			break
		}
		end += open
		key := msg[open+1 : end]
		f, ok := core.FindField(entry.Fields, key)
		if !ok || key == "" {
			b.WriteString(msg[:end+1])
			msg = msg[end+1:]
			continue
		}
		b.WriteString(msg[:open])
		b.WriteString(p.format(f))
		if p.removeFields {
			if used == nil {
				used = make(map[string]struct{})
			}
			used[key] = struct{}{}
		}
		msg = msg[end+1:]
	}
	entry.Message = b.String()

	if len(used) > 0 {
		kept := entry.Fields[:0]
		for _, f := range entry.Fields {
			if _, drop := used[f.Key]; !drop {
				kept = append(kept, f)
			}
		}
		entry.Fields = kept
	}
}

func (p *PSRLogMessageProcessor) format(f core.Field) string {
	if f.Type == core.TimeType {
		return time.Unix(0, f.Int64).Format(p.dateFormat)
	}
	if t, ok := f.Any.(time.Time); ok && f.Type == core.AnyType {
		return t.Format(p.dateFormat)
	}
	return f.StringValue()
}
