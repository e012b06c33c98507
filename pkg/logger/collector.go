package logger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// Digest groups repeated log events by level, message, fields and caller.
type Digest struct {
	logMap map[string]*AggregatedLogEntry
	order  []string
	mutex  sync.Mutex
}

func NewDigest() *Digest {
	return &Digest{logMap: make(map[string]*AggregatedLogEntry)}
}

func (d *Digest) Add(level, message string, fields []Field, caller string) {
	fieldMap := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		key, value := field.GetKeyValue()
		fieldMap[key] = value
	}

	now := time.Now()
	key := d.generateKey(level, message, fieldMap, caller)

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if entry, exists := d.logMap[key]; exists {
		entry.Count++
		entry.LastSeen = now
		return
	}
	d.logMap[key] = &AggregatedLogEntry{
		Level:     level,
		Message:   message,
		Fields:    fieldMap,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
	d.order = append(d.order, key)
}

// generateKey hashes level, message, fields and caller. Fields that vary per
// event (line numbers, raw values) should be left out by callers that want
// grouping.
func (d *Digest) generateKey(level, message string, fields map[string]interface{}, caller string) string {
	data := struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
		Caller  string                 `json:"caller"`
	}{level, message, fields, caller}

	jsonData, _ := json.Marshal(data)
	return fmt.Sprintf("%x", sha256.Sum256(jsonData))
}

// Total is the number of events recorded across all entries.
func (d *Digest) Total() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	n := 0
	for _, e := range d.logMap {
		n += e.Count
	}
	return n
}

// Drain returns entries in first-seen order and resets the digest.
func (d *Digest) Drain() []AggregatedLogEntry {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	out := make([]AggregatedLogEntry, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, *d.logMap[k])
	}

	d.logMap = make(map[string]*AggregatedLogEntry)
	d.order = nil
	return out
}
