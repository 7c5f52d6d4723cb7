package logging

import (
	"fmt"
	"sync"
)

// MockLogger records entries for assertions. Loggers derived through
// WithField, WithFields and WithError write into the same record, and the
// record is safe for concurrent use.
type MockLogger struct {
	record *mockRecord
	fields []Field
	err    error
}

type mockRecord struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{record: &mockRecord{}}
}

func (m *MockLogger) log(level, msg string, fields []Field) {
	if m.record == nil {
		m.record = &mockRecord{}
	}
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)

	m.record.mu.Lock()
	defer m.record.mu.Unlock()
	m.record.entries = append(m.record.entries, LogEntry{Level: level, Message: msg, Fields: all, Error: m.err})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.log("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.log("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.log("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.log("ERROR", msg, fields) }

// Fatalf records a FATAL entry and does not exit.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.log("FATAL", fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	child := m.derive()
	child.err = err
	return child
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	child := m.derive()
	child.fields = append(child.fields, fields...)
	return child
}

func (m *MockLogger) derive() *MockLogger {
	if m.record == nil {
		m.record = &mockRecord{}
	}
	fields := make([]Field, len(m.fields))
	copy(fields, m.fields)
	return &MockLogger{record: m.record, fields: fields, err: m.err}
}

// Entries returns a copy of every captured entry.
func (m *MockLogger) Entries() []LogEntry {
	if m.record == nil {
		return nil
	}
	m.record.mu.Lock()
	defer m.record.mu.Unlock()
	out := make([]LogEntry, len(m.record.entries))
	copy(out, m.record.entries)
	return out
}

// EntriesByLevel returns the captured entries of one level.
func (m *MockLogger) EntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, entry := range m.Entries() {
		if entry.Level == level {
			out = append(out, entry)
		}
	}
	return out
}

// HasEntry reports whether an entry with level and message was captured.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// FieldValue returns the value of key on entry, or nil.
func (e LogEntry) FieldValue(key string) interface{} {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value
		}
	}
	return nil
}

// Clear drops every captured entry.
func (m *MockLogger) Clear() {
	if m.record == nil {
		return
	}
	m.record.mu.Lock()
	defer m.record.mu.Unlock()
	m.record.entries = nil
}
