package repository

import (
	"fmt"
	"sync"
	"time"

	"charm.land/log/v2"

	"github.com/ytget/source-editor/internal/model"
)

// ActivityLog is the append-only list of messages shown to the user. Each
// entry is mirrored to the process logger.
type ActivityLog struct {
	mu       sync.RWMutex
	entries  []model.LogEntry
	now      func() time.Time
	logger   *log.Logger
	onAppend func(model.LogEntry)
}

// NewActivityLog creates an empty log. A nil logger disables mirroring.
func NewActivityLog(logger *log.Logger, now func() time.Time) *ActivityLog {
	if now == nil {
		now = time.Now
	}
	return &ActivityLog{now: now, logger: logger}
}

// SetUpdateCallback sets the function called after every append or clear.
// The callback receives the zero entry on clear.
func (l *ActivityLog) SetUpdateCallback(callback func(model.LogEntry)) {
	l.mu.Lock()
	l.onAppend = callback
	l.mu.Unlock()
}

// Add appends an entry built from format and args.
func (l *ActivityLog) Add(severity model.Severity, format string, args ...any) model.LogEntry {
	entry := model.LogEntry{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Time:     l.now(),
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	callback := l.onAppend
	l.mu.Unlock()

	l.mirror(entry)
	if callback != nil {
		callback(entry)
	}
	return entry
}

// Info appends an info entry
func (l *ActivityLog) Info(format string, args ...any) { l.Add(model.SeverityInfo, format, args...) }

// Success appends a success entry
func (l *ActivityLog) Success(format string, args ...any) {
	l.Add(model.SeveritySuccess, format, args...)
}

// Warning appends a warning entry
func (l *ActivityLog) Warning(format string, args ...any) {
	l.Add(model.SeverityWarning, format, args...)
}

// Error appends an error entry
func (l *ActivityLog) Error(format string, args ...any) { l.Add(model.SeverityError, format, args...) }

// Entries returns a copy of all entries in order.
func (l *ActivityLog) Entries() []model.LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *ActivityLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Last returns the newest entry, if any.
func (l *ActivityLog) Last() (model.LogEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return model.LogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Clear removes all entries.
func (l *ActivityLog) Clear() {
	l.mu.Lock()
	l.entries = nil
	callback := l.onAppend
	l.mu.Unlock()

	if callback != nil {
		callback(model.LogEntry{})
	}
}

func (l *ActivityLog) mirror(entry model.LogEntry) {
	if l.logger == nil {
		return
	}
	switch entry.Severity {
	case model.SeverityError:
		l.logger.Error(entry.Message)
	case model.SeverityWarning:
		l.logger.Warn(entry.Message)
	default:
		l.logger.Info(entry.Message)
	}
}
