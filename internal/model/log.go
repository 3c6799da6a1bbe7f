package model

import (
	"fmt"
	"time"
)

// Severity tags an activity log entry
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogTimeFormat is the timestamp layout shown next to log messages
const LogTimeFormat = "15:04:05"

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// IsProblem returns true for warnings and errors
func (s Severity) IsProblem() bool {
	return s == SeverityWarning || s == SeverityError
}

// LogEntry is one line of the activity log. Entries are never modified.
type LogEntry struct {
	Severity Severity
	Message  string
	Time     time.Time
}

// String formats the entry as "[hh:mm:ss] message".
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format(LogTimeFormat), e.Message)
}
