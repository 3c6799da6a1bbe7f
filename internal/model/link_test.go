package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestLink_UnmarshalIDForms(t *testing.T) {
	tests := []struct {
		input    string
		expected Link
	}{
		{`{"id":"0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b","url":"example.com"}`, Link{ID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", URL: "example.com"}},
		{`{"id":1718000000000,"url":"legacy.org"}`, Link{ID: "1718000000000", URL: "legacy.org"}},
		{`{"url":"no-id.net"}`, Link{URL: "no-id.net"}},
	}

	for _, test := range tests {
		var link Link
		if err := json.Unmarshal([]byte(test.input), &link); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", test.input, err)
		}
		if link != test.expected {
			t.Errorf("Unmarshal(%s) = %+v, expected %+v", test.input, link, test.expected)
		}
	}
}

func TestLogEntry_String(t *testing.T) {
	entry := LogEntry{
		Severity: SeveritySuccess,
		Message:  "Repository cleared",
		Time:     time.Date(2024, 5, 1, 9, 3, 7, 0, time.UTC),
	}
	if got := entry.String(); got != "[09:03:07] Repository cleared" {
		t.Errorf("String() = %q", got)
	}
	if entry.Severity.IsProblem() {
		t.Error("success should not be a problem severity")
	}
	if !SeverityWarning.IsProblem() || !SeverityError.IsProblem() {
		t.Error("warning and error should be problem severities")
	}
}
