package platform

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ytget/source-editor/internal/model"
)

func TestEncodeDataURL(t *testing.T) {
	tests := []struct {
		input    string
		mimeType string
		expected string
	}{
		{"hello", "text/plain", "data:text/plain;base64,aGVsbG8="},
		{"", "image/png", "data:image/png;base64,"},
		{"\x00\x01", "", "data:application/octet-stream;base64,AAE="},
	}

	for _, test := range tests {
		result, err := EncodeDataURL(strings.NewReader(test.input), test.mimeType)
		if err != nil {
			t.Fatalf("EncodeDataURL(%q) failed: %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("EncodeDataURL(%q, %q) = %q, expected %q", test.input, test.mimeType, result, test.expected)
		}
		if !IsDataURL(result) {
			t.Errorf("IsDataURL(%q) = false", result)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestEncodeDataURL_ReadError(t *testing.T) {
	if _, err := EncodeDataURL(failingReader{}, "image/png"); err == nil {
		t.Error("Expected read error to be returned")
	}
}

func TestEncodeStagedFile(t *testing.T) {
	f := model.StagedFile{
		Name:     "doc.pdf",
		MIMEType: "application/pdf",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("%PDF")), nil
		},
	}

	result, err := EncodeStagedFile(f)
	if err != nil {
		t.Fatalf("EncodeStagedFile failed: %v", err)
	}
	if result != "data:application/pdf;base64,JVBERg==" {
		t.Errorf("Unexpected data URL: %s", result)
	}

	if _, err := EncodeStagedFile(model.StagedFile{Name: "empty"}); err == nil {
		t.Error("Expected error for file without opener")
	}
}

func TestIsDataURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"data:image/png;base64,AAAA", true},
		{"https://example.com/icon.png", false},
		{"data:text/plain,hello", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsDataURL(test.input); got != test.expected {
			t.Errorf("IsDataURL(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}
