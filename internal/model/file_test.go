package model

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		mimeType string
		expected FileKind
	}{
		{"image/png", FileKindImage},
		{"image/svg+xml", FileKindImage},
		{"IMAGE/JPEG", FileKindImage},
		{"application/pdf", FileKindDocument},
		{"text/plain", FileKindDocument},
		{"text/plain; charset=utf-8", FileKindDocument},
		{"application/msword", FileKindDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", FileKindDocument},
		{"application/zip", FileKindOther},
		{"text/html", FileKindOther},
		{"", FileKindOther},
	}

	for _, test := range tests {
		result := Classify(test.mimeType)
		if result != test.expected {
			t.Errorf("Classify(%q) = %s, expected %s", test.mimeType, result, test.expected)
		}
	}
}

func TestFileKind_Attachable(t *testing.T) {
	if !FileKindImage.Attachable() || !FileKindDocument.Attachable() {
		t.Error("Images and documents should be attachable")
	}
	if FileKindOther.Attachable() {
		t.Error("Other files should not be attachable")
	}
}

func TestStagedFileNames(t *testing.T) {
	files := []StagedFile{{Name: "a.png"}, {Name: "b.pdf"}}
	names := StagedFileNames(files)
	if len(names) != 2 || names[0] != "a.png" || names[1] != "b.pdf" {
		t.Errorf("Unexpected names: %v", names)
	}
}
