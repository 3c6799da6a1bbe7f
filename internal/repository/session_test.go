package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/source-editor/internal/model"
	"github.com/ytget/source-editor/internal/platform"
)

const demoManifest = `{"name":"Demo","apps":[{"name":"A","identifier":"id1"}]}`

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return NewSession(opts...)
}

func memFile(name, mimeType, content string) model.StagedFile {
	return model.StagedFile{
		ID:       name,
		Name:     name,
		Size:     int64(len(content)),
		MIMEType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func lastEntry(t *testing.T, s *Session) model.LogEntry {
	t.Helper()
	entry, ok := s.Log().Last()
	if !ok {
		t.Fatal("Expected at least one log entry")
	}
	return entry
}

func TestLoad_ValidManifest(t *testing.T) {
	tests := []struct {
		input string
		apps  int
	}{
		{`{"name":"Empty","apps":[]}`, 0},
		{demoManifest, 1},
		{`{"name":"Three","apps":[{"name":"A"},{"name":"B"},{"name":"C"}]}`, 3},
		{`{"name":123,"apps":[]}`, 0},
		{`{"apps":[{"name":"A","identifier":42}]}`, 1},
		{`{"featuredApps":"x","apps":[]}`, 0},
	}

	for _, test := range tests {
		s := newTestSession(t)
		if err := s.Load([]byte(test.input)); err != nil {
			t.Fatalf("Load(%s) failed: %v", test.input, err)
		}
		if got := len(s.Manifest().Apps); got != test.apps {
			t.Errorf("Expected %d apps, got %d", test.apps, got)
		}
		entry := lastEntry(t, s)
		if entry.Severity != model.SeveritySuccess {
			t.Errorf("Expected success entry, got %s", entry.Severity)
		}
		if !strings.Contains(entry.Message, fmt.Sprintf("with %d apps", test.apps)) {
			t.Errorf("Expected log to mention %d apps, got %q", test.apps, entry.Message)
		}
	}
}

func TestLoad_InvalidKeepsManifest(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"name":"NoApps"}`,
		`{"apps":{}}`,
		`{"apps":"nope"}`,
		`[]`,
		`not json at all`,
		`{"apps":[`,
	}

	for _, input := range inputs {
		s := newTestSession(t)
		if err := s.Load([]byte(demoManifest)); err != nil {
			t.Fatalf("Initial load failed: %v", err)
		}
		before := s.Manifest()
		count := s.Log().Len()

		err := s.Load([]byte(input))
		if !errors.Is(err, ErrMalformedManifest) {
			t.Errorf("Load(%s) error = %v, expected ErrMalformedManifest", input, err)
		}
		if s.Manifest() != before {
			t.Errorf("Load(%s) replaced the manifest", input)
		}
		if s.Log().Len() != count+1 {
			t.Errorf("Load(%s) should append exactly one entry", input)
		}
		entry := lastEntry(t, s)
		if entry.Severity != model.SeverityError || !strings.HasPrefix(entry.Message, "Failed to parse JSON: ") {
			t.Errorf("Unexpected log entry for %s: %+v", input, entry)
		}
	}
}

func TestLoad_MissingAppsReason(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(`{"name":"x"}`))
	if got := lastEntry(t, s).Message; got != "Failed to parse JSON: "+ReasonMissingApps {
		t.Errorf("Unexpected message: %q", got)
	}
}

func TestLoad_WarnsOnDuplicateNames(t *testing.T) {
	s := newTestSession(t)
	if err := s.Load([]byte(`{"name":"D","apps":[{"name":"A"},{"name":"A"}]}`)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entry := lastEntry(t, s)
	if entry.Severity != model.SeverityWarning || !strings.Contains(entry.Message, "A") {
		t.Errorf("Expected duplicate warning, got %+v", entry)
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	s := newTestSession(t)
	if err := s.LoadFrom(iotestErrReader{}); err == nil {
		t.Error("Expected read error")
	}
	if s.HasManifest() {
		t.Error("Manifest should stay unloaded")
	}
}

type iotestErrReader struct{}

func (iotestErrReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestExport_RoundTrip(t *testing.T) {
	s := newTestSession(t)
	input := `{"name":"Demo","identifier":"com.demo","tintColor":"#ff0000","extraKey":{"b":1,"a":[true]},
		"apps":[{"name":"A","identifier":"id1","version":"1.2"},{"name":"B","identifier":"id2","downloadURL":"x"}]}`
	if err := s.Load([]byte(input)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"Demo\"") {
		t.Errorf("Expected 2-space indented output, got:\n%s", data)
	}

	back, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if !reflect.DeepEqual(s.Manifest(), back) {
		t.Errorf("Round trip mismatch\nwant %#v\ngot  %#v", s.Manifest(), back)
	}

	again, err := Serialize(back)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("Serialization is not stable:\n%s\n---\n%s", data, again)
	}
}

func TestExport_NoManifestUsesDefault(t *testing.T) {
	s := newTestSession(t, WithDefaultManifest(func() *model.Manifest {
		m := model.EmptyManifest()
		m.Name = "Fallback"
		return m
	}))

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("Default export should parse: %v", err)
	}
	if m.Name != "Fallback" || len(m.Apps) != 0 {
		t.Errorf("Unexpected default manifest: %+v", m)
	}
	if s.ExportFileName() != "Fallback.json" {
		t.Errorf("Unexpected file name %s", s.ExportFileName())
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		manifest *model.Manifest
		expected string
	}{
		{nil, "repository.json"},
		{&model.Manifest{}, "repository.json"},
		{&model.Manifest{Name: "  "}, "repository.json"},
		{&model.Manifest{Name: "Demo"}, "Demo.json"},
		{&model.Manifest{Name: "a/b\\c:d"}, "a-b-c-d.json"},
	}

	for _, test := range tests {
		if got := ExportFileName(test.manifest); got != test.expected {
			t.Errorf("ExportFileName(%+v) = %s, expected %s", test.manifest, got, test.expected)
		}
	}
}

func TestExportTo(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(demoManifest))

	var buf bytes.Buffer
	if err := s.ExportTo(&buf); err != nil {
		t.Fatalf("ExportTo failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"Demo"`) {
		t.Errorf("Unexpected output: %s", buf.String())
	}
	if got := lastEntry(t, s).Message; got != "Repository JSON downloaded" {
		t.Errorf("Unexpected log message %q", got)
	}
}

func TestCopyToClipboard(t *testing.T) {
	var copied string
	ok := platform.ClipboardFunc(func(text string) error {
		copied = text
		return nil
	})
	s := newTestSession(t, WithClipboard(ok))
	_ = s.Load([]byte(demoManifest))

	s.CopyToClipboard()
	if !strings.Contains(copied, `"Demo"`) {
		t.Errorf("Clipboard did not receive the manifest: %q", copied)
	}
	if entry := lastEntry(t, s); entry.Severity != model.SeveritySuccess {
		t.Errorf("Expected success entry, got %+v", entry)
	}

	denied := platform.ClipboardFunc(func(string) error { return errors.New("denied") })
	s = newTestSession(t, WithClipboard(denied))
	s.CopyToClipboard()
	entry := lastEntry(t, s)
	if entry.Severity != model.SeverityError || entry.Message != "Failed to copy JSON to clipboard" {
		t.Errorf("Expected clipboard error entry, got %+v", entry)
	}
}

func TestStageAndCancel(t *testing.T) {
	s := newTestSession(t)
	updates := 0
	s.SetUpdateCallback(func() { updates++ })

	s.Stage([]model.StagedFile{memFile("a.png", "image/png", "x")})
	if !s.Labeling() || len(s.StagedFiles()) != 1 {
		t.Fatal("Staging a file should enter labeling mode")
	}

	s.CancelStaging()
	if s.Labeling() || len(s.StagedFiles()) != 0 {
		t.Error("Cancel should clear staged files and leave labeling mode")
	}

	s.Stage(nil)
	if s.Labeling() {
		t.Error("An empty selection should not enter labeling mode")
	}
	if updates != 3 {
		t.Errorf("Expected 3 update callbacks, got %d", updates)
	}
}

func TestStageAs_LogsSelection(t *testing.T) {
	tests := []struct {
		kind     Selection
		files    []model.StagedFile
		expected string
	}{
		{SelectionPhotos, []model.StagedFile{memFile("a.png", "image/png", "x"), memFile("b.jpg", "image/jpeg", "y")}, "Selected 2 photos: a.png, b.jpg"},
		{SelectionFiles, []model.StagedFile{memFile("c.pdf", "application/pdf", "z")}, "Selected 1 files: c.pdf"},
	}

	for _, test := range tests {
		s := newTestSession(t)
		s.StageAs(test.kind, test.files)
		entry := lastEntry(t, s)
		if entry.Message != test.expected || entry.Severity != model.SeveritySuccess {
			t.Errorf("StageAs(%s) logged %s %q, expected success %q", test.kind, entry.Severity, entry.Message, test.expected)
		}
	}
}

func TestStage_EmptySelectionIsNotLogged(t *testing.T) {
	s := newTestSession(t)
	s.Stage([]model.StagedFile{memFile("a.png", "image/png", "x")})
	before := len(s.Log().Entries())

	s.Stage(nil)
	if got := len(s.Log().Entries()); got != before {
		t.Errorf("Empty selection added %d log entries", got-before)
	}
	if s.Labeling() || len(s.StagedFiles()) != 0 {
		t.Error("Empty selection should still replace the staged files")
	}
}

func TestAttach_ImageScenario(t *testing.T) {
	s := newTestSession(t)
	if err := s.Load([]byte(demoManifest)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s.Stage([]model.StagedFile{memFile("icon.png", "image/png", "PNGDATA")})

	report, err := s.Attach(context.Background(), "A")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if report.Attached != 1 || report.Matched != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}

	app := s.Manifest().Apps[0]
	if !platform.IsDataURL(app.IconURL) || !strings.HasPrefix(app.IconURL, "data:image/png;base64,") {
		t.Errorf("Expected image data URL, got %q", app.IconURL)
	}
	if app.DownloadURL != "" {
		t.Errorf("downloadURL should be untouched, got %q", app.DownloadURL)
	}
	if app.Identifier != "id1" {
		t.Errorf("identifier should be preserved, got %q", app.Identifier)
	}
	if s.Labeling() || len(s.StagedFiles()) != 0 {
		t.Error("Attach should clear staging")
	}
}

func TestAttach_Document(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(`{"name":"Demo","apps":[{"name":"A","identifier":"id1","iconURL":"keep"}]}`))
	s.Stage([]model.StagedFile{memFile("manual.pdf", "application/pdf", "%PDF")})

	if _, err := s.Attach(context.Background(), "A"); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	app := s.Manifest().Apps[0]
	if app.DownloadURL != "data:application/pdf;base64,JVBERg==" {
		t.Errorf("Unexpected downloadURL %q", app.DownloadURL)
	}
	if app.IconURL != "keep" {
		t.Errorf("iconURL should be untouched, got %q", app.IconURL)
	}
}

func TestAttach_UnknownAppIsNoop(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(demoManifest))
	before, _ := s.Export()
	s.Stage([]model.StagedFile{memFile("icon.png", "image/png", "x")})

	report, err := s.Attach(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("Attach should not fail for an unknown app: %v", err)
	}
	if report.Matched != 0 {
		t.Errorf("Expected no matches, got %d", report.Matched)
	}
	after, _ := s.Export()
	if !bytes.Equal(before, after) {
		t.Errorf("Manifest changed:\n%s\n---\n%s", before, after)
	}
	for _, entry := range s.Log().Entries() {
		if entry.Severity == model.SeverityError {
			t.Errorf("Unexpected error entry: %s", entry.Message)
		}
	}
}

func TestAttach_NoStagedFiles(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(demoManifest))
	before := s.Manifest()

	_, err := s.Attach(context.Background(), "A")
	if !errors.Is(err, ErrNoFilesStaged) {
		t.Errorf("Expected ErrNoFilesStaged, got %v", err)
	}
	if s.Manifest() != before {
		t.Error("Manifest should not change")
	}
	entry := lastEntry(t, s)
	if entry.Severity != model.SeverityWarning || entry.Message != "No files selected to process." {
		t.Errorf("Unexpected entry %+v", entry)
	}
}

func TestAttach_SkipsOtherAndContinuesAfterFailure(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(demoManifest))

	broken := memFile("broken.pdf", "application/pdf", "")
	broken.Open = func() (io.ReadCloser, error) { return nil, errors.New("permission denied") }

	s.Stage([]model.StagedFile{
		memFile("archive.zip", "application/zip", "PK"),
		broken,
		memFile("icon.png", "image/png", "img"),
	})

	report, err := s.Attach(context.Background(), "A")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if report.Skipped != 1 || report.Failed != 1 || report.Attached != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}
	if len(report.Errors) != 1 || !errors.Is(report.Errors[0], ErrFileRead) {
		t.Errorf("Expected one ErrFileRead, got %v", report.Errors)
	}

	app := s.Manifest().Apps[0]
	if app.IconURL == "" {
		t.Error("The image after the failed file should still be attached")
	}
	if app.DownloadURL != "" {
		t.Error("The failed document must not be attached")
	}
}

func TestAttach_WaitsForAllConversionsAndAppliesInOrder(t *testing.T) {
	var finished atomic.Int32
	encoder := func(_ context.Context, f model.StagedFile) (string, error) {
		if f.Name == "first.png" {
			time.Sleep(50 * time.Millisecond)
		}
		finished.Add(1)
		return "data:image/png;base64," + f.Name, nil
	}

	s := newTestSession(t, WithEncoder(encoder))
	_ = s.Load([]byte(demoManifest))
	s.Stage([]model.StagedFile{
		memFile("first.png", "image/png", ""),
		memFile("second.png", "image/png", ""),
	})

	observed := -1
	s.SetUpdateCallback(func() {
		if !s.Labeling() && observed < 0 {
			observed = int(finished.Load())
		}
	})

	if _, err := s.Attach(context.Background(), "A"); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if observed != 2 {
		t.Errorf("Staging was cleared after %d of 2 conversions", observed)
	}
	if got := s.Manifest().Apps[0].IconURL; got != "data:image/png;base64,second.png" {
		t.Errorf("Expected the last staged image to win, got %q", got)
	}
}

// blockingEncoder returns an encoder that waits for release and a channel that
// receives once per call when the call starts.
func blockingEncoder(release <-chan struct{}) (EncodeFunc, <-chan string) {
	started := make(chan string, 8)
	return func(_ context.Context, f model.StagedFile) (string, error) {
		started <- f.Name
		<-release
		return "data:" + f.MIMEType + ";base64," + f.Name, nil
	}, started
}

func TestAttach_KeepsSelectionStagedDuringConversion(t *testing.T) {
	release := make(chan struct{})
	encoder, started := blockingEncoder(release)
	s := newTestSession(t, WithEncoder(encoder))
	_ = s.Load([]byte(demoManifest))
	s.Stage([]model.StagedFile{memFile("a.png", "image/png", "")})

	done := make(chan AttachReport, 1)
	go func() {
		report, _ := s.Attach(context.Background(), "A")
		done <- report
	}()
	<-started

	if !s.Attaching() {
		t.Error("Attaching() = false during conversion, expected true")
	}
	next := memFile("b.pdf", "application/pdf", "")
	s.Stage([]model.StagedFile{next})
	close(release)
	report := <-done

	if report.Attached != 1 {
		t.Errorf("Expected 1 attached file, got %+v", report)
	}
	if got := s.Manifest().Apps[0].IconURL; got != "data:image/png;base64,a.png" {
		t.Errorf("Expected a.png to be attached, got %q", got)
	}
	if got := s.Manifest().Apps[0].DownloadURL; got != "" {
		t.Errorf("b.pdf must not be attached by the earlier call, got %q", got)
	}
	staged := s.StagedFiles()
	if len(staged) != 1 || staged[0].Name != "b.pdf" {
		t.Errorf("Expected b.pdf to stay staged, got %v", model.StagedFileNames(staged))
	}
	if !s.Labeling() {
		t.Error("Labeling() = false, expected the new selection to keep labeling mode")
	}
	if s.Attaching() {
		t.Error("Attaching() = true after Attach returned")
	}
}

func TestAttach_RejectsConcurrentCall(t *testing.T) {
	release := make(chan struct{})
	encoder, started := blockingEncoder(release)
	s := newTestSession(t, WithEncoder(encoder))
	_ = s.Load([]byte(demoManifest))
	s.Stage([]model.StagedFile{memFile("a.png", "image/png", "")})

	done := make(chan error, 1)
	go func() {
		_, err := s.Attach(context.Background(), "A")
		done <- err
	}()
	<-started

	if _, err := s.Attach(context.Background(), "A"); !errors.Is(err, ErrAttachInProgress) {
		t.Errorf("Attach() error = %v, expected %v", err, ErrAttachInProgress)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("First Attach failed: %v", err)
	}

	if _, err := s.Attach(context.Background(), "A"); !errors.Is(err, ErrNoFilesStaged) {
		t.Errorf("Attach() after clearing error = %v, expected %v", err, ErrNoFilesStaged)
	}
}

func TestAttach_CanceledContext(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(demoManifest))
	s.Stage([]model.StagedFile{memFile("icon.png", "image/png", "x")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Attach(ctx, "A")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if report.Failed != 1 || s.Manifest().Apps[0].IconURL != "" {
		t.Errorf("Canceled conversion must not attach: %+v", report)
	}
}

func TestAttach_NoManifestLoaded(t *testing.T) {
	s := newTestSession(t)
	s.Stage([]model.StagedFile{memFile("icon.png", "image/png", "x")})

	report, err := s.Attach(context.Background(), "A")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if report.Attached != 0 || s.HasManifest() {
		t.Errorf("Nothing should be attached without a manifest: %+v", report)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	_ = s.Load([]byte(demoManifest))
	before := s.Manifest()
	count := s.Log().Len()

	var asked string
	declined := s.Reset(func(message string) bool {
		asked = message
		return false
	})
	if declined || s.Manifest() != before || s.Log().Len() != count {
		t.Error("Declined reset must not change state or log")
	}
	if asked != ResetPrompt {
		t.Errorf("Unexpected prompt %q", asked)
	}

	if !s.Reset(Answer(true)) {
		t.Fatal("Confirmed reset should report true")
	}
	m := s.Manifest()
	if m.Name != "" || m.Website != "" || m.TintColor != "" || len(m.Apps) != 0 || m.Apps == nil {
		t.Errorf("Expected empty manifest, got %+v", m)
	}
	entry := lastEntry(t, s)
	if entry.Severity != model.SeverityInfo || entry.Message != "Repository cleared" {
		t.Errorf("Unexpected entry %+v", entry)
	}
	if s.ExportFileName() != "repository.json" {
		t.Errorf("Unexpected export name %s", s.ExportFileName())
	}
}
