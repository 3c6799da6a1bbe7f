package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"charm.land/log/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/source-editor/internal/model"
	"github.com/ytget/source-editor/internal/platform"
)

// ResetPrompt is shown before the manifest is cleared
const ResetPrompt = "Are you sure you want to clear the loaded repository? This will remove all app data."

// EncodeFunc converts a staged file to an inline data string.
type EncodeFunc func(ctx context.Context, f model.StagedFile) (string, error)

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer func(message string) bool

// Answer returns a Confirmer that always answers ok. GUI dialogs collect the
// answer asynchronously and hand it over this way.
func Answer(ok bool) Confirmer {
	return func(string) bool { return ok }
}

// AttachReport summarizes one Attach call.
type AttachReport struct {
	App      string
	Attached int     // files whose data was written to the manifest
	Skipped  int     // files of a kind that is never attached
	Failed   int     // files that could not be converted
	Matched  int     // app entries updated, summed over attached files
	Errors   []error // one per failed file, each wrapping ErrFileRead
}

// Selection names what a picker chose, as it appears in the activity log.
type Selection string

const (
	SelectionFiles  Selection = "files"
	SelectionPhotos Selection = "photos"
)

// Session is the state of one repository editor view.
type Session struct {
	mu         sync.Mutex
	manifest   *model.Manifest
	staged     []model.StagedFile
	generation uint64 // bumped whenever staged is replaced
	labeling   bool
	attaching  bool

	log       *ActivityLog
	clipboard platform.Clipboard
	encode    EncodeFunc
	newEmpty  func() *model.Manifest
	onUpdate  func()
}

// Option configures a Session
type Option func(*sessionConfig)

type sessionConfig struct {
	clipboard platform.Clipboard
	encode    EncodeFunc
	newEmpty  func() *model.Manifest
	logger    *log.Logger
	now       func() time.Time
}

// WithClipboard sets the clipboard used by CopyToClipboard.
func WithClipboard(c platform.Clipboard) Option {
	return func(cfg *sessionConfig) { cfg.clipboard = c }
}

// WithEncoder replaces the staged file converter.
func WithEncoder(encode EncodeFunc) Option {
	return func(cfg *sessionConfig) { cfg.encode = encode }
}

// WithDefaultManifest sets the shape exported when no manifest is loaded and
// installed by Reset.
func WithDefaultManifest(newEmpty func() *model.Manifest) Option {
	return func(cfg *sessionConfig) { cfg.newEmpty = newEmpty }
}

// WithLogger mirrors activity entries to logger.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *sessionConfig) { cfg.logger = logger }
}

// WithClock sets the time source for log entries.
func WithClock(now func() time.Time) Option {
	return func(cfg *sessionConfig) { cfg.now = now }
}

// NewSession creates a session with no manifest loaded.
func NewSession(opts ...Option) *Session {
	cfg := sessionConfig{
		clipboard: platform.SystemClipboard{},
		encode:    encodeStagedFile,
		newEmpty:  model.EmptyManifest,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		log:       NewActivityLog(cfg.logger, cfg.now),
		clipboard: cfg.clipboard,
		encode:    cfg.encode,
		newEmpty:  cfg.newEmpty,
	}
}

func encodeStagedFile(_ context.Context, f model.StagedFile) (string, error) {
	return platform.EncodeStagedFile(f)
}

// SetUpdateCallback sets the function called after the manifest, staged files
// or labeling mode change.
func (s *Session) SetUpdateCallback(callback func()) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// Log returns the activity log
func (s *Session) Log() *ActivityLog {
	return s.log
}

// Manifest returns the current manifest, or nil when none is loaded. The
// returned value is replaced, never modified, by the session; callers must
// not modify it either.
func (s *Session) Manifest() *model.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manifest
}

// HasManifest reports whether a manifest is loaded
func (s *Session) HasManifest() bool {
	return s.Manifest() != nil
}

// StagedFiles returns a copy of the staged files
func (s *Session) StagedFiles() []model.StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.StagedFile, len(s.staged))
	copy(out, s.staged)
	return out
}

// Labeling reports whether the session waits for an app choice
func (s *Session) Labeling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labeling
}

// Attaching reports whether an Attach call is converting files
func (s *Session) Attaching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attaching
}

// Load replaces the manifest with the one parsed from data. On failure the
// current manifest is kept and the error matches ErrMalformedManifest.
func (s *Session) Load(data []byte) error {
	m, err := ParseManifest(data)
	if err != nil {
		s.log.Error("Failed to parse JSON: %s", reason(err))
		return err
	}

	s.mu.Lock()
	s.manifest = m
	s.mu.Unlock()

	s.log.Success("Loaded JSON repository: %s with %d apps", m.Name, len(m.Apps))
	if dups := m.DuplicateNames(); len(dups) > 0 {
		s.log.Warning("Duplicate app names, attachments will update every match: %s", strings.Join(dups, ", "))
	}
	s.notify()
	return nil
}

// LoadFrom reads r to the end and loads it.
func (s *Session) LoadFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		s.log.Error("Failed to read JSON file: %v", err)
		return fmt.Errorf("read manifest: %w", err)
	}
	return s.Load(data)
}

// Export serializes the current manifest, or the default empty one when none
// is loaded.
func (s *Session) Export() ([]byte, error) {
	return Serialize(s.exportable())
}

// ExportFileName returns the file name used for downloads
func (s *Session) ExportFileName() string {
	return ExportFileName(s.exportable())
}

// ExportTo writes the exported JSON to w.
func (s *Session) ExportTo(w io.Writer) error {
	data, err := s.Export()
	if err == nil {
		_, err = w.Write(data)
	}
	if err != nil {
		s.log.Error("Failed to export repository JSON: %v", err)
		return fmt.Errorf("export manifest: %w", err)
	}
	s.log.Success("Repository JSON downloaded")
	return nil
}

// CopyToClipboard copies the exported JSON to the clipboard. Failures are
// logged, never returned.
func (s *Session) CopyToClipboard() {
	data, err := s.Export()
	if err == nil {
		if werr := s.clipboard.WriteText(string(data)); werr != nil {
			err = fmt.Errorf("%w: %v", ErrClipboardDenied, werr)
		}
	}
	if err != nil {
		s.log.Error("Failed to copy JSON to clipboard")
		return
	}
	s.log.Success("Repository JSON copied to clipboard")
}

// Stage replaces the staged files. A non-empty selection enters labeling mode.
func (s *Session) Stage(files []model.StagedFile) {
	s.StageAs(SelectionFiles, files)
}

// StageAs is Stage with the selection named as kind in the log. An empty
// selection is not logged.
func (s *Session) StageAs(kind Selection, files []model.StagedFile) {
	s.mu.Lock()
	s.staged = append([]model.StagedFile(nil), files...)
	s.generation++
	s.labeling = len(files) > 0
	s.mu.Unlock()

	if len(files) > 0 {
		s.log.Success("Selected %d %s: %s", len(files), kind, strings.Join(model.StagedFileNames(files), ", "))
	}
	s.notify()
}

// CancelStaging drops the staged files and leaves labeling mode.
func (s *Session) CancelStaging() {
	s.mu.Lock()
	s.staged = nil
	s.generation++
	s.labeling = false
	s.mu.Unlock()

	s.notify()
}

type conversion struct {
	file model.StagedFile
	kind model.FileKind
	data string
	err  error
}

// Attach converts every staged image and document and writes the results to
// the apps named appName: images to iconURL, documents to downloadURL. All
// conversions finish before the manifest changes; results are applied in
// staging order. The processed files are cleared afterwards unless a new
// selection was staged meanwhile. Only ErrNoFilesStaged and
// ErrAttachInProgress are returned as errors; per-file failures are logged and
// listed in the report.
func (s *Session) Attach(ctx context.Context, appName string) (AttachReport, error) {
	report := AttachReport{App: appName}

	s.mu.Lock()
	busy := s.attaching
	files := append([]model.StagedFile(nil), s.staged...)
	gen := s.generation
	if !busy && len(files) > 0 {
		s.attaching = true
	}
	s.mu.Unlock()

	if busy {
		s.log.Warning("Still processing files, %q was not updated", appName)
		return report, ErrAttachInProgress
	}
	s.log.Info("App clicked: %q, selected files: %d", appName, len(files))
	if len(files) == 0 {
		s.log.Warning("No files selected to process.")
		return report, ErrNoFilesStaged
	}
	s.log.Info("Processing %d files for app: %q", len(files), appName)

	results := make([]conversion, len(files))
	var g errgroup.Group
	for i, f := range files {
		kind := f.Kind()
		results[i] = conversion{file: f, kind: kind}
		s.log.Info("Processing file: %s (type: %s)", f.Name, kind)
		if !kind.Attachable() {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].data, results[i].err = s.encode(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	type outcome struct {
		conversion
		matched int
	}
	outcomes := make([]outcome, 0, len(results))

	s.mu.Lock()
	for _, r := range results {
		o := outcome{conversion: r}
		if r.kind.Attachable() && r.err == nil && s.manifest != nil {
			s.manifest, o.matched = s.manifest.WithAppField(appName, r.kind, r.data)
		}
		outcomes = append(outcomes, o)
	}
	hasManifest := s.manifest != nil
	if s.generation == gen {
		s.staged = nil
		s.labeling = false
	}
	s.attaching = false
	s.mu.Unlock()

	for _, o := range outcomes {
		switch {
		case !o.kind.Attachable():
			report.Skipped++
		case o.err != nil:
			err := fmt.Errorf("%w: %s: %v", ErrFileRead, o.file.Name, o.err)
			report.Failed++
			report.Errors = append(report.Errors, err)
			s.log.Error("Error processing file %s: %v", o.file.Name, o.err)
		case !hasManifest:
			s.log.Warning("No repository loaded, %s was not attached", o.file.Name)
		default:
			report.Attached++
			report.Matched += o.matched
			if o.kind == model.FileKindImage {
				s.log.Success("Image %s processed for %s", o.file.Name, appName)
			} else {
				s.log.Success("Document %s processed for %s", o.file.Name, appName)
			}
		}
	}
	s.log.Success("All selected files processed for %s", appName)
	s.notify()
	return report, nil
}

// Reset replaces the manifest with the empty default once confirm agrees.
// It reports whether the reset happened.
func (s *Session) Reset(confirm Confirmer) bool {
	if confirm == nil || !confirm(ResetPrompt) {
		return false
	}

	s.mu.Lock()
	s.manifest = s.newEmpty()
	s.mu.Unlock()

	s.log.Info("Repository cleared")
	s.notify()
	return true
}

// FilteredApps returns the apps matching query, see FilterApps.
func (s *Session) FilteredApps(query string) []model.AppEntry {
	return FilterApps(s.Manifest(), query)
}

func (s *Session) exportable() *model.Manifest {
	if m := s.Manifest(); m != nil {
		return m
	}
	return s.newEmpty()
}

func (s *Session) notify() {
	s.mu.Lock()
	callback := s.onUpdate
	s.mu.Unlock()
	if callback != nil {
		callback()
	}
}

// reason returns the user-facing part of a load error.
func reason(err error) string {
	var me *ManifestError
	if errors.As(err, &me) {
		return me.Reason
	}
	return err.Error()
}
