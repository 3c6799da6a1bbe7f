package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/source-editor/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage     = "app_language"
	KeyLastDir      = "last_directory"
	KeyShowLogs     = "show_activity_log"
	KeyLogLevel     = "log_level"
	KeyRevealExport = "reveal_after_export"
)

// Default values
const (
	DefaultLanguage     = "system"
	DefaultShowLogs     = true
	DefaultLogLevel     = "info"
	DefaultRevealExport = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLastDirectory returns the directory last used in a file dialog, or the
// default export directory
func (s *Settings) GetLastDirectory() string {
	dir := s.app.Preferences().String(KeyLastDir)
	if dir == "" {
		return platform.DefaultExportDir()
	}
	return dir
}

// SetLastDirectory remembers the directory last used in a file dialog
func (s *Settings) SetLastDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastDir, dir)
}

// GetShowLogs returns whether the activity log panel is expanded
func (s *Settings) GetShowLogs() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowLogs, DefaultShowLogs)
}

// SetShowLogs sets whether the activity log panel is expanded
func (s *Settings) SetShowLogs(show bool) {
	s.app.Preferences().SetBool(KeyShowLogs, show)
}

// GetRevealAfterExport returns whether exported files are shown in the file manager
func (s *Settings) GetRevealAfterExport() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealExport, DefaultRevealExport)
}

// SetRevealAfterExport sets whether exported files are shown in the file manager
func (s *Settings) SetRevealAfterExport(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealExport, reveal)
}

// GetLogLevel returns the process log level name
func (s *Settings) GetLogLevel() string {
	return s.app.Preferences().StringWithFallback(KeyLogLevel, DefaultLogLevel)
}

// SetLogLevel sets the process log level name
func (s *Settings) SetLogLevel(level string) {
	if level == "" {
		level = DefaultLogLevel
	}
	s.app.Preferences().SetString(KeyLogLevel, level)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLogLevelOptions returns available log level names
func (s *Settings) GetLogLevelOptions() []string {
	return []string{"debug", "info", "warn", "error"}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// LinkStore returns the preferences-backed store for the link list
func (s *Settings) LinkStore() *PreferenceStore {
	return NewPreferenceStore(s.app.Preferences())
}
