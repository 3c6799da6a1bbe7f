package config

import "fyne.io/fyne/v2"

// PreferenceStore adapts Fyne preferences to a string key-value store. It is
// the desktop counterpart of the browser's local storage.
type PreferenceStore struct {
	prefs fyne.Preferences
}

// NewPreferenceStore wraps prefs
func NewPreferenceStore(prefs fyne.Preferences) *PreferenceStore {
	return &PreferenceStore{prefs: prefs}
}

// Get returns the value for key, or "" when absent
func (p *PreferenceStore) Get(key string) (string, error) {
	return p.prefs.String(key), nil
}

// Set stores value under key
func (p *PreferenceStore) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}
