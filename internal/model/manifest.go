package model

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Manifest JSON keys
const (
	KeyName         = "name"
	KeyIdentifier   = "identifier"
	KeySubtitle     = "subtitle"
	KeyDescription  = "description"
	KeyWebsite      = "website"
	KeyIconURL      = "iconURL"
	KeyTintColor    = "tintColor"
	KeyFeaturedApps = "featuredApps"
	KeyApps         = "apps"
	KeyDownloadURL  = "downloadURL"
)

// Manifest is an app repository document. Keys the editor does not know are
// kept in Extra and written back on export. A known key whose value has an
// unexpected JSON type is kept in Extra as well, at its usual position on
// export; the matching field stays empty.
type Manifest struct {
	Name        string
	Identifier  string
	Subtitle    string
	Description string
	Website     string
	IconURL     string
	TintColor   string

	// FeaturedApps is nil when the document has no featuredApps key.
	FeaturedApps []json.RawMessage
	Apps         []AppEntry

	Extra map[string]json.RawMessage
}

// AppEntry is one app record of a manifest. Name is the key used to match
// attachments; it is not required to be unique. Extra works as in Manifest.
type AppEntry struct {
	Name        string
	Identifier  string
	IconURL     string
	DownloadURL string

	Extra map[string]json.RawMessage

	// Raw holds an apps element that is not an object. It is written back
	// unchanged and never matches an attachment.
	Raw json.RawMessage
}

// Keys with dedicated fields
var (
	manifestKeys = map[string]bool{
		KeyName: true, KeyIdentifier: true, KeySubtitle: true, KeyDescription: true,
		KeyWebsite: true, KeyIconURL: true, KeyTintColor: true,
		KeyFeaturedApps: true, KeyApps: true,
	}
	appKeys = map[string]bool{
		KeyName: true, KeyIdentifier: true, KeyIconURL: true, KeyDownloadURL: true,
	}
)

// EmptyManifest returns the blank repository shape: empty scalars and empty
// sequences.
func EmptyManifest() *Manifest {
	return &Manifest{
		FeaturedApps: []json.RawMessage{},
		Apps:         []AppEntry{},
	}
}

// MarshalJSON writes known keys in a fixed order followed by preserved keys.
func (m Manifest) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	scalars := []struct {
		key   string
		value string
	}{
		{KeyName, m.Name},
		{KeyIdentifier, m.Identifier},
		{KeySubtitle, m.Subtitle},
		{KeyDescription, m.Description},
		{KeyWebsite, m.Website},
		{KeyIconURL, m.IconURL},
		{KeyTintColor, m.TintColor},
	}
	for _, s := range scalars {
		if err := w.stringOrRaw(s.key, s.value, m.Extra); err != nil {
			return nil, err
		}
	}
	if m.FeaturedApps != nil {
		if err := w.field(KeyFeaturedApps, m.FeaturedApps); err != nil {
			return nil, err
		}
	} else if raw, ok := m.Extra[KeyFeaturedApps]; ok {
		if err := w.raw(KeyFeaturedApps, raw); err != nil {
			return nil, err
		}
	}
	apps := m.Apps
	if apps == nil {
		apps = []AppEntry{}
	}
	if err := w.field(KeyApps, apps); err != nil {
		return nil, err
	}
	if err := w.extras(m.Extra, manifestKeys); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// UnmarshalJSON decodes a manifest object. It does not check that apps is
// present; that is the loader's job.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*m = Manifest{}
	for key, value := range fields {
		var err error
		switch key {
		case KeyName:
			err = decodeString(key, value, &m.Name, &m.Extra)
		case KeyIdentifier:
			err = decodeString(key, value, &m.Identifier, &m.Extra)
		case KeySubtitle:
			err = decodeString(key, value, &m.Subtitle, &m.Extra)
		case KeyDescription:
			err = decodeString(key, value, &m.Description, &m.Extra)
		case KeyWebsite:
			err = decodeString(key, value, &m.Website, &m.Extra)
		case KeyIconURL:
			err = decodeString(key, value, &m.IconURL, &m.Extra)
		case KeyTintColor:
			err = decodeString(key, value, &m.TintColor, &m.Extra)
		case KeyFeaturedApps:
			if isNull(value) {
				continue
			}
			if firstByte(value) != '[' {
				err = keepRaw(&m.Extra, key, value)
				break
			}
			var items []json.RawMessage
			if err = json.Unmarshal(value, &items); err == nil {
				m.FeaturedApps, err = compactAll(items)
			}
		case KeyApps:
			if isNull(value) {
				continue
			}
			err = json.Unmarshal(value, &m.Apps)
		default:
			err = keepRaw(&m.Extra, key, value)
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes name and identifier, the attachment fields when set, and
// preserved keys.
func (a AppEntry) MarshalJSON() ([]byte, error) {
	if a.Raw != nil {
		return a.Raw, nil
	}
	w := newObjectWriter()
	if err := w.stringOrRaw(KeyName, a.Name, a.Extra); err != nil {
		return nil, err
	}
	if err := w.stringOrRaw(KeyIdentifier, a.Identifier, a.Extra); err != nil {
		return nil, err
	}
	for _, f := range []struct{ key, value string }{
		{KeyIconURL, a.IconURL},
		{KeyDownloadURL, a.DownloadURL},
	} {
		_, kept := a.Extra[f.key]
		if f.value == "" && !kept {
			continue
		}
		if err := w.stringOrRaw(f.key, f.value, a.Extra); err != nil {
			return nil, err
		}
	}
	if err := w.extras(a.Extra, appKeys); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// UnmarshalJSON decodes an app entry. Elements that are not objects are kept
// in Raw.
func (a *AppEntry) UnmarshalJSON(data []byte) error {
	if firstByte(data) != '{' {
		raw, err := compactRaw(data)
		if err != nil {
			return err
		}
		*a = AppEntry{Raw: raw}
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*a = AppEntry{}
	for key, value := range fields {
		var err error
		switch key {
		case KeyName:
			err = decodeString(key, value, &a.Name, &a.Extra)
		case KeyIdentifier:
			err = decodeString(key, value, &a.Identifier, &a.Extra)
		case KeyIconURL:
			err = decodeString(key, value, &a.IconURL, &a.Extra)
		case KeyDownloadURL:
			err = decodeString(key, value, &a.DownloadURL, &a.Extra)
		default:
			err = keepRaw(&a.Extra, key, value)
		}
		if err != nil {
			return fmt.Errorf("app field %q: %w", key, err)
		}
	}
	return nil
}

// WithAppField returns a copy of the manifest in which every app named name
// has the field for kind set to data: iconURL for images, downloadURL for
// documents. The receiver is not modified. The second result is the number of
// entries that matched; other kinds never match.
func (m *Manifest) WithAppField(name string, kind FileKind, data string) (*Manifest, int) {
	next := *m
	next.Apps = make([]AppEntry, len(m.Apps))
	copy(next.Apps, m.Apps)

	var key string
	switch kind {
	case FileKindImage:
		key = KeyIconURL
	case FileKindDocument:
		key = KeyDownloadURL
	default:
		return &next, 0
	}

	matched := 0
	for i := range next.Apps {
		app := &next.Apps[i]
		if app.Raw != nil || app.Name != name {
			continue
		}
		if key == KeyIconURL {
			app.IconURL = data
		} else {
			app.DownloadURL = data
		}
		if _, kept := app.Extra[key]; kept {
			app.Extra = withoutKey(app.Extra, key)
		}
		matched++
	}
	return &next, matched
}

// withoutKey returns a copy of extra without key.
func withoutKey(extra map[string]json.RawMessage, key string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// DuplicateNames returns app names used by more than one entry, sorted.
func (m *Manifest) DuplicateNames() []string {
	counts := make(map[string]int, len(m.Apps))
	for _, app := range m.Apps {
		if app.Raw == nil {
			counts[app.Name]++
		}
	}
	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// DisplayName returns the manifest name or a placeholder for unnamed ones.
func (m *Manifest) DisplayName() string {
	if m == nil || m.Name == "" {
		return "(unnamed)"
	}
	return m.Name
}

func compactAll(items []json.RawMessage) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(items))
	for i, item := range items {
		compact, err := compactRaw(item)
		if err != nil {
			return nil, err
		}
		out[i] = compact
	}
	return out, nil
}
