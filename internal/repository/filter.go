package repository

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ytget/source-editor/internal/model"
)

// FilterApps returns the apps of m whose name contains query, ignoring case.
// A nil manifest yields nil; an empty query yields every app.
func FilterApps(m *model.Manifest, query string) []model.AppEntry {
	if m == nil {
		return nil
	}
	if query == "" {
		out := make([]model.AppEntry, len(m.Apps))
		copy(out, m.Apps)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var out []model.AppEntry
	for _, app := range m.Apps {
		if strings.Contains(fold.String(app.Name), needle) {
			out = append(out, app)
		}
	}
	return out
}
