package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/source-editor/internal/links"
)

func newTestLinksView(t *testing.T, store links.Store) (*LinksView, *links.Manager) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	manager := links.NewManager(store)
	return NewLinksView(app, manager, NewLocalization(), nil), manager
}

func TestLinksView_Add(t *testing.T) {
	view, manager := newTestLinksView(t, links.NewMemoryStore())

	view.entry.SetText("  example.com  ")
	test.Tap(view.addBtn)

	if manager.Len() != 1 {
		t.Fatalf("Expected 1 link, got %d", manager.Len())
	}
	if got := manager.Links()[0].URL; got != "example.com" {
		t.Errorf("URL = %v, expected %v", got, "example.com")
	}
	if view.entry.Text != "" {
		t.Errorf("Expected entry to be cleared, got %q", view.entry.Text)
	}
	if len(view.links) != 1 {
		t.Errorf("Expected view to list 1 link, got %d", len(view.links))
	}
}

func TestLinksView_AddBlankIsIgnored(t *testing.T) {
	view, manager := newTestLinksView(t, links.NewMemoryStore())

	view.entry.SetText("   ")
	test.Tap(view.addBtn)

	if manager.Len() != 0 {
		t.Errorf("Expected no links, got %d", manager.Len())
	}
	if view.count.Text != view.localization.GetText(KeyNoLinks) {
		t.Errorf("Count label = %q, expected empty-list text", view.count.Text)
	}
}

func TestLinksView_Delete(t *testing.T) {
	view, manager := newTestLinksView(t, links.NewMemoryStore())

	for _, u := range []string{"a.example", "b.example"} {
		view.entry.SetText(u)
		view.OnAdd()
	}
	first := manager.Links()[0]

	view.OnDelete(first.ID)

	if manager.Len() != 1 {
		t.Fatalf("Expected 1 link after delete, got %d", manager.Len())
	}
	if got := manager.Links()[0].URL; got != "b.example" {
		t.Errorf("Remaining URL = %v, expected %v", got, "b.example")
	}
}

func TestLinksView_CorruptStoreShowsStatus(t *testing.T) {
	store := links.NewMemoryStore()
	if err := store.Set(links.StorageKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	view, manager := newTestLinksView(t, store)

	if manager.Len() != 0 {
		t.Errorf("Expected empty list, got %d", manager.Len())
	}
	if !view.status.Visible() || view.status.Text == "" {
		t.Error("Expected a visible status message for corrupt links")
	}
}

func TestLinksView_Copy(t *testing.T) {
	view, manager := newTestLinksView(t, links.NewMemoryStore())
	view.entry.SetText("https://example.com/x")
	view.OnAdd()

	view.OnCopy(manager.Links()[0])

	if got := view.app.Clipboard().Content(); got != "https://example.com/x" {
		t.Errorf("Clipboard = %v, expected %v", got, "https://example.com/x")
	}
}

func TestLinkURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"example.com", "https://example.com", false},
		{"http://example.com/a?b=c", "http://example.com/a?b=c", false},
		{"  https://example.com  ", "https://example.com", false},
		{"https://", "", true},
	}

	for _, test := range tests {
		u, err := LinkURL(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("LinkURL(%q) expected error", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("LinkURL(%q) failed: %v", test.input, err)
			continue
		}
		if u.String() != test.expected {
			t.Errorf("LinkURL(%q) = %v, expected %v", test.input, u.String(), test.expected)
		}
	}
}
