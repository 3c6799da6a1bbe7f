package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/source-editor/internal/config"
	"github.com/ytget/source-editor/internal/model"
	"github.com/ytget/source-editor/internal/repository"
)

// LogPanel renders the activity log with a collapse toggle and a clear button
type LogPanel struct {
	log          *repository.ActivityLog
	settings     *config.Settings
	localization *Localization

	entries   []model.LogEntry
	title     *widget.Label
	toggleBtn *widget.Button
	clearBtn  *widget.Button
	list      *widget.List
	body      *fyne.Container
	content   *fyne.Container
}

// NewLogPanel creates a log panel bound to log
func NewLogPanel(log *repository.ActivityLog, settings *config.Settings, localization *Localization) *LogPanel {
	p := &LogPanel{
		log:          log,
		settings:     settings,
		localization: localization,
	}

	p.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.toggleBtn = widget.NewButton("", p.onToggle)
	p.toggleBtn.Importance = widget.LowImportance
	p.clearBtn = widget.NewButton("", p.onClear)
	p.clearBtn.Importance = widget.LowImportance

	p.list = widget.NewList(
		func() int { return len(p.entries) },
		func() fyne.CanvasObject {
			text := canvas.NewText("", theme.Color(theme.ColorNameForeground))
			text.TextSize = theme.CaptionTextSize()
			return text
		},
		p.updateItem,
	)

	scroll := container.NewVScroll(p.list)
	scroll.SetMinSize(fyne.NewSize(0, LogPanelHeight))
	p.body = container.NewStack(scroll)

	header := container.NewBorder(nil, nil, p.title, container.NewHBox(p.clearBtn, p.toggleBtn))
	p.content = container.NewBorder(header, nil, nil, nil, p.body)

	log.SetUpdateCallback(func(model.LogEntry) {
		fyne.Do(p.Refresh)
	})

	if !settings.GetShowLogs() {
		p.body.Hide()
	}
	p.RefreshTexts()
	p.Refresh()
	return p
}

// Content returns the panel's canvas object
func (p *LogPanel) Content() fyne.CanvasObject {
	return p.content
}

// Visible reports whether the entries are shown
func (p *LogPanel) Visible() bool {
	return p.body.Visible()
}

// Refresh reloads entries from the log, newest last
func (p *LogPanel) Refresh() {
	p.entries = p.log.Entries()
	p.clearBtn.Disable()
	if len(p.entries) > 0 {
		p.clearBtn.Enable()
	}
	p.list.Refresh()
	if n := len(p.entries); n > 0 {
		p.list.ScrollToBottom()
	}
}

// RefreshTexts updates labels after a language change
func (p *LogPanel) RefreshTexts() {
	p.title.SetText(p.localization.GetText(KeyActivityLog))
	p.clearBtn.SetText(p.localization.GetText(KeyClearLogs))
	if p.body.Visible() {
		p.toggleBtn.SetText(p.localization.GetText(KeyHideLogs))
	} else {
		p.toggleBtn.SetText(p.localization.GetText(KeyShowLogs))
	}
}

func (p *LogPanel) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(p.entries) {
		return
	}
	entry := p.entries[id]
	text := item.(*canvas.Text)
	text.Text = entry.String()
	text.Color = theme.Color(SeverityColorName(entry.Severity))
	text.Refresh()
}

// SetVisible shows or hides the entries without touching settings
func (p *LogPanel) SetVisible(visible bool) {
	if visible {
		p.body.Show()
	} else {
		p.body.Hide()
	}
	p.RefreshTexts()
	p.content.Refresh()
}

func (p *LogPanel) onToggle() {
	p.SetVisible(!p.body.Visible())
	p.settings.SetShowLogs(p.body.Visible())
}

func (p *LogPanel) onClear() {
	p.log.Clear()
}
