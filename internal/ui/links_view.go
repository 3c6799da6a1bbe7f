package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"charm.land/log/v2"
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/source-editor/internal/links"
	"github.com/ytget/source-editor/internal/logging"
	"github.com/ytget/source-editor/internal/model"
)

// LinksView is the saved links tab
type LinksView struct {
	app          fyne.App
	manager      *links.Manager
	localization *Localization
	logger       *log.Logger

	entry   *widget.Entry
	addBtn  *widget.Button
	status  *widget.Label
	count   *widget.Label
	list    *widget.List
	content fyne.CanvasObject

	links []model.Link
}

// NewLinksView creates the links tab and reads the stored list
func NewLinksView(app fyne.App, manager *links.Manager, localization *Localization, logger *log.Logger) *LinksView {
	if logger == nil {
		logger = logging.Discard()
	}
	v := &LinksView{
		app:          app,
		manager:      manager,
		localization: localization,
		logger:       logger,
	}
	v.setupUI()

	manager.SetUpdateCallback(func([]model.Link) {
		fyne.Do(v.Refresh)
	})
	if err := manager.Hydrate(); err != nil {
		v.logger.Error("read stored links", "err", err)
		if errors.Is(err, links.ErrCorruptStore) {
			v.setStatus(fmt.Sprintf(v.localization.GetText(KeyLinksCorrupt), links.CorruptStorageKey))
		} else {
			v.setStatus(err.Error())
		}
	}
	v.Refresh()
	return v
}

func (v *LinksView) setupUI() {
	v.entry = widget.NewEntry()
	v.entry.OnSubmitted = func(string) { v.OnAdd() }
	v.addBtn = widget.NewButton("", v.OnAdd)
	v.addBtn.Importance = widget.HighImportance

	v.status = widget.NewLabel("")
	v.status.Wrapping = fyne.TextWrapWord
	v.status.Hide()
	v.count = widget.NewLabel("")

	v.list = widget.NewList(
		func() int { return len(v.links) },
		func() fyne.CanvasObject {
			actions := container.NewHBox(
				widget.NewButton(IconOpen, nil),
				widget.NewButton(IconCopy, nil),
				widget.NewButton(IconClose, nil),
			)
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, nil, actions, label)
		},
		v.updateItem,
	)

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, v.addBtn, v.entry),
		v.status,
		v.count,
	)
	v.content = container.NewBorder(top, nil, nil, nil, v.list)
	v.RefreshTexts()
}

// Content returns the tab's canvas object
func (v *LinksView) Content() fyne.CanvasObject {
	return v.content
}

// Refresh re-renders the list from the manager
func (v *LinksView) Refresh() {
	v.links = v.manager.Links()
	if len(v.links) == 0 {
		v.count.SetText(v.localization.GetText(KeyNoLinks))
	} else {
		v.count.SetText(fmt.Sprintf(v.localization.GetText(KeyLinkCount), len(v.links)))
	}
	v.list.Refresh()
}

// RefreshTexts updates labels after a language change
func (v *LinksView) RefreshTexts() {
	v.entry.SetPlaceHolder(v.localization.GetText(KeyEnterLink))
	v.addBtn.SetText(v.localization.GetText(KeyAdd))
	if v.manager != nil {
		v.Refresh()
	}
}

func (v *LinksView) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(v.links) {
		return
	}
	link := v.links[id]
	row := item.(*fyne.Container)
	label := row.Objects[0].(*widget.Label)
	actions := row.Objects[1].(*fyne.Container)

	label.SetText(link.URL)
	actions.Objects[0].(*widget.Button).OnTapped = func() { v.OnOpen(link) }
	actions.Objects[1].(*widget.Button).OnTapped = func() { v.OnCopy(link) }
	actions.Objects[2].(*widget.Button).OnTapped = func() { v.OnDelete(link.ID) }
}

// OnAdd appends the entry text as a new link and clears the entry
func (v *LinksView) OnAdd() {
	_, ok, err := v.manager.Add(v.entry.Text)
	if err != nil {
		v.logger.Error("save links", "err", err)
		v.setStatus(v.localization.GetText(KeyErrorSavingLinks) + ": " + err.Error())
	}
	if ok {
		v.entry.SetText("")
	}
	v.Refresh()
}

// OnDelete removes the link with id
func (v *LinksView) OnDelete(id string) {
	if _, err := v.manager.Delete(id); err != nil {
		v.logger.Error("save links", "err", err)
		v.setStatus(v.localization.GetText(KeyErrorSavingLinks) + ": " + err.Error())
	}
	v.Refresh()
}

// OnOpen opens link in the system browser
func (v *LinksView) OnOpen(link model.Link) {
	u, err := LinkURL(link.URL)
	if err == nil {
		err = v.app.OpenURL(u)
	}
	if err != nil {
		v.logger.Warn("open link", "url", link.URL, "err", err)
		v.setStatus(v.localization.GetText(KeyErrorOpeningLink) + ": " + link.URL)
	}
}

// OnCopy copies the link text to the clipboard
func (v *LinksView) OnCopy(link model.Link) {
	v.app.Clipboard().SetContent(link.URL)
	v.setStatus(v.localization.GetText(KeyLinkCopied))
}

func (v *LinksView) setStatus(text string) {
	v.status.SetText(text)
	v.status.Show()
}

// LinkURL parses a stored link for opening. Text without a scheme is treated
// as an https address.
func LinkURL(text string) (*url.URL, error) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "://") {
		text = DefaultLinkScheme + "://" + text
	}
	u, err := url.Parse(text)
	if err != nil {
		return nil, err
	}
	if u.Host == "" && u.Scheme != "file" {
		return nil, fmt.Errorf("no host in %q", text)
	}
	return u, nil
}
