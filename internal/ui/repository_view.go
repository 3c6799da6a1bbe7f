package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/source-editor/internal/config"
	"github.com/ytget/source-editor/internal/logging"
	"github.com/ytget/source-editor/internal/model"
	"github.com/ytget/source-editor/internal/platform"
	"github.com/ytget/source-editor/internal/repository"
)

// File dialog filters
var (
	manifestFilter = storage.NewExtensionFileFilter([]string{repository.ExportExtension})
	imageFilter    = storage.NewMimeTypeFileFilter([]string{"image/*"})
)

// RepositoryView is the repository editor tab
type RepositoryView struct {
	window       fyne.Window
	session      *repository.Session
	settings     *config.Settings
	localization *Localization
	logger       *log.Logger

	summary    *widget.Label
	loadBtn    *widget.Button
	exportBtn  *widget.Button
	copyBtn    *widget.Button
	clearBtn   *widget.Button
	photosBtn  *widget.Button
	docsBtn    *widget.Button
	folderBtn  *widget.Button
	cancelBtn  *widget.Button
	stagedHead *widget.Label
	stagedList *widget.List
	stagedBox  *fyne.Container
	hint       *widget.Label
	search     *widget.Entry
	appList    *widget.List
	progress   *widget.ProgressBarInfinite
	logPanel   *LogPanel
	content    fyne.CanvasObject

	staged []model.StagedFile
	apps   []model.AppEntry
	busy   bool // an app tap is being processed
}

// NewRepositoryView creates the repository tab for session
func NewRepositoryView(window fyne.Window, session *repository.Session, settings *config.Settings, localization *Localization, logger *log.Logger) *RepositoryView {
	if logger == nil {
		logger = logging.Discard()
	}
	v := &RepositoryView{
		window:       window,
		session:      session,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}
	v.setupUI()

	session.SetUpdateCallback(func() {
		fyne.Do(v.Refresh)
	})
	v.Refresh()
	return v
}

func (v *RepositoryView) setupUI() {
	v.summary = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.loadBtn = widget.NewButton("", v.OnLoad)
	v.exportBtn = widget.NewButton("", v.OnExport)
	v.copyBtn = widget.NewButton("", v.OnCopy)
	v.clearBtn = widget.NewButton("", v.OnClear)
	v.clearBtn.Importance = widget.DangerImportance

	v.photosBtn = widget.NewButton("", v.onPickPhotos)
	v.docsBtn = widget.NewButton("", v.onPickDocuments)
	v.folderBtn = widget.NewButton("", v.onPickFolder)
	v.cancelBtn = widget.NewButton("", v.session.CancelStaging)
	v.cancelBtn.Importance = widget.WarningImportance

	v.stagedHead = widget.NewLabel("")
	v.stagedList = widget.NewList(
		func() int { return len(v.staged) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewLabel(IconFile), widget.NewLabel(""), widget.NewLabel(""))
		},
		v.updateStagedItem,
	)
	stagedScroll := container.NewVScroll(v.stagedList)
	stagedScroll.SetMinSize(fyne.NewSize(0, StagedListH))
	v.stagedBox = container.NewBorder(
		container.NewBorder(nil, nil, v.stagedHead, v.cancelBtn),
		nil, nil, nil, stagedScroll,
	)

	v.hint = widget.NewLabel("")
	v.hint.Wrapping = fyne.TextWrapWord
	v.progress = widget.NewProgressBarInfinite()
	v.progress.Stop()
	v.progress.Hide()

	v.search = widget.NewEntry()
	v.search.OnChanged = func(string) { v.refreshApps() }

	v.appList = widget.NewList(
		func() int { return len(v.apps) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil, widget.NewLabel(""), widget.NewButton("", nil))
		},
		v.updateAppItem,
	)

	v.logPanel = NewLogPanel(v.session.Log(), v.settings, v.localization)

	toolbar := container.NewHBox(v.loadBtn, v.exportBtn, v.copyBtn, v.clearBtn)
	pickers := container.NewHBox(v.photosBtn, v.docsBtn, v.folderBtn)
	top := container.NewVBox(
		v.summary,
		toolbar,
		widget.NewSeparator(),
		pickers,
		v.stagedBox,
		container.NewVBox(v.hint, v.progress),
		v.search,
	)

	v.content = container.NewBorder(top, v.logPanel.Content(), nil, nil, v.appList)
	v.RefreshTexts()
}

// Content returns the tab's canvas object
func (v *RepositoryView) Content() fyne.CanvasObject {
	return v.content
}

// Refresh re-renders the view from the session state
func (v *RepositoryView) Refresh() {
	m := v.session.Manifest()
	if m == nil {
		v.summary.SetText(v.localization.GetText(KeyNoRepository))
	} else {
		v.summary.SetText(fmt.Sprintf(v.localization.GetText(KeyRepositorySummary), m.DisplayName(), len(m.Apps)))
	}

	v.staged = v.session.StagedFiles()
	v.stagedHead.SetText(fmt.Sprintf(v.localization.GetText(KeySelectedFiles), len(v.staged)))
	if len(v.staged) > 0 {
		v.stagedBox.Show()
	} else {
		v.stagedBox.Hide()
	}
	v.stagedList.Refresh()

	busy := v.attaching()
	switch {
	case busy:
		v.hint.Show()
	case v.session.Labeling():
		v.hint.SetText(v.localization.GetText(KeyChooseApp))
		v.hint.Show()
	default:
		v.hint.Hide()
	}
	for _, btn := range []*widget.Button{v.photosBtn, v.docsBtn, v.folderBtn, v.cancelBtn} {
		if busy {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}

	v.refreshApps()
}

// attaching reports whether staged files are being converted, in which case
// the pickers and app buttons are disabled.
func (v *RepositoryView) attaching() bool {
	return v.busy || v.session.Attaching()
}

// RefreshTexts updates labels after a language change
func (v *RepositoryView) RefreshTexts() {
	v.loadBtn.SetText(v.localization.GetText(KeyLoadJSON))
	v.exportBtn.SetText(v.localization.GetText(KeyExportJSON))
	v.copyBtn.SetText(v.localization.GetText(KeyCopyJSON))
	v.clearBtn.SetText(v.localization.GetText(KeyClearRepo))
	v.photosBtn.SetText(IconImage + " " + v.localization.GetText(KeyPickPhotos))
	v.docsBtn.SetText(IconFile + " " + v.localization.GetText(KeyPickDocuments))
	v.folderBtn.SetText(IconFolder + " " + v.localization.GetText(KeyPickFolder))
	v.cancelBtn.SetText(v.localization.GetText(KeyCancelSelection))
	v.search.SetPlaceHolder(v.localization.GetText(KeySearchApps))
	v.logPanel.RefreshTexts()
	v.Refresh()
}

func (v *RepositoryView) refreshApps() {
	v.apps = v.session.FilteredApps(v.search.Text)
	v.appList.Refresh()
}

func (v *RepositoryView) updateStagedItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(v.staged) {
		return
	}
	f := v.staged[id]
	row := item.(*fyne.Container)
	// Border layout keeps the center object first
	name := row.Objects[0].(*widget.Label)
	icon := row.Objects[1].(*widget.Label)
	size := row.Objects[2].(*widget.Label)

	name.SetText(f.Name)
	size.SetText(humanize.IBytes(uint64(max(f.Size, 0))) + MiddleDotSeparator + f.Kind().String())
	switch f.Kind() {
	case model.FileKindImage:
		icon.SetText(IconImage)
	case model.FileKindDocument:
		icon.SetText(IconFile)
	default:
		icon.SetText(DashPlaceholder)
	}
}

func (v *RepositoryView) updateAppItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(v.apps) {
		return
	}
	app := v.apps[id]
	row := item.(*fyne.Container)
	btn := row.Objects[0].(*widget.Button)
	badges := row.Objects[1].(*widget.Label)

	label := app.Name
	if app.Identifier != "" {
		label += MiddleDotSeparator + app.Identifier
	}
	btn.SetText(label)
	btn.OnTapped = func() { v.OnAppTapped(app.Name) }
	if v.session.Labeling() && !v.attaching() {
		btn.Enable()
	} else {
		btn.Disable()
	}

	var marks []string
	if app.IconURL != "" {
		marks = append(marks, IconCheck+" "+v.localization.GetText(KeyHasIcon))
	}
	if app.DownloadURL != "" {
		marks = append(marks, IconCheck+" "+v.localization.GetText(KeyHasFile))
	}
	badges.SetText(strings.Join(marks, MiddleDotSeparator))
}

// OnAppTapped attaches the staged files to the apps named name. The
// conversion runs off the UI goroutine; pickers and app buttons stay disabled
// until it is done.
func (v *RepositoryView) OnAppTapped(name string) {
	if v.busy {
		return
	}
	v.busy = true
	v.hint.SetText(fmt.Sprintf(v.localization.GetText(KeyAttaching), name))
	v.progress.Show()
	v.progress.Start()
	v.Refresh()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), AttachTimeout)
		defer cancel()

		report, err := v.session.Attach(ctx, name)
		if err == nil {
			v.logger.Debug("attach finished", "app", report.App, "attached", report.Attached,
				"skipped", report.Skipped, "failed", report.Failed, "matched", report.Matched)
		}
		fyne.Do(func() {
			v.busy = false
			v.progress.Stop()
			v.progress.Hide()
			v.Refresh()
		})
	}()
}

// OnLoad opens a manifest file chosen by the user
func (v *RepositoryView) OnLoad() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.session.Log().Error("%s: %v", v.localization.GetText(KeyErrorOpeningFile), err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		v.rememberDir(reader.URI())
		_ = v.session.LoadFrom(reader)
	}, v.window)
	d.SetFilter(manifestFilter)
	v.openAtLastDir(d)
	d.Show()
}

// OnExport saves the manifest to a file chosen by the user
func (v *RepositoryView) OnExport() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			v.session.Log().Error("%s: %v", v.localization.GetText(KeyErrorOpeningFile), err)
			return
		}
		if writer == nil {
			return
		}

		exportErr := v.session.ExportTo(writer)
		if err := writer.Close(); err != nil && exportErr == nil {
			v.session.Log().Error("Failed to export repository JSON: %v", err)
			return
		}
		if exportErr != nil {
			return
		}

		v.rememberDir(writer.URI())
		if v.settings.GetRevealAfterExport() {
			if err := platform.RevealInFileManager(writer.URI().Path()); err != nil {
				v.logger.Warn("reveal exported file", "path", writer.URI().Path(), "err", err)
			}
		}
	}, v.window)
	d.SetFileName(v.session.ExportFileName())
	d.SetFilter(manifestFilter)
	v.openAtLastDir(d)
	d.Show()
}

// OnCopy copies the manifest JSON to the clipboard
func (v *RepositoryView) OnCopy() {
	v.session.CopyToClipboard()
}

// OnClear asks for confirmation and resets the manifest
func (v *RepositoryView) OnClear() {
	dialog.ShowConfirm(
		v.localization.GetText(KeyConfirmClear),
		v.localization.GetText(KeyResetPrompt),
		func(ok bool) {
			v.session.Reset(repository.Answer(ok))
		},
		v.window,
	)
}

func (v *RepositoryView) onPickPhotos() {
	v.pickFile(repository.SelectionPhotos, imageFilter)
}

func (v *RepositoryView) onPickDocuments() {
	v.pickFile(repository.SelectionFiles, nil)
}

func (v *RepositoryView) pickFile(kind repository.Selection, filter storage.FileFilter) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.session.Log().Error("%s: %v", v.localization.GetText(KeyErrorOpeningFile), err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		v.rememberDir(reader.URI())
		v.stagePaths(kind, []string{path})
	}, v.window)
	if filter != nil {
		d.SetFilter(filter)
	}
	v.openAtLastDir(d)
	d.Show()
}

func (v *RepositoryView) onPickFolder() {
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			v.session.Log().Error("%s: %v", v.localization.GetText(KeyErrorOpeningFile), err)
			return
		}
		if dir == nil {
			return
		}
		v.settings.SetLastDirectory(dir.Path())

		files, err := platform.StageDirectory(dir.Path())
		if err != nil {
			v.session.Log().Error("%s: %v", v.localization.GetText(KeyErrorOpeningFile), err)
			return
		}
		v.session.Stage(files)
	}, v.window)
	v.openAtLastDir(d)
	d.Show()
}

func (v *RepositoryView) stagePaths(kind repository.Selection, paths []string) {
	files, err := platform.StagePaths(paths)
	if err != nil {
		v.session.Log().Error("%s: %v", v.localization.GetText(KeyErrorOpeningFile), err)
		return
	}
	v.session.StageAs(kind, files)
}

func (v *RepositoryView) rememberDir(uri fyne.URI) {
	if uri == nil || uri.Scheme() != "file" {
		return
	}
	v.settings.SetLastDirectory(filepath.Dir(uri.Path()))
}

// locatable is satisfied by the Fyne file and folder dialogs
type locatable interface {
	SetLocation(fyne.ListableURI)
}

func (v *RepositoryView) openAtLastDir(d locatable) {
	dir := v.settings.GetLastDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	d.SetLocation(lister)
}
