package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/source-editor/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	lastDirEntry   *widget.Entry
	showLogsCheck  *widget.Check
	revealCheck    *widget.Check
	logLevelSelect *widget.Select
	languageSelect *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.lastDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(IconFolder, sd.onBrowseDirectory)
	lastDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.lastDirEntry)

	sd.showLogsCheck = widget.NewCheck(text(KeyShowLogsSetting), nil)
	sd.revealCheck = widget.NewCheck(text(KeyRevealAfterExport), nil)
	sd.logLevelSelect = widget.NewSelect(sd.settings.GetLogLevelOptions(), nil)

	languageOptions := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeySettings)),
		widget.NewSeparator(),

		widget.NewLabel(text(KeyLastDirectory)+":"),
		lastDirRow,

		sd.revealCheck,

		widget.NewLabel(text(KeyLogLevel)+":"),
		sd.logLevelSelect,

		widget.NewSeparator(),
		widget.NewLabel(text(KeyInterface)),
		widget.NewSeparator(),

		sd.showLogsCheck,

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.lastDirEntry.SetText(sd.settings.GetLastDirectory())
	sd.showLogsCheck.SetChecked(sd.settings.GetShowLogs())
	sd.revealCheck.SetChecked(sd.settings.GetRevealAfterExport())
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.lastDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.lastDirEntry.Text; dir != "" {
		sd.settings.SetLastDirectory(dir)
	}
	sd.settings.SetShowLogs(sd.showLogsCheck.Checked)
	sd.settings.SetRevealAfterExport(sd.revealCheck.Checked)
	sd.settings.SetLogLevel(sd.logLevelSelect.Selected)
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
