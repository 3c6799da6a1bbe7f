package ui

import (
	"sort"

	"charm.land/log/v2"
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/source-editor/internal/config"
	"github.com/ytget/source-editor/internal/links"
	"github.com/ytget/source-editor/internal/logging"
	"github.com/ytget/source-editor/internal/platform"
	"github.com/ytget/source-editor/internal/repository"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	logger       *log.Logger

	tabs           *container.AppTabs
	repositoryTab  *container.TabItem
	linksTab       *container.TabItem
	repositoryView *RepositoryView
	linksView      *LinksView
}

// FyneClipboard returns a clipboard writing through the Fyne app
func FyneClipboard(app fyne.App) platform.Clipboard {
	return platform.ClipboardFunc(func(text string) error {
		app.Clipboard().SetContent(text)
		return nil
	})
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, session *repository.Session, manager *links.Manager, logger *log.Logger) *RootUI {
	if logger == nil {
		logger = logging.Discard()
	}

	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetIcon(LoadLogoResource())

	ui.repositoryView = NewRepositoryView(window, session, settings, localization, logger)
	ui.linksView = NewLinksView(app, manager, localization, logger)
	ui.setupUI()

	logger.Debug("root UI initialized", "language", localization.GetCurrentLanguage())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.repositoryTab = container.NewTabItem("", ui.repositoryView.Content())
	ui.linksTab = container.NewTabItem("", ui.linksView.Content())
	ui.tabs = container.NewAppTabs(ui.repositoryTab, ui.linksTab)
	ui.tabs.SetTabLocation(container.TabLocationTop)

	logo := canvas.NewImageFromResource(LoadLogoResource())
	logo.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
	logo.FillMode = canvas.ImageFillContain

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, logo, settingsBtn)
	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, ui.tabs))
	ui.refreshUITexts()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	text := ui.localization.GetText

	fileMenu := fyne.NewMenu(text(KeyFile),
		fyne.NewMenuItem(text(KeyLoadJSON), ui.repositoryView.OnLoad),
		fyne.NewMenuItem(text(KeyExportJSON), ui.repositoryView.OnExport),
		fyne.NewMenuItem(text(KeyCopyJSON), ui.repositoryView.OnCopy),
		fyne.NewMenuItem(text(KeyClearRepo), ui.repositoryView.OnClear),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(text(KeySettings), ui.onShowSettings),
	)

	// Language submenu
	languageMenu := fyne.NewMenu(text(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(code)
		})

		// Mark current language
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, languageMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.repositoryTab.Text = ui.localization.GetText(KeyTabRepository)
	ui.linksTab.Text = ui.localization.GetText(KeyTabLinks)
	ui.tabs.Refresh()

	ui.repositoryView.RefreshTexts()
	ui.linksView.RefreshTexts()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.logger.SetLevel(logging.ParseLevel(ui.settings.GetLogLevel()))
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.repositoryView.logPanel.SetVisible(ui.settings.GetShowLogs())
	ui.refreshUITexts()
	ui.createMenu()
}
