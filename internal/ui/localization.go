package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyTabRepository     = "tab_repository"
	KeyTabLinks          = "tab_links"
	KeyFile              = "file"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyLoadJSON          = "load_json"
	KeyExportJSON        = "export_json"
	KeyCopyJSON          = "copy_json"
	KeyClearRepo         = "clear_repo"
	KeyPickPhotos        = "pick_photos"
	KeyPickDocuments     = "pick_documents"
	KeyPickFolder        = "pick_folder"
	KeyCancelSelection   = "cancel_selection"
	KeyNoRepository      = "no_repository"
	KeyRepositorySummary = "repository_summary"
	KeySelectedFiles     = "selected_files"
	KeyChooseApp         = "choose_app"
	KeySearchApps        = "search_apps"
	KeyNoApps            = "no_apps"
	KeyAttaching         = "attaching"
	KeyHasIcon           = "has_icon"
	KeyHasFile           = "has_file"
	KeyActivityLog       = "activity_log"
	KeyShowLogs          = "show_logs"
	KeyHideLogs          = "hide_logs"
	KeyClearLogs         = "clear_logs"
	KeyConfirmClear      = "confirm_clear"
	KeyResetPrompt       = "reset_prompt"
	KeyEnterLink         = "enter_link"
	KeyAdd               = "add"
	KeyOpen              = "open"
	KeyCopy              = "copy"
	KeyDelete            = "delete"
	KeyNoLinks           = "no_links"
	KeyLinkCount         = "link_count"
	KeyLinksCorrupt      = "links_corrupt"
	KeyLinkCopied        = "link_copied"
	KeyErrorOpeningLink  = "error_opening_link"
	KeyErrorSavingLinks  = "error_saving_links"
	KeyErrorOpeningFile  = "error_opening_file"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyInterface         = "interface"
	KeyLastDirectory     = "last_directory"
	KeyShowLogsSetting   = "show_logs_setting"
	KeyRevealAfterExport = "reveal_after_export"
	KeyLogLevel          = "log_level"
	KeySettingsSaved     = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

var supportedLanguages = []language.Tag{language.English, language.Russian, language.Portuguese}

var languageMatcher = language.NewMatcher(supportedLanguages)

// systemLanguage picks the supported language closest to the process locale
func systemLanguage() string {
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	// en_US.UTF-8 -> en-US
	locale = strings.ReplaceAll(strings.SplitN(locale, ".", 2)[0], "_", "-")

	_, index := language.MatchStrings(languageMatcher, locale)
	base, _ := supportedLanguages[index].Base()
	return base.String()
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" || lang == "" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Source Editor",
		KeyTabRepository:     "Repository",
		KeyTabLinks:          "Links",
		KeyFile:              "File",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyLoadJSON:          "Load JSON",
		KeyExportJSON:        "Download JSON",
		KeyCopyJSON:          "Copy JSON",
		KeyClearRepo:         "Clear Repo",
		KeyPickPhotos:        "Pick Photos",
		KeyPickDocuments:     "Pick Documents",
		KeyPickFolder:        "Pick Folder",
		KeyCancelSelection:   "Cancel Selection",
		KeyNoRepository:      "No repository loaded",
		KeyRepositorySummary: "%s · %d apps",
		KeySelectedFiles:     "Selected files (%d)",
		KeyChooseApp:         "Click an app to attach the selected files",
		KeySearchApps:        "Search apps...",
		KeyNoApps:            "No apps",
		KeyAttaching:         "Attaching files to %s...",
		KeyHasIcon:           "icon",
		KeyHasFile:           "file",
		KeyActivityLog:       "Activity Log",
		KeyShowLogs:          "Show Logs",
		KeyHideLogs:          "Hide Logs",
		KeyClearLogs:         "Clear Logs",
		KeyConfirmClear:      "Clear Repository",
		KeyResetPrompt:       "Are you sure you want to clear the loaded repository? This will remove all app data.",
		KeyEnterLink:         "Enter a URL",
		KeyAdd:               "Add",
		KeyOpen:              "Open",
		KeyCopy:              "Copy",
		KeyDelete:            "Delete",
		KeyNoLinks:           "No links yet",
		KeyLinkCount:         "%d links",
		KeyLinksCorrupt:      "Saved links could not be read. A backup was kept under %s.",
		KeyLinkCopied:        "Link copied to clipboard",
		KeyErrorOpeningLink:  "Could not open link",
		KeyErrorSavingLinks:  "Could not save links",
		KeyErrorOpeningFile:  "Error opening file",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyInterface:         "Interface",
		KeyLastDirectory:     "Default folder",
		KeyShowLogsSetting:   "Show activity log",
		KeyRevealAfterExport: "Show exported file in file manager",
		KeyLogLevel:          "Log level",
		KeySettingsSaved:     "Settings saved successfully!",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Редактор источника",
		KeyTabRepository:     "Репозиторий",
		KeyTabLinks:          "Ссылки",
		KeyFile:              "Файл",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeyLoadJSON:          "Загрузить JSON",
		KeyExportJSON:        "Скачать JSON",
		KeyCopyJSON:          "Копировать JSON",
		KeyClearRepo:         "Очистить",
		KeyPickPhotos:        "Выбрать фото",
		KeyPickDocuments:     "Выбрать документы",
		KeyPickFolder:        "Выбрать папку",
		KeyCancelSelection:   "Отменить выбор",
		KeyNoRepository:      "Репозиторий не загружен",
		KeyRepositorySummary: "%s · приложений: %d",
		KeySelectedFiles:     "Выбрано файлов (%d)",
		KeyChooseApp:         "Нажмите на приложение, чтобы прикрепить файлы",
		KeySearchApps:        "Поиск приложений...",
		KeyNoApps:            "Нет приложений",
		KeyAttaching:         "Прикрепление файлов к %s...",
		KeyHasIcon:           "иконка",
		KeyHasFile:           "файл",
		KeyActivityLog:       "Журнал",
		KeyShowLogs:          "Показать журнал",
		KeyHideLogs:          "Скрыть журнал",
		KeyClearLogs:         "Очистить журнал",
		KeyConfirmClear:      "Очистить репозиторий",
		KeyResetPrompt:       "Очистить загруженный репозиторий? Все данные приложений будут удалены.",
		KeyEnterLink:         "Введите URL",
		KeyAdd:               "Добавить",
		KeyOpen:              "Открыть",
		KeyCopy:              "Копировать",
		KeyDelete:            "Удалить",
		KeyNoLinks:           "Ссылок пока нет",
		KeyLinkCount:         "Ссылок: %d",
		KeyLinksCorrupt:      "Сохранённые ссылки не удалось прочитать. Копия сохранена в %s.",
		KeyLinkCopied:        "Ссылка скопирована",
		KeyErrorOpeningLink:  "Не удалось открыть ссылку",
		KeyErrorSavingLinks:  "Не удалось сохранить ссылки",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyInterface:         "Интерфейс",
		KeyLastDirectory:     "Папка по умолчанию",
		KeyShowLogsSetting:   "Показывать журнал",
		KeyRevealAfterExport: "Показать экспортированный файл в файловом менеджере",
		KeyLogLevel:          "Уровень логирования",
		KeySettingsSaved:     "Настройки успешно сохранены!",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Editor de Fonte",
		KeyTabRepository:     "Repositório",
		KeyTabLinks:          "Links",
		KeyFile:              "Arquivo",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeyLoadJSON:          "Carregar JSON",
		KeyExportJSON:        "Baixar JSON",
		KeyCopyJSON:          "Copiar JSON",
		KeyClearRepo:         "Limpar",
		KeyPickPhotos:        "Escolher Fotos",
		KeyPickDocuments:     "Escolher Documentos",
		KeyPickFolder:        "Escolher Pasta",
		KeyCancelSelection:   "Cancelar Seleção",
		KeyNoRepository:      "Nenhum repositório carregado",
		KeyRepositorySummary: "%s · %d apps",
		KeySelectedFiles:     "Arquivos selecionados (%d)",
		KeyChooseApp:         "Clique em um app para anexar os arquivos",
		KeySearchApps:        "Buscar apps...",
		KeyNoApps:            "Nenhum app",
		KeyAttaching:         "Anexando arquivos a %s...",
		KeyHasIcon:           "ícone",
		KeyHasFile:           "arquivo",
		KeyActivityLog:       "Registro de Atividades",
		KeyShowLogs:          "Mostrar Registro",
		KeyHideLogs:          "Ocultar Registro",
		KeyClearLogs:         "Limpar Registro",
		KeyConfirmClear:      "Limpar Repositório",
		KeyResetPrompt:       "Tem certeza de que deseja limpar o repositório carregado? Todos os dados dos apps serão removidos.",
		KeyEnterLink:         "Digite uma URL",
		KeyAdd:               "Adicionar",
		KeyOpen:              "Abrir",
		KeyCopy:              "Copiar",
		KeyDelete:            "Excluir",
		KeyNoLinks:           "Nenhum link ainda",
		KeyLinkCount:         "%d links",
		KeyLinksCorrupt:      "Não foi possível ler os links salvos. Uma cópia foi mantida em %s.",
		KeyLinkCopied:        "Link copiado",
		KeyErrorOpeningLink:  "Não foi possível abrir o link",
		KeyErrorSavingLinks:  "Não foi possível salvar os links",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyInterface:         "Interface",
		KeyLastDirectory:     "Pasta padrão",
		KeyShowLogsSetting:   "Mostrar registro de atividades",
		KeyRevealAfterExport: "Mostrar arquivo exportado no gerenciador de arquivos",
		KeyLogLevel:          "Nível de log",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
	}
}
