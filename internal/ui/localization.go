package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAddFiles          = "add_files"
	KeyAddFolder         = "add_folder"
	KeyClearList         = "clear_list"
	KeyConvertAll        = "convert_all"
	KeyCommit            = "commit"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyOutputDirectory   = "output_directory"
	KeyGameMusicDir      = "game_music_directory"
	KeyMaxParallel       = "max_parallel"
	KeyFFmpegPath        = "ffmpeg_path"
	KeyRevealOnCommit    = "reveal_on_commit"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyDropHint          = "drop_hint"
	KeySettingsSaved     = "settings_saved"
	KeyConversionError   = "conversion_error"
	KeyConversionDone    = "conversion_done"
	KeyCommitError       = "commit_error"
	KeyCommitSuccessful  = "commit_successful"
	KeyCommitSummary     = "commit_summary"
	KeyEncoderMissing    = "encoder_missing"
	KeyFilesAdded        = "files_added"
	KeyAlreadyInList     = "already_in_list"
	KeyFailedFilesFormat = "failed_files_format"
	KeySelectedFormat    = "selected_format"

	// Status line, mirroring the coordinator phases
	KeyStatusReady           = "status_ready"
	KeyStatusConverting      = "status_converting"
	KeyStatusConvertProgress = "status_convert_progress"
	KeyStatusConvertDone     = "status_convert_done"
	KeyStatusConvertFailed   = "status_convert_failed"
	KeyStatusCommitting      = "status_committing"
	KeyStatusCommitDone      = "status_commit_done"
	KeyStatusCommitFailed    = "status_commit_failed"
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

// SetLanguage sets the current language
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = systemLanguage()
		if _, exists := l.texts[code]; !exists {
			code = "en"
		}
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// systemLanguage returns the base language of the OS locale, e.g. "pt" for pt-BR
func systemLanguage() string {
	base, _, _ := strings.Cut(lang.SystemLocale().LanguageString(), "-")
	return strings.ToLower(base)
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
		KeyAppTitle:              "Stellaris Music Adder",
		KeyAddFiles:              "Add Files",
		KeyAddFolder:             "Add Folder",
		KeyClearList:             "Clear List",
		KeyConvertAll:            "Convert All",
		KeyCommit:                "Commit to Stellaris",
		KeySettings:              "Settings",
		KeyFile:                  "File",
		KeyLanguage:              "Language",
		KeyOutputDirectory:       "Output Folder",
		KeyGameMusicDir:          "Stellaris Music Folder",
		KeyMaxParallel:           "Max Parallel Conversions (0 = all)",
		KeyFFmpegPath:            "FFmpeg Executable",
		KeyRevealOnCommit:        "Open music folder after commit",
		KeySave:                  "Save",
		KeyCancel:                "Cancel",
		KeyBrowse:                "Browse",
		KeyDropHint:              "Drop audio files or folders here",
		KeySettingsSaved:         "Settings saved successfully!",
		KeyConversionError:       "Conversion Error",
		KeyConversionDone:        "Successfully processed %d files.",
		KeyCommitError:           "Commit Error",
		KeyCommitSuccessful:      "Commit Successful",
		KeyCommitSummary:         "Successfully generated song assets for %d unique tracks in:\n%s",
		KeyEncoderMissing:        "FFmpeg was not found. Install it or set its path in Settings.",
		KeyFilesAdded:            "%d files added",
		KeyAlreadyInList:         "Already in the list",
		KeyFailedFilesFormat:     "Failed to convert %s.\nError: %s",
		KeySelectedFormat:        "%d files selected",
		KeyStatusReady:           "Ready",
		KeyStatusConverting:      "Converting...",
		KeyStatusConvertProgress: "Converting... %d/%d",
		KeyStatusConvertDone:     "Conversion complete! %d of %d files processed.",
		KeyStatusConvertFailed:   "Conversion failed.",
		KeyStatusCommitting:      "Committing files to Stellaris...",
		KeyStatusCommitDone:      "Successfully committed %d songs!",
		KeyStatusCommitFailed:    "Commit failed.",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:              "Музыка для Stellaris",
		KeyAddFiles:              "Добавить файлы",
		KeyAddFolder:             "Добавить папку",
		KeyClearList:             "Очистить список",
		KeyConvertAll:            "Конвертировать всё",
		KeyCommit:                "Добавить в Stellaris",
		KeySettings:              "Настройки",
		KeyFile:                  "Файл",
		KeyLanguage:              "Язык",
		KeyOutputDirectory:       "Папка вывода",
		KeyGameMusicDir:          "Папка музыки Stellaris",
		KeyMaxParallel:           "Макс. параллельных (0 = все)",
		KeyFFmpegPath:            "Исполняемый файл FFmpeg",
		KeyRevealOnCommit:        "Открыть папку музыки после добавления",
		KeySave:                  "Сохранить",
		KeyCancel:                "Отмена",
		KeyBrowse:                "Обзор",
		KeyDropHint:              "Перетащите сюда аудиофайлы или папки",
		KeySettingsSaved:         "Настройки успешно сохранены!",
		KeyConversionError:       "Ошибка конвертации",
		KeyConversionDone:        "Успешно обработано файлов: %d.",
		KeyCommitError:           "Ошибка добавления",
		KeyCommitSuccessful:      "Добавление завершено",
		KeyCommitSummary:         "Созданы описания для %d уникальных треков в:\n%s",
		KeyEncoderMissing:        "FFmpeg не найден. Установите его или укажите путь в настройках.",
		KeyFilesAdded:            "Добавлено файлов: %d",
		KeyAlreadyInList:         "Уже в списке",
		KeyFailedFilesFormat:     "Не удалось конвертировать %s.\nОшибка: %s",
		KeySelectedFormat:        "Выбрано файлов: %d",
		KeyStatusReady:           "Готово",
		KeyStatusConverting:      "Конвертация...",
		KeyStatusConvertProgress: "Конвертация... %d/%d",
		KeyStatusConvertDone:     "Конвертация завершена! Обработано %d из %d файлов.",
		KeyStatusConvertFailed:   "Ошибка конвертации.",
		KeyStatusCommitting:      "Запись файлов в Stellaris...",
		KeyStatusCommitDone:      "Добавлено песен: %d!",
		KeyStatusCommitFailed:    "Ошибка записи.",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:              "Stellaris Music Adder",
		KeyAddFiles:              "Adicionar Arquivos",
		KeyAddFolder:             "Adicionar Pasta",
		KeyClearList:             "Limpar Lista",
		KeyConvertAll:            "Converter Tudo",
		KeyCommit:                "Enviar para Stellaris",
		KeySettings:              "Configurações",
		KeyFile:                  "Arquivo",
		KeyLanguage:              "Idioma",
		KeyOutputDirectory:       "Pasta de Saída",
		KeyGameMusicDir:          "Pasta de Música do Stellaris",
		KeyMaxParallel:           "Max Conversões Paralelas (0 = todas)",
		KeyFFmpegPath:            "Executável do FFmpeg",
		KeyRevealOnCommit:        "Abrir pasta de música após enviar",
		KeySave:                  "Salvar",
		KeyCancel:                "Cancelar",
		KeyBrowse:                "Navegar",
		KeyDropHint:              "Solte arquivos de áudio ou pastas aqui",
		KeySettingsSaved:         "Configurações salvas com sucesso!",
		KeyConversionError:       "Erro de Conversão",
		KeyConversionDone:        "%d arquivos processados com sucesso.",
		KeyCommitError:           "Erro ao Enviar",
		KeyCommitSuccessful:      "Envio Concluído",
		KeyCommitSummary:         "Definições de música geradas para %d faixas únicas em:\n%s",
		KeyEncoderMissing:        "FFmpeg não encontrado. Instale-o ou defina o caminho nas Configurações.",
		KeyFilesAdded:            "%d arquivos adicionados",
		KeyAlreadyInList:         "Já está na lista",
		KeyFailedFilesFormat:     "Falha ao converter %s.\nErro: %s",
		KeySelectedFormat:        "%d arquivos selecionados",
		KeyStatusReady:           "Pronto",
		KeyStatusConverting:      "Convertendo...",
		KeyStatusConvertProgress: "Convertendo... %d/%d",
		KeyStatusConvertDone:     "Conversão concluída! %d de %d arquivos processados.",
		KeyStatusConvertFailed:   "Falha na conversão.",
		KeyStatusCommitting:      "Enviando arquivos para o Stellaris...",
		KeyStatusCommitDone:      "%d músicas adicionadas com sucesso!",
		KeyStatusCommitFailed:    "Falha ao enviar.",
	}
}
