package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/stellaris-music/internal/config"
	"github.com/ytget/stellaris-music/internal/convert"
	"github.com/ytget/stellaris-music/internal/model"
	"github.com/ytget/stellaris-music/internal/platform"
	"github.com/ytget/stellaris-music/internal/workflow"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	coordinator  *workflow.Coordinator
	converter    *convert.Service

	// Selected tracks, in coordinator order, with tag info and last task per path
	tracksMutex sync.RWMutex
	paths       []string
	infos       map[string]platform.TrackInfo
	tasks       map[string]*model.ConversionTask

	trackList     *widget.List
	dropHint      *widget.Label
	selectedLabel *widget.Label
	outputEntry   *widget.Entry
	gameEntry     *widget.Entry
	addFilesBtn   *widget.Button
	addFolderBtn  *widget.Button
	clearBtn      *widget.Button
	convertBtn    *widget.Button
	commitBtn     *widget.Button
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Commit readiness scans the output folder, so it is cached per phase and
	// rechecked once folder edits settle. UI goroutine only.
	canCommit     func() bool
	commitReady   bool
	commitPhase   workflow.Phase
	commitChecked bool

	folderMutex sync.Mutex
	folderTimer *time.Timer
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, coordinator *workflow.Coordinator, converter *convert.Service) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		coordinator:  coordinator,
		converter:    converter,
		infos:        make(map[string]platform.TrackInfo),
		tasks:        make(map[string]*model.ConversionTask),
		canCommit:    coordinator.CanCommit,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.converter.SetUpdateCallback(ui.onTaskUpdate)
	ui.coordinator.Subscribe(ui.onStateChange)
	ui.window.SetOnDropped(ui.onDropped)

	ui.setupUI()
	ui.syncFromCoordinator()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization
	ui.createMenu()

	// Track selection
	ui.addFilesBtn = widget.NewButtonWithIcon(l.GetText(KeyAddFiles), theme.FileAudioIcon(), ui.onAddFiles)
	ui.addFolderBtn = widget.NewButtonWithIcon(l.GetText(KeyAddFolder), theme.FolderOpenIcon(), ui.onAddFolder)
	ui.clearBtn = widget.NewButtonWithIcon(l.GetText(KeyClearList), theme.ContentClearIcon(), ui.onClearList)
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	ui.selectedLabel = widget.NewLabel("")

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(ui.addFilesBtn, ui.addFolderBtn, ui.clearBtn),
		settingsBtn,
		ui.selectedLabel,
	)

	ui.trackList = widget.NewList(
		ui.trackCount,
		func() fyne.CanvasObject { return NewTrackRow() },
		ui.updateTrackRow,
	)
	ui.dropHint = widget.NewLabelWithStyle(l.GetText(KeyDropHint), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	listArea := container.NewStack(ui.trackList, container.NewCenter(ui.dropHint))

	// Folders
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetText(ui.coordinator.State().OutputDir)
	ui.outputEntry.OnChanged = func(text string) {
		ui.coordinator.SetOutputDir(text)
		ui.settings.SetOutputDirectory(strings.TrimSpace(text))
		ui.scheduleCommitCheck()
	}
	outputBrowse := widget.NewButton(l.GetText(KeyBrowse), func() { ui.browseFolder(ui.outputEntry) })

	ui.gameEntry = widget.NewEntry()
	ui.gameEntry.SetText(ui.coordinator.State().DestDir)
	ui.gameEntry.OnChanged = func(text string) {
		ui.coordinator.SetDestDir(text)
		ui.settings.SetGameMusicDirectory(strings.TrimSpace(text))
		ui.scheduleCommitCheck()
	}
	gameBrowse := widget.NewButton(l.GetText(KeyBrowse), func() { ui.browseFolder(ui.gameEntry) })

	folders := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyOutputDirectory), container.NewBorder(nil, nil, nil, outputBrowse, ui.outputEntry)),
		widget.NewFormItem(l.GetText(KeyGameMusicDir), container.NewBorder(nil, nil, nil, gameBrowse, ui.gameEntry)),
	)

	// Actions and status
	ui.convertBtn = widget.NewButtonWithIcon(l.GetText(KeyConvertAll), theme.MediaPlayIcon(), ui.onConvertAll)
	ui.convertBtn.Importance = widget.HighImportance
	ui.commitBtn = widget.NewButtonWithIcon(l.GetText(KeyCommit), theme.ConfirmIcon(), ui.onCommit)
	ui.statusLabel = widget.NewLabel(l.GetText(KeyStatusReady))
	ui.progressBar = widget.NewProgressBar()

	bottom := container.NewVBox(
		widget.NewSeparator(),
		folders,
		container.NewGridWithColumns(2, ui.convertBtn, ui.commitBtn),
		ui.progressBar,
		ui.statusLabel,
	)

	ui.window.SetContent(container.NewBorder(toolbar, bottom, nil, nil, listArea))
	slog.Debug("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.addFilesBtn.SetText(l.GetText(KeyAddFiles))
	ui.addFolderBtn.SetText(l.GetText(KeyAddFolder))
	ui.clearBtn.SetText(l.GetText(KeyClearList))
	ui.convertBtn.SetText(l.GetText(KeyConvertAll))
	ui.commitBtn.SetText(l.GetText(KeyCommit))
	ui.dropHint.SetText(l.GetText(KeyDropHint))
	ui.syncFromCoordinator()
}

// onShowSettings shows the settings dialog and applies saved values
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.converter.SetFFmpegCommand(ui.settings.GetFFmpegPath())
		ui.coordinator.SetMaxParallel(ui.settings.GetMaxParallelConversions())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		dialog.ShowInformation(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved), ui.window)
	})
}

// onAddFiles opens a file picker filtered to supported audio
func (ui *RootUI) onAddFiles() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		ui.addPaths([]string{reader.URI().Path()})
	}, ui.window)
	picker.SetFilter(storage.NewExtensionFileFilter(model.SupportedAudioExtensions()))
	picker.Show()
}

// onAddFolder adds every supported file directly inside a chosen folder
func (ui *RootUI) onAddFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.addExpanded([]string{uri.Path()})
	}, ui.window)
}

// onDropped handles files and folders dropped on the window
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	paths := make([]string, 0, len(uris))
	for _, uri := range uris {
		if uri.Scheme() == "file" {
			paths = append(paths, uri.Path())
		}
	}
	ui.addExpanded(paths)
}

func (ui *RootUI) addExpanded(paths []string) {
	files, err := platform.ExpandDropped(paths)
	if err != nil {
		slog.Warn("some dropped paths were skipped", slog.String("error", err.Error()))
	}
	ui.addPaths(files)
}

// addPaths selects new paths and reads their tags in the background
func (ui *RootUI) addPaths(paths []string) {
	if len(paths) == 0 {
		return
	}

	added := ui.coordinator.AddFiles(paths...)
	if added == 0 {
		ui.statusLabel.SetText(ui.localization.GetText(KeyAlreadyInList))
		return
	}

	ui.tracksMutex.Lock()
	var pending []string
	for _, p := range paths {
		if _, known := ui.infos[p]; !known {
			ui.infos[p] = platform.TrackInfo{Path: p, Title: model.Stem(p)}
			pending = append(pending, p)
		}
	}
	ui.tracksMutex.Unlock()

	slog.Debug("tracks added", slog.Int("count", added))
	ui.syncFromCoordinator()
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyFilesAdded), added))

	go func() {
		for _, p := range pending {
			info := platform.ReadTrackInfo(p)
			ui.tracksMutex.Lock()
			if _, still := ui.infos[p]; still {
				ui.infos[p] = info
			}
			ui.tracksMutex.Unlock()
		}
		fyne.Do(ui.trackList.Refresh)
	}()
}

// onClearList empties the selection
func (ui *RootUI) onClearList() {
	if ui.coordinator.IsBusy() {
		return
	}
	ui.coordinator.ClearFiles()

	ui.tracksMutex.Lock()
	ui.infos = make(map[string]platform.TrackInfo)
	ui.tasks = make(map[string]*model.ConversionTask)
	ui.tracksMutex.Unlock()

	ui.syncFromCoordinator()
}

// browseFolder fills entry with a chosen folder
func (ui *RootUI) browseFolder(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, ui.window)
}

// onConvertAll runs the conversion batch off the UI goroutine
func (ui *RootUI) onConvertAll() {
	if err := ui.converter.CheckEncoder(); err != nil {
		dialog.ShowError(fmt.Errorf("%s\n%w", ui.localization.GetText(KeyEncoderMissing), err), ui.window)
		return
	}

	ui.tracksMutex.Lock()
	ui.tasks = make(map[string]*model.ConversionTask)
	ui.tracksMutex.Unlock()
	ui.trackList.Refresh()

	go func() {
		result, err := ui.coordinator.ConvertAll(context.Background())
		fyne.Do(func() {
			ui.trackList.Refresh()
			if err != nil {
				dialog.ShowError(err, ui.window)
				return
			}
			ui.showConversionResult(result)
		})
	}()
}

// showConversionResult reports failures individually, then the summary
func (ui *RootUI) showConversionResult(result workflow.BatchResult) {
	l := ui.localization
	summary := func() {
		dialog.ShowInformation(l.GetText(KeyConvertAll), fmt.Sprintf(l.GetText(KeyConversionDone), result.Succeeded), ui.window)
	}
	if len(result.Failures) == 0 {
		summary()
		return
	}

	lines := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		lines = append(lines, fmt.Sprintf(l.GetText(KeyFailedFilesFormat), filepath.Base(f.Path), f.Err))
	}
	details := widget.NewLabel(strings.Join(lines, "\n\n"))
	details.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(details)
	scroll.SetMinSize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight/2))

	d := dialog.NewCustom(l.GetText(KeyConversionError), "OK", scroll, ui.window)
	d.SetOnClosed(summary)
	d.Show()
}

// onCommit writes the song definition files off the UI goroutine
func (ui *RootUI) onCommit() {
	go func() {
		count, err := ui.coordinator.Commit()
		dest := ui.coordinator.State().DestDir
		fyne.Do(func() {
			l := ui.localization
			if err != nil {
				dialog.ShowError(fmt.Errorf("%s: %w", l.GetText(KeyCommitError), err), ui.window)
				return
			}
			dialog.ShowInformation(l.GetText(KeyCommitSuccessful), fmt.Sprintf(l.GetText(KeyCommitSummary), count, dest), ui.window)
			if ui.settings.GetRevealOnCommit() {
				if err := platform.OpenFolder(dest); err != nil {
					slog.Warn("could not open music folder", slog.String("error", err.Error()))
				}
			}
		})
	}()
}

// onTaskUpdate records per-file status from the converter; called from worker goroutines
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	ui.tracksMutex.Lock()
	ui.tasks[task.InputPath] = task
	ui.tracksMutex.Unlock()

	// Debounce list refreshes; the final refresh happens when the batch ends
	ui.uiUpdateMutex.Lock()
	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce && !task.Status.IsFinished() {
		ui.uiUpdateMutex.Unlock()
		return
	}
	ui.lastUIUpdate = now
	ui.uiUpdateMutex.Unlock()

	fyne.Do(ui.trackList.Refresh)
}

// onStateChange mirrors coordinator state; called from any goroutine
func (ui *RootUI) onStateChange(workflow.State) {
	fyne.Do(ui.syncFromCoordinator)
}

// syncFromCoordinator refreshes labels, progress and button enablement. UI goroutine only.
func (ui *RootUI) syncFromCoordinator() {
	state := ui.coordinator.State()

	ui.tracksMutex.Lock()
	ui.paths = ui.coordinator.Files()
	ui.tracksMutex.Unlock()

	if ui.statusLabel == nil {
		return
	}
	ui.statusLabel.SetText(ui.statusText(state))
	ui.progressBar.SetValue(state.Progress())
	ui.selectedLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeySelectedFormat), state.Selected))
	if state.Selected == 0 {
		ui.dropHint.Show()
	} else {
		ui.dropHint.Hide()
	}

	busy := ui.coordinator.IsBusy() || state.Phase.IsRunning()
	setEnabled(ui.addFilesBtn, !busy)
	setEnabled(ui.addFolderBtn, !busy)
	setEnabled(ui.clearBtn, !busy && state.Selected > 0)
	setEnabled(ui.convertBtn, !busy && ui.coordinator.CanConvert())
	if !ui.commitChecked || state.Phase != ui.commitPhase {
		ui.refreshCommitReady(state.Phase)
	}
	setEnabled(ui.commitBtn, !busy && ui.commitReady)

	ui.trackList.Refresh()
}

func (ui *RootUI) refreshCommitReady(phase workflow.Phase) {
	ui.commitReady = ui.canCommit()
	ui.commitPhase = phase
	ui.commitChecked = true
}

// scheduleCommitCheck rechecks commit readiness after folder edits stop for FolderCheckDelay
func (ui *RootUI) scheduleCommitCheck() {
	ui.folderMutex.Lock()
	defer ui.folderMutex.Unlock()
	if ui.folderTimer != nil {
		ui.folderTimer.Stop()
	}
	ui.folderTimer = time.AfterFunc(FolderCheckDelay, func() {
		fyne.Do(ui.recheckCommit)
	})
}

// recheckCommit rescans the output folder and updates the Commit button. UI goroutine only.
func (ui *RootUI) recheckCommit() {
	state := ui.coordinator.State()
	ui.refreshCommitReady(state.Phase)
	busy := ui.coordinator.IsBusy() || state.Phase.IsRunning()
	setEnabled(ui.commitBtn, !busy && ui.commitReady)
}

// statusText renders the coordinator state in the current language
func (ui *RootUI) statusText(state workflow.State) string {
	l := ui.localization
	commit := state.Operation == workflow.OperationCommit
	switch state.Phase {
	case workflow.PhaseConverting:
		if state.Done > 0 {
			return fmt.Sprintf(l.GetText(KeyStatusConvertProgress), state.Done, state.Total)
		}
		return l.GetText(KeyStatusConverting)
	case workflow.PhaseCommitting:
		return l.GetText(KeyStatusCommitting)
	case workflow.PhaseDone, workflow.PhasePartiallyFailed:
		if commit {
			return fmt.Sprintf(l.GetText(KeyStatusCommitDone), state.Committed)
		}
		return fmt.Sprintf(l.GetText(KeyStatusConvertDone), state.Succeeded, state.Total)
	case workflow.PhaseFailed:
		if commit {
			return l.GetText(KeyStatusCommitFailed)
		}
		return l.GetText(KeyStatusConvertFailed)
	default:
		return l.GetText(KeyStatusReady)
	}
}

func (ui *RootUI) trackCount() int {
	ui.tracksMutex.RLock()
	defer ui.tracksMutex.RUnlock()
	return len(ui.paths)
}

func (ui *RootUI) updateTrackRow(id widget.ListItemID, obj fyne.CanvasObject) {
	row, ok := obj.(*TrackRow)
	if !ok {
		return
	}

	ui.tracksMutex.RLock()
	if id < 0 || id >= len(ui.paths) {
		ui.tracksMutex.RUnlock()
		return
	}
	path := ui.paths[id]
	info, known := ui.infos[path]
	task := ui.tasks[path]
	ui.tracksMutex.RUnlock()

	if !known {
		info = platform.TrackInfo{Path: path, Title: model.Stem(path)}
	}
	status, errMsg := model.TaskStatusPending, ""
	if task != nil {
		status, errMsg = task.Status, task.LastError
	}
	row.Update(info, status, errMsg)
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

