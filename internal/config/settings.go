package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/stellaris-music/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir    = "output_directory"
	KeyGameMusicDir = "game_music_directory"
	KeyFFmpegPath   = "ffmpeg_path"
	KeyMaxParallel  = "max_parallel_conversions"
	KeyLanguage     = "app_language"
	KeyRevealCommit = "reveal_on_commit"
)

// Default values
const (
	DefaultMaxParallel  = 0 // one worker per file
	MaxParallelLimit    = 32
	DefaultFFmpegPath   = "ffmpeg"
	DefaultLanguage     = "system"
	DefaultRevealCommit = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the folder converted tracks are written to
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir := platform.DefaultOutputDirOrLocal()
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetGameMusicDirectory returns the saved game music folder, or the Steam
// default when it exists. The result may be empty.
func (s *Settings) GetGameMusicDirectory() string {
	dir := s.app.Preferences().String(KeyGameMusicDir)
	if dir == "" {
		return platform.DefaultGameMusicDir()
	}
	return dir
}

// SetGameMusicDirectory sets the game music folder
func (s *Settings) SetGameMusicDirectory(dir string) {
	s.app.Preferences().SetString(KeyGameMusicDir, dir)
}

// GetFFmpegPath returns the ffmpeg executable name or path
func (s *Settings) GetFFmpegPath() string {
	return s.app.Preferences().StringWithFallback(KeyFFmpegPath, DefaultFFmpegPath)
}

// SetFFmpegPath sets the ffmpeg executable; blank restores the default
func (s *Settings) SetFFmpegPath(path string) {
	if path == "" {
		path = DefaultFFmpegPath
	}
	s.app.Preferences().SetString(KeyFFmpegPath, path)
}

// GetMaxParallelConversions returns the conversion worker limit; 0 means unlimited
func (s *Settings) GetMaxParallelConversions() int {
	return ClampParallel(s.app.Preferences().IntWithFallback(KeyMaxParallel, DefaultMaxParallel))
}

// SetMaxParallelConversions sets the conversion worker limit
func (s *Settings) SetMaxParallelConversions(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, ClampParallel(count))
}

// ClampParallel bounds a worker limit to 0..MaxParallelLimit
func ClampParallel(count int) int {
	if count < 0 {
		return 0
	}
	if count > MaxParallelLimit {
		return MaxParallelLimit
	}
	return count
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetRevealOnCommit returns whether to open the game music folder after a commit
func (s *Settings) GetRevealOnCommit() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealCommit, DefaultRevealCommit)
}

// SetRevealOnCommit sets whether to open the game music folder after a commit
func (s *Settings) SetRevealOnCommit(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealCommit, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
