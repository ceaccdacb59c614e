package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/ytget/stellaris-music/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Default folder names
const (
	DefaultOutputFolderName = "StellarisConvertedMusic"
	DocumentsFolderName     = "Documents"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// stellarisMusicSubpath is the game's music folder inside a Steam library
var stellarisMusicSubpath = []string{"steamapps", "common", "Stellaris", "music"}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dirPath)
	}
	return nil
}

// OpenFolder opens a directory in the system file manager
func OpenFolder(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", dirPath)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		// explorer exits with status 1 even on success
		_ = exec.Command(ExplorerCommand, absPath).Run()
		return nil
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFolderLinux tries xdg-open, then common file managers
func openFolderLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// DefaultOutputDir returns ~/Documents/StellarisConvertedMusic
func DefaultOutputDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DocumentsFolderName, DefaultOutputFolderName), nil
}

// DefaultOutputDirOrLocal is DefaultOutputDir, falling back to
// ./StellarisConvertedMusic when the home directory is unknown
func DefaultOutputDirOrLocal() string {
	dir, err := DefaultOutputDir()
	if err != nil {
		return filepath.Join(".", DefaultOutputFolderName)
	}
	return dir
}

// DefaultGameMusicDir returns the Stellaris music folder of the default Steam
// library when it exists, or an empty string.
func DefaultGameMusicDir() string {
	homeDir, _ := os.UserHomeDir()
	return firstExistingDir(GameMusicCandidates(runtime.GOOS, homeDir, os.Getenv("ProgramFiles(x86)")))
}

// GameMusicCandidates lists where Steam installs Stellaris on the given OS
func GameMusicCandidates(goos, homeDir, programFilesX86 string) []string {
	var roots []string
	switch goos {
	case OSWindows:
		if programFilesX86 == "" {
			programFilesX86 = `C:\Program Files (x86)`
		}
		roots = append(roots, filepath.Join(programFilesX86, "Steam"))
	case OSDarwin:
		if homeDir != "" {
			roots = append(roots, filepath.Join(homeDir, "Library", "Application Support", "Steam"))
		}
	default:
		if homeDir != "" {
			roots = append(roots,
				filepath.Join(homeDir, ".local", "share", "Steam"),
				filepath.Join(homeDir, ".steam", "steam"),
			)
		}
	}

	candidates := make([]string, 0, len(roots))
	for _, root := range roots {
		candidates = append(candidates, filepath.Join(append([]string{root}, stellarisMusicSubpath...)...))
	}
	return candidates
}

func firstExistingDir(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return ""
}

// ExpandDropped turns dropped paths into audio files: supported files are kept,
// folders contribute their directly contained supported files in name order,
// everything else is skipped.
func ExpandDropped(paths []string) ([]string, error) {
	var files []string
	var errs []error

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !info.IsDir() {
			if model.IsSupportedAudio(p) {
				files = append(files, p)
			}
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var inDir []string
		for _, entry := range entries {
			if !entry.IsDir() && model.IsSupportedAudio(entry.Name()) {
				inDir = append(inDir, filepath.Join(p, entry.Name()))
			}
		}
		sort.Strings(inDir)
		files = append(files, inDir...)
	}

	return files, errors.Join(errs...)
}
