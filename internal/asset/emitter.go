package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ytget/stellaris-music/internal/model"
)

// Output file names and the fixed track volume
const (
	AssetFileName    = "songs.asset"
	PlaylistFileName = "songs.txt"
	TrackExtension   = ".ogg"
	TrackVolume      = "0.80"

	outputFileMode os.FileMode = 0o644
)

var (
	// ErrSourceMissing is returned when the converted-tracks folder does not exist
	ErrSourceMissing = errors.New("the specified output folder does not exist")

	// ErrNoTracks is returned when the folder holds no .ogg files
	ErrNoTracks = errors.New("no .ogg files found in the output folder to commit")

	// ErrNoDestination is returned when no destination folder was given
	ErrNoDestination = errors.New("destination folder is not set")
)

// Record is one music entry: the track name, its file inside the music
// folder, and the playback volume.
type Record struct {
	Name   string
	File   string
	Volume string
}

// Commit scans sourceDir for .ogg tracks and overwrites songs.asset and
// songs.txt in destDir. It returns the number of unique tracks written.
// Nothing is written when a precondition fails, and the two files are
// replaced together: a failed write leaves the previous pair in place.
func Commit(sourceDir, destDir string) (int, error) {
	if strings.TrimSpace(destDir) == "" {
		return 0, ErrNoDestination
	}

	records, err := Records(sourceDir)
	if err != nil {
		return 0, err
	}

	outputs := []output{
		{name: AssetFileName, content: RenderAsset(records)},
		{name: PlaylistFileName, content: RenderPlaylist(records)},
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create destination folder: %w", err)
	}
	if err := replaceAll(destDir, outputs); err != nil {
		return 0, err
	}

	slog.Info("committed song assets",
		slog.String("source", sourceDir),
		slog.String("destination", destDir),
		slog.Int("tracks", len(records)),
	)
	return len(records), nil
}

type output struct {
	name    string
	content string

	tmpPath  string
	previous []byte
	existed  bool
}

// replaceAll stages every output as a temp file in dir, then renames them
// into place. If a rename fails, outputs already renamed get their previous
// content back.
func replaceAll(dir string, outputs []output) error {
	defer func() {
		for _, o := range outputs {
			if o.tmpPath != "" {
				_ = os.Remove(o.tmpPath)
			}
		}
	}()

	for i := range outputs {
		o := &outputs[i]
		tmpPath, err := writeTemp(dir, o.name, o.content)
		if err != nil {
			return fmt.Errorf("write %s: %w", o.name, err)
		}
		o.tmpPath = tmpPath

		target := filepath.Join(dir, o.name)
		previous, err := os.ReadFile(target)
		switch {
		case err == nil:
			o.previous, o.existed = previous, true
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("write %s: %w", o.name, err)
		}
	}

	for i := range outputs {
		o := &outputs[i]
		if err := os.Rename(o.tmpPath, filepath.Join(dir, o.name)); err != nil {
			restore(dir, outputs[:i])
			return fmt.Errorf("write %s: %w", o.name, err)
		}
		o.tmpPath = ""
	}
	return nil
}

func writeTemp(dir, name, content string) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if err := os.Chmod(f.Name(), outputFileMode); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func restore(dir string, replaced []output) {
	for _, o := range replaced {
		target := filepath.Join(dir, o.name)
		var err error
		if o.existed {
			err = os.WriteFile(target, o.previous, outputFileMode)
		} else {
			err = os.Remove(target)
		}
		if err != nil {
			slog.Warn("could not restore previous file", slog.String("file", target), slog.String("error", err.Error()))
		}
	}
}

// Records lists one record per unique track stem among the .ogg files directly
// inside dir, sorted by name. When the same stem exists with differently cased
// extensions, the lowercase .ogg file wins. Record.File is the name found on
// disk, so a lone Theme.OGG is referenced as "Theme.OGG", not "Theme.ogg":
// the game resolves the name case-sensitively on Linux installs.
func Records(dir string) ([]Record, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSourceMissing
		}
		return nil, fmt.Errorf("inspect output folder: %w", err)
	}
	if !info.IsDir() {
		return nil, ErrSourceMissing
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read output folder: %w", err)
	}

	byName := make(map[string]Record)
	for _, entry := range entries {
		if entry.IsDir() || !IsTrackFile(entry.Name()) {
			continue
		}
		name := model.Stem(entry.Name())
		if existing, ok := byName[name]; ok && filepath.Ext(existing.File) == TrackExtension {
			continue
		}
		byName[name] = Record{Name: name, File: entry.Name(), Volume: TrackVolume}
	}
	if len(byName) == 0 {
		return nil, ErrNoTracks
	}

	records := make([]Record, 0, len(byName))
	for _, r := range byName {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// HasTracks reports whether dir exists and holds at least one .ogg file
func HasTracks(dir string) bool {
	_, err := Records(dir)
	return err == nil
}

// IsTrackFile reports whether name has the .ogg extension, ignoring case
func IsTrackFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), TrackExtension)
}

// RenderAsset renders one music block per record
func RenderAsset(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString("music = {\n")
		b.WriteString("\tname = \"" + r.Name + "\"\n")
		b.WriteString("\tfile = \"" + r.File + "\"\n")
		b.WriteString("\tvolume = " + r.Volume + "\n")
		b.WriteString("}\n")
	}
	return b.String()
}

// RenderPlaylist renders one song block per record
func RenderPlaylist(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString("song = {\n")
		b.WriteString("\tname = \"" + r.Name + "\"\n")
		b.WriteString("}\n")
	}
	return b.String()
}
