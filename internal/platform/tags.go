package platform

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/ytget/stellaris-music/internal/model"
)

// TrackInfo is what the track list shows for a selected file
type TrackInfo struct {
	Path   string
	Title  string
	Artist string
}

// DisplayName returns "Artist - Title" when both are known, else the title
func (ti TrackInfo) DisplayName() string {
	if ti.Artist != "" && ti.Title != "" {
		return ti.Artist + " - " + ti.Title
	}
	return ti.Title
}

// ReadTrackInfo reads the title and artist tags of an audio file, falling back
// to the file stem when the file has no readable tags.
func ReadTrackInfo(path string) TrackInfo {
	info := TrackInfo{Path: path, Title: model.Stem(path)}

	file, err := os.Open(path)
	if err != nil {
		slog.Debug("could not open audio file for tags", slog.String("path", path), slog.String("error", err.Error()))
		return info
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		slog.Debug("no readable tags", slog.String("path", path), slog.String("error", err.Error()))
		return info
	}

	if title := strings.TrimSpace(meta.Title()); title != "" {
		info.Title = title
	}
	info.Artist = strings.TrimSpace(meta.Artist())
	return info
}
