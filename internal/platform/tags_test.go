package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadTrackInfo_FallsBackToStem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Main Theme.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	info := ReadTrackInfo(path)
	if info.Title != "Main Theme" {
		t.Errorf("Expected title from stem, got %q", info.Title)
	}
	if info.Artist != "" {
		t.Errorf("Expected empty artist, got %q", info.Artist)
	}
	if info.Path != path {
		t.Errorf("Expected path %s, got %s", path, info.Path)
	}
}

func TestReadTrackInfo_MissingFile(t *testing.T) {
	info := ReadTrackInfo(filepath.Join(t.TempDir(), "gone.flac"))
	if info.Title != "gone" {
		t.Errorf("Expected title from stem, got %q", info.Title)
	}
}

func TestReadTrackInfo_ID3v1(t *testing.T) {
	// ID3v1 trailer: "TAG" + title(30) + artist(30) + album(30) + year(4) + comment(30) + genre(1)
	trailer := make([]byte, 128)
	copy(trailer, "TAG")
	copy(trailer[3:], "Galactic Dawn")
	copy(trailer[33:], "Composer")
	trailer[127] = 255

	data := append(make([]byte, 256), trailer...)
	path := filepath.Join(t.TempDir(), "track01.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	info := ReadTrackInfo(path)
	if info.Title != "Galactic Dawn" {
		t.Errorf("Expected tagged title, got %q", info.Title)
	}
	if info.DisplayName() != "Composer - Galactic Dawn" {
		t.Errorf("Unexpected display name %q", info.DisplayName())
	}
}

func TestTrackInfo_DisplayName(t *testing.T) {
	if got := (TrackInfo{Title: "Only Title"}).DisplayName(); got != "Only Title" {
		t.Errorf("Unexpected display name %q", got)
	}
}
