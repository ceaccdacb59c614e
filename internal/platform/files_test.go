package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDefaultOutputDir(t *testing.T) {
	dir, err := DefaultOutputDir()
	if err != nil {
		t.Fatalf("Failed to get default output directory: %v", err)
	}

	if filepath.Base(dir) != DefaultOutputFolderName {
		t.Errorf("Expected directory to end with %q, got: %s", DefaultOutputFolderName, dir)
	}

	if filepath.Base(filepath.Dir(dir)) != DocumentsFolderName {
		t.Errorf("Expected parent to be %q, got: %s", DocumentsFolderName, dir)
	}
}

func TestDefaultOutputDirOrLocal(t *testing.T) {
	dir := DefaultOutputDirOrLocal()
	if filepath.Base(dir) != DefaultOutputFolderName {
		t.Errorf("Expected directory to end with %q, got: %s", DefaultOutputFolderName, dir)
	}

	t.Setenv("HOME", "")
	t.Setenv("USERPROFILE", "")
	if got, want := DefaultOutputDirOrLocal(), filepath.Join(".", DefaultOutputFolderName); got != want {
		t.Errorf("Expected local fallback %q without a home directory, got: %s", want, got)
	}
}

func TestGameMusicCandidates(t *testing.T) {
	tests := []struct {
		goos     string
		home     string
		pf86     string
		contains string
		count    int
	}{
		{OSWindows, "", `D:\Games`, "Steam", 1},
		{OSWindows, "", "", "Program Files (x86)", 1},
		{OSDarwin, "/Users/me", "", "Application Support", 1},
		{OSLinux, "/home/me", "", ".local", 2},
		{OSLinux, "", "", "", 0},
	}

	for _, test := range tests {
		candidates := GameMusicCandidates(test.goos, test.home, test.pf86)
		if len(candidates) != test.count {
			t.Errorf("%s: expected %d candidates, got %d", test.goos, test.count, len(candidates))
			continue
		}
		if test.count == 0 {
			continue
		}
		if !strings.Contains(candidates[0], test.contains) {
			t.Errorf("%s: expected %q in %s", test.goos, test.contains, candidates[0])
		}
		if filepath.Base(candidates[0]) != "music" {
			t.Errorf("%s: expected candidate to end with music, got %s", test.goos, candidates[0])
		}
	}
}

func TestFirstExistingDir(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "missing")
	file := filepath.Join(tempDir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := firstExistingDir([]string{missing, file, tempDir}); got != tempDir {
		t.Errorf("Expected %s, got %s", tempDir, got)
	}

	if got := firstExistingDir([]string{missing}); got != "" {
		t.Errorf("Expected empty result, got %s", got)
	}
}

func TestExpandDropped(t *testing.T) {
	tempDir := t.TempDir()
	folder := filepath.Join(tempDir, "album")
	if err := os.Mkdir(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(folder, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"b.flac", "a.mp3", "cover.jpg"} {
		if err := os.WriteFile(filepath.Join(folder, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(tempDir, "single.wav")
	notes := filepath.Join(tempDir, "notes.txt")
	for _, p := range []string{single, notes} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ExpandDropped([]string{single, notes, folder})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{single, filepath.Join(folder, "a.mp3"), filepath.Join(folder, "b.flac")}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %v", len(expected), files)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("File %d: expected %s, got %s", i, expected[i], files[i])
		}
	}
}

func TestExpandDropped_MissingPath(t *testing.T) {
	tempDir := t.TempDir()
	good := filepath.Join(tempDir, "good.mp3")
	if err := os.WriteFile(good, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ExpandDropped([]string{filepath.Join(tempDir, "gone.mp3"), good})
	if err == nil {
		t.Error("Expected error for missing path")
	}
	if len(files) != 1 || files[0] != good {
		t.Errorf("Expected remaining files to be kept, got %v", files)
	}
}

func TestOpenFolder_NonExistent(t *testing.T) {
	err := OpenFolder(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Error("Expected error for non-existent folder")
	}
}

func TestOpenFolder_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := OpenFolder(file); err == nil {
		t.Error("Expected error when opening a file as folder")
	}
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CreateDirectoryIfNotExists(file); err == nil {
		t.Error("Expected error when path is a file")
	}
	if err := CreateDirectoryIfNotExists(filepath.Join(file, "child")); err == nil {
		t.Error("Expected error when parent is a file")
	}
}
