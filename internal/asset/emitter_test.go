package asset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("OggS"), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCommit_TwoTracks(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "theme1.ogg", "theme2.ogg")

	count, err := Commit(src, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	expectedAsset := "music = {\n\tname = \"theme1\"\n\tfile = \"theme1.ogg\"\n\tvolume = 0.80\n}\n" +
		"music = {\n\tname = \"theme2\"\n\tfile = \"theme2.ogg\"\n\tvolume = 0.80\n}\n"
	expectedPlaylist := "song = {\n\tname = \"theme1\"\n}\n" +
		"song = {\n\tname = \"theme2\"\n}\n"

	assert.Equal(t, expectedAsset, readFile(t, filepath.Join(dest, AssetFileName)))
	assert.Equal(t, expectedPlaylist, readFile(t, filepath.Join(dest, PlaylistFileName)))
}

func TestCommit_CollapsesDuplicateStems(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "A.ogg", "B.ogg", "A.OGG")

	count, err := Commit(src, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	asset := readFile(t, filepath.Join(dest, AssetFileName))
	assert.Equal(t, 2, strings.Count(asset, "music = {"))
	assert.Equal(t, 1, strings.Count(asset, "name = \"A\""))
	assert.Contains(t, asset, "file = \"A.ogg\"")

	playlist := readFile(t, filepath.Join(dest, PlaylistFileName))
	assert.Equal(t, 2, strings.Count(playlist, "song = {"))
}

func TestCommit_KeepsUppercaseExtensionWhenOnlyOne(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "Loud.OGG")

	_, err := Commit(src, dest)
	require.NoError(t, err)
	asset := readFile(t, filepath.Join(dest, AssetFileName))
	assert.Contains(t, asset, "name = \"Loud\"")
	assert.Contains(t, asset, "file = \"Loud.OGG\"")
	assert.NotContains(t, asset, "Loud.ogg")
}

func TestCommit_IgnoresOtherFilesAndSubdirectories(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "theme1.ogg", "notes.txt", "theme2.mp3")
	require.NoError(t, os.Mkdir(filepath.Join(src, "nested.ogg"), 0o755))
	touch(t, filepath.Join(src, "nested.ogg"), "deep.ogg")

	count, err := Commit(src, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCommit_MissingSource(t *testing.T) {
	dest := t.TempDir()

	count, err := Commit(filepath.Join(t.TempDir(), "absent"), dest)
	assert.ErrorIs(t, err, ErrSourceMissing)
	assert.Equal(t, 0, count)
	assertNoOutputs(t, dest)
}

func TestCommit_SourceIsFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file.ogg")

	_, err := Commit(filepath.Join(dir, "file.ogg"), t.TempDir())
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestCommit_EmptySource(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "readme.txt")

	count, err := Commit(src, dest)
	assert.ErrorIs(t, err, ErrNoTracks)
	assert.Equal(t, 0, count)
	assertNoOutputs(t, dest)
}

func TestCommit_BlankDestination(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "theme1.ogg")

	_, err := Commit(src, "  ")
	assert.ErrorIs(t, err, ErrNoDestination)
}

func TestCommit_CreatesDestination(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "theme1.ogg")
	dest := filepath.Join(t.TempDir(), "mod", "music")

	count, err := Commit(src, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.FileExists(t, filepath.Join(dest, AssetFileName))
}

func TestCommit_OverwritesPreviousOutput(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "theme1.ogg")
	require.NoError(t, os.WriteFile(filepath.Join(dest, AssetFileName), []byte("stale content that is long\n"), 0o644))

	_, err := Commit(src, dest)
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, filepath.Join(dest, AssetFileName)), "stale")
}

func TestCommit_Idempotent(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "zeta.ogg", "alpha.ogg", "mid.ogg")

	_, err := Commit(src, dest)
	require.NoError(t, err)
	firstAsset := readFile(t, filepath.Join(dest, AssetFileName))
	firstPlaylist := readFile(t, filepath.Join(dest, PlaylistFileName))

	_, err = Commit(src, dest)
	require.NoError(t, err)
	assert.Equal(t, firstAsset, readFile(t, filepath.Join(dest, AssetFileName)))
	assert.Equal(t, firstPlaylist, readFile(t, filepath.Join(dest, PlaylistFileName)))
}

func TestRecords_Sorted(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "c.ogg", "a.ogg", "b.ogg")

	records, err := Records(src)
	require.NoError(t, err)

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
		assert.Equal(t, TrackVolume, r.Volume)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestHasTracks(t *testing.T) {
	src := t.TempDir()
	assert.False(t, HasTracks(src))
	assert.False(t, HasTracks(filepath.Join(src, "absent")))

	touch(t, src, "one.ogg")
	assert.True(t, HasTracks(src))
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, RenderAsset(nil))
	assert.Empty(t, RenderPlaylist(nil))
}

func assertNoOutputs(t *testing.T, dest string) {
	t.Helper()
	assert.NoFileExists(t, filepath.Join(dest, AssetFileName))
	assert.NoFileExists(t, filepath.Join(dest, PlaylistFileName))
}

func TestCommit_FailedWriteKeepsPreviousPair(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "theme1.ogg")

	require.NoError(t, os.WriteFile(filepath.Join(dest, AssetFileName), []byte("old asset\n"), 0o644))
	// A directory where songs.txt belongs makes the second write fail
	require.NoError(t, os.Mkdir(filepath.Join(dest, PlaylistFileName), 0o755))

	count, err := Commit(src, dest)
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, err.Error(), PlaylistFileName)
	assert.Equal(t, "old asset\n", readFile(t, filepath.Join(dest, AssetFileName)))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staging files are left behind")
}

func TestReplaceAllAndRestore(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, AssetFileName), []byte("old asset\n"), 0o644))

	outputs := []output{
		{name: AssetFileName, content: "new asset\n"},
		{name: PlaylistFileName, content: "new playlist\n"},
	}
	require.NoError(t, replaceAll(dest, outputs))
	assert.Equal(t, "new asset\n", readFile(t, filepath.Join(dest, AssetFileName)))
	assert.Equal(t, "new playlist\n", readFile(t, filepath.Join(dest, PlaylistFileName)))

	restore(dest, []output{{name: AssetFileName, previous: []byte("old asset\n"), existed: true}, {name: PlaylistFileName}})
	assert.Equal(t, "old asset\n", readFile(t, filepath.Join(dest, AssetFileName)))
	assert.NoFileExists(t, filepath.Join(dest, PlaylistFileName))
}

func TestCommit_WritesOutputMode(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "theme1.ogg")

	_, err := Commit(src, dest)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, AssetFileName))
	require.NoError(t, err)
	assert.Equal(t, outputFileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
