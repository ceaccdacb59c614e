package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_AddDeduplicates(t *testing.T) {
	s := NewSelection()

	added := s.Add("/music/a.mp3", "/music/b.wav", "/music/a.mp3")
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, s.Len())

	added = s.Add("/music/b.wav", "/music/c.flac")
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"/music/a.mp3", "/music/b.wav", "/music/c.flac"}, s.Paths())
}

func TestSelection_IgnoresBlank(t *testing.T) {
	s := NewSelection()

	assert.Equal(t, 0, s.Add("", "   "))
	assert.Equal(t, 0, s.Len())
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Add("/music/a.mp3")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("/music/a.mp3"))

	// Cleared paths can be selected again
	assert.Equal(t, 1, s.Add("/music/a.mp3"))
}

func TestSelection_PathsIsSnapshot(t *testing.T) {
	s := NewSelection()
	s.Add("/music/a.mp3")

	paths := s.Paths()
	paths[0] = "mutated"
	assert.True(t, s.Contains("/music/a.mp3"))
	assert.Equal(t, "/music/a.mp3", s.Paths()[0])
}

func TestIsSupportedAudio(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.flac", true},
		{"song.m4a", true},
		{"clip.mp4", true},
		{"song.ogg", true},
		{"notes.txt", false},
		{"cover.jpg", false},
		{"noext", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, IsSupportedAudio(test.path), test.path)
	}
}
