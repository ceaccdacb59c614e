package model

import (
	"path/filepath"
	"strings"
	"sync"
)

// supportedAudioExtensions lists the inputs offered by the file picker and
// accepted from drag-and-drop. The encoder decides what it can actually read.
var supportedAudioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".m4a":  {},
	".mp4":  {},
	".ogg":  {},
	".aac":  {},
	".wma":  {},
	".opus": {},
}

// SupportedAudioExtensions returns the accepted extensions, dot included
func SupportedAudioExtensions() []string {
	return []string{".mp3", ".wav", ".flac", ".m4a", ".mp4", ".ogg", ".aac", ".wma", ".opus"}
}

// IsSupportedAudio reports whether the path has an accepted audio extension
func IsSupportedAudio(path string) bool {
	_, ok := supportedAudioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Selection is the ordered set of track references awaiting conversion.
// Paths are unique; entries are only ever removed all at once.
type Selection struct {
	mu    sync.RWMutex
	paths []string
	seen  map[string]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{seen: make(map[string]struct{})}
}

// Add appends paths that are not already selected and returns how many were new.
// Blank paths are ignored.
func (s *Selection) Add(paths ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, dup := s.seen[p]; dup {
			continue
		}
		s.seen[p] = struct{}{}
		s.paths = append(s.paths, p)
		added++
	}
	return added
}

// Contains reports whether the path is selected
func (s *Selection) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[path]
	return ok
}

// Paths returns a snapshot of the selected paths in insertion order
func (s *Selection) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Len returns the number of selected paths
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// Clear removes every selected path
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = nil
	s.seen = make(map[string]struct{})
}
