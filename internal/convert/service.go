package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/stellaris-music/internal/model"
)

// FFmpeg constants for the fixed encoding profile
const (
	// Audio codec settings
	AudioCodec   = "libvorbis"
	AudioQuality = "5" // codec-native VBR scale

	// Executable and I/O constants
	FFmpegCommand      = "ffmpeg"
	FFmpegLogLevel     = "error"
	TaskIDPrefix       = "convert-"
	OutputExtensionOGG = ".ogg"

	// maxStderrTail bounds how much encoder output ends up in an error message
	maxStderrTail = 512
)

// ErrEncoderNotFound is returned when the ffmpeg executable cannot be resolved
var ErrEncoderNotFound = errors.New("ffmpeg executable not found")

// Service handles audio conversion operations
type Service struct {
	pathMutex  sync.RWMutex
	ffmpegPath string
	runner     Runner
	lookPath   func(string) (string, error)

	callbackMutex sync.RWMutex
	onUpdate      func(*model.ConversionTask) // callback for UI updates
}

// Option configures a Service
type Option func(*Service)

// WithFFmpegCommand overrides the ffmpeg executable name or path
func WithFFmpegCommand(path string) Option {
	return func(s *Service) {
		if strings.TrimSpace(path) != "" {
			s.ffmpegPath = path
		}
	}
}

// WithRunner replaces the process runner
func WithRunner(r Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.runner = r
		}
	}
}

// NewService creates a new conversion service
func NewService(opts ...Option) *Service {
	s := &Service{
		ffmpegPath: FFmpegCommand,
		runner:     execRunner{},
		lookPath:   exec.LookPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates.
// The callback is invoked from conversion goroutines and must be safe for concurrent use.
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.callbackMutex.Lock()
	s.onUpdate = callback
	s.callbackMutex.Unlock()
}

// SetFFmpegCommand changes the ffmpeg executable used by later conversions
func (s *Service) SetFFmpegCommand(path string) {
	if strings.TrimSpace(path) == "" {
		path = FFmpegCommand
	}
	s.pathMutex.Lock()
	s.ffmpegPath = path
	s.pathMutex.Unlock()
}

func (s *Service) ffmpeg() string {
	s.pathMutex.RLock()
	defer s.pathMutex.RUnlock()
	return s.ffmpegPath
}

// CheckEncoder verifies that the ffmpeg executable can be resolved
func (s *Service) CheckEncoder() error {
	ffmpeg := s.ffmpeg()
	if _, err := s.lookPath(ffmpeg); err != nil {
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, ffmpeg)
	}
	return nil
}

// Convert encodes inputPath to <outputDir>/<stem>.ogg, overwriting any existing
// output. The returned task is never nil and carries the terminal status even
// when an error is returned; a missing or directory input is reported as an
// Error task without running the encoder.
func (s *Service) Convert(ctx context.Context, inputPath, outputDir string) (*model.ConversionTask, error) {
	task := &model.ConversionTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: OutputPath(inputPath, outputDir),
		StartedAt:  time.Now(),
	}

	if err := checkInput(inputPath); err != nil {
		task.FinishedAt = task.StartedAt
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		s.notifyUpdate(task)
		return task, err
	}

	task.Status = model.TaskStatusConverting
	s.notifyUpdate(task)

	slog.Debug("converting track",
		slog.String("task", task.ID),
		slog.String("input", task.InputPath),
		slog.String("output", task.OutputPath),
	)

	stderr, err := s.runner.Run(ctx, s.ffmpeg(), BuildFFmpegArgs(task.InputPath, task.OutputPath)...)
	task.FinishedAt = time.Now()
	if err != nil {
		// Remove partial output file
		_ = os.Remove(task.OutputPath)

		convErr := fmt.Errorf("convert %s: %w", task.FileName(), err)
		if tail := stderrTail(stderr); tail != "" {
			convErr = fmt.Errorf("convert %s: %w: %s", task.FileName(), err, tail)
		}
		task.Status = model.TaskStatusError
		task.LastError = convErr.Error()
		s.notifyUpdate(task)
		return task, convErr
	}

	task.Status = model.TaskStatusCompleted
	s.notifyUpdate(task)
	return task, nil
}

// checkInput rejects inputs that are missing or are directories
func checkInput(inputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input file does not exist: %s", inputPath)
		}
		return fmt.Errorf("inspect input %s: %w", inputPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", inputPath)
	}
	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",           // Overwrite output file
		"-hide_banner", // Keep stderr to the actual error
		"-loglevel", FFmpegLogLevel,
		"-i", inputPath, // Input file
		"-vn",              // Drop cover art; the ogg muxer rejects image streams
		"-c:a", AudioCodec, // Audio codec
		"-q:a", AudioQuality, // VBR quality
		outputPath, // Output file
	}
}

// OutputPath derives the .ogg path for an input inside outputDir
func OutputPath(inputPath, outputDir string) string {
	return filepath.Join(outputDir, model.Stem(inputPath)+OutputExtensionOGG)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	s.callbackMutex.RLock()
	cb := s.onUpdate
	s.callbackMutex.RUnlock()
	if cb != nil {
		snapshot := *task
		cb(&snapshot)
	}
}

// stderrTail returns the last part of the encoder output on a single line
func stderrTail(stderr []byte) string {
	text := strings.TrimSpace(string(stderr))
	if len(text) > maxStderrTail {
		text = "..." + text[len(text)-maxStderrTail:]
	}
	return strings.Join(strings.Fields(text), " ")
}

// generateTaskID generates a unique task ID using UUID v7 so IDs sort by start time
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}

// execRunner runs commands with os/exec
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}
