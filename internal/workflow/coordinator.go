package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ytget/stellaris-music/internal/asset"
	"github.com/ytget/stellaris-music/internal/convert"
	"github.com/ytget/stellaris-music/internal/model"
	"github.com/ytget/stellaris-music/internal/platform"
)

// Status messages
const (
	StatusReady           = "Ready"
	StatusConverting      = "Converting..."
	StatusConvertProgress = "Converting... %d/%d"
	StatusConvertDone     = "Conversion complete! %d of %d files processed."
	StatusConvertFailed   = "Conversion failed."
	StatusCommitting      = "Committing files to Stellaris..."
	StatusCommitDone      = "Successfully committed %d songs!"
	StatusCommitFailed    = "Commit failed."
)

var (
	// ErrBusy is returned when an operation is requested while another one runs
	ErrBusy = errors.New("another operation is already running")

	// ErrNotReady is returned when an operation's preconditions are not met
	ErrNotReady = errors.New("operation is not ready to run")

	// ErrNoFiles is the reason conversion is not ready when nothing is selected
	ErrNoFiles = errors.New("no files selected")

	// ErrNoOutputDir is the reason conversion is not ready when the output folder is blank
	ErrNoOutputDir = errors.New("output folder is not set")
)

// CommitFunc writes the song definition files and returns the track count
type CommitFunc func(sourceDir, destDir string) (int, error)

// Coordinator drives conversion and commit over the current selection and folders
type Coordinator struct {
	converter   convert.Converter
	commit      CommitFunc
	selection   *model.Selection
	maxParallel int

	// busy guards both operations; only one may run at a time
	busy atomic.Bool

	mu        sync.RWMutex
	outputDir string
	destDir   string
	phase     Phase
	status    string
	done      int
	total     int
	operation Operation
	succeeded int
	committed int

	subsMutex   sync.RWMutex
	subscribers []func(State)
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithMaxParallel limits concurrent conversions; zero or less means one worker per file
func WithMaxParallel(n int) Option {
	return func(c *Coordinator) {
		c.maxParallel = n
	}
}

// WithCommitFunc replaces the asset writer
func WithCommitFunc(fn CommitFunc) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.commit = fn
		}
	}
}

// WithFolders sets the initial output and destination folders
func WithFolders(outputDir, destDir string) Option {
	return func(c *Coordinator) {
		c.outputDir = outputDir
		c.destDir = destDir
	}
}

// NewCoordinator creates a coordinator around the given converter
func NewCoordinator(converter convert.Converter, opts ...Option) *Coordinator {
	c := &Coordinator{
		converter: converter,
		commit:    asset.Commit,
		selection: model.NewSelection(),
		phase:     PhaseIdle,
		status:    StatusReady,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn may be called from conversion goroutines.
func (c *Coordinator) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	c.subsMutex.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.subsMutex.Unlock()
}

// State returns the current snapshot
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		OutputDir: c.outputDir,
		DestDir:   c.destDir,
		Selected:  c.selection.Len(),
		Phase:     c.phase,
		Status:    c.status,
		Done:      c.done,
		Total:     c.total,
		Operation: c.operation,
		Succeeded: c.succeeded,
		Committed: c.committed,
	}
}

// Files returns the selected track references
func (c *Coordinator) Files() []string {
	return c.selection.Paths()
}

// AddFiles selects paths that are not already selected and returns how many were new
func (c *Coordinator) AddFiles(paths ...string) int {
	added := c.selection.Add(paths...)
	if added > 0 {
		c.notify()
	}
	return added
}

// ClearFiles empties the selection
func (c *Coordinator) ClearFiles() {
	c.selection.Clear()
	c.notify()
}

// SetOutputDir sets the folder converted tracks are written to
func (c *Coordinator) SetOutputDir(dir string) {
	c.mu.Lock()
	c.outputDir = strings.TrimSpace(dir)
	c.mu.Unlock()
	c.notify()
}

// SetDestDir sets the game music folder the definition files are written to
func (c *Coordinator) SetDestDir(dir string) {
	c.mu.Lock()
	c.destDir = strings.TrimSpace(dir)
	c.mu.Unlock()
	c.notify()
}

// SetMaxParallel changes the worker limit for later conversions; zero or less means one worker per file
func (c *Coordinator) SetMaxParallel(n int) {
	c.mu.Lock()
	c.maxParallel = n
	c.mu.Unlock()
}

// IsBusy reports whether an operation is running
func (c *Coordinator) IsBusy() bool {
	return c.busy.Load()
}

// CanConvert reports whether there is something to convert and somewhere to put it
func (c *Coordinator) CanConvert() bool {
	return !c.IsBusy() && c.convertReady() == nil
}

// CanCommit reports whether the destination is set and converted tracks exist
func (c *Coordinator) CanCommit() bool {
	return !c.IsBusy() && c.commitReady() == nil
}

func (c *Coordinator) convertReady() error {
	state := c.State()
	if state.Selected == 0 {
		return fmt.Errorf("%w: %w", ErrNotReady, ErrNoFiles)
	}
	if state.OutputDir == "" {
		return fmt.Errorf("%w: %w", ErrNotReady, ErrNoOutputDir)
	}
	return nil
}

func (c *Coordinator) commitReady() error {
	state := c.State()
	if state.DestDir == "" {
		return fmt.Errorf("%w: %w", ErrNotReady, asset.ErrNoDestination)
	}
	if _, err := asset.Records(state.OutputDir); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

// ConvertAll converts every selected file into the output folder, one worker
// per file unless limited, and returns once every file has resolved. Per-file
// failures are reported in the result and never stop sibling conversions.
func (c *Coordinator) ConvertAll(ctx context.Context) (BatchResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return BatchResult{}, ErrBusy
	}
	defer c.busy.Store(false)
	if err := c.convertReady(); err != nil {
		return BatchResult{}, err
	}

	outputDir := c.State().OutputDir
	c.mu.RLock()
	maxParallel := c.maxParallel
	c.mu.RUnlock()
	paths := c.selection.Paths()
	total := len(paths)
	result := BatchResult{Total: total}

	c.begin(OperationConvert)
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		c.setPhase(PhaseFailed, StatusConvertFailed, 0, total)
		return result, fmt.Errorf("create output folder: %w", err)
	}

	c.setPhase(PhaseConverting, StatusConverting, 0, total)
	slog.Info("conversion started", slog.Int("files", total), slog.String("output", outputDir))

	var (
		wg        sync.WaitGroup
		completed atomic.Int64
		errs      = make([]error, total)
		sem       chan struct{}
	)
	if maxParallel > 0 {
		sem = make(chan struct{}, maxParallel)
	}

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			_, err := c.converter.Convert(ctx, path, outputDir)
			if err != nil {
				slog.Warn("conversion failed", slog.String("input", path), slog.String("error", err.Error()))
			}
			errs[i] = err

			n := int(completed.Add(1))
			c.setProgress(n, total)
		}(i, path)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			result.Failures = append(result.Failures, FileFailure{Path: paths[i], Err: err})
		}
	}
	result.Succeeded = total - len(result.Failures)
	c.mu.Lock()
	c.succeeded = result.Succeeded
	c.mu.Unlock()

	phase := PhaseDone
	if len(result.Failures) > 0 {
		phase = PhasePartiallyFailed
	}
	c.setPhase(phase, fmt.Sprintf(StatusConvertDone, result.Succeeded, total), total, total)
	slog.Info("conversion finished",
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed()),
		slog.Int("total", total),
	)
	return result, nil
}

// Commit writes songs.asset and songs.txt for the converted tracks into the
// destination folder and returns the number of unique tracks.
func (c *Coordinator) Commit() (int, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer c.busy.Store(false)
	if err := c.commitReady(); err != nil {
		return 0, err
	}

	state := c.State()
	c.begin(OperationCommit)
	c.setPhase(PhaseCommitting, StatusCommitting, 0, 0)

	count, err := c.commit(state.OutputDir, state.DestDir)
	if err != nil {
		c.setPhase(PhaseFailed, StatusCommitFailed, 0, 0)
		slog.Warn("commit failed", slog.String("destination", state.DestDir), slog.String("error", err.Error()))
		return 0, err
	}

	c.mu.Lock()
	c.committed = count
	c.mu.Unlock()
	c.setPhase(PhaseDone, fmt.Sprintf(StatusCommitDone, count), 0, 0)
	return count, nil
}

// begin records the operation being started and resets its counts
func (c *Coordinator) begin(op Operation) {
	c.mu.Lock()
	c.operation = op
	c.succeeded = 0
	c.committed = 0
	c.mu.Unlock()
}

func (c *Coordinator) setPhase(phase Phase, status string, done, total int) {
	c.mu.Lock()
	c.phase = phase
	c.status = status
	c.done = done
	c.total = total
	c.mu.Unlock()
	c.notify()
}

// setProgress records a completion; counts only move forward
func (c *Coordinator) setProgress(done, total int) {
	c.mu.Lock()
	if done > c.done {
		c.done = done
		c.status = fmt.Sprintf(StatusConvertProgress, done, total)
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) notify() {
	state := c.State()
	c.subsMutex.RLock()
	subs := make([]func(State), len(c.subscribers))
	copy(subs, c.subscribers)
	c.subsMutex.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}
