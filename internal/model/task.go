package model

import (
	"path/filepath"
	"strings"
	"time"
)

// ConversionTask represents one input file handed to the encoder
type ConversionTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Elapsed returns how long the conversion ran, or zero if it has not finished
func (ct *ConversionTask) Elapsed() time.Duration {
	if ct.StartedAt.IsZero() || ct.FinishedAt.IsZero() {
		return 0
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}

// FileName returns the base name of the input file
func (ct *ConversionTask) FileName() string {
	return filepath.Base(ct.InputPath)
}

// Stem returns a file name with its extension removed
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
