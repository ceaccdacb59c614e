package convert

import (
	"context"

	"github.com/ytget/stellaris-music/internal/model"
)

// Converter defines the interface for the transcoding service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	Convert(ctx context.Context, inputPath, outputDir string) (*model.ConversionTask, error)
	CheckEncoder() error
}

// Runner executes an external command and returns its stderr output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
