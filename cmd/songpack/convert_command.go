package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ytget/stellaris-music/internal/config"
	"github.com/ytget/stellaris-music/internal/model"
	"github.com/ytget/stellaris-music/internal/platform"
	"github.com/ytget/stellaris-music/internal/workflow"
)

// ErrConversionFailed is returned when at least one input could not be converted
var ErrConversionFailed = errors.New("some files failed to convert")

type convertFlags struct {
	out  string
	jobs int
}

func (f *convertFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", platform.DefaultOutputDirOrLocal(), "Folder for converted .ogg tracks")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", config.DefaultMaxParallel, "Maximum parallel conversions (0 = one per file)")
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	flags := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert [flags] FILE|DIR...",
		Short: "Convert audio files into .ogg tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runConvert(cmd, ctx, flags, args)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// runConvert expands args, converts every supported file and prints a summary
func runConvert(cmd *cobra.Command, ctx *commandContext, flags *convertFlags, args []string) (workflow.BatchResult, error) {
	files, err := platform.ExpandDropped(args)
	if err != nil {
		slog.Warn("some inputs were skipped", slog.String("error", err.Error()))
	}
	if len(files) == 0 {
		return workflow.BatchResult{}, fmt.Errorf("%w: %w", workflow.ErrNotReady, workflow.ErrNoFiles)
	}

	slog.Debug("converting", slog.Int("count", len(files)), slog.Any("tracks", describeSelection(files)))

	converter, err := ctx.newConverter()
	if err != nil {
		return workflow.BatchResult{}, err
	}

	coordinator := workflow.NewCoordinator(converter,
		workflow.WithMaxParallel(config.ClampParallel(flags.jobs)),
		workflow.WithFolders(flags.out, ""),
	)
	coordinator.AddFiles(files...)

	bar := newProgressBar(cmd.ErrOrStderr(), len(files))
	coordinator.Subscribe(func(state workflow.State) {
		if state.Phase == workflow.PhaseConverting {
			_ = bar.Set(state.Done)
		}
	})

	result, err := coordinator.ConvertAll(cmd.Context())
	_ = bar.Finish()
	if err != nil {
		return result, err
	}

	if table := renderFailures(result.Failures); table != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), table)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", coordinator.State().Status)
	if result.Failed() > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrConversionFailed, result.Failed(), result.Total)
	}
	return result, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(strings.TrimSuffix(workflow.StatusConverting, "...")),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(isTerminal(w)),
	)
}

// describeSelection is used in debug logs
func describeSelection(files []string) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = model.Stem(f)
	}
	return names
}
