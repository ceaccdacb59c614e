package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ytget/stellaris-music/internal/convert"
)

// commandContext carries the persistent flags shared by every subcommand
type commandContext struct {
	ffmpeg  string
	verbose bool

	// runner replaces ffmpeg in tests; nil runs the real executable
	runner convert.Runner
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithRunner(nil)
}

func newRootCommandWithRunner(runner convert.Runner) *cobra.Command {
	ctx := &commandContext{runner: runner}

	rootCmd := &cobra.Command{
		Use:           "songpack",
		Short:         "Convert audio into Stellaris music tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if ctx.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.ffmpeg, "ffmpeg", convert.FFmpegCommand, "Path to the ffmpeg executable")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newCommitCommand())
	rootCmd.AddCommand(newBuildCommand(ctx))

	return rootCmd
}

// newConverter builds the conversion service for the current flags
func (c *commandContext) newConverter() (*convert.Service, error) {
	opts := []convert.Option{convert.WithFFmpegCommand(c.ffmpeg)}
	if c.runner != nil {
		return convert.NewService(append(opts, convert.WithRunner(c.runner))...), nil
	}
	svc := convert.NewService(opts...)
	if err := svc.CheckEncoder(); err != nil {
		return nil, err
	}
	return svc, nil
}
