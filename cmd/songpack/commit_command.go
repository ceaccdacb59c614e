package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/stellaris-music/internal/platform"
	"github.com/ytget/stellaris-music/internal/workflow"
)

type commitFlags struct {
	out  string
	dest string
}

func (f *commitFlags) register(cmd *cobra.Command, withOut bool) {
	if withOut {
		cmd.Flags().StringVarP(&f.out, "out", "o", platform.DefaultOutputDirOrLocal(), "Folder holding converted .ogg tracks")
	}
	cmd.Flags().StringVarP(&f.dest, "dest", "d", platform.DefaultGameMusicDir(), "Stellaris music folder to write songs.asset and songs.txt into")
}

func newCommitCommand() *cobra.Command {
	flags := &commitFlags{}
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Write songs.asset and songs.txt for the converted tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}
	flags.register(cmd, true)
	return cmd
}

// runCommit writes the definitions; no encoder is needed so the converter is nil
func runCommit(cmd *cobra.Command, flags *commitFlags) error {
	coordinator := workflow.NewCoordinator(nil, workflow.WithFolders(flags.out, flags.dest))
	count, err := coordinator.Commit()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", coordinator.State().Status)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote definitions for %d tracks to %s\n", count, flags.dest)
	return nil
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	conv := &convertFlags{}
	commit := &commitFlags{}
	cmd := &cobra.Command{
		Use:   "build [flags] FILE|DIR...",
		Short: "Convert files, then commit every track in the output folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runConvert(cmd, ctx, conv, args)
			if err != nil && result.Succeeded == 0 {
				return err
			}
			commit.out = conv.out
			if commitErr := runCommit(cmd, commit); commitErr != nil {
				return commitErr
			}
			return err
		},
	}
	conv.register(cmd)
	commit.register(cmd, false)
	return cmd
}
