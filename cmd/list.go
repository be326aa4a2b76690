// Package cmd implements the command-line interface for videoplayer.
package cmd

import (
	"fmt"
	"os"

	"github.com/fujifruity/videoplayer/color"
	"github.com/fujifruity/videoplayer/history"
	"github.com/fujifruity/videoplayer/library"
	"github.com/fujifruity/videoplayer/style"
	"github.com/fujifruity/videoplayer/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("resume", "r", false, "Show saved resume positions alongside the sources")
	listCmd.SetOut(os.Stdout)
}

// listCmd displays the playable sources found in the library directory.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playable sources in the media library",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := library.List()
		handleErr(err)

		if len(names) == 0 {
			cmd.Printf("no sources in %s\n", style.Fg(color.Yellow)(library.Path()))
			return
		}

		withResume := lo.Must(cmd.Flags().GetBool("resume"))

		cmd.Printf("%s %s\n\n", style.Title(util.Quantify(len(names), "source", "sources")), style.Faint(library.Path()))
		for _, name := range names {
			line := style.Fg(color.Purple)(name)

			if withResume {
				if record, ok := history.For(name); ok {
					line += style.Faint(fmt.Sprintf("  %s / %s",
						util.FormatDuration(record.Position()),
						util.FormatDuration(record.Duration()),
					))
				}
			}

			cmd.Println(line)
		}
	},
}
