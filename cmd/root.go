// Package cmd implements the command-line interface for videoplayer.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fujifruity/videoplayer/color"
	"github.com/fujifruity/videoplayer/constant"
	"github.com/fujifruity/videoplayer/history"
	"github.com/fujifruity/videoplayer/icon"
	"github.com/fujifruity/videoplayer/key"
	"github.com/fujifruity/videoplayer/library"
	"github.com/fujifruity/videoplayer/log"
	"github.com/fujifruity/videoplayer/media/sim"
	"github.com/fujifruity/videoplayer/player"
	"github.com/fujifruity/videoplayer/style"
	"github.com/fujifruity/videoplayer/tui"
	"github.com/fujifruity/videoplayer/util"
	"github.com/fujifruity/videoplayer/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., emoji, nerd, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("library", "L", "", "Media library directory to resolve sources in")
	lo.Must0(viper.BindPFlag(key.LibraryPath, rootCmd.PersistentFlags().Lookup("library")))

	rootCmd.Flags().Float64P("rate", "r", 0, "Initial playback rate, 0 starts paused")
	lo.Must0(viper.BindPFlag(key.PlayerRate, rootCmd.Flags().Lookup("rate")))

	rootCmd.Flags().Int64P("start", "s", 0, "Start position in milliseconds")
	rootCmd.Flags().BoolP("continue", "c", false, "Resume playback from the saved position")

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the videoplayer application.
var rootCmd = &cobra.Command{
	Use:   constant.Videoplayer + " [source]",
	Short: "A terminal video player with sync-accurate seeking and rate control",
	Long: style.New().Italic(true).Foreground(color.HiRed).
		Render("    - A terminal video player with sync-accurate seeking and rate control"),
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		sourceID, err := library.Resolve(strings.Join(args, " "))
		handleErr(err)

		startAt := time.Duration(lo.Must(cmd.Flags().GetInt64("start"))) * time.Millisecond
		if lo.Must(cmd.Flags().GetBool("continue")) && !cmd.Flags().Changed("start") {
			if record, ok := history.For(sourceID); ok {
				startAt = record.Position()
				log.Infof("resuming %q at %v", sourceID, startAt)
			}
		}

		opener := sim.NewOpener()
		opener.Register(sourceID, library.TrackFor(sourceID))

		p := player.New(opener)
		handleErr(p.Play(sourceID, startAt, false))

		handleErr(tui.Run(&tui.Options{Player: p}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
