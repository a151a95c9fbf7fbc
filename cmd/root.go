// Package cmd implements the command-line interface for castdeck.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/castdeck/castdeck/color"
	"github.com/castdeck/castdeck/constant"
	"github.com/castdeck/castdeck/icon"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/player"
	"github.com/castdeck/castdeck/style"
	"github.com/castdeck/castdeck/tui"
	"github.com/castdeck/castdeck/util"
	"github.com/castdeck/castdeck/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("catalog", "C", "", "Catalog file (json or yaml) or http(s) URL to browse")
	lo.Must0(viper.BindPFlag(key.CatalogPath, rootCmd.PersistentFlags().Lookup("catalog")))

	rootCmd.PersistentFlags().StringP("player", "P", "", "Media surface backend to play through")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.Flags().BoolP("mini", "m", false, "Use the prompt-driven interface instead of the full TUI")

	// Leftover IPC sockets from crashed runs.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the castdeck application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "A terminal video deck for browsing a catalog and controlling playback",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal video deck for browsing a catalog and controlling playback"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if lo.Must(cmd.Flags().GetBool("mini")) {
			handleErr(launch(cmd.Context(), runMini))
			return
		}

		handleErr(launch(cmd.Context(), runTUI))
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
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

func runTUI(ctx context.Context, options *viewOptions) error {
	return tui.Run(ctx, &tui.Options{Session: options.session})
}
