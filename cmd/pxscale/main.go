// Command pxscale scales pixel art without blurring it.
//
// Usage:
//
//	pxscale scale sprite.png -o big.png --scale 4.5 --mode fractional-optimized
//	pxscale scale --base64 'data:image/png;base64,iVBORw...' -o big.png --width 128
//	pxscale compare sprite.png --scale 4.5
//	pxscale info
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pxscale"
)

var rootCmd = &cobra.Command{
	Use:          "pxscale",
	Short:        "pixel-perfect image scaling",
	Long:         "pxscale scales pixel art by integer or fractional factors while keeping edges sharp.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			pxscale.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var verboseFlag bool

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, `verbose`, `v`, false, `log backend and fallback decisions to stderr`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
