package main

import (
	"fmt"
	"io"

	"github.com/gogpu/gpucontext"
	"github.com/spf13/cobra"

	"github.com/gogpu/pxscale"
)

func init() { rootCmd.AddCommand(infoCmd) }

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "show version and GPU accelerator status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printInfo(cmd.OutOrStdout())
	},
}

// adapterReporter is implemented by accelerators that know their adapter.
type adapterReporter interface {
	AdapterInfo() (gpucontext.AdapterInfo, bool)
}

func printInfo(w io.Writer) {
	fmt.Fprintf(w, "pxscale %s\n", pxscale.Version)
	a := pxscale.Accelerator()
	if a == nil {
		fmt.Fprintln(w, "accelerator: none (hardware requests use the software path)")
		return
	}
	fmt.Fprintf(w, "accelerator: %s\n", a.Name())
	if r, ok := a.(adapterReporter); ok {
		if info, ok := r.AdapterInfo(); ok {
			fmt.Fprintf(w, "adapter:     %s (%s)\n", info.Name, info.Type)
		}
	}
}
