package main

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pxscale"
)

func init() {
	scaleReq.register(scaleCmd.Flags())
	scaleCmd.Flags().StringVarP(&scaleOutput, `output`, `o`, `out.png`, `output PNG file, "-" for stdout`)
	rootCmd.AddCommand(scaleCmd)
}

var (
	scaleReq    requestFlags
	scaleOutput string
)

var scaleCmd = &cobra.Command{
	Use:   "scale <input>",
	Short: "scale an image and write it as PNG",
	Long: `Scale an image and write it as PNG.

The input is a path, a file:// URI, or with --base64 the encoded image data.
Factors below 1 are clamped to 1: pxscale never shrinks an image.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScale(cmd, args[0], &scaleReq, scaleOutput)
	},
}

func runScale(cmd *cobra.Command, input string, f *requestFlags, output string) error {
	req, err := f.request()
	if err != nil {
		return err
	}
	src, format, err := loadSource(input, f.base64)
	if err != nil {
		return err
	}
	out, err := pxscale.Scale(src, req, f.options()...)
	if err != nil {
		return err
	}
	if err := writePNG(cmd.OutOrStdout(), output, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %dx%d -> %dx%d (%s)\n",
		format, src.Width(), src.Height(), out.Width(), out.Height(), req)
	return nil
}

// writePNG encodes r to path, or to stdout when path is "-".
func writePNG(stdout io.Writer, path string, r *pxscale.Raster) error {
	if path == "-" {
		return png.Encode(stdout, r.ToImage())
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, r.ToImage()); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}
