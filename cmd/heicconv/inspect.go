package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/heicconv/internal/convert"
	"github.com/pdiddy/heicconv/internal/probe"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the detected type and dimensions of an image file",
	Long: `Inspect reads the leading bytes of a file to identify its format and
prints its pixel dimensions without decoding the image. For HEIF containers
the dimensions come from the primary item.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	info, err := probe.File(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	container := "raster"
	if info.HEIF {
		container = "HEIF"
	}
	fmt.Fprintf(out, "File:        %s\n", info.Path)
	fmt.Fprintf(out, "Type:        %s\n", info.MIME)
	fmt.Fprintf(out, "Container:   %s\n", container)
	fmt.Fprintf(out, "Dimensions:  %dx%d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Convertible: %t\n", convert.HasHEICExtension(info.Path))
	return nil
}
