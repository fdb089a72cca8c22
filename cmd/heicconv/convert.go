package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heicconv/internal/convert"
	"github.com/pdiddy/heicconv/internal/history"
	"github.com/pdiddy/heicconv/internal/session"
	"github.com/pdiddy/heicconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.heic>",
	Short: "Convert a HEIC file to JPG or PNG",
	Long: `Convert decodes a .heic file and writes a JPG or PNG with the same base
name in the same directory, replacing any file already there. The input is
decoded by content, so a PNG or JPEG payload named .heic converts as well.

JPG output is written at quality 95 unless --quality, converter.jpeg_quality
in the config file or HEICCONV_CONVERTER_JPEG_QUALITY says otherwise. Transparent pixels are blended onto white.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("format", "f", string(types.DefaultOutputKind), "output format: jpg or png")
	convertCmd.Flags().Int("quality", types.DefaultJPEGQuality, "JPEG quality factor, 1-100")
	convertCmd.Flags().Bool("history", false, "record the conversion in the history database")
	convertCmd.Flags().BoolP("verbose", "v", false, "print each conversion step to stderr")

	viper.BindPFlag(keyJPEGQuality, convertCmd.Flags().Lookup("quality"))
	viper.BindPFlag(keyHistoryEnabled, convertCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	kind, err := types.ParseOutputKind(format)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := loadConfig()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var steps io.Writer
	if verbose {
		steps = stderr
	}
	conv, err := convert.NewImageConverter(cfg.Converter, steps)
	if err != nil {
		return err
	}

	s := session.New(conv)
	s.SetFormat(kind)
	if err := s.Load(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(stdout, s.Status())

	input := s.Current()
	res, convErr := s.Convert()
	if cfg.History.Enabled {
		recordHistory(cmd.Context(), cfg.History, history.EntryFor(input, kind, res, convErr), stderr)
	}
	if convErr != nil {
		return convErr
	}

	fmt.Fprintf(stdout, "File converted successfully!\nSaved as: %s\n", filepath.Base(res.OutputPath))
	return nil
}

// recordHistory appends e to the history database. Failures are reported
// as warnings and never change the outcome of the conversion.
func recordHistory(ctx context.Context, cfg types.HistoryConfig, e history.Entry, w io.Writer) {
	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(w, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, e); err != nil {
		fmt.Fprintf(w, "warning: could not record history: %v\n", err)
	}
}

// report prints err the way the converter's dialogs title them.
func report(w io.Writer, err error) {
	switch convert.KindOf(err) {
	case convert.InvalidExtension:
		fmt.Fprintf(w, "Invalid File: %v\n", err)
	case convert.FileNotFound:
		fmt.Fprintf(w, "File Not Found: %v\n", err)
	case convert.DecodeFailure, convert.EncodeOrWriteFailure:
		fmt.Fprintf(w, "Conversion Error: Failed to convert file:\n%v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
