package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heicconv/internal/history"
	"github.com/pdiddy/heicconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long: `History lists conversions recorded with convert --history (or with
history.enabled in the config file), newest first. Use --json or --yaml to
export every entry.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")
	historyCmd.Flags().String("status", "", "filter by status: converted or failed")
	historyCmd.Flags().Bool("json", false, "export all entries as JSON")
	historyCmd.Flags().Bool("yaml", false, "export all entries as YAML")
	historyCmd.Flags().String("history-dir", "", "directory holding the history database")

	viper.BindPFlag(keyHistoryDir, historyCmd.Flags().Lookup("history-dir"))

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON && asYAML:
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	case asJSON:
		return store.ExportJSON(ctx, out)
	case asYAML:
		return store.ExportYAML(ctx, out)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	if status != "" && status != string(types.ConversionDone) && status != string(types.ConversionFailed) {
		return fmt.Errorf("invalid status %q: must be converted or failed", status)
	}

	entries, err := store.List(ctx, history.ListOptions{
		Limit:  limit,
		Status: types.ConversionStatus(status),
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No conversions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSTATUS\tFORMAT\tINPUT\tRESULT")
	for _, e := range entries {
		result := e.OutputPath
		if e.Status == types.ConversionFailed {
			result = e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ConvertedAt.Local().Format("2006-01-02 15:04:05"), e.Status, e.Kind.Label(), e.InputPath, result)
	}
	return tw.Flush()
}
