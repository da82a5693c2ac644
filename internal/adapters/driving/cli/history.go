package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `Lists searches run from the command line, the TUI or the MCP server,
newest first, with the corpora searched and the number of documents found.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recorded searches",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of searches to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("search history not available")
	}

	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		cmd.Println("No searches recorded.")
		return nil
	}

	p := newPrinter(cmd)
	for _, e := range entries {
		tags := make([]string, len(e.Sources))
		for i, s := range e.Sources {
			tags[i] = s.String()
		}
		cmd.Printf("%s  %s  %s\n",
			p.dim(e.SearchedAt.Local().Format("2006-01-02 15:04")),
			p.title(e.Query),
			p.dim(fmt.Sprintf("[%s] %d found", strings.Join(tags, ","), e.NumFound)))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("search history not available")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Search history cleared.")
	return nil
}
