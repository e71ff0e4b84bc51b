package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Inspect retrieved evidence",
	Long: `Show the fused evidence set (vector results then keyword matches,
deduplicated and capped) that an analysis of the given audience would see.

Examples:
  insight search -q "mechanical keyboards"
  insight search -q "robot vacuum" --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "audience to search for (required)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	evidence := a.gatherer.Gather(searchQuery)

	if searchJSON {
		output, _ := json.MarshalIndent(evidence, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(evidence) == 0 {
		fmt.Println("No evidence found.")
		return nil
	}
	fmt.Printf("Found %d evidence entries for: %s\n\n", len(evidence), searchQuery)
	for i, item := range evidence {
		text := item
		if len(text) > 300 {
			text = text[:300] + "..."
		}
		fmt.Printf("[%d] %s\n", i+1, text)
	}

	return nil
}
