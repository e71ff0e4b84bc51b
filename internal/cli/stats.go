package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	rows, err := a.reviews.Count()
	if err != nil {
		return fmt.Errorf("failed to count reviews: %w", err)
	}

	fmt.Printf("Keyword store:  %d review rows\n", rows)
	fmt.Printf("Vector index:   %d entries", a.vectors.Size())
	if dim := a.vectors.Dimension(); dim > 0 {
		fmt.Printf(" (dimension %d)", dim)
	}
	fmt.Println()

	return nil
}
