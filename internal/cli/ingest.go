package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"insight/internal/adapter/fs"
	"insight/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest review data files",
	Long: `Ingest review CSV files under the given directory into the keyword store
and, when embeddings are enabled, the semantic vector index. Files already
ingested and unchanged since are skipped.

Examples:
  insight ingest .            # Ingest reviews under the current directory
  insight ingest ./data       # Ingest a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := rootDir
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	walker := fs.NewWalker(cfg.Data.Includes, cfg.Data.Excludes)
	ingestUC := usecase.NewIngestUseCase(a.reviews, a.retriever, walker, a.cache, logger)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex

	progress := func(done, total int, file string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	result, err := ingestUC.Ingest(path, progress)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("Ingested %d files (%d skipped), %d rows stored, %d embedded.\n",
		result.FilesIngested, result.FilesSkipped, result.RowsAdded, result.RowsEmbedded)
	if len(result.Errors) > 0 {
		fmt.Printf("%d errors:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return nil
}
