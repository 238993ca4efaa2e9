// cmd/repoqa/index.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/m32rimm/repoqa/internal/cache"
	"github.com/m32rimm/repoqa/internal/indexer"
	"github.com/m32rimm/repoqa/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a source tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

var indexOutputPath string

func init() {
	indexCmd.Flags().StringVar(&indexOutputPath, "index", "", "index database path (default from config)")
	rootCmd.AddCommand(indexCmd)
}

// printProgress reports file counts on one updating line.
type printProgress struct{}

func (printProgress) Step(done, total int, label string) {
	fmt.Printf("\rProcessing files... %d/%d", done, total)
	if done == total {
		fmt.Println()
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	rootPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if _, err := os.Stat(rootPath); os.IsNotExist(err) {
		return fmt.Errorf("path not found: %s", rootPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	indexPath := indexOutputPath
	if indexPath == "" {
		indexPath = cfg.Storage.IndexPath
	}

	fmt.Printf("Indexing %s...\n", rootPath)

	idx := indexer.New(cfg)
	ix, result, err := idx.Index(rootPath, printProgress{})
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	st, err := store.Open(indexPath)
	if err != nil {
		return fmt.Errorf("open index store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Save(ctx, ix); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	// Retire cached query results for the old snapshot.
	if cfg.Storage.RedisURL != "" {
		if qc, err := cache.NewRedisCache(cfg.Storage.RedisURL); err != nil {
			slog.Warn("query cache unavailable", "error", err)
		} else {
			if _, err := qc.IncrIndexVersion(ctx, indexPath); err != nil {
				slog.Warn("failed to bump index version", "error", err)
			}
			_ = qc.Close()
		}
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Files processed: %d\n", result.FilesProcessed)
	fmt.Printf("  Files skipped:   %d\n", result.FilesSkipped)
	fmt.Printf("  Chunks created:  %d\n", result.ChunksCreated)
	fmt.Printf("  Vocabulary:      %d terms\n", ix.VocabularySize())
	fmt.Printf("  Index saved to:  %s\n", indexPath)

	return nil
}
