// cmd/repoqa/search.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m32rimm/repoqa/internal/cache"
	"github.com/m32rimm/repoqa/internal/config"
	"github.com/m32rimm/repoqa/internal/eval"
	"github.com/m32rimm/repoqa/internal/index"
	"github.com/m32rimm/repoqa/internal/search"
	"github.com/m32rimm/repoqa/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed tree",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	searchK          int
	searchIndexPath  string
	searchJSONOutput string
	searchQuestionID string
)

func init() {
	searchCmd.Flags().IntVar(&searchK, "k", 0, "number of results (default from config)")
	searchCmd.Flags().StringVar(&searchIndexPath, "index", "", "index database path (default from config)")
	searchCmd.Flags().StringVar(&searchJSONOutput, "json", "", "write results to a JSON file")
	searchCmd.Flags().StringVar(&searchQuestionID, "question-id", "single_query", "question id recorded in JSON output")
	rootCmd.AddCommand(searchCmd)
}

// resultLine is the cacheable, printable form of one ranked chunk.
type resultLine struct {
	FilePath   string  `json:"file_path"`
	StartChar  int     `json:"start_char"`
	EndChar    int     `json:"end_char"`
	Score      float64 `json:"score"`
	SymbolName string  `json:"symbol_name,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := joinArgs(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	k := searchK
	if k == 0 {
		k = cfg.Search.DefaultK
	}

	indexPath := searchIndexPath
	if indexPath == "" {
		indexPath = cfg.Storage.IndexPath
	}

	ctx := context.Background()

	qc := openQueryCache(cfg)
	if qc != nil {
		defer qc.Close()
	}

	lines, err := cachedSearch(ctx, qc, cfg, indexPath, query, k)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		fmt.Println("No results found")
	}
	for i, line := range lines {
		fmt.Printf("%2d. %8.3f  %s [%d:%d)", i+1, line.Score, line.FilePath,
			line.StartChar, line.EndChar)
		if line.SymbolName != "" {
			fmt.Printf("  (%s)", line.SymbolName)
		}
		fmt.Println()
	}

	if searchJSONOutput != "" {
		results := linesToResults(lines, searchQuestionID, k)
		if err := writeJSON(searchJSONOutput, results); err != nil {
			return err
		}
		fmt.Printf("\nResults written to %s\n", searchJSONOutput)
	}

	return nil
}

// cachedSearch consults the query cache before running the engine. Cache
// failures degrade to an uncached search, never to an error.
func cachedSearch(ctx context.Context, qc *cache.RedisCache, cfg *config.Config, indexPath, query string, k int) ([]resultLine, error) {
	var key string
	if qc != nil {
		version, err := qc.GetIndexVersion(ctx, indexPath)
		if err == nil {
			key = cache.QueryCacheKey(indexPath, query, k, version)
			if cached, err := qc.Get(ctx, key); err == nil && cached != "" {
				var lines []resultLine
				if json.Unmarshal([]byte(cached), &lines) == nil {
					return lines, nil
				}
			}
		}
	}

	results, err := runEngine(ctx, cfg, indexPath, query, k)
	if err != nil {
		return nil, err
	}

	lines := toLines(results)
	if qc != nil && key != "" {
		if payload, err := json.Marshal(lines); err == nil {
			if err := qc.Set(ctx, key, string(payload), 15*time.Minute); err != nil {
				slog.Warn("failed to cache results", "error", err)
			}
		}
	}

	return lines, nil
}

// runEngine loads the persisted index and executes one query against it.
func runEngine(ctx context.Context, cfg *config.Config, indexPath, query string, k int) ([]search.Result, error) {
	st, err := store.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}
	defer st.Close()

	ix, err := st.Load(ctx)
	if err != nil {
		if err == index.ErrNotIndexed {
			return nil, fmt.Errorf("no index at %s: run 'repoqa index' first", indexPath)
		}
		return nil, fmt.Errorf("load index: %w", err)
	}

	engine := search.NewEngine(ix, search.Params{
		K1:    cfg.Search.K1,
		B:     cfg.Search.B,
		Delta: cfg.Search.Delta,
	})

	return engine.Search(query, k)
}

func openQueryCache(cfg *config.Config) *cache.RedisCache {
	if cfg.Storage.RedisURL == "" {
		return nil
	}
	qc, err := cache.NewRedisCache(cfg.Storage.RedisURL)
	if err != nil {
		slog.Warn("query cache unavailable", "error", err)
		return nil
	}
	return qc
}

func toLines(results []search.Result) []resultLine {
	lines := make([]resultLine, len(results))
	for i, r := range results {
		lines[i] = resultLine{
			FilePath:   r.Chunk.FilePath,
			StartChar:  r.Chunk.StartChar,
			EndChar:    r.Chunk.EndChar,
			Score:      r.Score,
			SymbolName: r.Chunk.SymbolName,
		}
	}
	return lines
}

func linesToResults(lines []resultLine, questionID string, k int) *eval.Results {
	sources := make([]eval.Source, len(lines))
	for i, line := range lines {
		sources[i] = eval.Source{
			FilePath:            line.FilePath,
			FirstCharacterIndex: line.StartChar,
			LastCharacterIndex:  line.EndChar,
		}
	}

	return &eval.Results{
		SearchResults: []eval.SearchResult{{
			QuestionID:       questionID,
			RetrievedSources: sources,
		}},
		K: k,
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func joinArgs(args []string) string {
	query := args[0]
	for _, arg := range args[1:] {
		query += " " + arg
	}
	return query
}
