// cmd/repoqa/answer.go
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m32rimm/repoqa/internal/chunk"
	"github.com/m32rimm/repoqa/internal/llm"
	"github.com/m32rimm/repoqa/internal/search"
)

var answerCmd = &cobra.Command{
	Use:   "answer [question]",
	Short: "Answer a question using retrieved context",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnswer,
}

var (
	answerK          int
	answerIndexPath  string
	answerJSONOutput string
)

func init() {
	answerCmd.Flags().IntVar(&answerK, "k", 0, "number of chunks to retrieve (default from config)")
	answerCmd.Flags().StringVar(&answerIndexPath, "index", "", "index database path (default from config)")
	answerCmd.Flags().StringVar(&answerJSONOutput, "json", "", "write answer and sources to a JSON file")
	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, args []string) error {
	question := joinArgs(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	k := answerK
	if k == 0 {
		k = cfg.Search.DefaultK
	}

	indexPath := answerIndexPath
	if indexPath == "" {
		indexPath = cfg.Storage.IndexPath
	}

	ctx := context.Background()

	results, err := runEngine(ctx, cfg, indexPath, question, k)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No relevant context found")
		return nil
	}

	client := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.TokenBudget)

	answer, err := client.GenerateAnswer(ctx, question, resultChunks(results))
	if err != nil {
		return fmt.Errorf("generate answer: %w", err)
	}

	fmt.Println(answer)

	if answerJSONOutput != "" {
		record := linesToResults(toLines(results), "single_query", k)
		record.SearchResults[0].Answer = answer
		if err := writeJSON(answerJSONOutput, record); err != nil {
			return err
		}
		fmt.Printf("\nAnswer written to %s\n", answerJSONOutput)
	}

	return nil
}

func resultChunks(results []search.Result) []chunk.Chunk {
	chunks := make([]chunk.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks
}
