// cmd/repoqa/evaluate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m32rimm/repoqa/internal/eval"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate retrieval recall against a labeled dataset",
	RunE:  runEvaluate,
}

var (
	evalResultsPath string
	evalTruthPath   string
	evalThreshold   float64
)

func init() {
	evaluateCmd.Flags().StringVar(&evalResultsPath, "results", "", "search results JSON file")
	evaluateCmd.Flags().StringVar(&evalTruthPath, "truth", "", "ground truth dataset JSON file")
	evaluateCmd.Flags().Float64Var(&evalThreshold, "threshold", eval.DefaultOverlapThreshold, "overlap threshold for a hit")
	_ = evaluateCmd.MarkFlagRequired("results")
	_ = evaluateCmd.MarkFlagRequired("truth")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	results, err := eval.LoadResults(evalResultsPath)
	if err != nil {
		return err
	}

	truth, err := eval.LoadDataset(evalTruthPath)
	if err != nil {
		return err
	}

	report := eval.EvaluateDataset(results, truth, evalThreshold)

	fmt.Printf("Recall@%d: %.4f\n", results.K, report.MeanRecall)
	fmt.Printf("  Questions evaluated: %d\n", report.Evaluated)
	if report.Skipped > 0 {
		fmt.Printf("  Skipped (no ground truth): %d\n", report.Skipped)
	}

	return nil
}
