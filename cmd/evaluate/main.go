package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/internal/bootstrap"
	"docqa/internal/eval"
	"docqa/internal/rag"
	"docqa/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		datasetPath string
		topK        int
		threshold   float64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score answer quality against a labeled ground-truth set",
		Long: `Runs every question from the ground-truth dataset through retrieval and
answer generation, then reports context recall, answer similarity,
faithfulness, hallucination rate, and latency.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.Context(), datasetPath, topK, threshold)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to the ground-truth JSON file (default from config)")
	cmd.Flags().IntVar(&topK, "top-k", 0, "chunks retrieved per question (default from config)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "faithfulness threshold for hallucination counting (default from config)")
	return cmd
}

func runEvaluate(ctx context.Context, datasetPath string, topK int, threshold float64) error {
	_ = godotenv.Load()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap.New(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close resources failed: %v", err)
		}
	}()

	if datasetPath == "" {
		datasetPath = app.Config.Eval.DatasetPath
	}
	if topK <= 0 {
		topK = app.Config.Index.TopK
	}
	if threshold <= 0 {
		threshold = app.Config.Eval.FaithfulnessThreshold
	}

	samples, err := eval.LoadDataset(datasetPath)
	if err != nil {
		return err
	}

	recordRepo := repository.NewEmbeddingRecordRepository(app.DB)
	index := rag.NewVectorIndex(recordRepo, app.AI)
	answerer := rag.NewAnswerGenerator(index, app.AI, topK, app.Config.Index.Diversity)
	harness := eval.NewHarness(index, answerer, app.AI, topK, threshold)

	report, err := harness.Evaluate(ctx, samples)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func printReport(r *eval.Report) {
	fmt.Println()
	fmt.Println("RAG Evaluation Results")
	fmt.Println()
	fmt.Printf("Samples               : %d\n", r.Samples)
	fmt.Printf("Context Recall        : %.2f\n", r.ContextRecallAvg)
	fmt.Printf("Answer Similarity     : %.2f\n", r.AnswerSimilarityAvg)
	fmt.Printf("Faithfulness Score    : %.2f\n", r.FaithfulnessAvg)
	fmt.Printf("Hallucination Rate    : %.2f%%\n", r.HallucinationRate*100)
	fmt.Printf("Average Latency (sec) : %.2f\n", r.AvgLatencySeconds)
}
