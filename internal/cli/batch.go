package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthlens/internal/analyzer"
	"github.com/ppiankov/truthlens/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple inputs from a file concurrently",
	Long: `Batch reads analysis inputs from a file (one per line, raw text or a
URL, # comments and blank lines are skipped) and analyzes them with a
worker pool. Each result is written as a JSON file into the output
directory, and a summary is printed at the end.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "number of concurrent analyses")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output", "o", "results", "output directory for result JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	log := newLogger(cfg)
	a := analyzer.New(cfg, log)

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(a, batchConcurrency)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	var succeeded, failed int
	for i, res := range results {
		if res.Error != nil {
			failed++
			log.WithField("input", truncateInput(res.Input)).Warnf("analysis failed: %v", res.Error)
			continue
		}
		succeeded++

		path := filepath.Join(batchOutputDir, fmt.Sprintf("result-%03d.json", i+1))
		data, err := json.MarshalIndent(struct {
			Input  string      `json:"input"`
			Result interface{} `json:"result"`
		}{res.Input, res.Result}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
	}

	fmt.Printf("Batch complete: %d succeeded, %d failed, results in %s\n", succeeded, failed, batchOutputDir)
	return nil
}

func truncateInput(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
