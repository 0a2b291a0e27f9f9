package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthlens/internal/analyzer"
	"github.com/ppiankov/truthlens/internal/model"
)

var (
	checkTimeout time.Duration
	checkJSON    bool
	noScrape     bool
	noCache      bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <text-or-url>",
	Short: "Analyze a news article for credibility",
	Long: `Check runs one credibility analysis and prints the verdict.

The argument is either raw article text or an http(s) URL. URL content
is resolved through a news-search lookup or a direct fetch before
analysis.

Example:
  truthlens check "Scientists discover shocking secret they don't want you to know"
  truthlens check https://example.com/news/article --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 60*time.Second, "overall analysis timeout")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the raw JSON result")
	checkCmd.Flags().BoolVar(&noScrape, "no-scrape", false, "disable generic fetch-and-extract for URLs")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable content caching")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := loadConfig()
	if noScrape {
		cfg.Scrape.Enabled = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	log := newLogger(cfg)
	a := analyzer.New(cfg, log)

	result, err := a.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if checkJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printResult(result)
	return nil
}

func printResult(result model.AnalysisResult) {
	fmt.Printf("Label:      %s\n", result.Label)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Probabilities:\n")
	fmt.Printf("  fake:    %.2f\n", result.Probabilities.Fake)
	fmt.Printf("  biased:  %.2f\n", result.Probabilities.Biased)
	fmt.Printf("  trusted: %.2f\n", result.Probabilities.Trusted)
	if len(result.Keywords) > 0 {
		fmt.Printf("Keywords:   %s\n", strings.Join(result.Keywords, ", "))
	}
	if result.Reasoning != "" {
		fmt.Printf("Reasoning:  %s\n", result.Reasoning)
	}
	if len(result.SimilarArticles) > 0 {
		fmt.Println("Similar articles:")
		for _, article := range result.SimilarArticles {
			fmt.Printf("  - %s (%s) %s\n", article.Title, article.Source, article.URL)
		}
	}
}
