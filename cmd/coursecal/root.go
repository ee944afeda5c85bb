package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/coursecal/internal/config"
	"github.com/jackzampolin/coursecal/internal/extract"
	"github.com/jackzampolin/coursecal/internal/providers"
	"github.com/jackzampolin/coursecal/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "coursecal",
	Short: "Turn academic syllabi into structured calendar events",
	Long: `Coursecal extracts dated calendar events (assignments, exams, readings)
from free-form syllabus text.

Two extraction engines are available:
  - An LLM-backed extractor using a completion service
  - A deterministic pattern-based extractor

Both validate and repair their output: items whose dates cannot be
resolved are kept as undated activities instead of being dropped.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.coursecal/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildOrchestrator wires the extraction engines from loaded config.
func buildOrchestrator(cfg *config.Config, logger *slog.Logger) *extract.Orchestrator {
	client := providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:      cfg.ResolvedAPIKey(),
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})

	llm := extract.NewLLMExtractor(client, cfg.LLM.Enabled, logger)
	pattern := extract.NewPatternExtractor(logger)
	return extract.NewOrchestrator(llm, pattern, logger)
}
