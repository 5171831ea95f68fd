package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ollamabridge/code_analyzer"
	"ollamabridge/constants/lipgloss"
	"ollamabridge/providers/contracts"
	"ollamabridge/providers/gemini"
	"ollamabridge/providers/models"
	"ollamabridge/utils"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze code with Ollama",
	Long: `The 'analyze' subcommand walks the configured path, collects matching files
under the byte budgets, sends the assembled prompt to the Ollama endpoint, and
prints the analysis as Markdown on standard output. Identical inputs hit the
on-disk cache instead of re-running the model.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return fmt.Errorf("failed to initialize dependencies")
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return handleAnalyzeCommand(ctx, rootDependencies, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func handleAnalyzeCommand(ctx context.Context, rootDependencies *RootDependencies, out io.Writer) error {
	var refiner contracts.IRefinementProvider

	if rootDependencies.Config.GeminiRefine {
		// Fail on a missing credential before any work is done.
		var err error
		refiner, err = gemini.NewGeminiProvider(ctx, &gemini.GeminiConfig{
			APIKey: rootDependencies.Config.GeminiAPIKey,
			Model:  rootDependencies.Config.GeminiModel,
		})
		if err != nil {
			return err
		}
	}

	return runAnalyze(ctx, rootDependencies, refiner, out)
}

// runAnalyze executes the collection, caching, inference, and refinement
// pipeline. refiner is nil when no refinement pass was requested.
func runAnalyze(ctx context.Context, rootDependencies *RootDependencies, refiner contracts.IRefinementProvider, out io.Writer) error {
	cfg := rootDependencies.Config

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).WithWriter(os.Stderr)

	spinnerCollect, _ := spinner.Start("Collecting files...")

	// The cache root may live under the scan path; its entries must never
	// feed back into the prompt.
	exclude := cfg.Exclude
	if dir := rootDependencies.Cache.Dir(); dir != "" {
		exclude = append(exclude, filepath.Base(dir))
	}

	collector := code_analyzer.NewCodeCollector(code_analyzer.CollectorOptions{
		Root:          cfg.Path,
		Include:       cfg.Include,
		Exclude:       exclude,
		MaxFileBytes:  cfg.MaxFileBytes,
		MaxTotalBytes: cfg.MaxTotalBytes,
	})

	chunks, stats, err := collector.CollectFiles()
	spinnerCollect.Stop()
	if err != nil {
		return err
	}

	if len(chunks) == 0 {
		return fmt.Errorf("%w: adjust --include/--exclude", models.ErrNoFilesMatched)
	}

	if stats.SkippedTooLarge > 0 {
		fmt.Fprintln(os.Stderr, lipgloss.Yellow.Render(
			fmt.Sprintf("Skipped %d file(s) over --max-file-bytes", stats.SkippedTooLarge)))
	}

	prompt := code_analyzer.BuildPrompt(chunks, cfg.Focus)

	analysis, hit := rootDependencies.Cache.Get(prompt)
	if hit {
		fmt.Fprintln(os.Stderr, lipgloss.Gray.Render("Using cached analysis."))
	} else {
		spinnerAnalyze, _ := spinner.Start(fmt.Sprintf("Analyzing %d file(s) with %s...", len(chunks), cfg.Model))
		analysis, err = rootDependencies.OllamaProvider.Generate(ctx, prompt)
		spinnerAnalyze.Stop()
		if err != nil {
			return err
		}

		// A failed store still returns the fresh result to the user.
		if err := rootDependencies.Cache.Set(prompt, analysis); err != nil {
			log.Printf("Warning: failed to store cache entry: %v", err)
		}
	}

	if refiner != nil {
		spinnerRefine, _ := spinner.Start("Refining with Gemini...")
		refined, err := refiner.Refine(ctx, analysis)
		spinnerRefine.Stop()
		if err != nil {
			// The unrefined analysis is still printed before the run fails.
			if renderErr := utils.RenderMarkdown(out, analysis, cfg.Theme); renderErr != nil {
				return renderErr
			}
			return fmt.Errorf("refinement failed, unrefined analysis shown above: %w", err)
		}
		analysis = refined
	}

	if err := utils.RenderMarkdown(out, analysis, cfg.Theme); err != nil {
		return err
	}

	rootDependencies.TokenManagement.DisplayTokenUsage("ollama", cfg.Model)

	return nil
}
