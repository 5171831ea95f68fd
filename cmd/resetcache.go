package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ollamabridge/code_analyzer"
	"ollamabridge/constants/lipgloss"
	"ollamabridge/utils"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the analysis result cache",
	Long: `The 'reset-cache' command removes all cached analysis results from the cache
directory. Use it to reclaim disk space or to force fresh analysis runs after
clearing corrupted entries.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")

		handleResetCacheCommand(force, stats, cmd)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(force bool, showStats bool, cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	if showStats {
		fmt.Println(lipgloss.Info.Render("Cache Statistics:"))
		if err := printCacheStats(os.Stdout, rootDependencies.Cache); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not read cache: %v", err)))
		}
		return
	}

	if !force {
		reader := bufio.NewReader(os.Stdin)
		accepted, err := utils.ConfirmPrompt("Are you sure you want to reset the analysis cache?", reader)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading confirmation: %v", err)))
			return
		}
		if !accepted {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start("Resetting analysis cache...")

	err := rootDependencies.Cache.Clear()
	if err == nil {
		rootDependencies.Cache.ResetPerformanceStats()
	}
	spinnerInstance.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resetting cache: %v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render("✓ Analysis cache has been successfully reset!"))
}

// printCacheStats writes the on-disk totals and this process's lookup
// counters for the cache.
func printCacheStats(w io.Writer, cache *code_analyzer.AnalysisCache) error {
	entries, totalSize, err := cache.StorageStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  Cache Directory: %s\n", cache.Dir())
	fmt.Fprintf(w, "  Cached Results: %d\n", entries)
	fmt.Fprintf(w, "  Total Size: %.2f MB\n", float64(totalSize)/(1024*1024))

	perf := cache.PerformanceStats()
	fmt.Fprintf(w, "  Cache Hits: %d\n", perf["cache_hits"])
	fmt.Fprintf(w, "  Cache Misses: %d\n", perf["cache_misses"])
	if hitRate, ok := perf["hit_rate_percent"].(float64); ok {
		fmt.Fprintf(w, "  Hit Rate: %.1f%%\n", hitRate)
	}

	return nil
}
