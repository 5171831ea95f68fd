package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ollamabridge/code_analyzer"
	"ollamabridge/config"
	"ollamabridge/constants/lipgloss"
	contracts_provider "ollamabridge/providers/contracts"
	"ollamabridge/providers/ollama"
	"ollamabridge/token_management"
	contracts_token "ollamabridge/token_management/contracts"
)

var rootCmd = &cobra.Command{
	Use:   "ollamabridge",
	Short: "Offline code analysis with Ollama and optional Gemini refinement.",
	Long: `ollamabridge walks a source tree, assembles the collected files into one prompt,
sends it to a locally hosted Ollama endpoint, and prints the resulting analysis
as Markdown. Results are cached on disk keyed by the prompt content, and can
optionally be refined with a second pass through Gemini.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// RootDependencies holds the shared dependencies wired for every subcommand.
type RootDependencies struct {
	Config          *config.Config
	Cwd             string
	Cache           *code_analyzer.AnalysisCache
	OllamaProvider  contracts_provider.IAnalysisProvider
	TokenManagement contracts_token.ITokenManagement
}

func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(rootCmd, cwd)

	tokenManagement := token_management.NewTokenManager()

	return &RootDependencies{
		Config: cfg,
		Cwd:    cwd,
		Cache:  code_analyzer.NewAnalysisCache(cfg.CacheDir, cfg.NoCache),
		OllamaProvider: ollama.NewOllamaProvider(&ollama.OllamaConfig{
			BaseURL:         cfg.OllamaURL,
			Model:           cfg.Model,
			TokenManagement: tokenManagement,
		}),
		TokenManagement: tokenManagement,
	}
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on unrecoverable errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(err.Error()))
		os.Exit(1)
	}
}
