package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ollamabridge/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version       string   `mapstructure:"version"`
	Path          string   `mapstructure:"path"`
	Include       []string `mapstructure:"include"`
	Exclude       []string `mapstructure:"exclude"`
	Model         string   `mapstructure:"model"`
	OllamaURL     string   `mapstructure:"ollama_url"`
	Focus         string   `mapstructure:"focus"`
	MaxFileBytes  int64    `mapstructure:"max_file_bytes"`
	MaxTotalBytes int64    `mapstructure:"max_total_bytes"`
	GeminiRefine  bool     `mapstructure:"gemini_refine"`
	GeminiModel   string   `mapstructure:"gemini_model"`
	GeminiAPIKey  string   `mapstructure:"gemini_api_key"`
	NoCache       bool     `mapstructure:"no_cache"`
	CacheDir      string   `mapstructure:"cache_dir"`
	Theme         string   `mapstructure:"theme"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:       "1.0.0",
	Path:          ".",
	Model:         "llama3.1",
	OllamaURL:     "http://localhost:11434",
	MaxFileBytes:  120_000,
	MaxTotalBytes: 400_000,
	GeminiModel:   "gemini-2.0-flash",
	CacheDir:      ".ollama_cache",
	Theme:         "dracula",
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for a configuration file in the current directory
		viper.SetConfigName("bridge-config")
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			// Missing config file is fine, defaults apply
			_ = viper.ReadInConfig()
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("path", DefaultConfig.Path)
	viper.SetDefault("model", DefaultConfig.Model)
	viper.SetDefault("ollama_url", DefaultConfig.OllamaURL)
	viper.SetDefault("max_file_bytes", DefaultConfig.MaxFileBytes)
	viper.SetDefault("max_total_bytes", DefaultConfig.MaxTotalBytes)
	viper.SetDefault("gemini_model", DefaultConfig.GeminiModel)
	viper.SetDefault("cache_dir", DefaultConfig.CacheDir)
	viper.SetDefault("theme", DefaultConfig.Theme)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("model", "OLLAMA_MODEL")
	_ = viper.BindEnv("ollama_url", "OLLAMA_URL")
	_ = viper.BindEnv("gemini_model", "GEMINI_MODEL")
	_ = viper.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("cache_dir", "BRIDGE_CACHE_DIR")
	_ = viper.BindEnv("theme", "THEME")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path"))
	_ = viper.BindPFlag("include", rootCmd.PersistentFlags().Lookup("include"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ollama_url", rootCmd.PersistentFlags().Lookup("ollama-url"))
	_ = viper.BindPFlag("focus", rootCmd.PersistentFlags().Lookup("focus"))
	_ = viper.BindPFlag("max_file_bytes", rootCmd.PersistentFlags().Lookup("max-file-bytes"))
	_ = viper.BindPFlag("max_total_bytes", rootCmd.PersistentFlags().Lookup("max-total-bytes"))
	_ = viper.BindPFlag("gemini_refine", rootCmd.PersistentFlags().Lookup("gemini-refine"))
	_ = viper.BindPFlag("gemini_model", rootCmd.PersistentFlags().Lookup("gemini-model"))
	_ = viper.BindPFlag("gemini_api_key", rootCmd.PersistentFlags().Lookup("gemini-api-key"))
	_ = viper.BindPFlag("no_cache", rootCmd.PersistentFlags().Lookup("no-cache"))
	_ = viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML).")

	rootCmd.PersistentFlags().String("path", DefaultConfig.Path, "Base path to scan.")
	rootCmd.PersistentFlags().StringArray("include", nil, "Glob pattern to include (repeatable).")
	rootCmd.PersistentFlags().StringArray("exclude", nil, "Glob pattern or folder name to exclude (repeatable).")
	rootCmd.PersistentFlags().String("model", DefaultConfig.Model, "Ollama model name.")
	rootCmd.PersistentFlags().String("ollama-url", DefaultConfig.OllamaURL, "Ollama base URL.")
	rootCmd.PersistentFlags().String("focus", "", "Comma-separated focus areas (bugs, security, performance).")
	rootCmd.PersistentFlags().Int64("max-file-bytes", DefaultConfig.MaxFileBytes, "Skip files larger than this.")
	rootCmd.PersistentFlags().Int64("max-total-bytes", DefaultConfig.MaxTotalBytes, "Stop after this many bytes of files.")
	rootCmd.PersistentFlags().Bool("gemini-refine", false, "Run Gemini to refine the offline analysis.")
	rootCmd.PersistentFlags().String("gemini-model", DefaultConfig.GeminiModel, "Gemini model name (requires GEMINI_API_KEY).")
	rootCmd.PersistentFlags().String("gemini-api-key", "", "Gemini API key (or set GEMINI_API_KEY env var).")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable result caching for Ollama analysis.")
	rootCmd.PersistentFlags().String("cache-dir", DefaultConfig.CacheDir, "Directory for cached analysis results.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Syntax highlighting theme for terminal output.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
