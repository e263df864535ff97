package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tara-vision/readmegen/internal/analysis"
	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/remote"
)

var (
	cfgFile string
	Version = "dev"
)

// Config is the resolved configuration of one invocation
type Config struct {
	Host        string `mapstructure:"host" validate:"omitempty,url"`
	Key         string `mapstructure:"key"`
	Model       string `mapstructure:"model"`
	Vendor      string `mapstructure:"vendor" validate:"omitempty,oneof=auto openai gemini google vllm ollama llama.cpp llamacpp llama"`
	OpenAIKey   string `mapstructure:"openai_api_key"`
	GeminiKey   string `mapstructure:"gemini_api_key"`
	GitHubToken string `mapstructure:"github_token"`
	GitHubAPI   string `mapstructure:"github_api" validate:"omitempty,url"`
	NoSpinner   bool   `mapstructure:"no_spinner"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" validate:"oneof=text json"`

	Fetch struct {
		MaxFiles int           `mapstructure:"max_files" validate:"min=1,max=200"`
		Delay    time.Duration `mapstructure:"delay" validate:"min=0"`
	} `mapstructure:"fetch"`

	Analysis struct {
		BatchDelay time.Duration `mapstructure:"batch_delay" validate:"min=0"`
		CacheSize  int           `mapstructure:"cache_size" validate:"min=1"`
	} `mapstructure:"analysis"`
}

var rootCmd = &cobra.Command{
	Use:     "readmegen",
	Version: Version,
	Short:   "readmegen - README generator for GitHub repositories",
	Long: `readmegen analyzes a GitHub repository and writes a README for it.

It fetches a bounded set of important files, extracts signals from them with
a generation service (OpenAI, Gemini, vLLM, Ollama or llama.cpp), summarizes
the project and renders the README. Without a generation service it falls
back to heuristics and a built-in template.

Run without arguments for the interactive prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return startREPL(cmd.Context(), cfg)
	},
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.readmegen/config.yaml)")
	flags.String("host", "", "generation server URL (e.g., http://ollama.tara.lab)")
	flags.String("key", "", "generation API key (falls back to OPENAI_API_KEY / GEMINI_API_KEY)")
	flags.String("model", "", "model name (optional, vendor default or auto-detected from server)")
	flags.String("vendor", "", "generation vendor (auto, openai, gemini, vllm, ollama, llama.cpp)")
	flags.String("github-token", "", "GitHub token (falls back to GITHUB_TOKEN)")
	flags.Bool("no-spinner", false, "disable spinner animations")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	viper.BindPFlag("host", flags.Lookup("host"))
	viper.BindPFlag("key", flags.Lookup("key"))
	viper.BindPFlag("model", flags.Lookup("model"))
	viper.BindPFlag("vendor", flags.Lookup("vendor"))
	viper.BindPFlag("github_token", flags.Lookup("github-token"))
	viper.BindPFlag("no_spinner", flags.Lookup("no-spinner"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("fetch.max_files", remote.DefaultImportantLimit)
	v.SetDefault("fetch.delay", remote.DefaultFetchDelay)
	v.SetDefault("analysis.batch_delay", analysis.DefaultBatchDelay)
	v.SetDefault("analysis.cache_size", analysis.DefaultCacheSize)

	v.BindEnv("github_token", "READMEGEN_GITHUB_TOKEN", "GITHUB_TOKEN")
	v.BindEnv("openai_api_key", "READMEGEN_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("gemini_api_key", "READMEGEN_GEMINI_API_KEY", "GEMINI_API_KEY")
	v.BindEnv("github_api", "READMEGEN_GITHUB_API")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("READMEGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".readmegen"), nil
}

// loadConfig unmarshals and validates the configuration, then installs the
// default logger it describes
func loadConfig() (Config, error) {
	cfg, err := decodeConfig(viper.GetViper())
	if err != nil {
		return Config{}, err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("read configuration: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// generationOptions resolves which generation service to use. ok is false
// when no vendor, host or key is configured and the run should use
// heuristics only.
func generationOptions(cfg Config) (opts provider.Options, ok bool) {
	opts = provider.Options{Vendor: cfg.Vendor, Host: cfg.Host, APIKey: cfg.Key, Model: cfg.Model}

	if opts.APIKey == "" {
		switch provider.ParseVendorConfig(cfg.Vendor) {
		case provider.TypeGemini:
			opts.APIKey = cfg.GeminiKey
		case provider.TypeOpenAI:
			opts.APIKey = cfg.OpenAIKey
		case provider.TypeUnknown:
			if cfg.Host != "" {
				break
			}
			if cfg.OpenAIKey != "" {
				opts.Vendor, opts.APIKey = "openai", cfg.OpenAIKey
			} else if cfg.GeminiKey != "" {
				opts.Vendor, opts.APIKey = "gemini", cfg.GeminiKey
			}
		}
	}
	explicit := provider.ParseVendorConfig(cfg.Vendor) != provider.TypeUnknown
	return opts, explicit || opts.Host != "" || opts.APIKey != ""
}
