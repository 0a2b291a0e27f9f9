package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/truthlens/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "truthlens",
	Short: "TruthLens - news credibility analysis with provider fallback",
	Long: `TruthLens analyzes a news article (raw text or a URL) and returns a
credibility verdict: a label (Trusted/Biased/Fake), a confidence score,
a probability distribution over the three labels and supporting
keywords.

The intelligence is delegated to external text-analysis providers
(generative models, claim scoring) tried in a fixed priority order; a
local keyword heuristic guarantees a well-formed result when every
remote provider is unavailable.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("truthlens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.truthlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.truthlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match TRUTHLENS_*
	viper.SetEnvPrefix("TRUTHLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration: defaults, then config
// file / TRUTHLENS_* env overrides via viper, then the conventional
// credential env vars.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	setString(&cfg.Providers.GeminiAPIKey, "providers.gemini_api_key")
	setString(&cfg.Providers.GeminiBaseURL, "providers.gemini_base_url")
	setString(&cfg.Providers.GeminiModel, "providers.gemini_model")
	setString(&cfg.Providers.OpenAIAPIKey, "providers.openai_api_key")
	setString(&cfg.Providers.OpenAIModel, "providers.openai_model")
	setString(&cfg.Providers.OpenAIBaseURL, "providers.openai_base_url")
	setString(&cfg.Providers.NewsAPIKey, "providers.newsapi_key")
	setString(&cfg.Providers.ClaimScoringBaseURL, "providers.claim_scoring_base_url")
	if viper.IsSet("providers.openai_kind") {
		cfg.Providers.OpenAIKind = model.OpenAIKind(viper.GetString("providers.openai_kind"))
	}
	if viper.IsSet("providers.claim_scoring_enabled") {
		cfg.Providers.ClaimScoringEnabled = viper.GetBool("providers.claim_scoring_enabled")
	}
	if viper.IsSet("providers.free_tier_only") {
		cfg.Providers.FreeTierOnly = viper.GetBool("providers.free_tier_only")
	}
	if viper.IsSet("scrape.enabled") {
		cfg.Scrape.Enabled = viper.GetBool("scrape.enabled")
	}
	if viper.IsSet("scrape.respect_robots") {
		cfg.Scrape.RespectRobots = viper.GetBool("scrape.respect_robots")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("history.enabled") {
		cfg.History.Enabled = viper.GetBool("history.enabled")
	}
	setString(&cfg.History.Path, "history.path")
	setString(&cfg.Server.Addr, "server.addr")
	setString(&cfg.LogLevel, "log_level")
	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}

	// Conventional credential env vars win over the config file.
	applyEnv(&cfg.Providers.GeminiAPIKey, "GEMINI_API_KEY")
	applyEnv(&cfg.Providers.OpenAIAPIKey, "OPENAI_API_KEY")
	applyEnv(&cfg.Providers.NewsAPIKey, "NEWSAPI_KEY")

	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}

func setString(target *string, key string) {
	if viper.IsSet(key) && viper.GetString(key) != "" {
		*target = viper.GetString(key)
	}
}

func applyEnv(target *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
	}
}

// newLogger builds the process logger from configuration.
func newLogger(cfg model.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
