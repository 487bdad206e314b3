package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/slotparse/internal/logging"
	"github.com/ppiankov/slotparse/internal/model"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

var (
	cfgFile  string
	verbose  bool
	lang     string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slotparse",
	Short: "slotparse - extract normalized slot values from free text",
	Long: `slotparse finds numbers, ordinals, percentages, dates and times,
time intervals, amounts of money, temperatures and durations in free text
and prints them as normalized, kind-tagged values.

Supported languages: de, en, es, fr, it, ja, ko, pt, zh.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "slotparse %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.slotparse/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVarP(&lang, "lang", "l", "", "language code (default from config, en)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("parser.lang", rootCmd.PersistentFlags().Lookup("lang"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.slotparse")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// SLOTPARSE_PARSER_LANG overrides parser.lang
	viper.SetEnvPrefix("SLOTPARSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env variables can override keys
// absent from the file
func setDefaults(cfg *model.Config) {
	viper.SetDefault("parser.lang", cfg.Parser.Lang)
	viper.SetDefault("parser.kinds", cfg.Parser.Kinds)
	viper.SetDefault("parser.max_query_bytes", cfg.Parser.MaxQueryBytes)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	viper.SetDefault("batch.concurrency", cfg.Batch.Concurrency)
	viper.SetDefault("batch.requests_per_second", cfg.Batch.RequestsPerSecond)
	viper.SetDefault("batch.burst", cfg.Batch.Burst)
	viper.SetDefault("batch.timeout", cfg.Batch.Timeout)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("output.pretty", cfg.Output.Pretty)
	viper.SetDefault("log.level", cfg.Log.Level)
}

// loadConfig merges defaults, config file, env and flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, verbose)
}
