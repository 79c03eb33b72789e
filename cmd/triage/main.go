package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cognicore/triage/internal/logging"
	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/config"
	"github.com/cognicore/triage/pkg/triage/tags"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "triage",
		Short: "Rule-based analysis of free-text reports",
		Long: `triage assigns each report a category, routing department, priority,
sentiment and tags using a fixed keyword lexicon. Every verdict can be traced
back to the words that produced it (see analyze --explain).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			logger, err := logging.New(a.v.GetBool("verbose"), a.v.GetBool("log_json"))
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./triage.yaml if present)")
	flags.Bool("verbose", false, "enable debug logging")
	flags.Bool("log-json", false, "log as JSON instead of console text")
	flags.String("lexicon", "", "lexicon YAML file (default is the built-in lexicon)")
	flags.Int("tag-limit", tags.DefaultLimit, "maximum tags per report")
	flags.Int("workers", 0, "concurrent analyses for batch input (0 means one per CPU)")
	flags.Bool("html", false, "strip HTML markup from report text before analysis")

	for key, name := range map[string]string{
		"verbose":   "verbose",
		"log_json":  "log-json",
		"lexicon":   "lexicon",
		"tag_limit": "tag-limit",
		"workers":   "workers",
		"html":      "html",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}
	a.v.SetDefault("tag_limit", tags.DefaultLimit)

	root.AddCommand(a.analyzeCmd(), a.batchCmd(), a.digestCmd(), a.lexiconCmd())
	return root
}

// initConfig reads the config file, if any, and TRIAGE_* environment variables.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("triage")
	}

	a.v.SetEnvPrefix("TRIAGE")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) config() (config.Config, error) {
	cfg := config.Default()
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (a *app) engine() (*triage.Engine, config.Config, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, cfg, err
	}
	comp, err := config.FromConfig(cfg, a.logger).Load()
	if err != nil {
		return nil, cfg, err
	}
	return comp.Engine, cfg, nil
}
