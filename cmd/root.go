package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/bubblehearth/blizzard"
	"github.com/s0up4200/bubblehearth/config"
	"github.com/s0up4200/bubblehearth/filter"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	bnetClient *blizzard.Client
	filters    *filter.Manager

	// Global flags
	regionFlag   string
	localeFlag   string
	logLevelFlag string
	jsonOutput   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bubblehearth",
	Short: "Query Blizzard Battle.net game data from the command line",
	Long: `bubblehearth talks to the Battle.net game data APIs using OAuth2 client
credentials. It looks up WoW Classic and retail realms, items and characters,
searches Hearthstone cards and lists Diablo III acts.

Credentials are read from the config file or from BUBBLEHEARTH_BATTLENET_CLIENT_ID
and BUBBLEHEARTH_BATTLENET_CLIENT_SECRET.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&regionFlag, "region", "", "API region: us, eu, kr, tw or cn")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "response locale, e.g. en_US or de_DE")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(filtersCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlagOverrides(cmd); err != nil {
		return err
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)
	logger.Debug().Str("config", config.ConfigFileUsed(cfgFile)).Msg("Configuration loaded")

	region, err := blizzard.ParseRegion(cfg.BattleNet.Region)
	if err != nil {
		return err
	}

	bnetClient, err = newBattleNetClient(region)
	if err != nil {
		return err
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// applyFlagOverrides lets global flags take precedence over file and environment.
func applyFlagOverrides(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	if flags.Changed("region") {
		if _, err := blizzard.ParseRegion(regionFlag); err != nil {
			return err
		}
		cfg.BattleNet.Region = regionFlag
	}
	if flags.Changed("locale") {
		if _, err := blizzard.ParseLocale(localeFlag); err != nil {
			return err
		}
		cfg.BattleNet.Locale = localeFlag
	}
	if flags.Changed("log-level") {
		if err := config.ValidateLogLevel(logLevelFlag); err != nil {
			return err
		}
		cfg.Logging.Level = logLevelFlag
	}
	if jsonOutput {
		cfg.Output.Format = "json"
	}

	return nil
}

// newBattleNetClient builds a client for region from the loaded configuration.
func newBattleNetClient(region blizzard.Region) (*blizzard.Client, error) {
	opts := []blizzard.Option{
		blizzard.WithTimeout(cfg.BattleNet.Timeout),
		blizzard.WithTokenLeeway(cfg.BattleNet.TokenLeeway),
		blizzard.WithUserAgent("bubblehearth/" + version),
	}

	if cfg.BattleNet.Locale != "" {
		locale, err := blizzard.ParseLocale(cfg.BattleNet.Locale)
		if err != nil {
			return nil, err
		}
		opts = append(opts, blizzard.WithLocale(locale))
	}

	if rl := cfg.BattleNet.RateLimit; rl.RequestsPerSecond > 0 {
		opts = append(opts, blizzard.WithRateLimit(rl.RequestsPerSecond, rl.Burst))
	}

	client, err := blizzard.NewClient(
		cfg.BattleNet.ClientID,
		cfg.BattleNet.ClientSecret,
		region,
		logger.With().Str("region", string(region)).Logger(),
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Battle.net client: %w", err)
	}

	return client, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// skipInit replaces initializeApp for commands that need no credentials.
func skipInit(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if logLevelFlag != "" {
		if parsed, err := zerolog.ParseLevel(logLevelFlag); err == nil {
			level = parsed
		}
	}
	logger = setupLogger(config.LoggingConfig{Level: level.String(), Format: "console", Color: true})
	return nil
}

// resolveFilter returns nil when expr is empty.
func resolveFilter(expr string) (*filter.Filter, error) {
	if expr == "" {
		return nil, nil
	}
	f, err := filters.Resolve(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	return f, nil
}

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify Battle.net credentials",
	Long:  `Request an access token for the configured region and print when it expires.`,
	RunE:  runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	fmt.Printf("Requesting access token for region %s...\n", bnetClient.Region())

	if err := bnetClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	expiry := bnetClient.TokenExpiry()
	fmt.Println("✓ Credentials accepted!")
	fmt.Printf("- Token expires: %s (in %s)\n", expiry.Format(time.RFC3339), time.Until(expiry).Round(time.Second))
	fmt.Printf("- Locale: %s\n", bnetClient.Locale())

	return nil
}

// filtersCmd represents the filters command
var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List filter presets from the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := filters.ListFilters()
		if len(names) == 0 {
			fmt.Println("No filter presets configured.")
			return nil
		}

		tw := newTable()
		fmt.Fprintln(tw, "NAME\tEXPRESSION")
		for _, name := range names {
			f, _ := filters.GetFilter(name)
			fmt.Fprintf(tw, "%s\t%s\n", name, f.Expression())
		}
		return tw.Flush()
	},
}
