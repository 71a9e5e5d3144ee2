package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	rpitop "github.com/jondoveston/rpitop/internal"
	"github.com/joho/godotenv"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var log = logger.GetOrCreate("main")

// envKeys are the viper keys that can be set with RPITOP_* variables
var envKeys = []string{"base_url", "config", "interval", "detect", "metrics_addr", "log_level", "log_save", "working_directory"}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rpitop [base-url]",
	Short: "Terminal dashboard for a Raspberry Pi metrics collaborator",
	Long: `rpitop shows the current CPU, temperature, memory and storage readings
of a Raspberry Pi together with their recent history, polled from the
rpidash HTTP endpoints.

Examples:
  rpitop http://raspberrypi.lan:5000
  rpitop --base-url http://raspberrypi.lan:5000
  rpitop --detect raspberrypi.lan
  rpitop status raspberrypi.lan:5000
  RPITOP_BASE_URL=http://raspberrypi.lan:5000 rpitop`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var statusCmd = &cobra.Command{
	Use:   "status [base-url]",
	Short: "Print the current readings once and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  status,
}

func init() {
	// Define flags
	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "", "collaborator base URL, e.g. http://raspberrypi.lan:5000")
	flags.String("config", "", "path to a TOML config file")
	flags.Bool("detect", false, "probe common schemes and ports for the collaborator")
	flags.String("log-level", "*:INFO", "log level, e.g. *:DEBUG or *:INFO,rpitop/poll:DEBUG")
	flags.Bool("log-save", false, "also write logs to a file")
	flags.String("working-directory", "", "directory for the log files, defaults to the current one")
	rootCmd.Flags().Uint32("interval", 0, "poll interval in seconds, overrides the config file")
	rootCmd.Flags().String("metrics-addr", "", "serve rpitop's own Prometheus metrics on this address, e.g. :9200")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	// Bind flags to Viper keys (note: dashes in flags become underscores in viper)
	viper.BindPFlag("base_url", flags.Lookup("base-url"))
	viper.BindPFlag("config", flags.Lookup("config"))
	viper.BindPFlag("detect", flags.Lookup("detect"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_save", flags.Lookup("log-save"))
	viper.BindPFlag("working_directory", flags.Lookup("working-directory"))
	viper.BindPFlag("interval", rootCmd.Flags().Lookup("interval"))
	viper.BindPFlag("metrics_addr", rootCmd.Flags().Lookup("metrics-addr"))

	// Configure Viper for environment variables
	viper.SetEnvPrefix("rpitop")
	viper.AutomaticEnv()
	for _, key := range envKeys {
		if err := viper.BindEnv(key); err != nil {
			panic(fmt.Sprintf("failed to bind %s: %v", key, err))
		}
	}

	rootCmd.AddCommand(statusCmd)
}

func run(cmd *cobra.Command, args []string) error {
	// Handle --version flag first
	versionFlag, _ := cmd.Flags().GetBool("version")
	if versionFlag {
		fmt.Printf("rpitop version %s\n", version)
		return nil
	}

	logFile, err := setup()
	if err != nil {
		return err
	}
	defer closeLogFile(logFile)
	log.Info("starting rpitop", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, baseURL, err := resolveConfig(ctx, args)
	if err != nil {
		return err
	}

	var metrics *rpitop.Metrics
	if addr := viper.GetString("metrics_addr"); addr != "" {
		metrics = rpitop.NewMetrics()
		rpitop.ServeMetrics(ctx, addr, metrics)
	}

	log.Info("using collaborator", "url", baseURL.String(), "interval", cfg.Interval(), "charts", len(cfg.Charts))

	// the terminal belongs to the dashboard from here on
	restore := rpitop.DetachConsoleLogger()
	defer restore()

	return rpitop.Dashboard(ctx, cfg, baseURL, metrics)
}

func status(cmd *cobra.Command, args []string) error {
	logFile, err := setup()
	if err != nil {
		return err
	}
	defer closeLogFile(logFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, baseURL, err := resolveConfig(ctx, args)
	if err != nil {
		return err
	}

	return rpitop.Status(ctx, cfg, baseURL, rpitop.NewHTTPFetcher(cfg.RequestTimeout()), cmd.OutOrStdout())
}

// setup loads .env and configures logging
func setup() (rpitop.FileLoggingHandler, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Environment variables take precedence - explicitly override flags if env vars are set
	for _, key := range envKeys {
		if value, ok := os.LookupEnv("RPITOP_" + strings.ToUpper(key)); ok && value != "" {
			viper.Set(key, value)
		}
	}

	return rpitop.AttachFileLogger(
		viper.GetString("log_level"),
		viper.GetBool("log_save"),
		workingDirectory(),
	)
}

// resolveConfig merges the config file, flags, environment and positional
// argument, and validates the result
func resolveConfig(ctx context.Context, args []string) (rpitop.Config, *url.URL, error) {
	cfg := rpitop.DefaultConfig()
	if path := viper.GetString("config"); path != "" {
		loaded, err := rpitop.LoadConfig(path)
		if err != nil {
			return rpitop.Config{}, nil, err
		}
		cfg = loaded
		log.Debug("loaded config file", "path", path)
	}

	// Handle positional argument (only if base_url not already set by env var or flag)
	if len(args) == 1 && viper.GetString("base_url") == "" {
		viper.Set("base_url", args[0])
	}
	if raw := viper.GetString("base_url"); raw != "" {
		cfg.BaseURL = raw
	}
	if interval := viper.GetUint32("interval"); interval > 0 {
		cfg.IntervalInSeconds = interval
	}

	if cfg.BaseURL == "" {
		return rpitop.Config{}, nil, errors.New("base_url must be set")
	}
	baseURL, err := rpitop.ParseBaseURL(cfg.BaseURL)
	if err != nil {
		return rpitop.Config{}, nil, err
	}

	if viper.GetBool("detect") {
		baseURL, err = rpitop.DetectBaseURL(ctx, baseURL, cfg.SnapshotEndpoint, rpitop.NewHTTPFetcher(cfg.RequestTimeout()))
		if err != nil {
			return rpitop.Config{}, nil, err
		}
	}
	cfg.BaseURL = baseURL.String()

	if err := cfg.Validate(); err != nil {
		return rpitop.Config{}, nil, err
	}

	return cfg, baseURL, nil
}

func workingDirectory() string {
	if dir := viper.GetString("working_directory"); dir != "" {
		return dir
	}
	dir, err := os.Getwd()
	if err != nil {
		log.Warn("cannot determine working directory", "error", err)
		return "."
	}
	return dir
}

func closeLogFile(logFile rpitop.FileLoggingHandler) {
	if check.IfNil(logFile) {
		return
	}
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}
