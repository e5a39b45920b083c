// Package cmd implements the ytagg command line: one sub-command per
// aggregate operation, printing results as JSON or text.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/researchaccelerator-hub/video-aggregator/aggregator"
	"github.com/researchaccelerator-hub/video-aggregator/cache"
	"github.com/researchaccelerator-hub/video-aggregator/client"
	"github.com/researchaccelerator-hub/video-aggregator/common"
	"github.com/researchaccelerator-hub/video-aggregator/config"
	"github.com/researchaccelerator-hub/video-aggregator/metrics"
)

// Process exit codes
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitNotFound = 3
)

// errDegraded reports a list result that absorbed a transport failure
var errDegraded = errors.New("result degraded by a transport failure")

// cli holds the state shared by every sub-command of one invocation
type cli struct {
	v       *viper.Viper
	out     io.Writer
	errOut  io.Writer
	cfgFile string

	registry *prometheus.Registry
	agg      *aggregator.Aggregator
	cleanup  []func()
}

// Execute runs the command line with args and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{v: viper.New(), out: stdout, errOut: stderr}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	c.close()
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case client.IsNotFound(err):
		log.Error().Err(err).Msg("Not found")
		return ExitNotFound
	default:
		log.Error().Err(err).Msg("Command failed")
		return ExitFailure
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytagg",
		Short:         "Aggregated, cached fetches over the YouTube Data API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (YAML)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "console", "log output format (console, json)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while the command runs, e.g. :9090")
	flags.String("api-key", "", "YouTube Data API key (or YTAGG_API_KEY)")
	flags.String("region", "", "region code for charts and categories")
	flags.StringP("output", "o", "json", "output format (json, text)")

	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = c.v.BindPFlag("metrics_addr", flags.Lookup("metrics-addr"))
	_ = c.v.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = c.v.BindPFlag("region_code", flags.Lookup("region"))
	_ = c.v.BindPFlag("output", flags.Lookup("output"))

	root.AddCommand(c.commands()...)
	return root
}

// setup loads configuration, configures logging and builds the aggregator
func (c *cli) setup(ctx context.Context) error {
	config.SetDefaults(c.v)
	c.v.SetDefault("log.level", "info")
	c.v.SetDefault("log.format", "console")
	c.v.SetDefault("output", "json")
	config.BindEnv(c.v)

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", c.cfgFile, err)
		}
	}

	if err := setupLogging(c.v.GetString("log.level"), c.v.GetString("log.format"), c.errOut); err != nil {
		return err
	}
	switch f := c.v.GetString("output"); f {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported output format %q", f)
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}

	log.Info().
		Str("run", common.GenerateRunStamp(time.Now())).
		Str("region", cfg.RegionCode).
		Bool("redis", cfg.Cache.RedisURL != "").
		Msg("Starting ytagg")

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(c.registry)

	if addr := c.v.GetString("metrics_addr"); addr != "" {
		srv := serveMetrics(addr, c.registry)
		c.cleanup = append(c.cleanup, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		})
	}

	yt, suggest, err := client.NewClients(ctx, cfg, m)
	if err != nil {
		return err
	}
	c.cleanup = append(c.cleanup, func() { _ = yt.Disconnect(context.Background()) })

	store, shared, err := cache.NewFromConfig(ctx, cfg, m)
	if err != nil {
		return err
	}
	c.cleanup = append(c.cleanup, func() { _ = shared.Close() })

	c.agg, err = aggregator.New(cfg, yt, suggest, store, aggregator.WithMetrics(m))
	return err
}

func (c *cli) close() {
	for i := len(c.cleanup) - 1; i >= 0; i-- {
		c.cleanup[i]()
	}
	c.cleanup = nil
}

func setupLogging(level, format string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	switch format {
	case "console":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	case "json":
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	default:
		return fmt.Errorf("unsupported log format %q", format)
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	return srv
}
