// Command rbloom manages Redis-backed Bloom filters from the shell.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/rbloom"
	"github.com/jpl-au/rbloom/internal/config"
	"github.com/jpl-au/rbloom/internal/logger"

	"github.com/spf13/cobra"
)

// offlineBucket names the bucket for commands that never touch a store.
const offlineBucket = "rbloom:offline"

type app struct {
	cfgFile  string
	redisURL string
	bucket   string
	logLevel string
	jsonOut  bool

	config *config.Config
	log    logger.Logger
}

// load reads the configuration and applies command-line overrides.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.redisURL != "" {
		cfg.Redis.URL = a.redisURL
	}
	if a.bucket != "" {
		cfg.Filter.Bucket = a.bucket
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.config = cfg
	a.log = logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// open connects to Redis and builds the configured filter. The returned
// function closes the connection.
func (a *app) open(ctx context.Context) (*rbloom.Filter, func(), error) {
	store, err := rbloom.DialRedis(ctx, a.config.Redis, rbloom.WithLogger(a.log.Zerolog()))
	if err != nil {
		return nil, nil, err
	}
	f, err := rbloom.New(store, a.config.Filter)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	a.log.Debug("filter ready", "bucket", f.Bucket(), "hashes", f.Config().Hashes, "bit_space", f.Config().BitSpace)
	return f, func() { store.Close() }, nil
}

// offline builds the configured filter over a throwaway store, for commands
// that only compute offsets.
func (a *app) offline() (*rbloom.Filter, error) {
	c := a.config.Filter
	if c.Bucket == "" {
		c.Bucket = offlineBucket
	}
	return rbloom.New(rbloom.NewMemoryStore(), c)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "rbloom",
		Short:         "Redis-backed Bloom filter tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.StringVar(&a.redisURL, "redis-url", "", "Redis URL, overrides the config file and "+config.EnvRedisURL)
	flags.StringVar(&a.bucket, "bucket", "", "Redis key holding the filter")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.jsonOut, "json", false, "write results as JSON")

	rootCmd.AddCommand(
		addCmd(a),
		hasCmd(a),
		hasAddCmd(a),
		offsetsCmd(a),
		planCmd(a),
		hashesCmd(a),
		benchCmd(a),
	)
	return rootCmd
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "rbloom:", err)
		stop()
		os.Exit(1)
	}
}
