package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/yusufcetin82/tcmb-xml-rates/cmd/env"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
	"github.com/yusufcetin82/tcmb-xml-rates/query"
	"github.com/yusufcetin82/tcmb-xml-rates/refresh"
	"github.com/yusufcetin82/tcmb-xml-rates/server"
	"github.com/yusufcetin82/tcmb-xml-rates/server/config"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags]",
		LongHelp:   "Serves the exchange rate backend",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the server",
	)

	fs.StringVar(
		&c.config.FeedURL,
		"feed-url",
		config.DefaultFeedURL,
		"the base URL of the upstream rate feed",
	)

	fs.Int64Var(
		&c.config.FetchTimeoutSeconds,
		"fetch-timeout",
		config.DefaultFetchTimeout,
		"the per-request feed fetch timeout, in seconds",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)
}

func (c *serveCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if c.configPath != "" {
		serverCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read server config, %w", err)
		}

		c.config = serverCfg
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create the feed client
	client := query.New(
		query.WithFetcher(
			feed.NewHTTPFetcher(
				time.Duration(c.config.FetchTimeoutSeconds)*time.Second,
			),
		),
		query.WithBaseURL(c.config.FeedURL),
		query.WithLogger(logger),
	)

	s, err := server.New(
		client,
		server.WithLogger(logger),
		server.WithConfig(c.config),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	// Set up the cache warmer
	refresher := refresh.New(
		refresh.WithLogger(logger),
		refresh.WithQueryInterval(time.Second*10),
	)

	if err := refresher.Register(refresh.NewDailyJob(client)); err != nil {
		return fmt.Errorf("unable to register daily refresh, %w", err)
	}

	if err := refresher.Register(refresh.NewHourlyJob(client)); err != nil {
		return fmt.Errorf("unable to register hourly refresh, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	group.Go(func() error {
		return refresher.Start(gCtx)
	})

	return group.Wait()
}
