package rates

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/yusufcetin82/tcmb-xml-rates/cmd/env"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
	"github.com/yusufcetin82/tcmb-xml-rates/query"
)

// ratesCfg wraps the one-shot dump configuration
type ratesCfg struct {
	date       string
	hour       string
	feedURL    string
	hourly     bool
	noFallback bool
}

// NewRatesCmd creates the rates subcommand, a one-shot JSON dump of the
// resolved rate set
func NewRatesCmd() *ffcli.Command {
	cfg := &ratesCfg{}

	fs := flag.NewFlagSet("rates", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "rates",
		ShortUsage: "rates [flags]",
		LongHelp:   "Fetches the resolved rate set and prints it as JSON",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *ratesCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.date,
		"date",
		"",
		"the requested bulletin day (YYYY-MM-DD or DD.MM.YYYY), today if empty",
	)

	fs.StringVar(
		&c.hour,
		"hour",
		"",
		"the requested publication slot (HH:MM), hourly feed only",
	)

	fs.StringVar(
		&c.feedURL,
		"feed-url",
		feed.DefaultBaseURL,
		"the base URL of the upstream rate feed",
	)

	fs.BoolVar(
		&c.hourly,
		"hourly",
		false,
		"fetch the hourly snapshot instead of the daily bulletin",
	)

	fs.BoolVar(
		&c.noFallback,
		"no-fallback",
		false,
		"fail instead of walking back to earlier days",
	)
}

func (c *ratesCfg) exec(ctx context.Context, _ []string) error {
	client := query.New(
		query.WithFetcher(feed.NewHTTPFetcher(time.Second * 30)),
		query.WithBaseURL(c.feedURL),
	)

	opts := query.Options{
		Date:          c.date,
		Hour:          c.hour,
		NoDayFallback: c.noFallback,
	}

	var (
		result any
		err    error
	)

	if c.hourly {
		result, err = client.HourlyRates(ctx, opts)
	} else {
		result, err = client.Rates(ctx, opts)
	}

	if err != nil {
		return fmt.Errorf("unable to fetch rates, %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}
