package config

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type AppConfig struct {
	Target            string
	Token             string
	TokenFile         string
	ProxyFile         string
	APIURL            string
	IncludeAllCommits bool
	CommitSearch      bool
	From              string
	OutputFormat      string
	ShowProgress      bool
	ShowRateLimit     bool
	Verbose           bool
}

func ParseConfig(c *cli.Context) (*AppConfig, error) {
	if c.NArg() == 0 {
		return nil, cli.ShowAppHelp(c)
	}

	cfg := &AppConfig{
		Target:            c.Args().First(),
		Token:             c.String("token"),
		TokenFile:         c.String("token-file"),
		ProxyFile:         c.String("proxy-file"),
		APIURL:            c.String("api-url"),
		IncludeAllCommits: c.Bool("all-commits"),
		CommitSearch:      c.Bool("commit-search"),
		From:              c.String("from"),
		OutputFormat:      c.String("output"),
		ShowProgress:      !c.Bool("no-progress"),
		ShowRateLimit:     c.Bool("rate-limit"),
		Verbose:           c.Bool("verbose"),
	}

	switch cfg.OutputFormat {
	case "", "text":
		cfg.OutputFormat = "text"
	case "json":
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", cfg.OutputFormat)
	}

	return cfg, nil
}
