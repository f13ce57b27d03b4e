package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gnomegl/gitrank/internal/config"
	"github.com/gnomegl/gitrank/internal/display"
	"github.com/gnomegl/gitrank/internal/github"
	"github.com/gnomegl/gitrank/internal/logger"
	"github.com/gnomegl/gitrank/internal/stats"
)

type Orchestrator struct {
	fetcher stats.Fetcher
	pool    *github.ClientPool
	config  *config.AppConfig
	out     io.Writer
}

func NewOrchestrator(pool *github.ClientPool, cfg *config.AppConfig) *Orchestrator {
	ghCfg := github.DefaultConfig()
	ghCfg.ShowProgress = cfg.ShowProgress && cfg.OutputFormat == "text"

	return &Orchestrator{
		fetcher: github.NewStatsFetcher(pool, ghCfg),
		pool:    pool,
		config:  cfg,
		out:     os.Stdout,
	}
}

// NewOrchestratorWithFetcher wires a custom query capability, used with
// fakes and alternative transports.
func NewOrchestratorWithFetcher(fetcher stats.Fetcher, cfg *config.AppConfig, out io.Writer) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		config:  cfg,
		out:     out,
	}
}

func (o *Orchestrator) Run(ctx context.Context) error {
	login := o.config.Target
	if o.config.OutputFormat == "text" {
		color.New(color.FgBlue).Fprintf(o.out, "Target Username: %s\n", login)
	}

	agg := stats.NewAggregator(o.fetcher, logger.WithField("component", "stats"))
	s, err := agg.Compute(ctx, login, stats.Options{
		IncludeAllCommits:   o.config.IncludeAllCommits,
		IncludeCommitSearch: o.config.CommitSearch,
		From:                o.config.From,
	})
	if err != nil {
		return err
	}

	switch o.config.OutputFormat {
	case "json":
		if err := display.JSON(o.out, s); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
	default:
		display.Text(o.out, login, s)
	}

	if o.config.ShowRateLimit && o.pool != nil {
		o.pool.DisplayPoolRateLimit(ctx, os.Stderr)
	}

	return nil
}
