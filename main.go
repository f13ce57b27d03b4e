package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gnomegl/gitrank/internal/art"
	"github.com/gnomegl/gitrank/internal/auth"
	"github.com/gnomegl/gitrank/internal/cli"
	"github.com/gnomegl/gitrank/internal/config"
	"github.com/gnomegl/gitrank/internal/display"
	"github.com/gnomegl/gitrank/internal/github"
	"github.com/gnomegl/gitrank/internal/logger"
	"github.com/gnomegl/gitrank/internal/service"
	"github.com/joho/godotenv"
	urfave "github.com/urfave/cli/v2"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	app := cli.NewApp(run)
	app.Before = func(c *urfave.Context) error {
		if c.Args().Len() > 0 && c.String("output") != "json" {
			art.PrintLogo(os.Stderr)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		display.Error(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *urfave.Context) error {
	cfg, err := config.ParseConfig(c)
	if err != nil || cfg == nil {
		return err
	}

	logger.Init(cfg.Verbose)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := buildPool(cfg)
	if err != nil {
		return err
	}

	if err := auth.Setup(ctx, pool, os.Stderr); err != nil {
		return err
	}

	return service.NewOrchestrator(pool, cfg).Run(ctx)
}

func buildPool(cfg *config.AppConfig) (*github.ClientPool, error) {
	var fileTokens, proxies []string
	var err error

	if cfg.TokenFile != "" {
		if fileTokens, err = github.ReadTokenFile(cfg.TokenFile); err != nil {
			return nil, err
		}
	}
	if cfg.ProxyFile != "" {
		if proxies, err = github.ReadProxyFile(cfg.ProxyFile); err != nil {
			return nil, err
		}
	}

	tokens := github.MergeTokens([]string{github.GetToken(cfg.Token)}, github.EnvTokens(), fileTokens)
	logger.WithField("tokens", len(tokens)).Debug("building client pool")

	pool, err := github.NewClientPool(tokens, proxies)
	if err != nil {
		return nil, err
	}
	if cfg.APIURL != "" {
		if err := pool.SetBaseURL(cfg.APIURL); err != nil {
			return nil, err
		}
	}
	return pool, nil
}
