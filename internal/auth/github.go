package auth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitrank/internal/github"
	"github.com/gnomegl/gitrank/internal/logger"
	"github.com/gnomegl/gitrank/internal/utils"
	gh "github.com/google/go-github/v57/github"
)

// Setup validates the pool's primary token and prints an update notice to w
// when a newer release exists.
func Setup(ctx context.Context, pool *github.ClientPool, w io.Writer) error {
	primary := pool.AllClients()[0]

	checkLatestVersion(ctx, primary.Client, w)

	if primary.Token != "" {
		if err := github.ValidateToken(ctx, primary.Client); err != nil {
			return fmt.Errorf("token validation failed: %w", err)
		}
	}
	return nil
}

func checkLatestVersion(ctx context.Context, client *gh.Client, w io.Writer) {
	release, _, err := client.Repositories.GetLatestRelease(ctx, "gnomegl", "gitrank")
	if err != nil {
		logger.WithError(err).Debug("release check skipped")
		return
	}

	latest := strings.TrimPrefix(release.GetTagName(), "v")
	current := utils.GetVersion()
	if latest == "" || latest == current || current == "unknown" {
		return
	}

	color.New(color.FgYellow).Fprintf(w, "A new version of gitrank is available: %s (you're running %s)\n", latest, current)
	color.New(color.FgCyan).Fprintln(w, "go install github.com/gnomegl/gitrank@latest")
	fmt.Fprintln(w)
}
