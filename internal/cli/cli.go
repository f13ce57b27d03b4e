package cli

import (
	"github.com/gnomegl/gitrank/internal/utils"
	"github.com/urfave/cli/v2"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] <username>

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

func NewApp(action cli.ActionFunc) *cli.App {
	cli.AppHelpTemplate = helpTemplate
	// -v is --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}

	return &cli.App{
		Name:    "gitrank",
		Usage:   "Rank a GitHub user's public activity",
		Version: "v" + utils.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token",
				EnvVars: []string{"GITRANK_GITHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:  "token-file",
				Usage: "File with extra tokens, one per line, to spread queries over",
			},
			&cli.StringFlag{
				Name:  "proxy-file",
				Usage: "File with one proxy per line, matched to tokens in order",
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "GitHub API base URL",
				EnvVars: []string{"GITRANK_API_URL"},
			},
			&cli.BoolFlag{
				Name:    "all-commits",
				Aliases: []string{"a"},
				Usage:   "Count all commits, together with --commit-search",
			},
			&cli.BoolFlag{
				Name:    "commit-search",
				Aliases: []string{"c"},
				Usage:   "Add the commit search total to the commit count, together with --all-commits",
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "Only count contributions since this ISO-8601 timestamp",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "Output format (text, json)",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Hide the progress spinner",
			},
			&cli.BoolFlag{
				Name:    "rate-limit",
				Aliases: []string{"r"},
				Usage:   "Print the remaining API rate limit when done",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging on stderr",
			},
		},
		Action:    action,
		ArgsUsage: "<username>",
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}
