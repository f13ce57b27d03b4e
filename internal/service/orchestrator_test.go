package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gnomegl/gitrank/internal/config"
	"github.com/gnomegl/gitrank/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	profile     string
	profileErr  error
	commits     int
	searchCalls int
	from        *time.Time
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, login string, from *time.Time) (json.RawMessage, error) {
	f.from = from
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return json.RawMessage(f.profile), nil
}

func (f *fakeFetcher) FetchCommitCount(ctx context.Context, login string) (int, error) {
	f.searchCalls++
	return f.commits, nil
}

const octocat = `{"data":{"user":{
  "name": "The Octocat",
  "repositoriesContributedTo": {"totalCount": 8},
  "contributionsCollection": {"totalCommitContributions": 40, "restrictedContributionsCount": 2},
  "pullRequests": {"totalCount": 12},
  "issues": {"totalCount": 5},
  "followers": {"totalCount": 9000},
  "repositories": {"nodes": [{"stargazers": {"totalCount": 30}}, {"stargazers": {"totalCount": 12}}]}
}}}`

func TestOrchestratorRun_JSON(t *testing.T) {
	fetcher := &fakeFetcher{profile: octocat, commits: 500}
	cfg := &config.AppConfig{
		Target:            "octocat",
		OutputFormat:      "json",
		IncludeAllCommits: true,
		CommitSearch:      true,
	}

	var out bytes.Buffer
	require.NoError(t, NewOrchestratorWithFetcher(fetcher, cfg, &out).Run(context.Background()))

	var got stats.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "The Octocat", got.Name)
	assert.Equal(t, 542, got.TotalCommits)
	assert.Equal(t, 42, got.TotalStars)
	assert.Equal(t, 8, got.ContributedTo)
	assert.NotEmpty(t, got.Rank.Level)
	assert.Equal(t, 1, fetcher.searchCalls)
}

func TestOrchestratorRun_Text(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	fetcher := &fakeFetcher{profile: octocat}
	cfg := &config.AppConfig{Target: "octocat", OutputFormat: "text"}

	var out bytes.Buffer
	require.NoError(t, NewOrchestratorWithFetcher(fetcher, cfg, &out).Run(context.Background()))

	assert.Contains(t, out.String(), "Target Username: octocat")
	assert.Contains(t, out.String(), "GITHUB STATS: The Octocat (octocat)")
	assert.Equal(t, 0, fetcher.searchCalls)
	assert.Nil(t, fetcher.from)
}

func TestOrchestratorRun_PassesFromDate(t *testing.T) {
	fetcher := &fakeFetcher{profile: `{"errors":[{"message":"stop here"}]}`}
	cfg := &config.AppConfig{Target: "octocat", OutputFormat: "json", From: "2024-01-02T03:04:05Z"}

	err := NewOrchestratorWithFetcher(fetcher, cfg, &bytes.Buffer{}).Run(context.Background())
	require.Error(t, err)

	require.NotNil(t, fetcher.from)
	assert.True(t, fetcher.from.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestOrchestratorRun_PropagatesErrors(t *testing.T) {
	transportErr := &stats.TransportError{Op: "graphql", Err: errors.New("dial tcp: no route to host")}
	fetcher := &fakeFetcher{profileErr: transportErr}
	cfg := &config.AppConfig{Target: "octocat", OutputFormat: "json"}

	var out bytes.Buffer
	err := NewOrchestratorWithFetcher(fetcher, cfg, &out).Run(context.Background())

	assert.Same(t, transportErr, err)
	assert.Empty(t, out.String())
}
