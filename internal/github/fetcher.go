package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gnomegl/gitrank/internal/logger"
	"github.com/gnomegl/gitrank/internal/stats"
	gh "github.com/google/go-github/v57/github"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const reposPath = "data.user.repositories"

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// StatsFetcher answers the aggregator's queries against the GitHub API.
type StatsFetcher struct {
	pool *ClientPool
	cfg  Config
	log  *logrus.Entry
}

var _ stats.Fetcher = (*StatsFetcher)(nil)

func NewStatsFetcher(pool *ClientPool, cfg Config) *StatsFetcher {
	if cfg.PerPage <= 0 || cfg.PerPage > 100 {
		cfg.PerPage = 100
	}
	return &StatsFetcher{
		pool: pool,
		cfg:  cfg,
		log:  logger.WithField("component", "github"),
	}
}

// FetchProfile runs the profile query and then walks the remaining
// repository pages, so the returned document holds every owned repository
// node. A first page carrying GraphQL errors is returned as is; errors on a
// later page are a TransportError.
func (f *StatsFetcher) FetchProfile(ctx context.Context, login string, from *time.Time) (json.RawMessage, error) {
	query := profileQuery
	vars := map[string]interface{}{
		"login": login,
		"first": f.cfg.PerPage,
		"after": nil,
	}
	if from != nil {
		query = profileSinceQuery
		vars["from"] = from.UTC().Format(time.RFC3339)
	}

	body, err := f.query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if hasErrors(body) {
		return body, nil
	}

	nodes := gjson.GetBytes(body, reposPath+".nodes")
	info := gjson.GetBytes(body, reposPath+".pageInfo")
	if !nodes.IsArray() || !info.Get("hasNextPage").Bool() {
		return body, nil
	}

	collected := rawNodes(nodes)
	bar := f.spinner()

	var previous string
	for page := 2; info.Get("hasNextPage").Bool(); page++ {
		cursor := info.Get("endCursor").String()
		if cursor == "" {
			return nil, &stats.MalformedResponseError{Path: reposPath + ".pageInfo.endCursor", Reason: "is missing"}
		}
		if cursor == previous {
			return nil, &stats.MalformedResponseError{Path: reposPath + ".pageInfo.endCursor", Reason: "did not advance"}
		}
		previous = cursor

		f.log.WithFields(logrus.Fields{"login": login, "page": page}).Debug("fetching repository page")
		next, err := f.query(ctx, repositoriesQuery, map[string]interface{}{
			"login": login,
			"first": f.cfg.PerPage,
			"after": cursor,
		})
		if err != nil {
			return nil, err
		}
		// the login already resolved, so errors here are never NotFound
		if hasErrors(next) {
			return nil, &stats.TransportError{
				Op:  fmt.Sprintf("graphql repositories page %d", page),
				Err: errors.New(gjson.GetBytes(next, "errors.0.message").String()),
			}
		}

		pageNodes := gjson.GetBytes(next, reposPath+".nodes")
		if !pageNodes.IsArray() {
			return nil, &stats.MalformedResponseError{Path: reposPath + ".nodes", Reason: "is not an array"}
		}
		collected = append(collected, rawNodes(pageNodes)...)
		info = gjson.GetBytes(next, reposPath+".pageInfo")
		bar.Add(1)
	}
	bar.Finish()

	merged, err := sjson.SetRawBytes(body, reposPath+".nodes", []byte("["+strings.Join(collected, ",")+"]"))
	if err != nil {
		return nil, fmt.Errorf("merging repository pages: %w", err)
	}
	merged, err = sjson.SetBytes(merged, reposPath+".pageInfo.hasNextPage", false)
	if err != nil {
		return nil, fmt.Errorf("merging repository pages: %w", err)
	}
	return merged, nil
}

// FetchCommitCount asks the commit search API how many commits login
// authored.
func (f *StatsFetcher) FetchCommitCount(ctx context.Context, login string) (int, error) {
	f.log.WithField("login", login).Debug("searching commits")

	// search has its own, much smaller budget, so the response is not
	// recorded against the pool
	mc := f.pool.GetClient()
	result, _, err := mc.Client.Search.Commits(ctx, "author:"+login, &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return 0, &stats.TransportError{Op: "search commits", Err: err}
	}
	if result == nil || result.Total == nil {
		return 0, &stats.MalformedResponseError{Path: "total_count", Reason: "is missing"}
	}
	return result.GetTotal(), nil
}

func (f *StatsFetcher) query(ctx context.Context, query string, vars map[string]interface{}) (json.RawMessage, error) {
	mc := f.pool.GetClient()

	req, err := mc.Client.NewRequest(http.MethodPost, "graphql", &graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, &stats.TransportError{Op: "graphql", Err: err}
	}

	var buf bytes.Buffer
	resp, err := mc.Client.Do(ctx, req, &buf)
	mc.observe(resp)
	if err != nil {
		return nil, &stats.TransportError{Op: "graphql", Err: err}
	}
	return json.RawMessage(buf.Bytes()), nil
}

func (f *StatsFetcher) spinner() *progressbar.ProgressBar {
	if !f.cfg.ShowProgress {
		return progressbar.DefaultSilent(-1)
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]Counting stars[reset]"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish())
}

func hasErrors(body json.RawMessage) bool {
	errs := gjson.GetBytes(body, "errors")
	return errs.IsArray() && len(errs.Array()) > 0
}

func rawNodes(nodes gjson.Result) []string {
	var out []string
	for _, n := range nodes.Array() {
		out = append(out, n.Raw)
	}
	return out
}
