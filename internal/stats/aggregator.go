// Package stats folds the GitHub profile and commit search responses for a
// login into a single Stats record and ranks it.
package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gnomegl/gitrank/internal/rank"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the query capability the aggregator depends on.
type Fetcher interface {
	// FetchProfile returns the GraphQL response document for login, with
	// every owned repository node already collected. A non-nil from selects
	// the date-scoped contribution totals.
	FetchProfile(ctx context.Context, login string, from *time.Time) (json.RawMessage, error)
	// FetchCommitCount returns the commit search total for login.
	FetchCommitCount(ctx context.Context, login string) (int, error)
}

type Options struct {
	IncludeAllCommits   bool
	IncludeCommitSearch bool
	// From is an ISO-8601 timestamp. When set, only contributions made
	// since then are counted.
	From string
}

type Stats struct {
	Name          string      `json:"name"`
	TotalCommits  int         `json:"totalCommits"`
	TotalPRs      int         `json:"totalPRs"`
	TotalIssues   int         `json:"totalIssues"`
	ContributedTo int         `json:"contributedTo"`
	TotalStars    int         `json:"totalStars"`
	Rank          rank.Result `json:"rank"`
}

type Aggregator struct {
	fetcher Fetcher
	log     *logrus.Entry
}

func NewAggregator(fetcher Fetcher, log *logrus.Entry) *Aggregator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Aggregator{fetcher: fetcher, log: log}
}

// Compute fetches and aggregates the stats for login.
//
// Commit search only runs when both IncludeAllCommits and IncludeCommitSearch
// are set, and never in date-scoped mode. Its total is added to the
// contribution based count.
func (a *Aggregator) Compute(ctx context.Context, login string, opts Options) (*Stats, error) {
	if login == "" {
		return nil, ErrEmptyLogin
	}

	from, err := parseFrom(opts.From)
	if err != nil {
		return nil, err
	}

	dateScoped := from != nil
	search := !dateScoped && opts.IncludeAllCommits && opts.IncludeCommitSearch

	log := a.log.WithFields(logrus.Fields{
		"login":  login,
		"mode":   mode(dateScoped, search),
		"search": search,
	})
	log.Debug("fetching stats")

	var (
		raw      json.RawMessage
		searched int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = a.fetcher.FetchProfile(gctx, login, from)
		return err
	})
	if search {
		g.Go(func() error {
			var err error
			searched, err = a.fetcher.FetchCommitCount(gctx, login)
			return err
		})
	}
	waitErr := g.Wait()

	// An unresolved login outranks a failed sibling query.
	if raw != nil {
		if nf := notFound(raw); nf != nil {
			log.WithField("message", nf.Message).Debug("login not resolved")
			return nil, nf
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}

	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	s, err := aggregate(doc, dateScoped)
	if err != nil {
		return nil, err
	}
	if search {
		s.TotalCommits += searched
	}

	followers, err := doc.count("followers.totalCount")
	if err != nil {
		return nil, err
	}

	s.Rank, err = rank.Calculate(rank.Input{
		TotalCommits:  s.TotalCommits,
		TotalRepos:    s.ContributedTo,
		Followers:     followers,
		Contributions: s.ContributedTo,
		Stargazers:    s.TotalStars,
		PRs:           s.TotalPRs,
		Issues:        s.TotalIssues,
		AllCommits:    search,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"commits": s.TotalCommits,
		"stars":   s.TotalStars,
		"level":   s.Rank.Level,
	}).Debug("stats computed")
	return s, nil
}

func aggregate(doc document, dateScoped bool) (*Stats, error) {
	var (
		s   Stats
		err error
	)

	if s.Name, err = doc.name(); err != nil {
		return nil, err
	}

	commits, err := doc.count("contributionsCollection.totalCommitContributions")
	if err != nil {
		return nil, err
	}

	if dateScoped {
		s.TotalCommits = commits
		if s.ContributedTo, err = doc.count("contributionsCollection.totalRepositoryContributions"); err != nil {
			return nil, err
		}
		if s.TotalPRs, err = doc.count("contributionsCollection.totalPullRequestContributions"); err != nil {
			return nil, err
		}
		if s.TotalIssues, err = doc.count("contributionsCollection.totalIssueContributions"); err != nil {
			return nil, err
		}
	} else {
		restricted, err := doc.count("contributionsCollection.restrictedContributionsCount")
		if err != nil {
			return nil, err
		}
		s.TotalCommits = commits + restricted
		if s.ContributedTo, err = doc.count("repositoriesContributedTo.totalCount"); err != nil {
			return nil, err
		}
		if s.TotalPRs, err = doc.count("pullRequests.totalCount"); err != nil {
			return nil, err
		}
		if s.TotalIssues, err = doc.count("issues.totalCount"); err != nil {
			return nil, err
		}
	}

	if s.TotalStars, err = doc.stars(); err != nil {
		return nil, err
	}

	return &s, nil
}

func parseFrom(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &InvalidDateError{Value: value, Err: err}
	}
	return &t, nil
}

func mode(dateScoped, search bool) string {
	switch {
	case dateScoped:
		return "date-scoped"
	case search:
		return "commit-search"
	default:
		return "lifetime"
	}
}
