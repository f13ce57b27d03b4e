// Package rank scores a user's activity counters as a percentile, lower is
// better, and maps that percentile to a letter level.
//
// Raising any counter never worsens the percentile, but only between inputs
// with the same AllCommits value. AllCommits moves the commit median from 250
// to 1000, so a search-mode input with more commits can rank below a
// contribution-mode one.
package rank

import (
	"fmt"
	"math"
	"sort"
)

// Input is the set of counters a rank is computed from. All fields must be
// non-negative.
type Input struct {
	TotalCommits  int
	TotalRepos    int
	Followers     int
	Contributions int
	Stargazers    int
	PRs           int
	Issues        int
	Reviews       int

	// AllCommits marks TotalCommits as coming from a full commit search.
	AllCommits bool
}

// Result is a computed rank. Percentile is in [0,100], 0 being the best.
type Result struct {
	Level      string  `json:"level"`
	Percentile float64 `json:"percentile"`
}

// PreconditionError reports a negative counter in Input.
type PreconditionError struct {
	Field string
	Value int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("rank: %s must be non-negative, got %d", e.Field, e.Value)
}

const (
	commitsMedian    = 250
	allCommitsMedian = 1000
)

type dimension struct {
	name   string
	median float64
	weight float64
	value  func(Input) int
}

// weights sum to 1
var dimensions = []dimension{
	{"commits", commitsMedian, 0.25, func(in Input) int { return in.TotalCommits }},
	{"stars", 50, 0.25, func(in Input) int { return in.Stargazers }},
	{"prs", 50, 0.20, func(in Input) int { return in.PRs }},
	{"contributions", 10, 0.10, func(in Input) int { return in.Contributions }},
	{"reviews", 2, 0.08, func(in Input) int { return in.Reviews }},
	{"issues", 25, 0.06, func(in Input) int { return in.Issues }},
	{"followers", 10, 0.06, func(in Input) int { return in.Followers }},
}

var (
	thresholds = []float64{1, 12.5, 25, 37.5, 50, 62.5, 75, 87.5, 100}
	levels     = []string{"S", "A+", "A", "A-", "B+", "B", "B-", "C+", "C"}
)

// Levels returns the level labels from best to worst.
func Levels() []string {
	out := make([]string, len(levels))
	copy(out, levels)
	return out
}

// Calculate scores in. It fails only when a counter is negative.
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	var score float64
	for _, d := range dimensions {
		median := d.median
		if d.name == "commits" && in.AllCommits {
			median = allCommitsMedian
		}
		score += d.weight * saturate(float64(d.value(in)), median)
	}

	percentile := clamp((1-score)*100, 0, 100)
	return Result{
		Level:      levelFor(percentile),
		Percentile: percentile,
	}, nil
}

func validate(in Input) error {
	fields := []struct {
		name  string
		value int
	}{
		{"TotalCommits", in.TotalCommits},
		{"TotalRepos", in.TotalRepos},
		{"Followers", in.Followers},
		{"Contributions", in.Contributions},
		{"Stargazers", in.Stargazers},
		{"PRs", in.PRs},
		{"Issues", in.Issues},
		{"Reviews", in.Reviews},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &PreconditionError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// saturate is 0 at zero, 0.5 at median and approaches 1.
func saturate(x, median float64) float64 {
	return 1 - math.Exp2(-x/median)
}

func levelFor(percentile float64) string {
	i := sort.SearchFloat64s(thresholds, percentile)
	if i >= len(levels) {
		i = len(levels) - 1
	}
	return levels[i]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
