package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitrank/internal/stats"
)

var headerColor = color.New(color.Bold, color.FgCyan)

// Text prints the stats card for login.
func Text(w io.Writer, login string, s *stats.Stats) {
	fmt.Fprintln(w)
	title := login
	if s.Name != "" {
		title = fmt.Sprintf("%s (%s)", s.Name, login)
	}
	headerColor.Fprintf(w, "GITHUB STATS: %s\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	printCount(w, "Total Stars", s.TotalStars)
	printCount(w, "Total Commits", s.TotalCommits)
	printCount(w, "Total PRs", s.TotalPRs)
	printCount(w, "Total Issues", s.TotalIssues)
	printCount(w, "Contributed to", s.ContributedTo)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s  %s\n",
		color.WhiteString("Rank:"),
		levelColor(s.Rank.Level).Sprint(s.Rank.Level),
		color.WhiteString("(top %.1f%%)", s.Rank.Percentile))
	fmt.Fprintln(w)
}

// JSON writes s as an indented JSON document.
func JSON(w io.Writer, s *stats.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Error prints err's message as is.
func Error(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "[x] %s\n", err.Error())
}

func printCount(w io.Writer, label string, value int) {
	fmt.Fprintf(w, "%-16s %d\n", color.WhiteString(label+":"), value)
}

func levelColor(level string) *color.Color {
	switch {
	case strings.HasPrefix(level, "S"), strings.HasPrefix(level, "A"):
		return color.New(color.Bold, color.FgGreen)
	case strings.HasPrefix(level, "B"):
		return color.New(color.Bold, color.FgYellow)
	default:
		return color.New(color.Bold, color.FgRed)
	}
}
