package github

// Config holds configuration for GitHub queries
type Config struct {
	// PerPage is the repository page size of the GraphQL connection, at most 100.
	PerPage int
	// ShowProgress draws a spinner on stderr while extra repository pages load.
	ShowProgress bool
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		PerPage:      100,
		ShowProgress: true,
	}
}
