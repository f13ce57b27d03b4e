package github

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func ReadTokenFile(path string) ([]string, error) {
	tokens, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("token file: %w", err)
	}
	return tokens, nil
}

// ReadProxyFile reads one proxy per line, defaulting to http:// when no
// scheme is given.
func ReadProxyFile(path string) ([]string, error) {
	proxies, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("proxy file: %w", err)
	}
	for i, p := range proxies {
		if !strings.Contains(p, "://") {
			proxies[i] = "http://" + p
		}
	}
	return proxies, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return lines, nil
}

// EnvTokens collects extra pool tokens from GITRANK_TOKENS (comma separated)
// and PAT_1, PAT_2, ... until the first gap.
func EnvTokens() []string {
	var tokens []string
	for _, t := range strings.Split(os.Getenv("GITRANK_TOKENS"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	for i := 1; ; i++ {
		t := strings.TrimSpace(os.Getenv("PAT_" + strconv.Itoa(i)))
		if t == "" {
			break
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// MergeTokens keeps the first occurrence of every non-empty token.
func MergeTokens(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, t := range list {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
