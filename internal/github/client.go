package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnomegl/gitrank/internal/logger"
	"github.com/google/go-github/v57/github"
)

const appDir = "gitrank"

// GetToken resolves the primary token: the explicit value first (and saves
// it for later runs), then GITHUB_TOKEN, then the saved token file.
func GetToken(explicit string) string {
	configDir, _ := os.UserConfigDir()

	if explicit != "" {
		if configDir != "" {
			if err := saveToken(configDir, explicit); err != nil {
				logger.WithError(err).Debug("could not save token")
			}
		}
		return explicit
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}

	if configDir != "" {
		tokenFile := filepath.Join(configDir, appDir, "token")
		if data, err := os.ReadFile(tokenFile); err == nil {
			if token := strings.TrimSpace(string(data)); token != "" {
				return token
			}
		}
	}

	logger.Warn("no GitHub token configured, the GraphQL API requires one")
	return ""
}

func saveToken(configDir, token string) error {
	configPath := filepath.Join(configDir, appDir)
	if err := os.MkdirAll(configPath, 0700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configPath, "token"), []byte(token), 0600)
}

func ValidateToken(ctx context.Context, client *github.Client) error {
	_, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("invalid GitHub token")
			case http.StatusForbidden:
				// rate limited, the token itself is fine
				logger.Warn("rate limited, skipping token validation")
				return nil
			}
		}
		return fmt.Errorf("error validating token: %w", err)
	}
	return nil
}
