package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// lowRemaining is the budget under which a client is considered drained.
const lowRemaining = 100

type ManagedClient struct {
	Client    *gh.Client
	Token     string
	Proxy     string
	remaining int
	resetAt   time.Time
	mu        sync.Mutex
}

func (mc *ManagedClient) UpdateRateLimit(remaining int, resetAt time.Time) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.remaining = remaining
	mc.resetAt = resetAt
}

// observe records the rate limit headers of resp, if any.
func (mc *ManagedClient) observe(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	mc.UpdateRateLimit(resp.Rate.Remaining, resp.Rate.Reset.Time)
}

func (mc *ManagedClient) Remaining() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.remaining
}

func (mc *ManagedClient) ResetAt() time.Time {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.resetAt
}

// ClientPool spreads queries over several tokens, preferring the one with
// the most rate limit left.
type ClientPool struct {
	clients []*ManagedClient
	mu      sync.Mutex
}

// NewClientPool builds one client per token. proxies[i], when present, is
// used for tokens[i]. With no tokens the pool holds a single anonymous
// client.
func NewClientPool(tokens []string, proxies []string) (*ClientPool, error) {
	if len(tokens) == 0 {
		return &ClientPool{
			clients: []*ManagedClient{{
				Client:    gh.NewClient(nil),
				remaining: 60,
			}},
		}, nil
	}

	pool := &ClientPool{
		clients: make([]*ManagedClient, 0, len(tokens)),
	}

	for i, token := range tokens {
		var proxyURL string
		if i < len(proxies) {
			proxyURL = proxies[i]
		}

		client, err := createClientWithProxy(token, proxyURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for token %d: %w", i+1, err)
		}

		pool.clients = append(pool.clients, &ManagedClient{
			Client:    client,
			Token:     token,
			Proxy:     proxyURL,
			remaining: 5000,
		})
	}

	return pool, nil
}

func createClientWithProxy(token, proxyURL string) (*gh.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(parsed)
	}

	httpClient := &http.Client{Transport: transport}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	return gh.NewClient(httpClient), nil
}

// SetBaseURL points every client at another API root.
func (p *ClientPool) SetBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSuffix(raw, "/") + "/")
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	for _, mc := range p.clients {
		base := *u
		mc.Client.BaseURL = &base
	}
	return nil
}

func (p *ClientPool) GetClient() *ManagedClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.clients) == 1 {
		return p.clients[0]
	}

	var best *ManagedClient
	bestRemaining := -1
	for _, mc := range p.clients {
		if rem := mc.Remaining(); rem > bestRemaining {
			bestRemaining = rem
			best = mc
		}
	}

	if bestRemaining < lowRemaining {
		var earliest *ManagedClient
		var earliestReset time.Time
		for _, mc := range p.clients {
			reset := mc.ResetAt()
			if earliest == nil || reset.Before(earliestReset) {
				earliest = mc
				earliestReset = reset
			}
		}
		return earliest
	}

	return best
}

func (p *ClientPool) PrimaryToken() string {
	if len(p.clients) == 0 {
		return ""
	}
	return p.clients[0].Token
}

func (p *ClientPool) Size() int {
	return len(p.clients)
}

func (p *ClientPool) AllClients() []*ManagedClient {
	return p.clients
}

// DisplayPoolRateLimit prints the core, GraphQL and search budget of every
// token.
func (p *ClientPool) DisplayPoolRateLimit(ctx context.Context, w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	color.New(color.FgCyan).Fprintf(w, "Rate limits (%d token(s)):\n", p.Size())

	for i, mc := range p.clients {
		limits, resp, err := mc.Client.RateLimit.Get(ctx)
		mc.observe(resp)
		label := fmt.Sprintf("  Token %d", i+1)
		if mc.Proxy != "" {
			label += " (proxied)"
		}
		if err != nil {
			color.New(color.FgYellow).Fprintf(w, "%s: could not fetch rate limit: %v\n", label, err)
			continue
		}

		printRate(w, label+" core", limits.GetCore())
		printRate(w, label+" graphql", limits.GetGraphQL())
		printRate(w, label+" search", limits.GetSearch())
	}
}

func printRate(w io.Writer, label string, rate *gh.Rate) {
	if rate == nil || rate.Limit == 0 {
		return
	}
	percentage := float64(rate.Remaining) / float64(rate.Limit) * 100

	c := color.New(color.FgRed)
	switch {
	case percentage > 50:
		c = color.New(color.FgGreen)
	case percentage > 20:
		c = color.New(color.FgYellow)
	}
	c.Fprintf(w, "%s: %d/%d (%.1f%%)\n", label, rate.Remaining, rate.Limit, percentage)
}
