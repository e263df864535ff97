// Package remote talks to the GitHub REST API: repository metadata, recursive
// trees and file contents, paced and aware of the API quota.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/github"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultRequestTimeout = 30 * time.Second

	// DefaultFetchDelay spaces file content requests
	DefaultFetchDelay = time.Second
)

// FallbackBranches are tried in order when the requested branch has no tree
var FallbackBranches = []string{"master", "develop", "dev"}

// Config configures a Client. The zero value talks to api.github.com
// unauthenticated with the default fetch delay.
type Config struct {
	Token      string       // optional personal access token
	BaseURL    string       // API root, e.g. for GitHub Enterprise or tests
	HTTPClient *http.Client // optional, wrapped when Token is set
	Pacer      Pacer        // defaults to NewIntervalPacer(DefaultFetchDelay)
	Logger     *slog.Logger // defaults to slog.Default()
	Now        func() time.Time
}

// Client is a GitHub repository reader
type Client struct {
	gh     *github.Client
	pacer  Pacer
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	rate github.Rate
}

// New creates a Client from cfg
func New(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient()
	}
	if cfg.Token != "" {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		wrapped := *httpClient
		wrapped.Transport = &tokenTransport{token: cfg.Token, base: base}
		httpClient = &wrapped
	}

	gh := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}

	c := &Client{
		gh:     gh,
		pacer:  cfg.Pacer,
		logger: cfg.Logger,
		now:    cfg.Now,
	}
	if c.pacer == nil {
		c.pacer = NewIntervalPacer(DefaultFetchDelay)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// GetRepository fetches repository metadata
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*RepoMetadata, error) {
	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	c.recordRate(resp)
	if err != nil {
		return nil, c.translateError(err, fmt.Sprintf("repository %s/%s", owner, name))
	}

	meta := &RepoMetadata{
		Owner:         owner,
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Language:      repo.GetLanguage(),
		DefaultBranch: repo.GetDefaultBranch(),
		Stars:         repo.GetStargazersCount(),
		Topics:        repo.Topics,
		HTMLURL:       repo.GetHTMLURL(),
	}
	if meta.Name == "" {
		meta.Name = name
	}
	if lic := repo.GetLicense(); lic != nil {
		meta.License = lic.GetSPDXID()
		if meta.License == "" || meta.License == "NOASSERTION" {
			meta.License = lic.GetName()
		}
	}

	c.logger.Debug("fetched repository", "repo", meta.FullName, "language", meta.Language, "default_branch", meta.DefaultBranch)
	return meta, nil
}

// GetRepositoryTree lists every path of the repository recursively. An empty
// branch means "main". When the branch has no tree the FallbackBranches are
// tried in order; ErrNotFound is returned only when none of them exists.
func (c *Client) GetRepositoryTree(ctx context.Context, owner, name, branch string) ([]TreeEntry, error) {
	var tried []string
	for _, b := range branchCandidates(branch) {
		tried = append(tried, b)

		tree, resp, err := c.gh.Git.GetTree(ctx, owner, name, b, true)
		c.recordRate(resp)
		if err != nil {
			err = c.translateError(err, fmt.Sprintf("tree %s/%s@%s", owner, name, b))
			if errors.Is(err, ErrNotFound) {
				c.logger.Debug("branch not found, trying next", "repo", owner+"/"+name, "branch", b)
				continue
			}
			return nil, err
		}

		if tree.GetTruncated() {
			c.logger.Warn("tree listing truncated by the API", "repo", owner+"/"+name, "branch", b, "entries", len(tree.Entries))
		}

		entries := make([]TreeEntry, 0, len(tree.Entries))
		for _, e := range tree.Entries {
			entries = append(entries, TreeEntry{
				Path: e.GetPath(),
				Kind: e.GetType(),
				Size: int64(e.GetSize()),
				SHA:  e.GetSHA(),
			})
		}
		c.logger.Debug("fetched tree", "repo", owner+"/"+name, "branch", b, "entries", len(entries))
		return entries, nil
	}

	return nil, fmt.Errorf("tree %s/%s (tried %s): %w", owner, name, strings.Join(tried, ", "), ErrNotFound)
}

// GetFileContent fetches and decodes one file. A missing path, or a path that
// is a directory, yields ok == false and no error.
func (c *Client) GetFileContent(ctx context.Context, owner, name, path string) (content string, ok bool, err error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, name, path, nil)
	c.recordRate(resp)
	if err != nil {
		err = c.translateError(err, "contents "+path)
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if file == nil {
		return "", false, nil
	}

	content, err = file.GetContent()
	if err != nil {
		return "", false, fmt.Errorf("decode %s: %w", path, err)
	}
	return content, true, nil
}

// GetMultipleFiles fetches paths one at a time, waiting on the pacer before
// each request. It stops early when the quota runs out and returns whatever
// was collected; individual failures are logged and skipped.
func (c *Client) GetMultipleFiles(ctx context.Context, owner, name string, paths []string) map[string]string {
	files := make(map[string]string, len(paths))

	for i, path := range paths {
		if c.quotaExhausted() {
			c.logger.Warn("API quota exhausted, stopping file fetch", "fetched", len(files), "remaining_paths", len(paths)-i)
			break
		}
		if err := c.pacer.Wait(ctx); err != nil {
			c.logger.Warn("file fetch interrupted", "error", err, "fetched", len(files))
			break
		}

		content, ok, err := c.GetFileContent(ctx, owner, name, path)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				c.logger.Warn("rate limited, stopping file fetch", "path", path, "fetched", len(files), "error", err)
				break
			}
			c.logger.Warn("skipping file", "path", path, "error", err)
			continue
		}
		if !ok {
			c.logger.Debug("file absent, skipping", "path", path)
			continue
		}
		files[path] = content
	}

	return files
}

// RateStatus returns the quota reported by the most recent response
func (c *Client) RateStatus() RateStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := RateStatus{Limit: c.rate.Limit, Remaining: c.rate.Remaining}
	if !c.rate.Reset.Time.IsZero() {
		status.Reset = c.rate.Reset.Time.Unix()
	}
	return status
}

func (c *Client) recordRate(resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	c.mu.Lock()
	c.rate = resp.Rate
	c.mu.Unlock()
}

// quotaExhausted reports whether the last response left no requests before the reset
func (c *Client) quotaExhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rate.Limit == 0 || c.rate.Remaining > 0 {
		return false
	}
	return c.rate.Reset.Time.IsZero() || c.now().Before(c.rate.Reset.Time)
}

func branchCandidates(branch string) []string {
	if branch == "" {
		branch = "main"
	}
	candidates := []string{branch}
	for _, b := range FallbackBranches {
		if b != branch {
			candidates = append(candidates, b)
		}
	}
	return candidates
}

type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "token "+t.token)
	return t.base.RoundTrip(r)
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultRequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaultConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
