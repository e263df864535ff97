package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidTarget is returned when a repository reference cannot be parsed
var ErrInvalidTarget = errors.New("expected owner/repo[@branch] or a GitHub URL")

var namePart = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ParseTarget reads "owner/repo", "owner/repo@branch" or a github.com URL
// (optionally pointing at /tree/<branch>) into a Request.
func ParseTarget(s string) (Request, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Request{}, ErrInvalidTarget
	}

	if strings.Contains(s, "://") || strings.HasPrefix(s, "github.com/") {
		return parseURL(s)
	}

	ref, branch, _ := strings.Cut(s, "@")
	owner, name, ok := strings.Cut(ref, "/")
	if !ok {
		return Request{}, fmt.Errorf("%q: %w", s, ErrInvalidTarget)
	}
	return newRequest(s, owner, name, branch)
}

func parseURL(s string) (Request, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return Request{}, fmt.Errorf("%q: %w", s, ErrInvalidTarget)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return Request{}, fmt.Errorf("%q: only github.com is supported: %w", s, ErrInvalidTarget)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return Request{}, fmt.Errorf("%q: %w", s, ErrInvalidTarget)
	}
	var branch string
	if len(parts) >= 4 && parts[2] == "tree" {
		branch = strings.Join(parts[3:], "/")
	}
	return newRequest(s, parts[0], strings.TrimSuffix(parts[1], ".git"), branch)
}

func newRequest(raw, owner, name, branch string) (Request, error) {
	if !namePart.MatchString(owner) || !namePart.MatchString(name) {
		return Request{}, fmt.Errorf("%q: %w", raw, ErrInvalidTarget)
	}
	return Request{Owner: owner, Name: name, Branch: strings.TrimSpace(branch)}, nil
}
