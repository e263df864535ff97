package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/tara-vision/readmegen/internal/pipeline"
	"github.com/tara-vision/readmegen/internal/remote"
	"github.com/tara-vision/readmegen/internal/storage"
)

// FriendlyError turns the errors a user can act on into advice
func FriendlyError(err error) string {
	var rle *remote.RateLimitError
	switch {
	case errors.As(err, &rle):
		msg := "GitHub API rate limit reached."
		if rle.RetryAfter > 0 {
			msg += fmt.Sprintf(" Try again in %s.", rle.RetryAfter.Round(time.Second))
		}
		return msg + " Set GITHUB_TOKEN or --github-token for a higher limit."
	case errors.Is(err, remote.ErrRateLimited):
		return "GitHub API rate limit reached. Set GITHUB_TOKEN or --github-token for a higher limit."
	case errors.Is(err, remote.ErrNotFound):
		return "Repository not found. Check owner/name, or set GITHUB_TOKEN for private repositories."
	case errors.Is(err, pipeline.ErrInvalidTarget):
		return err.Error()
	case errors.Is(err, storage.ErrRunNotFound):
		return "No such run. List runs with 'readmegen history'."
	}
	return err.Error()
}
