package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input string looks like a Git repository URL.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") && strings.Contains(input, "://") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url into a temporary directory and returns its
// path. The caller removes the directory.
func cloneGitRepo(ctx context.Context, url string, progress io.Writer, logger *slog.Logger) (string, error) {
	tempDir, err := os.MkdirTemp("", "line-count-git-")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temporary directory: %w", ErrSource, err)
	}

	logger.Info("cloning repository", "url", url, "dir", tempDir)

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("%w: failed to clone repository '%s': %w", ErrSource, url, err)
	}

	return tempDir, nil
}
