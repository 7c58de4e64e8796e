package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// entryFilter decides which directory entries are counted. The zero value
// keeps everything.
type entryFilter struct {
	include    []string
	exclude    []string
	skipHidden bool
	ignore     gitignore.IgnoreMatcher
}

// newEntryFilter builds the filter for dir from the run options. Glob
// patterns are validated up front so a bad pattern fails before counting.
func newEntryFilter(dir string, opts options, logger *slog.Logger) (*entryFilter, error) {
	f := &entryFilter{
		include:    parsePatterns(opts.Include),
		exclude:    parsePatterns(opts.Exclude),
		skipHidden: opts.SkipHidden,
	}

	for _, pattern := range append(append([]string{}, f.include...), f.exclude...) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
	}

	if opts.Gitignore {
		gitIgnorePath := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				logger.Warn("could not parse .gitignore", "path", gitIgnorePath, "error", err)
			} else {
				f.ignore = matcher
			}
		} else {
			logger.Debug("no .gitignore found", "path", gitIgnorePath)
		}
	}

	return f, nil
}

// keep reports whether the entry named name inside dir should be counted.
func (f *entryFilter) keep(dir, name string, isDir bool) bool {
	if f == nil {
		return true
	}
	if f.skipHidden && isHidden(name) {
		return false
	}
	if f.ignore != nil && f.ignore.Match(filepath.Join(dir, name), isDir) {
		return false
	}
	if matchesAnyPattern(name, f.exclude) {
		return false
	}
	if len(f.include) > 0 && !matchesAnyPattern(name, f.include) {
		return false
	}
	return true
}

// enumerateDirectory lists the entries directly inside dir (no recursion)
// that pass filter, as paths joined onto dir and sorted by name.
func enumerateDirectory(dir string, filter *entryFilter) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEnumerate, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w %s: not a directory", ErrEnumerate, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEnumerate, dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !filter.keep(dir, entry.Name(), entry.IsDir()) {
			continue
		}
		paths = append(paths, entryPath(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// entryPath appends name to dir as given, without cleaning dir, so the
// report shows the directory exactly as the user typed it.
func entryPath(dir, name string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyPattern checks if name matches any of the glob patterns.
// Patterns are validated by newEntryFilter.
func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// isHidden checks if a base name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
