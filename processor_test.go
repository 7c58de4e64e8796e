package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnumerateDirectory_ListsEveryEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "")
	writeFile(t, dir, "a.txt", "")
	writeFile(t, dir, ".hidden", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFile(t, filepath.Join(dir, "sub"), "nested.txt", "")

	paths, err := enumerateDirectory(dir, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, ".hidden"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub"),
	}, paths, "entries are listed without recursion")
}

func TestEnumerateDirectory_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "a")

	for name, path := range map[string]string{
		"missing":       filepath.Join(dir, "nope"),
		"not directory": file,
	} {
		path := path
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := enumerateDirectory(path, nil)
			require.ErrorIs(t, err, ErrEnumerate)
		})
	}
}

func TestEntryFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "b_test.go", "notes.md", ".env"} {
		writeFile(t, dir, name, "")
	}

	tests := []struct {
		name string
		opts options
		want []string
	}{
		{
			name: "no filters",
			want: []string{".env", "a.go", "b.go", "b_test.go", "notes.md"},
		},
		{
			name: "include",
			opts: options{Include: "*.go"},
			want: []string{"a.go", "b.go", "b_test.go"},
		},
		{
			name: "exclude wins over include",
			opts: options{Include: "*.go", Exclude: "*_test.go"},
			want: []string{"a.go", "b.go"},
		},
		{
			name: "skip hidden",
			opts: options{SkipHidden: true, Exclude: " *.md , "},
			want: []string{"a.go", "b.go", "b_test.go"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			filter, err := newEntryFilter(dir, tt.opts, discardLogger())
			require.NoError(t, err)

			paths, err := enumerateDirectory(dir, filter)
			require.NoError(t, err)

			var names []string
			for _, p := range paths {
				names = append(names, filepath.Base(p))
			}
			require.Equal(t, tt.want, names)
		})
	}
}

func TestEntryFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := newEntryFilter(t.TempDir(), options{Include: "[a-"}, discardLogger())
	require.ErrorIs(t, err, filepath.ErrBadPattern)
}

func TestEntryFilter_Gitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "*.log\n")
	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "debug.log", "noise\n")

	filter, err := newEntryFilter(dir, options{Gitignore: true}, discardLogger())
	require.NoError(t, err)

	paths, err := enumerateDirectory(dir, filter)
	require.NoError(t, err)
	require.Contains(t, paths, filepath.Join(dir, "a.txt"))
	require.NotContains(t, paths, filepath.Join(dir, "debug.log"))
}

func TestParsePatterns(t *testing.T) {
	t.Parallel()

	require.Nil(t, parsePatterns(""))
	require.Equal(t, []string{"*.go", "*.rs"}, parsePatterns("*.go, *.rs,"))
}

func TestEntryPath(t *testing.T) {
	t.Parallel()

	sep := string(filepath.Separator)
	require.Equal(t, "src"+sep+"a.txt", entryPath("src", "a.txt"))
	require.Equal(t, "."+sep+"src"+sep+"a.txt", entryPath("."+sep+"src"+sep, "a.txt"))
}
