package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindDirectoryCandidates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"src/pkg", "docs", ".git/objects"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	writeFile(t, root, "a.txt", "a\n")

	got, err := findDirectoryCandidates(root)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "pkg"),
	}, got)
}
