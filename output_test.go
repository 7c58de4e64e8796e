package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleCounts() []LineCount {
	return []LineCount{
		{Name: "c.txt", Lines: 0},
		{Name: "a.txt", Lines: 2, Size: 4, Language: "Text"},
		{Name: "b.txt", Lines: 5, Size: 10},
	}
}

func TestRenderReport_Text(t *testing.T) {
	t.Parallel()

	got, err := renderReport(sampleCounts(), formatText, false)
	require.NoError(t, err)
	require.Equal(t, "0: c.txt\n2: a.txt\n5: b.txt\n", got)
}

func TestRenderReport_TextSummaryAndFailures(t *testing.T) {
	t.Parallel()

	counts := append(sampleCounts(), LineCount{Name: "sub", Err: errors.New("is a directory")})

	got, err := renderReport(counts, "", true)
	require.NoError(t, err)
	require.Equal(t, "0: c.txt\n2: a.txt\n5: b.txt\n"+
		"error: sub: is a directory\n"+
		"\n--- Summary ---\n"+
		"Total files: 3\n"+
		"Total lines: 7\n"+
		"Files failed: 1\n", got)
}

func TestRenderReport_JSON(t *testing.T) {
	t.Parallel()

	got, err := renderReport(sampleCounts(), "JSON", false)
	require.NoError(t, err)

	var doc reportDocument
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	require.Len(t, doc.Files, 3)
	require.Equal(t, reportFile{Name: "a.txt", Lines: 2, Size: 4, Language: "Text"}, doc.Files[1])
	require.Equal(t, Summary{TotalFiles: 3, TotalLines: 7}, doc.Summary)
	require.Empty(t, doc.Failures)
}

func TestRenderReport_YAML(t *testing.T) {
	t.Parallel()

	counts := append(sampleCounts(), LineCount{Name: "sub", Err: errors.New("is a directory")})
	got, err := renderReport(counts, formatYAML, false)
	require.NoError(t, err)

	var doc reportDocument
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))
	require.Equal(t, "c.txt", doc.Files[0].Name)
	require.Equal(t, []reportFailure{{Name: "sub", Error: "is a directory"}}, doc.Failures)
	require.Equal(t, 1, doc.Summary.Failed)
}

func TestRenderReport_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := renderReport(sampleCounts(), "xml", false)
	require.ErrorContains(t, err, "unsupported output format")
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		require.NoError(t, writeReport(&out, "1: a\n", options{}, discardLogger()))
		require.Equal(t, "1: a\n", out.String())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		path := filepath.Join(t.TempDir(), "report.txt")
		require.NoError(t, writeReport(&out, "1: a\n", options{File: path}, discardLogger()))
		require.Empty(t, out.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "1: a\n", string(data))
	})
}
