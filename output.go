package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"
)

// Report formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type reportFile struct {
	Name     string `json:"name" yaml:"name"`
	Lines    int    `json:"lines" yaml:"lines"`
	Size     int64  `json:"size" yaml:"size"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

type reportFailure struct {
	Name  string `json:"name" yaml:"name"`
	Error string `json:"error" yaml:"error"`
}

type reportDocument struct {
	Files    []reportFile    `json:"files" yaml:"files"`
	Failures []reportFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Summary  Summary         `json:"summary" yaml:"summary"`
}

// renderReport renders already sorted counts in the given format. Failed
// entries keep their relative order and follow the successful ones.
func renderReport(counts []LineCount, format string, withSummary bool) (string, error) {
	switch strings.ToLower(format) {
	case "", formatText:
		return renderText(counts, withSummary), nil
	case formatJSON:
		data, err := json.MarshalIndent(buildDocument(counts), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json report: %w", err)
		}
		return string(data) + "\n", nil
	case formatYAML:
		data, err := yaml.Marshal(buildDocument(counts))
		if err != nil {
			return "", fmt.Errorf("encoding yaml report: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s. Use 'text', 'json' or 'yaml'", format)
	}
}

func renderText(counts []LineCount, withSummary bool) string {
	var builder strings.Builder
	for _, c := range counts {
		if c.Err == nil {
			fmt.Fprintf(&builder, "%d: %s\n", c.Lines, c.Name)
		}
	}
	for _, c := range counts {
		if c.Err != nil {
			fmt.Fprintf(&builder, "error: %s: %v\n", c.Name, c.Err)
		}
	}

	if withSummary {
		summary := summarize(counts)
		builder.WriteString("\n--- Summary ---\n")
		fmt.Fprintf(&builder, "Total files: %d\n", summary.TotalFiles)
		fmt.Fprintf(&builder, "Total lines: %d\n", summary.TotalLines)
		if summary.Failed > 0 {
			fmt.Fprintf(&builder, "Files failed: %d\n", summary.Failed)
		}
	}
	return builder.String()
}

func buildDocument(counts []LineCount) reportDocument {
	doc := reportDocument{
		Files:   make([]reportFile, 0, len(counts)),
		Summary: summarize(counts),
	}
	for _, c := range counts {
		if c.Err != nil {
			doc.Failures = append(doc.Failures, reportFailure{Name: c.Name, Error: c.Err.Error()})
			continue
		}
		doc.Files = append(doc.Files, reportFile{
			Name:     c.Name,
			Lines:    c.Lines,
			Size:     c.Size,
			Language: c.Language,
		})
	}
	return doc
}

// writeReport sends the rendered report to its single destination: a file,
// the clipboard, or out.
func writeReport(out io.Writer, report string, opts options, logger *slog.Logger) error {
	switch {
	case opts.File != "":
		if err := os.WriteFile(opts.File, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report to %s: %w", opts.File, err)
		}
		logger.Info("report saved", "path", opts.File)
		return nil
	case opts.Clipboard:
		if err := clipboard.WriteAll(report); err != nil {
			logger.Warn("clipboard unavailable, printing report", "error", err)
			_, err = io.WriteString(out, report)
			return err
		}
		logger.Info("report copied to clipboard")
		return nil
	default:
		_, err := io.WriteString(out, report)
		return err
	}
}
