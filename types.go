package main

import "errors"

var (
	// ErrEnumerate is returned when the target directory cannot be listed.
	ErrEnumerate = errors.New("unable to read directory")
	// ErrOpen is returned when an entry cannot be opened and read as a file.
	ErrOpen = errors.New("unable to open file")
	// ErrTask is returned when a counting job panics.
	ErrTask = errors.New("counting task failed")
	// ErrSource is returned when a git source cannot be fetched.
	ErrSource = errors.New("unable to fetch source")
)

// LineCount holds the result of counting one directory entry.
type LineCount struct {
	Name     string // Entry path as given by the enumerator
	Lines    int
	Size     int64
	Language string // Populated when languages.yml is available
	Err      error  // Only set in keep-going mode
}

// Summary holds aggregated information about a run.
type Summary struct {
	TotalFiles int `json:"total_files" yaml:"total_files"`
	TotalLines int `json:"total_lines" yaml:"total_lines"`
	Failed     int `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// summarize totals the successful counts and tallies failures.
func summarize(counts []LineCount) Summary {
	var s Summary
	for _, c := range counts {
		if c.Err != nil {
			s.Failed++
			continue
		}
		s.TotalFiles++
		s.TotalLines += c.Lines
	}
	return s
}
