package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
)

const readBufferSize = 64 * 1024

// countLines counts newline-terminated records in r. Data after the last
// newline counts as one more line, so "a" is 1 line and "" is 0.
func countLines(r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, readBufferSize)
	buf := make([]byte, readBufferSize)

	lines := 0
	partial := false
	for {
		n, err := br.Read(buf)
		if n > 0 {
			lines += bytes.Count(buf[:n], []byte{'\n'})
			partial = buf[n-1] != '\n'
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if partial {
		lines++
	}
	return lines, nil
}

// countFile opens path and counts its lines. Any failure to open or read the
// entry, including it being a directory, is reported as ErrOpen.
func countFile(path string) (LineCount, error) {
	result := LineCount{Name: path}

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil {
		result.Size = info.Size()
	}

	lines, err := countLines(f)
	if err != nil {
		return result, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	result.Lines = lines
	return result, nil
}

// countFunc counts a single entry.
type countFunc func(path string) (LineCount, error)

// countJob runs count for one path, turning a panic into an ErrTask failure.
func countJob(count countFunc, path string) (result LineCount) {
	defer func() {
		if r := recover(); r != nil {
			result = LineCount{Name: path, Err: fmt.Errorf("%w for %s: %v", ErrTask, path, r)}
		}
	}()

	counted, err := count(path)
	if err != nil {
		counted.Name = path
		counted.Err = err
	}
	return counted
}

// countWorker drains jobs until the channel is closed. Once ctx is cancelled
// remaining jobs are skipped.
func countWorker(ctx context.Context, count countFunc, jobs <-chan string, results chan<- LineCount, wg *sync.WaitGroup) {
	defer wg.Done()
	for path := range jobs {
		if ctx.Err() != nil {
			continue
		}
		results <- countJob(count, path)
	}
}

// countAll counts every path on a pool of at most workers goroutines
// (0 means one per CPU). Without keepGoing the first failure cancels the
// remaining jobs and is returned; with keepGoing failures are kept in the
// returned slice with Err set.
func countAll(ctx context.Context, paths []string, workers int, keepGoing bool) ([]LineCount, error) {
	return countAllWith(ctx, paths, workers, keepGoing, countFile)
}

func countAllWith(ctx context.Context, paths []string, workers int, keepGoing bool, count countFunc) ([]LineCount, error) {
	counts := make([]LineCount, 0, len(paths))
	if len(paths) == 0 {
		return counts, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	results := make(chan LineCount, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go countWorker(runCtx, count, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-runCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for res := range results {
		if res.Err != nil && !keepGoing {
			if firstErr == nil {
				firstErr = res.Err
				cancel()
			}
			continue
		}
		counts = append(counts, res)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// sortCounts orders counts by line count, ascending unless desc is set.
// Equal counts are ordered by name so the report is reproducible.
func sortCounts(counts []LineCount, desc bool) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Lines != counts[j].Lines {
			if desc {
				return counts[i].Lines > counts[j].Lines
			}
			return counts[i].Lines < counts[j].Lines
		}
		return counts[i].Name < counts[j].Name
	})
}
