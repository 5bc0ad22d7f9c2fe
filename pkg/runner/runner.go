package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/redmark/internal/logging"
	"github.com/yaklabco/redmark/pkg/fsutil"
	"github.com/yaklabco/redmark/pkg/parser"
)

// Run discovers files under opts.Paths and parses them concurrently. The
// parser is shared by all workers. Outcomes are returned in path order
// regardless of completion order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	p := opts.Parser
	if p == nil {
		p = parser.New(parser.DefaultOptions())
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("starting run", "files", len(files), "jobs", jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, p, opts.MaxFileSize, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker parses files from workCh and sends outcomes to outCh.
func worker(ctx context.Context, p *parser.Parser, limit int64, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		outcome := FileOutcome{Path: path}

		content, err := fsutil.ReadInput(ctx, path, nil, limit)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Document = p.Parse(string(content))
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
