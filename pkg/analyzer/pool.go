package analyzer

import (
	"context"
	"runtime"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	"golang.org/x/sync/errgroup"
)

// AnalyzeAll analyzes every input using a bounded pool of workers.
//
// Facts are returned in input order, skipping inputs that failed. Every
// failure is reported as a FileError (also in input order) and does not affect
// the other files. The returned error is only set when ctx is cancelled, in
// which case no Facts are returned.
func (a *Analyzer) AnalyzeAll(ctx context.Context, inputs []Input) ([]*fact.Fact, []FileError, error) {
	type result struct {
		fact *fact.Fact
		err  error
	}

	results := make([]result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.poolSize(len(inputs)))

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := a.AnalyzeFile(in)
			results[i] = result{fact: f, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	facts := make([]*fact.Fact, 0, len(inputs))
	var failures []FileError

	for i, r := range results {
		if r.err != nil {
			failures = append(failures, FileError{
				Path:     inputs[i].Path,
				Category: inputs[i].Category,
				Err:      r.err,
			})
			continue
		}

		facts = append(facts, r.fact)
	}

	return facts, failures, nil
}

func (a *Analyzer) poolSize(n int) int {
	workers := a.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return max(1, min(workers, n))
}
