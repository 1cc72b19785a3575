package ptree

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParseAll parses a batch of inputs concurrently with parser p, running at most
// limit parses at a time (no limit if limit < 1). Results are in input order.
//
// Parse errors do not stop the batch; they are reported within the results.
// ParseAll returns early with the context's error if ctx is cancelled. Results
// of inputs not parsed are nil in this case.
func ParseAll(ctx context.Context, p Parser, inputs [][]string, limit int) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	grp, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		grp.SetLimit(limit)
	}
	for i, input := range inputs {
		i, input := i, input
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.Parse(input)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		tracer().Infof("batch parse stopped: %v", err)
		return results, err
	}
	return results, nil
}
