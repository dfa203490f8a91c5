package aggregate

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-xas/xas/background"
	"github.com/cwbudde/algo-xas/xas/scan"
)

// FitResult records the outcome of one scan's background pass.
type FitResult struct {
	ScanNo int
	// Err is a whole-scan failure, e.g. an unresolvable edge.
	Err error
	// Modes holds per-mode fit failures; successful modes advanced anyway.
	Modes map[string]error
}

// Failed reports whether anything in the scan went wrong.
func (r FitResult) Failed() bool {
	return r.Err != nil || len(r.Modes) > 0
}

// FitBackgrounds runs AutoEdgeBackground over the scans on a worker pool
// bounded by the CPU count. Scans are independent and share no fit state,
// so the outcome is deterministic: the result slice matches the input
// order, with per-scan and per-mode failures recorded instead of aborting
// the batch. Cancelling the context stops scans that have not started.
func FitBackgrounds(ctx context.Context, cfg background.Config, scans ...*scan.Container) []FitResult {
	results := make([]FitResult, len(scans))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, c := range scans {
		g.Go(func() error {
			results[i] = fitOne(ctx, cfg, c)
			// Failures stay in the per-scan result; never fail the group.
			return nil
		})
	}

	// No goroutine returns an error, so Wait only synchronizes.
	_ = g.Wait()
	return results
}

func fitOne(ctx context.Context, cfg background.Config, c *scan.Container) FitResult {
	if c == nil {
		return FitResult{Err: fmt.Errorf("aggregate: nil scan")}
	}

	res := FitResult{ScanNo: c.Meta.ScanNo}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	failures, err := c.AutoEdgeBackground(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	if len(failures) > 0 {
		res.Modes = failures
	}
	return res
}
