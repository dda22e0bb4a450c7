package export

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

// BuildBatch generates one Assembly per request concurrently, at most
// limit at a time (limit ≤ 0 means GOMAXPROCS). Results are returned in
// request order.
//
// The first failing request cancels the rest; its error is returned
// wrapped with the request index and still matches the model sentinels.
func BuildBatch(ctx context.Context, requests []model.RawParameters, std standards.Standards, limit int) ([]*model.Assembly, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*model.Assembly, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, raw := range requests {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := BuildRaw(raw, std)
			if err != nil {
				return fmt.Errorf("cabinet %d: %w", i+1, err)
			}
			// Each goroutine owns exactly one slot.
			results[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
