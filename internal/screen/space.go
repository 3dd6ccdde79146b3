package screen

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/chemscreen/internal/model"
)

// Space runs Filter over every order-element combination of elements,
// using up to workers goroutines. Systems are returned in combination
// order and only when they allow at least one composition.
func (s *Screener) Space(ctx context.Context, elements []string, order int, opts FilterOptions, workers int) (*model.SpaceResult, error) {
	if order < 1 || order > len(elements) {
		return nil, errors.Newf("order %d out of range for %d elements", order, len(elements))
	}
	if opts.Stoichs != nil && len(opts.Stoichs) != order {
		return nil, errors.Newf("stoichiometry domains for %d sites, order is %d", len(opts.Stoichs), order)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// fail fast on a bad source before fanning out
	_, warnings, err := s.resolveSource(opts.Source)
	if err != nil {
		return nil, err
	}

	var systems [][]string
	eachSubset(len(elements), order, func(idx []int) {
		sys := make([]string, order)
		for j, i := range idx {
			sys[j] = elements[i]
		}
		systems = append(systems, sys)
	})

	s.logger.Info("screening chemical space",
		zap.Strings("elements", elements),
		zap.Int("order", order),
		zap.Int("systems", len(systems)),
		zap.Int("workers", workers),
	)

	results := make([]*model.FilterResult, len(systems))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sys := range systems {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.Filter(sys, opts)
			if err != nil {
				return errors.Wrapf(err, "system %v", sys)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.SpaceResult{
		Elements: append([]string(nil), elements...),
		Order:    order,
		Warnings: warnings,
	}
	for _, r := range results {
		if r.Len() > 0 {
			r.Warnings = nil
			out.Systems = append(out.Systems, r)
		}
	}
	return out, nil
}
