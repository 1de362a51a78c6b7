// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runGated runs task(ctx, i) for i in [0, n) with at most limit tasks in
// flight. Tasks are started in index order. After the first failure the
// context passed to tasks is cancelled, tasks not yet started are skipped,
// and the first error is returned once running tasks have finished.
func runGated(ctx context.Context, limit, n int, task func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
