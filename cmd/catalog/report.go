package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"articles/internal/domain/entity"
	"articles/internal/observability/metrics"
)

type catalogReport struct {
	top       *entity.Author
	multi     []*entity.Magazine
	counts    []entity.MagazineArticleCount
	authors   int
	magazines int
}

// report runs the aggregate queries concurrently, each on its own
// connection. The first failure cancels the rest.
func (a *app) report(ctx context.Context) error {
	var r catalogReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		top, err := a.repos.Authors.TopAuthor(gctx)
		r.top = top
		return err
	})
	g.Go(func() error {
		multi, err := a.repos.Magazines.WithMultipleAuthors(gctx)
		r.multi = multi
		return err
	})
	g.Go(func() error {
		counts, err := a.repos.Magazines.ArticleCounts(gctx)
		r.counts = counts
		return err
	})
	g.Go(func() error {
		authors, err := a.repos.Authors.List(gctx)
		r.authors = len(authors)
		return err
	})
	g.Go(func() error {
		magazines, err := a.repos.Magazines.List(gctx)
		r.magazines = len(magazines)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	var articles int64
	for _, c := range r.counts {
		articles += c.Count
	}
	metrics.UpdateCatalogTotals(r.authors, r.magazines, int(articles))

	if r.top != nil {
		fmt.Fprintf(a.out, "Top author: %s (ID: %d)\n", r.top.Name, r.top.ID)
	} else {
		fmt.Fprintln(a.out, "No top author found.")
	}

	fmt.Fprintln(a.out, "Magazines with multiple authors:")
	for _, m := range r.multi {
		fmt.Fprintf(a.out, "- %s\n", m.Name)
	}

	fmt.Fprintln(a.out, "Article counts per magazine:")
	for _, c := range r.counts {
		fmt.Fprintf(a.out, "- %s: %d articles\n", c.Name, c.Count)
	}

	breaker := "closed"
	if a.gw.BreakerOpen() {
		breaker = "open"
	}
	fmt.Fprintf(a.out, "Storage circuit breaker: %s\n", breaker)
	return nil
}
