package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"articles/internal/infra/adapter/persistence/postgres"
	"articles/internal/infra/adapter/persistence/sqlite"
	"articles/internal/infra/db"
	"articles/internal/seed"
	artUC "articles/internal/usecase/article"
	authorUC "articles/internal/usecase/author"
	magUC "articles/internal/usecase/magazine"
)

// app wires the repositories of one dialect into the use cases.
type app struct {
	gw      *db.Gateway
	dialect db.Dialect
	repos   seed.Repositories
	out     io.Writer

	authors   *authorUC.Service
	magazines *magUC.Service
	articles  *artUC.Service
}

func newApp(gw *db.Gateway, dialect db.Dialect, out io.Writer) *app {
	var repos seed.Repositories
	switch dialect {
	case db.DialectPostgres:
		repos = seed.Repositories{
			Authors:   postgres.NewAuthorRepo(gw),
			Magazines: postgres.NewMagazineRepo(gw),
			Articles:  postgres.NewArticleRepo(gw),
		}
	default:
		repos = seed.Repositories{
			Authors:   sqlite.NewAuthorRepo(gw),
			Magazines: sqlite.NewMagazineRepo(gw),
			Articles:  sqlite.NewArticleRepo(gw),
		}
	}

	return &app{
		gw:        gw,
		dialect:   dialect,
		repos:     repos,
		out:       out,
		authors:   &authorUC.Service{Repo: repos.Authors, ArticleRepo: repos.Articles},
		magazines: &magUC.Service{Repo: repos.Magazines, ArticleFinder: repos.Articles},
		articles:  &artUC.Service{Repo: repos.Articles, Authors: repos.Authors, Magazines: repos.Magazines},
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "migrate":
		return a.migrate(ctx, rest)
	case "seed":
		return a.seed(ctx, rest)
	case "report":
		return a.report(ctx)
	case "author":
		return a.showAuthor(ctx, strings.Join(rest, " "))
	case "magazine":
		return a.showMagazine(ctx, strings.Join(rest, " "))
	case "article":
		return a.showArticle(ctx, strings.Join(rest, " "))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) migrate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	down := fs.Bool("down", false, "drop the tables instead of creating them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *down {
		if err := db.MigrateDown(ctx, a.gw.DB()); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Tables dropped.")
		return nil
	}

	if err := db.MigrateUp(ctx, a.gw.DB(), a.dialect); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Tables created successfully.")
	return nil
}

func (a *app) seed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "YAML fixture to load instead of the built-in sample")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fixture, err := loadFixture(*file)
	if err != nil {
		return err
	}

	if err := db.ClearAll(ctx, a.gw.DB()); err != nil {
		return err
	}
	res, err := seed.Apply(ctx, fixture, a.repos)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Seeded %d authors, %d magazines, %d articles.\n", res.Authors, res.Magazines, res.Articles)
	return nil
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	// #nosec G304 -- path is a CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return seed.Parse(data)
}

func (a *app) showAuthor(ctx context.Context, name string) error {
	author := a.authors.FindByName(ctx, name)
	if author == nil {
		fmt.Fprintf(a.out, "Author %q not found.\n", name)
		return nil
	}

	fmt.Fprintf(a.out, "Author: %s (ID: %d)\n", author.Name, author.ID)
	fmt.Fprintln(a.out, "Articles:")
	for _, art := range a.authors.Articles(ctx, author) {
		fmt.Fprintf(a.out, "- %s\n", art.Title)
	}
	fmt.Fprintln(a.out, "Magazines:")
	for _, m := range a.authors.Magazines(ctx, author) {
		fmt.Fprintf(a.out, "- %s (%s)\n", m.Name, m.Category)
	}
	return nil
}

func (a *app) showMagazine(ctx context.Context, name string) error {
	m := a.magazines.FindByName(ctx, name)
	if m == nil {
		fmt.Fprintf(a.out, "Magazine %q not found.\n", name)
		return nil
	}

	fmt.Fprintf(a.out, "Magazine: %s [%s] (ID: %d)\n", m.Name, m.Category, m.ID)
	fmt.Fprintf(a.out, "Article titles: %s\n", strings.Join(a.magazines.ArticleTitles(ctx, m), ", "))

	contributors := a.magazines.ContributingAuthors(ctx, m)
	if contributors == nil {
		fmt.Fprintln(a.out, "No contributing authors.")
		return nil
	}
	names := make([]string, 0, len(contributors))
	for _, c := range contributors {
		names = append(names, c.Name)
	}
	fmt.Fprintf(a.out, "Contributing authors: %s\n", strings.Join(names, ", "))

	others := a.magazines.FindByCategory(ctx, m.Category)
	fmt.Fprintf(a.out, "Magazines in %q: %d\n", m.Category, len(others))
	return nil
}

func (a *app) showArticle(ctx context.Context, title string) error {
	art := a.articles.FindByTitle(ctx, title)
	if art == nil {
		fmt.Fprintf(a.out, "Article %q not found.\n", title)
		return nil
	}

	fmt.Fprintf(a.out, "Article: %s (ID: %d)\n", art.Title, art.ID)
	if m := a.articles.Magazine(ctx, art); m != nil {
		fmt.Fprintf(a.out, "  Magazine: %s\n", m.Name)
	}
	if au := a.articles.Author(ctx, art); au != nil {
		fmt.Fprintf(a.out, "  Author: %s\n", au.Name)
	}
	return nil
}
