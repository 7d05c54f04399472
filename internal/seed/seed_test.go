package seed_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles/internal/domain/entity"
	"articles/internal/infra/adapter/persistence/sqlite"
	"articles/internal/infra/db"
	"articles/internal/seed"
)

func TestDefault(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)

	assert.Len(t, f.Authors, 3)
	assert.Len(t, f.Magazines, 3)
	assert.Len(t, f.Articles, 6)
	assert.Equal(t, "Breaking News: Event X", f.Articles[4].Title)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown key", yaml: "authors: [a]\npublishers: [x]\n"},
		{name: "unknown author", yaml: `
authors: [Jane]
magazines: [{name: M, category: C}]
articles: [{title: T, author: John, magazine: M}]
`},
		{name: "unknown magazine", yaml: `
authors: [Jane]
magazines: [{name: M, category: C}]
articles: [{title: T, author: Jane, magazine: N}]
`},
		{name: "missing category", yaml: "magazines: [{name: M}]\n"},
		{name: "missing title", yaml: `
authors: [Jane]
magazines: [{name: M, category: C}]
articles: [{author: Jane, magazine: M}]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.Open(ctx, db.DialectSQLite, ":memory:", db.DefaultConnectionConfig())
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()
	require.NoError(t, db.MigrateUp(ctx, sqlDB, db.DialectSQLite))

	gw := db.NewGateway(sqlDB)
	repos := seed.Repositories{
		Authors:   sqlite.NewAuthorRepo(gw),
		Magazines: sqlite.NewMagazineRepo(gw),
		Articles:  sqlite.NewArticleRepo(gw),
	}

	f, err := seed.Default()
	require.NoError(t, err)

	res, err := seed.Apply(ctx, f, repos)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Authors: 3, Magazines: 3, Articles: 6}, res)

	counts, err := repos.Magazines.ArticleCounts(ctx)
	require.NoError(t, err)
	want := []entity.MagazineArticleCount{
		{Name: "Tech Innovators", Count: 4},
		{Name: "Cooking Delights", Count: 1},
		{Name: "Global News", Count: 1},
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("ArticleCounts mismatch (-want +got):\n%s", diff)
	}

	multi, err := repos.Magazines.WithMultipleAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, multi, 1)
	assert.Equal(t, "Tech Innovators", multi[0].Name)

	top, err := repos.Authors.TopAuthor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", top.Name, "three authors tie at two articles; lowest id wins")

	require.NoError(t, db.ClearAll(ctx, sqlDB))
	authors, err := repos.Authors.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, authors)
}
