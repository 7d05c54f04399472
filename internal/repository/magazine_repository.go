package repository

import (
	"context"

	"articles/internal/domain/entity"
)

type MagazineRepository interface {
	MagazineFinder
	GetByName(ctx context.Context, name string) (*entity.Magazine, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Magazine, error)
	List(ctx context.Context) ([]*entity.Magazine, error)
	// Create inserts the magazine and assigns magazine.ID.
	Create(ctx context.Context, magazine *entity.Magazine) error
	Update(ctx context.Context, magazine *entity.Magazine) error
	// ArticleTitles projects the magazine's articles to their titles.
	ArticleTitles(ctx context.Context, magazineID int64) ([]string, error)
	// ContributingAuthors returns the distinct authors with at least one
	// article in the magazine.
	ContributingAuthors(ctx context.Context, magazineID int64) ([]*entity.Author, error)
	// WithMultipleAuthors returns magazines whose articles have more than one
	// distinct author. Article count alone never qualifies a magazine.
	WithMultipleAuthors(ctx context.Context) ([]*entity.Magazine, error)
	// ArticleCounts returns one entry per magazine, zero included.
	ArticleCounts(ctx context.Context) ([]entity.MagazineArticleCount, error)
}

// MagazineFinder resolves an article's magazine.
type MagazineFinder interface {
	Get(ctx context.Context, id int64) (*entity.Magazine, error)
}
