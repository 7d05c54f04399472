// Package repository declares the persistence contracts of the catalog.
//
// Implementations return errors from the storage layer untouched except for
// classification; a lookup that matches no row returns (nil, nil).
package repository

import (
	"context"

	"articles/internal/domain/entity"
)

// ArticleRepository persists articles. Articles carry both foreign keys, so
// aggregation over them is the job of the author and magazine repositories.
type ArticleRepository interface {
	ArticleFinder
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetByTitle returns the first article (lowest id) with exactly this title.
	GetByTitle(ctx context.Context, title string) (*entity.Article, error)
	// Create inserts the article and assigns article.ID.
	Create(ctx context.Context, article *entity.Article) error
	// Update overwrites title, content, author_id and magazine_id by id.
	Update(ctx context.Context, article *entity.Article) error
}

// ArticleFinder is the slice of ArticleRepository the author and magazine
// use cases need to traverse into articles.
type ArticleFinder interface {
	ListByAuthorID(ctx context.Context, authorID int64) ([]*entity.Article, error)
	ListByMagazineID(ctx context.Context, magazineID int64) ([]*entity.Article, error)
}
