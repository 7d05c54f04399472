package repository

import (
	"context"

	"articles/internal/domain/entity"
)

type AuthorRepository interface {
	AuthorFinder
	// GetByName returns the author with the lowest id among exact name matches.
	GetByName(ctx context.Context, name string) (*entity.Author, error)
	List(ctx context.Context) ([]*entity.Author, error)
	// Create inserts the author and assigns author.ID.
	Create(ctx context.Context, author *entity.Author) error
	Update(ctx context.Context, author *entity.Author) error
	// MagazinesFor returns the distinct magazines the author has written for.
	MagazinesFor(ctx context.Context, authorID int64) ([]*entity.Magazine, error)
	// TopAuthor returns the author with the most articles, lowest id first on ties.
	// Returns (nil, nil) when no author has written an article.
	TopAuthor(ctx context.Context) (*entity.Author, error)
}

// AuthorFinder resolves an article's author.
type AuthorFinder interface {
	Get(ctx context.Context, id int64) (*entity.Author, error)
}
