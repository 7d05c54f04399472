package article

import (
	"context"
	"log/slog"

	"articles/internal/domain/entity"
	"articles/internal/observability/logging"
	"articles/internal/repository"
)

// Service provides article use cases. Authors and Magazines resolve the two
// parents; they are narrow lookups so this package does not depend on the
// author or magazine use cases.
type Service struct {
	Repo      repository.ArticleRepository
	Authors   repository.AuthorFinder
	Magazines repository.MagazineFinder
}

// FindByID returns the article with the given identity, or nil.
func (s *Service) FindByID(ctx context.Context, id int64) *entity.Article {
	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		logFailure(ctx, "article.FindByID", err, slog.Int64("article_id", id))
		return nil
	}
	return art
}

// FindByTitle returns the first article with exactly this title, or nil.
func (s *Service) FindByTitle(ctx context.Context, title string) *entity.Article {
	art, err := s.Repo.GetByTitle(ctx, title)
	if err != nil {
		logFailure(ctx, "article.FindByTitle", err, slog.String("title", title))
		return nil
	}
	return art
}

// FindByAuthorID returns the author's articles in id order.
func (s *Service) FindByAuthorID(ctx context.Context, authorID int64) []*entity.Article {
	arts, err := s.Repo.ListByAuthorID(ctx, authorID)
	if err != nil {
		logFailure(ctx, "article.FindByAuthorID", err, slog.Int64("author_id", authorID))
		return []*entity.Article{}
	}
	return arts
}

// FindByMagazineID returns the magazine's articles in id order.
func (s *Service) FindByMagazineID(ctx context.Context, magazineID int64) []*entity.Article {
	arts, err := s.Repo.ListByMagazineID(ctx, magazineID)
	if err != nil {
		logFailure(ctx, "article.FindByMagazineID", err, slog.Int64("magazine_id", magazineID))
		return []*entity.Article{}
	}
	return arts
}

// Save inserts the article when it has no identity and updates it otherwise.
// It reports whether the row was written. On a failed insert the identity
// stays zero.
func (s *Service) Save(ctx context.Context, art *entity.Article) bool {
	if art == nil {
		return false
	}
	if err := entity.Validate(art); err != nil {
		logFailure(ctx, "article.Save", err, slog.Int64("article_id", art.ID))
		return false
	}
	if art.AuthorID <= 0 || art.MagazineID <= 0 {
		logFailure(ctx, "article.Save", ErrMissingParent,
			slog.Int64("author_id", art.AuthorID),
			slog.Int64("magazine_id", art.MagazineID))
		return false
	}

	var err error
	if art.IsPersisted() {
		err = s.Repo.Update(ctx, art)
	} else {
		err = s.Repo.Create(ctx, art)
	}
	if err != nil {
		logFailure(ctx, "article.Save", err, slog.Int64("article_id", art.ID))
		return false
	}
	return true
}

// Author resolves the article's author, or nil.
func (s *Service) Author(ctx context.Context, art *entity.Article) *entity.Author {
	if art == nil || art.AuthorID <= 0 {
		return nil
	}
	a, err := s.Authors.Get(ctx, art.AuthorID)
	if err != nil {
		logFailure(ctx, "article.Author", err, slog.Int64("author_id", art.AuthorID))
		return nil
	}
	return a
}

// Magazine resolves the article's magazine, or nil.
func (s *Service) Magazine(ctx context.Context, art *entity.Article) *entity.Magazine {
	if art == nil || art.MagazineID <= 0 {
		return nil
	}
	m, err := s.Magazines.Get(ctx, art.MagazineID)
	if err != nil {
		logFailure(ctx, "article.Magazine", err, slog.Int64("magazine_id", art.MagazineID))
		return nil
	}
	return m
}

func logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("op", op), slog.Any("error", err))
	for _, a := range attrs {
		args = append(args, a)
	}
	logging.FromContext(ctx).WarnContext(ctx, "article operation failed", args...)
}
