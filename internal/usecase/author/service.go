package author

import (
	"context"
	"log/slog"

	"articles/internal/domain/entity"
	"articles/internal/observability/logging"
	"articles/internal/repository"
)

// Service provides author use cases.
//
// Storage errors never reach the caller. They are logged with the
// operation name and degrade to nil or an empty slice.
type Service struct {
	Repo repository.AuthorRepository
	// ArticleRepo lists and creates the author's articles.
	ArticleRepo repository.ArticleRepository
}

func (s *Service) FindByID(ctx context.Context, id int64) *entity.Author {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		logFailure(ctx, "author.FindByID", err, slog.Int64("author_id", id))
		return nil
	}
	return a
}

// FindByName returns the lowest-id author with exactly this name, or nil.
func (s *Service) FindByName(ctx context.Context, name string) *entity.Author {
	a, err := s.Repo.GetByName(ctx, name)
	if err != nil {
		logFailure(ctx, "author.FindByName", err, slog.String("name", name))
		return nil
	}
	return a
}

func (s *Service) List(ctx context.Context) []*entity.Author {
	authors, err := s.Repo.List(ctx)
	if err != nil {
		logFailure(ctx, "author.List", err)
		return []*entity.Author{}
	}
	return authors
}

// Save inserts the author when it has no identity and updates the name
// otherwise. It reports whether the row was written; a failed insert leaves
// the identity at zero.
func (s *Service) Save(ctx context.Context, a *entity.Author) bool {
	if a == nil {
		return false
	}
	if err := entity.Validate(a); err != nil {
		logFailure(ctx, "author.Save", err, slog.Int64("author_id", a.ID))
		return false
	}

	var err error
	if a.IsPersisted() {
		err = s.Repo.Update(ctx, a)
	} else {
		err = s.Repo.Create(ctx, a)
	}
	if err != nil {
		logFailure(ctx, "author.Save", err, slog.Int64("author_id", a.ID))
		return false
	}
	return true
}

// Articles returns the author's articles. An unsaved author has none.
func (s *Service) Articles(ctx context.Context, a *entity.Author) []*entity.Article {
	if !a.IsPersisted() {
		return []*entity.Article{}
	}
	arts, err := s.ArticleRepo.ListByAuthorID(ctx, a.ID)
	if err != nil {
		logFailure(ctx, "author.Articles", err, slog.Int64("author_id", a.ID))
		return []*entity.Article{}
	}
	return arts
}

// Magazines returns the distinct magazines the author has written for.
func (s *Service) Magazines(ctx context.Context, a *entity.Author) []*entity.Magazine {
	if !a.IsPersisted() {
		return []*entity.Magazine{}
	}
	mags, err := s.Repo.MagazinesFor(ctx, a.ID)
	if err != nil {
		logFailure(ctx, "author.Magazines", err, slog.Int64("author_id", a.ID))
		return []*entity.Magazine{}
	}
	return mags
}

// AddArticle creates an article by a in m. It returns nil without writing
// anything when either parent is unsaved or the insert fails.
func (s *Service) AddArticle(ctx context.Context, a *entity.Author, m *entity.Magazine, title, content string) *entity.Article {
	if !a.IsPersisted() || !m.IsPersisted() {
		logFailure(ctx, "author.AddArticle", ErrUnsavedParent, slog.String("title", title))
		return nil
	}

	art := &entity.Article{
		Title:      title,
		Content:    content,
		AuthorID:   a.ID,
		MagazineID: m.ID,
	}
	if err := entity.Validate(art); err != nil {
		logFailure(ctx, "author.AddArticle", err, slog.Int64("author_id", a.ID))
		return nil
	}
	if err := s.ArticleRepo.Create(ctx, art); err != nil {
		logFailure(ctx, "author.AddArticle", err,
			slog.Int64("author_id", a.ID),
			slog.Int64("magazine_id", m.ID))
		return nil
	}
	return art
}

// TopAuthor returns the author with the most articles, or nil when no
// author has written any.
func (s *Service) TopAuthor(ctx context.Context) *entity.Author {
	a, err := s.Repo.TopAuthor(ctx)
	if err != nil {
		logFailure(ctx, "author.TopAuthor", err)
		return nil
	}
	return a
}

func logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("op", op), slog.Any("error", err))
	for _, a := range attrs {
		args = append(args, a)
	}
	logging.FromContext(ctx).WarnContext(ctx, "author operation failed", args...)
}
