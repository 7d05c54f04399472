package magazine

import (
	"context"
	"log/slog"

	"articles/internal/domain/entity"
	"articles/internal/observability/logging"
	"articles/internal/repository"
)

// Service provides magazine use cases. Failures are logged and degrade to
// nil or an empty slice.
type Service struct {
	Repo          repository.MagazineRepository
	ArticleFinder repository.ArticleFinder
}

func (s *Service) FindByID(ctx context.Context, id int64) *entity.Magazine {
	m, err := s.Repo.Get(ctx, id)
	if err != nil {
		logFailure(ctx, "magazine.FindByID", err, slog.Int64("magazine_id", id))
		return nil
	}
	return m
}

func (s *Service) FindByName(ctx context.Context, name string) *entity.Magazine {
	m, err := s.Repo.GetByName(ctx, name)
	if err != nil {
		logFailure(ctx, "magazine.FindByName", err, slog.String("name", name))
		return nil
	}
	return m
}

func (s *Service) FindByCategory(ctx context.Context, category string) []*entity.Magazine {
	mags, err := s.Repo.ListByCategory(ctx, category)
	if err != nil {
		logFailure(ctx, "magazine.FindByCategory", err, slog.String("category", category))
		return []*entity.Magazine{}
	}
	return mags
}

func (s *Service) List(ctx context.Context) []*entity.Magazine {
	mags, err := s.Repo.List(ctx)
	if err != nil {
		logFailure(ctx, "magazine.List", err)
		return []*entity.Magazine{}
	}
	return mags
}

// Save inserts or updates the magazine by identity and reports whether the
// row was written.
func (s *Service) Save(ctx context.Context, m *entity.Magazine) bool {
	if m == nil {
		return false
	}
	if err := entity.Validate(m); err != nil {
		logFailure(ctx, "magazine.Save", err, slog.Int64("magazine_id", m.ID))
		return false
	}

	var err error
	if m.IsPersisted() {
		err = s.Repo.Update(ctx, m)
	} else {
		err = s.Repo.Create(ctx, m)
	}
	if err != nil {
		logFailure(ctx, "magazine.Save", err, slog.Int64("magazine_id", m.ID))
		return false
	}
	return true
}

// Articles returns every article published in the magazine.
func (s *Service) Articles(ctx context.Context, m *entity.Magazine) []*entity.Article {
	if !m.IsPersisted() {
		return []*entity.Article{}
	}
	arts, err := s.ArticleFinder.ListByMagazineID(ctx, m.ID)
	if err != nil {
		logFailure(ctx, "magazine.Articles", err, slog.Int64("magazine_id", m.ID))
		return []*entity.Article{}
	}
	return arts
}

// ArticleTitles returns the titles of the magazine's articles. The result
// is never nil.
func (s *Service) ArticleTitles(ctx context.Context, m *entity.Magazine) []string {
	if !m.IsPersisted() {
		return []string{}
	}
	titles, err := s.Repo.ArticleTitles(ctx, m.ID)
	if err != nil {
		logFailure(ctx, "magazine.ArticleTitles", err, slog.Int64("magazine_id", m.ID))
		return []string{}
	}
	if titles == nil {
		return []string{}
	}
	return titles
}

// ContributingAuthors returns the distinct authors published in the
// magazine. It returns nil when the magazine has no contributors and an
// empty, non-nil slice when the lookup failed, so the two cases stay
// distinguishable.
func (s *Service) ContributingAuthors(ctx context.Context, m *entity.Magazine) []*entity.Author {
	if !m.IsPersisted() {
		return nil
	}
	authors, err := s.Repo.ContributingAuthors(ctx, m.ID)
	if err != nil {
		logFailure(ctx, "magazine.ContributingAuthors", err, slog.Int64("magazine_id", m.ID))
		return []*entity.Author{}
	}
	if len(authors) == 0 {
		return nil
	}
	return authors
}

// WithMultipleAuthors returns magazines with more than one distinct author.
func (s *Service) WithMultipleAuthors(ctx context.Context) []*entity.Magazine {
	mags, err := s.Repo.WithMultipleAuthors(ctx)
	if err != nil {
		logFailure(ctx, "magazine.WithMultipleAuthors", err)
		return []*entity.Magazine{}
	}
	return mags
}

// ArticleCounts returns one entry per magazine in id order, zero included.
func (s *Service) ArticleCounts(ctx context.Context) []entity.MagazineArticleCount {
	counts, err := s.Repo.ArticleCounts(ctx)
	if err != nil {
		logFailure(ctx, "magazine.ArticleCounts", err)
		return []entity.MagazineArticleCount{}
	}
	return counts
}

func logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("op", op), slog.Any("error", err))
	for _, a := range attrs {
		args = append(args, a)
	}
	logging.FromContext(ctx).WarnContext(ctx, "magazine operation failed", args...)
}
