package article_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles/internal/domain/entity"
	artUC "articles/internal/usecase/article"
)

/* ───────── stubs ───────── */

type stubRepo struct {
	data   map[int64]*entity.Article
	nextID int64
	err    error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}
func (s *stubRepo) GetByTitle(_ context.Context, title string) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	for id := int64(1); id < s.nextID; id++ {
		if a, ok := s.data[id]; ok && a.Title == title {
			return a, nil
		}
	}
	return nil, nil
}
func (s *stubRepo) ListByAuthorID(_ context.Context, authorID int64) ([]*entity.Article, error) {
	return s.filter(func(a *entity.Article) bool { return a.AuthorID == authorID })
}
func (s *stubRepo) ListByMagazineID(_ context.Context, magazineID int64) ([]*entity.Article, error) {
	return s.filter(func(a *entity.Article) bool { return a.MagazineID == magazineID })
}
func (s *stubRepo) filter(keep func(*entity.Article) bool) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []*entity.Article{}
	for id := int64(1); id < s.nextID; id++ {
		if a, ok := s.data[id]; ok && keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}
func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	cp := *a
	s.data[a.ID] = &cp
	return nil
}
func (s *stubRepo) Update(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

type stubAuthors map[int64]*entity.Author

func (s stubAuthors) Get(_ context.Context, id int64) (*entity.Author, error) { return s[id], nil }

type stubMagazines map[int64]*entity.Magazine

func (s stubMagazines) Get(_ context.Context, id int64) (*entity.Magazine, error) { return s[id], nil }

func newService() (*artUC.Service, *stubRepo) {
	repo := newStub()
	return &artUC.Service{
		Repo:      repo,
		Authors:   stubAuthors{1: {ID: 1, Name: "Jane Doe"}},
		Magazines: stubMagazines{1: {ID: 1, Name: "Tech Innovators", Category: "Technology"}},
	}, repo
}

/* ───────── tests ───────── */

func TestService_SaveRoundTrip(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	art := &entity.Article{Title: "AI Trends", Content: "body", AuthorID: 1, MagazineID: 1}
	require.True(t, svc.Save(ctx, art))
	require.True(t, art.IsPersisted())

	assert.Equal(t, art, svc.FindByID(ctx, art.ID))
	assert.Equal(t, art, svc.FindByTitle(ctx, "AI Trends"))
	assert.Len(t, svc.FindByAuthorID(ctx, 1), 1)
	assert.Len(t, svc.FindByMagazineID(ctx, 1), 1)
	assert.Empty(t, svc.FindByMagazineID(ctx, 2))
}

func TestService_SaveUpdatesAllMutableFields(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	art := &entity.Article{Title: "AI Trends", AuthorID: 1, MagazineID: 1}
	require.True(t, svc.Save(ctx, art))
	id := art.ID

	art.Title, art.Content, art.AuthorID, art.MagazineID = "AI Trends 2", "new", 2, 3
	require.True(t, svc.Save(ctx, art))

	assert.Equal(t, id, art.ID)
	assert.Equal(t, entity.Article{ID: id, Title: "AI Trends 2", Content: "new", AuthorID: 2, MagazineID: 3}, *repo.data[id])
}

func TestService_SaveRejects(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	noTitle := &entity.Article{AuthorID: 1, MagazineID: 1}
	assert.False(t, svc.Save(ctx, noTitle))

	orphan := &entity.Article{Title: "Orphan"}
	assert.False(t, svc.Save(ctx, orphan))

	assert.False(t, svc.Save(ctx, nil))
	assert.Empty(t, repo.data)
}

func TestService_SaveStorageFailure(t *testing.T) {
	svc, repo := newService()
	repo.err = entity.ErrForeignKeyViolation

	art := &entity.Article{Title: "AI Trends", AuthorID: 7, MagazineID: 7}
	assert.False(t, svc.Save(context.Background(), art))
	assert.Zero(t, art.ID)
}

func TestService_ResolvesParents(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	art := &entity.Article{ID: 1, Title: "AI Trends", AuthorID: 1, MagazineID: 1}

	require.NotNil(t, svc.Author(ctx, art))
	assert.Equal(t, "Jane Doe", svc.Author(ctx, art).Name)
	require.NotNil(t, svc.Magazine(ctx, art))
	assert.Equal(t, "Tech Innovators", svc.Magazine(ctx, art).Name)

	assert.Nil(t, svc.Author(ctx, &entity.Article{AuthorID: 9}))
	assert.Nil(t, svc.Magazine(ctx, nil))
}

func TestService_FindDegradesOnError(t *testing.T) {
	svc, repo := newService()
	repo.err = entity.ErrConnectionFailure
	ctx := context.Background()

	assert.Nil(t, svc.FindByID(ctx, 1))
	assert.Nil(t, svc.FindByTitle(ctx, "AI Trends"))
	assert.Equal(t, []*entity.Article{}, svc.FindByAuthorID(ctx, 1))
	assert.Equal(t, []*entity.Article{}, svc.FindByMagazineID(ctx, 1))
}

func TestErrMissingParent_IsNotPersisted(t *testing.T) {
	assert.ErrorIs(t, artUC.ErrMissingParent, entity.ErrNotPersisted)
}
