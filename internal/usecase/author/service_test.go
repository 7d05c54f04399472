package author_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles/internal/domain/entity"
	"articles/internal/observability/logging"
	authorUC "articles/internal/usecase/author"
)

/* ───────── stubs ───────── */

type stubAuthorRepo struct {
	data   map[int64]*entity.Author
	nextID int64
	top    *entity.Author
	mags   map[int64][]*entity.Magazine
	err    error
}

func newAuthorStub() *stubAuthorRepo {
	return &stubAuthorRepo{data: map[int64]*entity.Author{}, mags: map[int64][]*entity.Magazine{}, nextID: 1}
}

func (s *stubAuthorRepo) Get(_ context.Context, id int64) (*entity.Author, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}
func (s *stubAuthorRepo) GetByName(_ context.Context, name string) (*entity.Author, error) {
	if s.err != nil {
		return nil, s.err
	}
	for id := int64(1); id < s.nextID; id++ {
		if a, ok := s.data[id]; ok && a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}
func (s *stubAuthorRepo) List(_ context.Context) ([]*entity.Author, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.Author, 0, len(s.data))
	for id := int64(1); id < s.nextID; id++ {
		if a, ok := s.data[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}
func (s *stubAuthorRepo) Create(_ context.Context, a *entity.Author) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	s.data[a.ID] = &entity.Author{ID: a.ID, Name: a.Name}
	return nil
}
func (s *stubAuthorRepo) Update(_ context.Context, a *entity.Author) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[a.ID]; !ok {
		return entity.ErrNoRowsAffected
	}
	s.data[a.ID] = &entity.Author{ID: a.ID, Name: a.Name}
	return nil
}
func (s *stubAuthorRepo) MagazinesFor(_ context.Context, id int64) ([]*entity.Magazine, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]*entity.Magazine{}, s.mags[id]...), nil
}
func (s *stubAuthorRepo) TopAuthor(_ context.Context) (*entity.Author, error) {
	return s.top, s.err
}

type stubArticleRepo struct {
	data   []*entity.Article
	nextID int64
	err    error
}

func (s *stubArticleRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	for _, a := range s.data {
		if a.ID == id {
			return a, s.err
		}
	}
	return nil, s.err
}
func (s *stubArticleRepo) GetByTitle(_ context.Context, title string) (*entity.Article, error) {
	for _, a := range s.data {
		if a.Title == title {
			return a, s.err
		}
	}
	return nil, s.err
}
func (s *stubArticleRepo) ListByAuthorID(_ context.Context, id int64) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []*entity.Article{}
	for _, a := range s.data {
		if a.AuthorID == id {
			out = append(out, a)
		}
	}
	return out, nil
}
func (s *stubArticleRepo) ListByMagazineID(_ context.Context, id int64) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []*entity.Article{}
	for _, a := range s.data {
		if a.MagazineID == id {
			out = append(out, a)
		}
	}
	return out, nil
}
func (s *stubArticleRepo) Create(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	a.ID = s.nextID
	s.data = append(s.data, a)
	return nil
}
func (s *stubArticleRepo) Update(_ context.Context, a *entity.Article) error {
	return s.err
}

func newService() (*authorUC.Service, *stubAuthorRepo, *stubArticleRepo) {
	authors := newAuthorStub()
	articles := &stubArticleRepo{}
	return &authorUC.Service{Repo: authors, ArticleRepo: articles}, authors, articles
}

func captureLogs(ctx context.Context) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logging.WithLogger(ctx, logger), &buf
}

/* ───────── tests ───────── */

func TestService_SaveInsertsThenUpdates(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	jane := &entity.Author{Name: "Jane Doe"}
	require.True(t, svc.Save(ctx, jane))
	assert.Equal(t, int64(1), jane.ID)

	jane.Name = "Jane Q. Doe"
	require.True(t, svc.Save(ctx, jane))
	assert.Equal(t, int64(1), jane.ID, "identity never changes after insert")
	assert.Equal(t, "Jane Q. Doe", repo.data[1].Name)
	assert.Len(t, repo.data, 1)
}

func TestService_SaveRejectsEmptyName(t *testing.T) {
	svc, repo, _ := newService()
	ctx, logs := captureLogs(context.Background())

	a := &entity.Author{}
	assert.False(t, svc.Save(ctx, a))
	assert.Zero(t, a.ID)
	assert.Empty(t, repo.data)
	assert.Contains(t, logs.String(), "op=author.Save")
}

func TestService_SaveFailureLeavesIdentityUnset(t *testing.T) {
	svc, repo, _ := newService()
	repo.err = entity.ErrConnectionFailure
	ctx, logs := captureLogs(context.Background())

	a := &entity.Author{Name: "Jane Doe"}
	assert.False(t, svc.Save(ctx, a))
	assert.Zero(t, a.ID)
	assert.Contains(t, logs.String(), entity.ErrConnectionFailure.Error())
}

func TestService_FindSwallowsErrors(t *testing.T) {
	svc, repo, _ := newService()
	repo.err = errors.New("database is locked")
	ctx := context.Background()

	assert.Nil(t, svc.FindByID(ctx, 1))
	assert.Nil(t, svc.FindByName(ctx, "Jane Doe"))
	assert.Nil(t, svc.TopAuthor(ctx))
	assert.NotNil(t, svc.List(ctx))
	assert.Empty(t, svc.List(ctx))
}

func TestService_FindByName(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.True(t, svc.Save(ctx, &entity.Author{Name: "Jane Doe"}))
	require.True(t, svc.Save(ctx, &entity.Author{Name: "Jane Doe"}))

	got := svc.FindByName(ctx, "Jane Doe")
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	assert.Nil(t, svc.FindByName(ctx, "Nobody"))
}

func TestService_ArticlesOfZeroArticleAuthor(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	a := &entity.Author{Name: "Idle"}
	require.True(t, svc.Save(ctx, a))

	arts := svc.Articles(ctx, a)
	assert.NotNil(t, arts)
	assert.Empty(t, arts)
	assert.Empty(t, svc.Magazines(ctx, a))
}

func TestService_ArticlesOfUnsavedAuthor(t *testing.T) {
	svc, _, articles := newService()
	articles.data = []*entity.Article{{ID: 1, Title: "x", AuthorID: 0, MagazineID: 1}}

	assert.Empty(t, svc.Articles(context.Background(), &entity.Author{Name: "New"}))
}

func TestService_AddArticle(t *testing.T) {
	svc, _, articles := newService()
	ctx := context.Background()

	jane := &entity.Author{Name: "Jane Doe"}
	require.True(t, svc.Save(ctx, jane))
	mag := &entity.Magazine{ID: 3, Name: "Tech Innovators", Category: "Technology"}

	art := svc.AddArticle(ctx, jane, mag, "AI Trends", "")
	require.NotNil(t, art)
	assert.True(t, art.IsPersisted())
	assert.Equal(t, jane.ID, art.AuthorID)
	assert.Equal(t, mag.ID, art.MagazineID)
	assert.Equal(t, "", art.Content, "empty content is valid")
	assert.Len(t, articles.data, 1)
	assert.Len(t, svc.Articles(ctx, jane), 1)
}

func TestService_AddArticleUnsavedParent(t *testing.T) {
	svc, _, articles := newService()
	ctx, logs := captureLogs(context.Background())

	saved := &entity.Magazine{ID: 1, Name: "Tech Innovators", Category: "Technology"}
	assert.Nil(t, svc.AddArticle(ctx, &entity.Author{Name: "Unsaved"}, saved, "AI Trends", ""))

	jane := &entity.Author{Name: "Jane Doe"}
	require.True(t, svc.Save(ctx, jane))
	assert.Nil(t, svc.AddArticle(ctx, jane, &entity.Magazine{Name: "Draft", Category: "x"}, "AI Trends", ""))
	assert.Nil(t, svc.AddArticle(ctx, jane, nil, "AI Trends", ""))

	assert.Empty(t, articles.data, "no article row may be written")
	assert.Contains(t, logs.String(), authorUC.ErrUnsavedParent.Error())
}

func TestService_AddArticleStorageFailure(t *testing.T) {
	svc, _, articles := newService()
	ctx := context.Background()

	jane := &entity.Author{Name: "Jane Doe"}
	require.True(t, svc.Save(ctx, jane))
	articles.err = entity.ErrForeignKeyViolation

	assert.Nil(t, svc.AddArticle(ctx, jane, &entity.Magazine{ID: 99, Name: "Gone", Category: "x"}, "AI Trends", ""))
}

func TestService_Magazines(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	jane := &entity.Author{Name: "Jane Doe"}
	require.True(t, svc.Save(ctx, jane))
	want := []*entity.Magazine{{ID: 1, Name: "Tech Innovators", Category: "Technology"}}
	repo.mags[jane.ID] = want

	assert.Equal(t, want, svc.Magazines(ctx, jane))

	repo.err = entity.ErrConnectionFailure
	got := svc.Magazines(ctx, jane)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_TopAuthor(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	assert.Nil(t, svc.TopAuthor(ctx))

	repo.top = &entity.Author{ID: 2, Name: "John Smith"}
	assert.Equal(t, repo.top, svc.TopAuthor(ctx))
}

func TestErrUnsavedParent_IsNotPersisted(t *testing.T) {
	assert.ErrorIs(t, authorUC.ErrUnsavedParent, entity.ErrNotPersisted)
}
