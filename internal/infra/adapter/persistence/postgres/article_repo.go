// Package postgres implements the catalog repositories on PostgreSQL through
// the pgx stdlib driver. Identities come back from INSERT ... RETURNING id.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"articles/internal/domain/entity"
	"articles/internal/infra/db"
	"articles/internal/repository"
)

const articleColumns = `id, title, content, author_id, magazine_id`

type ArticleRepo struct{ gw *db.Gateway }

func NewArticleRepo(gw *db.Gateway) repository.ArticleRepository {
	return &ArticleRepo{gw: gw}
}

func scanArticles(rows *sql.Rows) ([]*entity.Article, error) {
	articles := make([]*entity.Article, 0, 16)
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.MagazineID); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	return repo.getOne(ctx, "article_get", query, id)
}

func (repo *ArticleRepo) GetByTitle(ctx context.Context, title string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE title = $1
ORDER BY id ASC
LIMIT 1`
	return repo.getOne(ctx, "article_get_by_title", query, title)
}

func (repo *ArticleRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Article, error) {
	var article *entity.Article
	err := repo.gw.Do(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		var a entity.Article
		err := conn.QueryRowContext(ctx, query, arg).Scan(
			&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.MagazineID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("QueryRowContext: %w", err)
		}
		article = &a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return article, nil
}

func (repo *ArticleRepo) ListByAuthorID(ctx context.Context, authorID int64) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE author_id = $1
ORDER BY id ASC`
	return repo.list(ctx, "article_list_by_author", query, authorID)
}

func (repo *ArticleRepo) ListByMagazineID(ctx context.Context, magazineID int64) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE magazine_id = $1
ORDER BY id ASC`
	return repo.list(ctx, "article_list_by_magazine", query, magazineID)
}

func (repo *ArticleRepo) list(ctx context.Context, op, query string, arg any) ([]*entity.Article, error) {
	var articles []*entity.Article
	err := repo.gw.Do(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, arg)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		articles, err = scanArticles(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, content, author_id, magazine_id)
VALUES ($1, $2, $3, $4)
RETURNING id`
	return repo.gw.Do(ctx, "article_create", func(ctx context.Context, conn *sql.Conn) error {
		var id int64
		err := conn.QueryRowContext(ctx, query,
			article.Title, article.Content, article.AuthorID, article.MagazineID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("Create: QueryRowContext: %w", err)
		}
		article.ID = id
		return nil
	})
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
	title       = $1,
	content     = $2,
	author_id   = $3,
	magazine_id = $4
WHERE id = $5`
	return repo.gw.Do(ctx, "article_update", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query,
			article.Title, article.Content, article.AuthorID, article.MagazineID, article.ID,
		)
		if err != nil {
			return fmt.Errorf("Update: ExecContext: %w", err)
		}
		return checkAffected("Update", res)
	})
}

func checkAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: RowsAffected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, entity.ErrNoRowsAffected)
	}
	return nil
}
