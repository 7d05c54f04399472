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

type AuthorRepo struct{ gw *db.Gateway }

func NewAuthorRepo(gw *db.Gateway) repository.AuthorRepository {
	return &AuthorRepo{gw: gw}
}

func scanAuthors(rows *sql.Rows) ([]*entity.Author, error) {
	authors := make([]*entity.Author, 0, 16)
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		authors = append(authors, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return authors, nil
}

func (repo *AuthorRepo) Get(ctx context.Context, id int64) (*entity.Author, error) {
	const query = `
SELECT id, name
FROM authors
WHERE id = $1
LIMIT 1`
	return repo.getOne(ctx, "author_get", query, id)
}

func (repo *AuthorRepo) GetByName(ctx context.Context, name string) (*entity.Author, error) {
	const query = `
SELECT id, name
FROM authors
WHERE name = $1
ORDER BY id ASC
LIMIT 1`
	return repo.getOne(ctx, "author_get_by_name", query, name)
}

// TopAuthor counts articles per author; authors without articles never appear.
func (repo *AuthorRepo) TopAuthor(ctx context.Context) (*entity.Author, error) {
	const query = `
WITH article_counts AS (
	SELECT author_id, COUNT(*) AS n
	FROM articles
	GROUP BY author_id
)
SELECT au.id, au.name
FROM article_counts c
INNER JOIN authors au ON au.id = c.author_id
ORDER BY c.n DESC, au.id ASC
LIMIT 1`
	return repo.getOne(ctx, "author_top", query)
}

func (repo *AuthorRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Author, error) {
	var author *entity.Author
	err := repo.gw.Do(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		var a entity.Author
		err := conn.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("QueryRowContext: %w", err)
		}
		author = &a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return author, nil
}

func (repo *AuthorRepo) List(ctx context.Context) ([]*entity.Author, error) {
	const query = `
SELECT id, name
FROM authors
ORDER BY id ASC`
	var authors []*entity.Author
	err := repo.gw.Do(ctx, "author_list", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		authors, err = scanAuthors(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return authors, nil
}

func (repo *AuthorRepo) MagazinesFor(ctx context.Context, authorID int64) ([]*entity.Magazine, error) {
	const query = `
SELECT DISTINCT m.id, m.name, m.category
FROM magazines m
INNER JOIN articles a ON a.magazine_id = m.id
WHERE a.author_id = $1
ORDER BY m.id ASC`
	var magazines []*entity.Magazine
	err := repo.gw.Do(ctx, "author_magazines", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, authorID)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		magazines, err = scanMagazines(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("MagazinesFor: %w", err)
	}
	return magazines, nil
}

func (repo *AuthorRepo) Create(ctx context.Context, author *entity.Author) error {
	const query = `INSERT INTO authors (name) VALUES ($1) RETURNING id`
	return repo.gw.Do(ctx, "author_create", func(ctx context.Context, conn *sql.Conn) error {
		var id int64
		if err := conn.QueryRowContext(ctx, query, author.Name).Scan(&id); err != nil {
			return fmt.Errorf("Create: QueryRowContext: %w", err)
		}
		author.ID = id
		return nil
	})
}

func (repo *AuthorRepo) Update(ctx context.Context, author *entity.Author) error {
	const query = `UPDATE authors SET name = $1 WHERE id = $2`
	return repo.gw.Do(ctx, "author_update", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, author.Name, author.ID)
		if err != nil {
			return fmt.Errorf("Update: ExecContext: %w", err)
		}
		return checkAffected("Update", res)
	})
}
