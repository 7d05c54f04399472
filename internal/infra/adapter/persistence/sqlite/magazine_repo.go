package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"articles/internal/domain/entity"
	"articles/internal/infra/db"
	"articles/internal/repository"
)

type MagazineRepo struct{ gw *db.Gateway }

func NewMagazineRepo(gw *db.Gateway) repository.MagazineRepository {
	return &MagazineRepo{gw: gw}
}

func scanMagazines(rows *sql.Rows) ([]*entity.Magazine, error) {
	magazines := make([]*entity.Magazine, 0, 16)
	for rows.Next() {
		var m entity.Magazine
		if err := rows.Scan(&m.ID, &m.Name, &m.Category); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		magazines = append(magazines, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return magazines, nil
}

func (repo *MagazineRepo) Get(ctx context.Context, id int64) (*entity.Magazine, error) {
	const query = `
SELECT id, name, category
FROM magazines
WHERE id = ?
LIMIT 1`
	return repo.getOne(ctx, "magazine_get", query, id)
}

func (repo *MagazineRepo) GetByName(ctx context.Context, name string) (*entity.Magazine, error) {
	const query = `
SELECT id, name, category
FROM magazines
WHERE name = ?
ORDER BY id ASC
LIMIT 1`
	return repo.getOne(ctx, "magazine_get_by_name", query, name)
}

func (repo *MagazineRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Magazine, error) {
	var magazine *entity.Magazine
	err := repo.gw.Do(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		var m entity.Magazine
		err := conn.QueryRowContext(ctx, query, arg).Scan(&m.ID, &m.Name, &m.Category)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("QueryRowContext: %w", err)
		}
		magazine = &m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return magazine, nil
}

func (repo *MagazineRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Magazine, error) {
	const query = `
SELECT id, name, category
FROM magazines
WHERE category = ?
ORDER BY id ASC`
	return repo.list(ctx, "magazine_list_by_category", query, category)
}

func (repo *MagazineRepo) List(ctx context.Context) ([]*entity.Magazine, error) {
	const query = `
SELECT id, name, category
FROM magazines
ORDER BY id ASC`
	return repo.list(ctx, "magazine_list", query)
}

// WithMultipleAuthors groups articles by magazine and keeps those with more
// than one distinct author_id.
func (repo *MagazineRepo) WithMultipleAuthors(ctx context.Context) ([]*entity.Magazine, error) {
	const query = `
SELECT m.id, m.name, m.category
FROM magazines m
INNER JOIN articles a ON a.magazine_id = m.id
GROUP BY m.id, m.name, m.category
HAVING COUNT(DISTINCT a.author_id) > 1
ORDER BY m.id ASC`
	return repo.list(ctx, "magazine_with_multiple_authors", query)
}

func (repo *MagazineRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Magazine, error) {
	var magazines []*entity.Magazine
	err := repo.gw.Do(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		magazines, err = scanMagazines(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return magazines, nil
}

func (repo *MagazineRepo) ArticleTitles(ctx context.Context, magazineID int64) ([]string, error) {
	const query = `
SELECT title
FROM articles
WHERE magazine_id = ?
ORDER BY id ASC`
	titles := make([]string, 0, 16)
	err := repo.gw.Do(ctx, "magazine_article_titles", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, magazineID)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var title string
			if err := rows.Scan(&title); err != nil {
				return fmt.Errorf("Scan: %w", err)
			}
			titles = append(titles, title)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("ArticleTitles: %w", err)
	}
	return titles, nil
}

func (repo *MagazineRepo) ContributingAuthors(ctx context.Context, magazineID int64) ([]*entity.Author, error) {
	const query = `
SELECT DISTINCT au.id, au.name
FROM authors au
INNER JOIN articles ar ON ar.author_id = au.id
WHERE ar.magazine_id = ?
ORDER BY au.id ASC`
	var authors []*entity.Author
	err := repo.gw.Do(ctx, "magazine_contributing_authors", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, magazineID)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		authors, err = scanAuthors(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ContributingAuthors: %w", err)
	}
	return authors, nil
}

// ArticleCounts left-joins articles so magazines without any report zero.
func (repo *MagazineRepo) ArticleCounts(ctx context.Context) ([]entity.MagazineArticleCount, error) {
	const query = `
SELECT m.name, COUNT(a.id)
FROM magazines m
LEFT JOIN articles a ON a.magazine_id = m.id
GROUP BY m.id, m.name
ORDER BY m.id ASC`
	counts := make([]entity.MagazineArticleCount, 0, 16)
	err := repo.gw.Do(ctx, "magazine_article_counts", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("QueryContext: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var c entity.MagazineArticleCount
			if err := rows.Scan(&c.Name, &c.Count); err != nil {
				return fmt.Errorf("Scan: %w", err)
			}
			counts = append(counts, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("ArticleCounts: %w", err)
	}
	return counts, nil
}

func (repo *MagazineRepo) Create(ctx context.Context, magazine *entity.Magazine) error {
	const query = `INSERT INTO magazines (name, category) VALUES (?, ?)`
	return repo.gw.Do(ctx, "magazine_create", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, magazine.Name, magazine.Category)
		if err != nil {
			return fmt.Errorf("Create: ExecContext: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Create: LastInsertId: %w", err)
		}
		magazine.ID = id
		return nil
	})
}

func (repo *MagazineRepo) Update(ctx context.Context, magazine *entity.Magazine) error {
	const query = `UPDATE magazines SET name = ?, category = ? WHERE id = ?`
	return repo.gw.Do(ctx, "magazine_update", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, magazine.Name, magazine.Category, magazine.ID)
		if err != nil {
			return fmt.Errorf("Update: ExecContext: %w", err)
		}
		return checkAffected("Update", res)
	})
}
