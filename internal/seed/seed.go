// Package seed loads the sample catalog used by the CLI's seed command.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"articles/internal/domain/entity"
	"articles/internal/repository"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture describes authors, magazines and articles. Articles refer to their
// parents by name.
type Fixture struct {
	Authors   []string          `yaml:"authors"`
	Magazines []MagazineFixture `yaml:"magazines"`
	Articles  []ArticleFixture  `yaml:"articles"`
}

type MagazineFixture struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type ArticleFixture struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Author   string `yaml:"author"`
	Magazine string `yaml:"magazine"`
}

// Result counts the rows written by Apply.
type Result struct {
	Authors   int
	Magazines int
	Articles  int
}

// Repositories bundles the writers Apply needs.
type Repositories struct {
	Authors   repository.AuthorRepository
	Magazines repository.MagazineRepository
	Articles  repository.ArticleRepository
}

// Default returns the embedded sample catalog.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Parse decodes a fixture and checks that every article names a known
// author and magazine. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("fixture validation failed: %w", err)
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	authors := make(map[string]bool, len(f.Authors))
	for _, name := range f.Authors {
		if name == "" {
			return fmt.Errorf("author name is required")
		}
		authors[name] = true
	}

	magazines := make(map[string]bool, len(f.Magazines))
	for _, m := range f.Magazines {
		if m.Name == "" || m.Category == "" {
			return fmt.Errorf("magazine %q: name and category are required", m.Name)
		}
		magazines[m.Name] = true
	}

	for _, a := range f.Articles {
		if a.Title == "" {
			return fmt.Errorf("article title is required")
		}
		if !authors[a.Author] {
			return fmt.Errorf("article %q: unknown author %q", a.Title, a.Author)
		}
		if !magazines[a.Magazine] {
			return fmt.Errorf("article %q: unknown magazine %q", a.Title, a.Magazine)
		}
	}
	return nil
}

// Apply inserts the fixture in dependency order: authors, magazines, then
// articles. It stops at the first failure; rows already written stay.
func Apply(ctx context.Context, f *Fixture, repos Repositories) (Result, error) {
	var res Result

	authorIDs := make(map[string]int64, len(f.Authors))
	for _, name := range f.Authors {
		a := &entity.Author{Name: name}
		if err := repos.Authors.Create(ctx, a); err != nil {
			return res, fmt.Errorf("seed author %q: %w", name, err)
		}
		authorIDs[name] = a.ID
		res.Authors++
	}

	magazineIDs := make(map[string]int64, len(f.Magazines))
	for _, mf := range f.Magazines {
		m := &entity.Magazine{Name: mf.Name, Category: mf.Category}
		if err := repos.Magazines.Create(ctx, m); err != nil {
			return res, fmt.Errorf("seed magazine %q: %w", mf.Name, err)
		}
		magazineIDs[mf.Name] = m.ID
		res.Magazines++
	}

	for _, af := range f.Articles {
		art := &entity.Article{
			Title:      af.Title,
			Content:    af.Content,
			AuthorID:   authorIDs[af.Author],
			MagazineID: magazineIDs[af.Magazine],
		}
		if err := repos.Articles.Create(ctx, art); err != nil {
			return res, fmt.Errorf("seed article %q: %w", af.Title, err)
		}
		res.Articles++
	}

	return res, nil
}
