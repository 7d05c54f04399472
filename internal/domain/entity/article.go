// Package entity defines the core domain entities and validation logic for the catalog.
// It contains the Author, Magazine and Article records mapped from the authors,
// magazines and articles tables, along with their validation rules and domain errors.
package entity

// Article represents a single piece written by an author for a magazine.
// It is the only entity carrying two foreign references, which makes the
// articles table the join table between authors and magazines.
type Article struct {
	ID         int64
	Title      string `validate:"required"`
	Content    string
	AuthorID   int64
	MagazineID int64
}

// IsPersisted reports whether the storage layer has assigned an identity.
func (a *Article) IsPersisted() bool { return a != nil && a.ID > 0 }
