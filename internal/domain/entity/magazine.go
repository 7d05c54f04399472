package entity

// Magazine represents a publication that articles are written for.
type Magazine struct {
	ID       int64
	Name     string `validate:"required"`
	Category string `validate:"required"`
}

// IsPersisted reports whether the storage layer has assigned an identity.
func (m *Magazine) IsPersisted() bool { return m != nil && m.ID > 0 }

// MagazineArticleCount is one row of the per-magazine article count report.
// Magazines without articles are reported with a zero Count.
type MagazineArticleCount struct {
	Name  string
	Count int64
}
