package entity

// Author represents a writer. Relationships to articles and magazines are
// resolved on demand by the author use case; the struct holds no references.
type Author struct {
	ID   int64
	Name string `validate:"required"`
}

// IsPersisted reports whether the storage layer has assigned an identity.
func (a *Author) IsPersisted() bool { return a != nil && a.ID > 0 }
