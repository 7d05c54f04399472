// Package author provides use cases for authors: lookup, save, traversal
// into their articles and magazines, and the top-author ranking.
package author

import (
	"fmt"

	"articles/internal/domain/entity"
)

// ErrUnsavedParent is logged when AddArticle is called with an author or
// magazine that has not been saved yet.
var ErrUnsavedParent = fmt.Errorf("author and magazine must be saved before adding an article: %w", entity.ErrNotPersisted)
