// Package article provides use cases for reading and saving articles and
// resolving an article's author and magazine.
//
// Every operation has a total signature: storage failures are logged and
// degrade to nil or an empty slice, so callers never handle an error.
package article

import (
	"fmt"

	"articles/internal/domain/entity"
)

// Sentinel errors reported in logs by the article use cases.
var (
	// ErrMissingParent indicates an article that references an unsaved
	// author or magazine (identity zero).
	ErrMissingParent = fmt.Errorf("article must reference a saved author and magazine: %w", entity.ErrNotPersisted)
)
