// Package magazine provides use cases for magazines: lookup, save and the
// aggregate queries over their articles and contributors.
package magazine
