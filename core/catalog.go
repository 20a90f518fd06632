package core

import (
	"context"
	"errors"
	"strings"
)

// ErrSetNotFound marks a catalog lookup for a set that does not exist.
var ErrSetNotFound = errors.New("set not found")

// CatalogRecord holds set metadata as returned by the catalog. SetNum is
// the raw catalog identifier, usually suffixed with a variant ("42177-1").
// Year and NumParts are nil when the catalog omits them.
type CatalogRecord struct {
	SetNum   string
	Name     string
	Year     *int
	NumParts *int
	SetURL   string
	ImageURL string
}

// Catalog looks up set metadata by numeric id.
type Catalog interface {
	GetSet(ctx context.Context, id int) (CatalogRecord, error)
}

// IsNotFound reports whether err means the requested set does not exist.
// Besides the typed sentinel it keeps the textual contract: transport and
// platform errors mentioning "404" or "not found" classify the same way.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSetNotFound) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "404") || strings.Contains(s, "not found")
}
