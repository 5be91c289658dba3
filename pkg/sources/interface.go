package sources

import (
	"context"

	"github.com/kerbaras/pokedex/pkg/data"
)

// Catalog is the remote read-only source of entries.
type Catalog interface {
	ListEntries(ctx context.Context, first int) ([]data.Entry, error)
	GetDetail(ctx context.Context, name string) (*data.Detail, error)
}
