// Package ordering implements sibling sort-order assignment and the two
// reorder algorithms (adjacent swap, bulk drag-drop renumber). It is agnostic
// of the entity kind: repositories adapt each sibling scope to SiblingStore,
// with the tenant predicate baked into the adapter's writes.
package ordering

import "context"

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Sibling is the slice of an entity the engine cares about.
type Sibling struct {
	ID        string
	SortOrder int
}

// SiblingStore is one sibling scope of the row store. Siblings returns the
// scope sorted ascending by sort order; SetSortOrder writes a single row and
// must re-apply the tenant filter.
type SiblingStore interface {
	Siblings(ctx context.Context) ([]Sibling, error)
	SetSortOrder(ctx context.Context, id string, sortOrder int) error
}

// NextSortOrder computes the sort order for a newly created sibling:
// max + 1, or 1 for an empty scope. Siblings are already sorted, so the max
// is the last element.
func NextSortOrder(ctx context.Context, store SiblingStore) (int, error) {
	siblings, err := store.Siblings(ctx)
	if err != nil {
		return 0, err
	}
	if len(siblings) == 0 {
		return 1, nil
	}
	return siblings[len(siblings)-1].SortOrder + 1, nil
}
