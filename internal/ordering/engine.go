package ordering

import (
	"context"

	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
)

type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Swap moves the target one step up or down by exchanging sort orders with
// its adjacent sibling. At the boundary (already first moving up, already
// last moving down) it is a no-op, not an error: zero rows are written.
//
// The two updates are independent writes. A crash in between leaves two
// siblings with the same sort order; the next bulk renumber heals that.
func (e *Engine) Swap(ctx context.Context, store SiblingStore, id string, dir Direction) error {
	siblings, err := store.Siblings(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(siblings, id)
	if idx < 0 {
		return apperr.NotFoundf("entity %s not found in sibling scope", id)
	}

	var other int
	switch dir {
	case DirectionUp:
		if idx == 0 {
			return nil
		}
		other = idx - 1
	case DirectionDown:
		if idx == len(siblings)-1 {
			return nil
		}
		other = idx + 1
	default:
		return apperr.Validationf("unknown reorder direction %q", dir)
	}

	target, neighbor := siblings[idx], siblings[other]
	if err := store.SetSortOrder(ctx, target.ID, neighbor.SortOrder); err != nil {
		return err
	}
	if err := store.SetSortOrder(ctx, neighbor.ID, target.SortOrder); err != nil {
		return err
	}

	e.logger.Debug("swapped sibling order",
		zap.String("id", target.ID),
		zap.String("neighbor_id", neighbor.ID),
		zap.String("direction", string(dir)))
	return nil
}

// Move repositions the target at toIndex inside its scope and renumbers every
// sibling sequentially, starting from whatever sort order the first sibling
// held before the move. Only rows whose sort order actually changes are
// written. The returned slice is the authoritative new sequence.
//
// There is no cross-request locking: two concurrent moves on the same scope
// resolve last-write-wins per row. On a mid-batch failure the caller is
// expected to discard local state and reload the scope in full.
func (e *Engine) Move(ctx context.Context, store SiblingStore, id string, toIndex int) ([]Sibling, error) {
	siblings, err := store.Siblings(ctx)
	if err != nil {
		return nil, err
	}

	moved, err := Preview(siblings, id, toIndex)
	if err != nil {
		return nil, err
	}

	for i := range moved {
		if moved[i].SortOrder == siblings[i].SortOrder && moved[i].ID == siblings[i].ID {
			continue
		}
		if err := store.SetSortOrder(ctx, moved[i].ID, moved[i].SortOrder); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("renumbered sibling scope",
		zap.String("id", id),
		zap.Int("to_index", toIndex),
		zap.Int("scope_size", len(moved)))
	return moved, nil
}

// Preview computes the sequence as it will look after moving id to toIndex:
// the entity is repositioned and the whole scope renumbered sequentially,
// starting from the first sibling's existing sort order (not necessarily 1).
// It never touches the store; the session layer uses it for the optimistic
// pre-confirmation state, the engine for the authoritative write set. A
// sparse or duplicated scope comes out dense, which is how a crashed swap
// self-heals.
func Preview(siblings []Sibling, id string, toIndex int) ([]Sibling, error) {
	idx := indexOf(siblings, id)
	if idx < 0 {
		return nil, apperr.NotFoundf("entity %s not found in sibling scope", id)
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(siblings)-1 {
		toIndex = len(siblings) - 1
	}

	base := siblings[0].SortOrder
	moved := moveIndex(siblings, idx, toIndex)
	for i := range moved {
		moved[i].SortOrder = base + i
	}
	return moved, nil
}

func indexOf(siblings []Sibling, id string) int {
	for i := range siblings {
		if siblings[i].ID == id {
			return i
		}
	}
	return -1
}

func moveIndex(siblings []Sibling, from, to int) []Sibling {
	moved := make([]Sibling, 0, len(siblings))
	moved = append(moved, siblings[:from]...)
	moved = append(moved, siblings[from+1:]...)
	tail := append([]Sibling{siblings[from]}, moved[to:]...)
	return append(moved[:to:to], tail...)
}
