package session

import "github.com/tavolo/menu-catalog-service/internal/ordering"

// ReorderPhase names the states of an optimistic drag-drop reorder. The
// local sequence is applied before the backend confirms; the transition out
// of Pending is driven by PushReorder.
type ReorderPhase int

const (
	PhasePending ReorderPhase = iota + 1
	PhaseCommitted
	PhaseRolledBack
)

func (p ReorderPhase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseCommitted:
		return "committed"
	case PhaseRolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// Reorder is one in-flight drag gesture: the sequence before the move and
// the optimistic sequence shown to the user while the write is in flight.
type Reorder struct {
	phase  ReorderPhase
	before []ordering.Sibling
	local  []ordering.Sibling
}

// BeginReorder applies the move to an in-memory copy of the scope and
// enters Pending. Nothing is written.
func BeginReorder(siblings []ordering.Sibling, id string, toIndex int) (*Reorder, error) {
	local, err := ordering.Preview(siblings, id, toIndex)
	if err != nil {
		return nil, err
	}
	before := make([]ordering.Sibling, len(siblings))
	copy(before, siblings)
	return &Reorder{
		phase:  PhasePending,
		before: before,
		local:  local,
	}, nil
}

func (r *Reorder) Phase() ReorderPhase { return r.phase }

// Local is the sequence to display while Pending, and the authoritative
// one once Committed.
func (r *Reorder) Local() []ordering.Sibling { return r.local }

// Before is the pre-drag sequence, shown again after a rollback until the
// full reload lands.
func (r *Reorder) Before() []ordering.Sibling { return r.before }

func (r *Reorder) commit()   { r.phase = PhaseCommitted }
func (r *Reorder) rollback() { r.phase = PhaseRolledBack }
