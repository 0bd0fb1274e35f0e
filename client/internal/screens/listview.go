package screens

import (
	"context"
	"sync"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
	"github.com/Skotchmaster/inventory/client/internal/remote"
	"github.com/Skotchmaster/inventory/pkg/logging"
)

// ListView is the record browser: the last fetched snapshot, a live search
// term, per-row expansion and a delete confirmation gate.
type ListView struct {
	store  remote.Store
	kind   string
	timing Timing

	mu         sync.Mutex
	records    []inventory.Record
	expanded   map[string]bool
	term       string
	pendingID  string
	hasPending bool
}

func NewListView(store remote.Store, timing Timing) *ListView {
	return &ListView{
		store:    store,
		kind:     inventory.Kind,
		timing:   timing,
		expanded: map[string]bool{},
	}
}

// Focus runs every time the view becomes visible.
func (v *ListView) Focus(ctx context.Context) (Outcome, error) {
	return v.Fetch(ctx)
}

// Fetch replaces the snapshot. On failure the previous snapshot stays.
func (v *ListView) Fetch(ctx context.Context) (Outcome, error) {
	records, err := v.store.ListRecords(ctx, v.kind)
	if err != nil {
		logging.FromContext(ctx).Warn("fetch_failed", "screen", "list", "kind", v.kind, "error", err)
		return Outcome{Notification: v.timing.failure("Load Failed", err.Error())}, err
	}

	snapshot := make([]inventory.Record, len(records))
	copy(snapshot, records)
	for i := range snapshot {
		snapshot[i].Expanded = false
	}

	v.mu.Lock()
	v.records = snapshot
	v.expanded = map[string]bool{}
	v.mu.Unlock()
	return Outcome{}, nil
}

func (v *ListView) SetSearchTerm(term string) {
	v.mu.Lock()
	v.term = term
	v.mu.Unlock()
}

func (v *ListView) SearchTerm() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.term
}

// ToggleExpanded flips one record's flag and reports whether id was known.
func (v *ListView) ToggleExpanded(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.records {
		if r.ID == id {
			v.expanded[id] = !v.expanded[id]
			return true
		}
	}
	return false
}

// Records returns the full snapshot in store order.
func (v *ListView) Records() []inventory.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Visible returns the snapshot filtered by the search term.
func (v *ListView) Visible() []inventory.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return inventory.Filter(v.snapshotLocked(), v.term)
}

func (v *ListView) snapshotLocked() []inventory.Record {
	out := make([]inventory.Record, len(v.records))
	for i, r := range v.records {
		r.Expanded = v.expanded[r.ID]
		out[i] = r
	}
	return out
}

func (v *ListView) RequestDelete(id string) {
	v.mu.Lock()
	v.pendingID, v.hasPending = id, true
	v.mu.Unlock()
}

func (v *ListView) CancelDelete() {
	v.mu.Lock()
	v.pendingID, v.hasPending = "", false
	v.mu.Unlock()
}

func (v *ListView) PendingDelete() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pendingID, v.hasPending
}

// ConfirmDelete deletes the held record. The gate stays open on failure.
func (v *ListView) ConfirmDelete(ctx context.Context) (Outcome, error) {
	id, ok := v.PendingDelete()
	if !ok {
		return Outcome{}, ErrNoPendingDelete
	}
	l := logging.FromContext(ctx).With("screen", "list", "record_id", id)

	if err := v.store.DeleteRecord(ctx, v.kind, id); err != nil {
		l.Warn("delete_failed", "error", err)
		return Outcome{Notification: v.timing.failure("Delete Failed", err.Error())}, err
	}

	if _, err := v.Fetch(ctx); err != nil {
		l.Warn("refetch_after_delete_failed", "error", err)
	}

	v.mu.Lock()
	if v.hasPending && v.pendingID == id {
		v.pendingID, v.hasPending = "", false
	}
	v.mu.Unlock()

	l.Info("delete_success")
	return Outcome{Notification: v.timing.success("Deleted", "Item deleted successfully!")}, nil
}
