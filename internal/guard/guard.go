// ABOUTME: Duplicate-suppression and optimistic removal for destructive operations
// ABOUTME: One in-flight delete per resource, rollback by reload on failure

package guard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

// View is the local list a delete acts on. RemoveItem drops the resource
// optimistically; Reload restores the list from the source of truth when the
// remote delete fails.
type View interface {
	RemoveItem(id string)
	Reload(ctx context.Context) error
}

// Guard prevents duplicate in-flight destructive operations on the same
// resource. Each id moves Idle -> Pending -> Idle; a second delete for an id
// already pending is a silent no-op.
type Guard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates an empty guard.
func New() *Guard {
	return &Guard{pending: make(map[string]struct{})}
}

// Pending reports whether id currently has a delete in flight.
func (g *Guard) Pending(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[id]
	return ok
}

// Delete removes id from the view immediately, then runs op. A structured
// not-found from op means the resource was already gone and the removal
// stands. Any other failure reloads the view to restore the item and
// re-raises the error. The id leaves the pending set on every outcome.
func (g *Guard) Delete(ctx context.Context, id string, view View, op func(context.Context) error) error {
	g.mu.Lock()
	if _, inFlight := g.pending[id]; inFlight {
		g.mu.Unlock()
		slog.Debug("Delete already in flight, ignoring", "id", id)
		return nil
	}
	g.pending[id] = struct{}{}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.pending, id)
		g.mu.Unlock()
	}()

	view.RemoveItem(id)

	err := op(ctx)
	if err == nil || client.IsNotFound(err) {
		return nil
	}

	if reloadErr := view.Reload(ctx); reloadErr != nil {
		slog.Warn("Reload after failed delete also failed", "id", id, "error", reloadErr)
	}
	return err
}
