package sched

import "sync"

// Guard serializes access to the shared state spec.md §5 carves out
// explicitly from the pause discipline: "Styling class table and memory
// list: guarded by scoped locks (read-copies are cheap)." Element-tree
// mutation instead relies on the pause/resume protocol itself.
type Guard struct {
	mu sync.Mutex
}

// Do runs fn while holding the guard.
func (g *Guard) Do(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}
