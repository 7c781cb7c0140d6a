package autodiff

// Goroutine-scoped tape registry: an optional convenience layer for
// callers that want to price many instruments concurrently, one Tape per
// goroutine, without threading a *Tape through every function call.
//
// This generalizes infergo's ad/gls.go, which keeps one global tape per
// goroutine ID behind a mutex-guarded map (MTSafeOn/mtStore). Here the
// registry is a single package-level map keyed by goroutine ID, and it is
// opt-in: CurrentTape lazily creates a Tape for the calling goroutine,
// and DropTape discards it. The core engine never requires this; it exists purely so a
// concurrent caller can write `autodiff.CurrentTape().Var(x)` instead of
// managing its own *Tape value.

import (
	"sync"

	"github.com/modern-go/gls"
)

type tapeRegistry struct {
	mu    sync.Mutex
	tapes map[int64]*Tape
}

var scoped = &tapeRegistry{tapes: map[int64]*Tape{}}

// CurrentTape returns the Tape bound to the calling goroutine, creating
// one on first use.
func CurrentTape() *Tape {
	id := gls.GoID()
	scoped.mu.Lock()
	defer scoped.mu.Unlock()
	t, ok := scoped.tapes[id]
	if !ok {
		t = NewTape()
		scoped.tapes[id] = t
	}
	return t
}

// DropTape discards the Tape bound to the calling goroutine, if any.
// Callers that mint Variables via CurrentTape should call DropTape when
// they are done with an expression graph, the same way infergo's
// samplers defer ad.DropTape() on exit.
func DropTape() {
	id := gls.GoID()
	scoped.mu.Lock()
	defer scoped.mu.Unlock()
	delete(scoped.tapes, id)
}
