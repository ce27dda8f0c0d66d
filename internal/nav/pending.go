package nav

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Advance is the token a fired processing timer hands back to the router.
type Advance struct {
	Activation uint64
	Target     Screen
}

// Pending is the one-shot timer owned by a single aiProcessing activation.
// It is released when the activation ends, whichever way it ends.
type Pending struct {
	activation uint64
	startedAt  time.Time
	timer      clockwork.Timer
	done       chan struct{}
	once       sync.Once
}

func newPending(activation uint64, clock clockwork.Clock, delay time.Duration) *Pending {
	return &Pending{
		activation: activation,
		startedAt:  clock.Now(),
		timer:      clock.NewTimer(delay),
		done:       make(chan struct{}),
	}
}

// Activation identifies the aiProcessing entry that owns the timer.
func (p *Pending) Activation() uint64 {
	return p.activation
}

// Done is closed once the activation is cancelled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the timer fires, the activation is cancelled or ctx
// ends. ok is false unless the timer fired.
func (p *Pending) Await(ctx context.Context) (adv Advance, ok bool) {
	select {
	case <-p.timer.Chan():
		return Advance{Activation: p.activation, Target: AIResult}, true
	case <-p.done:
		return Advance{}, false
	case <-ctx.Done():
		return Advance{}, false
	}
}

func (p *Pending) cancel() {
	p.once.Do(func() {
		p.timer.Stop()
		close(p.done)
	})
}
