package nav

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/agrisense/agrisense/internal/zone"
)

// DefaultProcessingDelay is how long aiProcessing stays up before advancing.
const DefaultProcessingDelay = 3 * time.Second

// Router owns the navigation state. It is not safe for concurrent use: every
// Navigate and Apply call must come from the same event loop.
type Router struct {
	state      State
	clock      clockwork.Clock
	delay      time.Duration
	log        *zap.Logger
	activation uint64
	pending    *Pending
}

// Option configures a Router.
type Option func(*Router)

func WithClock(c clockwork.Clock) Option {
	return func(r *Router) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithDelay overrides the aiProcessing delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.delay = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDefaultResult sets the variant the session starts with.
func WithDefaultResult(res Result) Option {
	return func(r *Router) {
		if res.Valid() {
			r.state.Result = res
		}
	}
}

// New returns a router on the welcome screen with no zone and a confirmed result.
func New(opts ...Option) *Router {
	r := &Router{
		state: State{Screen: Welcome, Result: ResultConfirmed},
		clock: clockwork.NewRealClock(),
		delay: DefaultProcessingDelay,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns a snapshot of the current context.
func (r *Router) State() State {
	return r.state
}

// Delay is the configured aiProcessing delay.
func (r *Router) Delay() time.Duration {
	return r.delay
}

// Pending returns the live auto-advance, or nil when none is scheduled.
func (r *Router) Pending() *Pending {
	return r.pending
}

// NavOption overrides carried context on a single Navigate call.
type NavOption func(*navRequest)

type navRequest struct {
	zone   *zone.Zone
	result Result
}

// WithZone replaces the selected zone.
func WithZone(z zone.Zone) NavOption {
	return func(req *navRequest) {
		req.zone = &z
	}
}

// WithResult replaces the AI result variant.
func WithResult(res Result) NavOption {
	return func(req *navRequest) {
		req.result = res
	}
}

// Navigate moves to target, replacing zone and result only when supplied,
// and returns the new state. A target that needs a zone when none has been
// selected lands on the map instead.
//
// Navigating to a screen outside the enumeration is a programming error and panics.
func (r *Router) Navigate(target Screen, opts ...NavOption) State {
	if !target.Valid() {
		panic(fmt.Sprintf("nav: navigate to unknown screen %q", target))
	}
	var req navRequest
	for _, opt := range opts {
		opt(&req)
	}
	if req.result != "" && !req.result.Valid() {
		panic(fmt.Sprintf("nav: unknown result variant %q", req.result))
	}

	next := r.state
	if req.zone != nil {
		next.Zone = req.zone
	}
	if req.result != "" {
		next.Result = req.result
	}
	if target.RequiresZone() && next.Zone == nil {
		r.log.Warn("no zone selected, redirecting",
			zap.String("requested", string(target)),
			zap.String("from", string(r.state.Screen)),
		)
		target = Map
	}
	next.Screen = target

	from := r.state.Screen
	r.release()
	r.state = next
	if target == AIProcessing {
		r.acquire()
	}

	r.log.Debug("navigate",
		zap.String("from", string(from)),
		zap.String("to", string(next.Screen)),
		zap.String("zone", next.ZoneID()),
		zap.String("result", string(next.Result)),
	)
	return next
}

// Apply completes a fired auto-advance. Tokens from an activation that has
// since been left or replaced are ignored.
func (r *Router) Apply(adv Advance) bool {
	if r.pending == nil || r.pending.activation != adv.Activation || r.state.Screen != AIProcessing {
		r.log.Debug("discarding stale advance", zap.Uint64("activation", adv.Activation))
		return false
	}
	r.log.Info("processing complete",
		zap.Uint64("activation", adv.Activation),
		zap.Duration("elapsed", r.clock.Since(r.pending.startedAt)),
	)
	r.Navigate(adv.Target)
	return true
}

// Close cancels any pending auto-advance. The router stays usable.
func (r *Router) Close() {
	r.release()
}

func (r *Router) acquire() {
	r.activation++
	r.pending = newPending(r.activation, r.clock, r.delay)
	r.log.Debug("processing timer armed",
		zap.Uint64("activation", r.activation),
		zap.Duration("delay", r.delay),
	)
}

func (r *Router) release() {
	if r.pending == nil {
		return
	}
	r.pending.cancel()
	r.pending = nil
}
