package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/five82/pullview/internal/haptic"
	"github.com/five82/pullview/internal/offset"
	"github.com/five82/pullview/internal/position"
)

// DefaultThreshold is the pull distance that primes a refresh.
const DefaultThreshold = 68.0

var (
	ErrInvalidThreshold   = errors.New("threshold must be greater than zero")
	ErrNoAction           = errors.New("no refresh action configured")
	ErrConflictingActions = errors.New("both OnRefresh and OnRefreshAsync configured")
	ErrNeedsDispatcher    = errors.New("OnRefreshAsync requires a Dispatcher that runs on the update queue")
)

// Action performs a refresh and calls done exactly once when it finishes.
// done runs its work through the configured Dispatcher. With Immediate it
// must be called on the update queue; with a queueing Dispatcher it may be
// called from any goroutine.
type Action func(done func())

// AsyncAction performs a refresh on its own goroutine and returns when it
// finishes. Its completion is always marshalled, so it needs a Dispatcher
// other than Immediate.
type AsyncAction func(ctx context.Context) error

// ProgressRenderer maps the published state and percent to something the
// surface can draw. It must not touch the controller.
type ProgressRenderer func(state State, percent int) string

// Animator returns the scroll surface to rest once a refresh completes.
type Animator interface {
	AnimateToRest()
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func()

func (f AnimatorFunc) AnimateToRest() {
	if f != nil {
		f()
	}
}

// Config is fixed for the lifetime of a Controller.
type Config struct {
	Threshold                            float64
	ShowsIndicators                      bool
	ShowsContentUnderProgressWhenLoading bool
	HapticsEnabled                       bool
	BackgroundColor                      string

	Renderer       ProgressRenderer
	OnRefresh      Action
	OnRefreshAsync AsyncAction

	Haptics    haptic.Pulser
	Animator   Animator
	Dispatcher Dispatcher
	Logger     *logrus.Entry
	Context    context.Context
}

// DefaultConfig returns the documented defaults with no refresh action set.
func DefaultConfig() Config {
	return Config{
		Threshold:                            DefaultThreshold,
		ShowsIndicators:                      true,
		ShowsContentUnderProgressWhenLoading: true,
	}
}

// Options are the cosmetic settings a renderer reads back from the controller.
type Options struct {
	Threshold                            float64
	ShowsIndicators                      bool
	ShowsContentUnderProgressWhenLoading bool
	HapticsEnabled                       bool
	BackgroundColor                      string
}

// Snapshot is the observable state of one controller.
type Snapshot struct {
	State              State
	Percent            int
	Offset             float64
	Threshold          float64
	Cycles             int // refreshes started
	IgnoredCompletions int // duplicate or stale done calls
	LastError          error
}

// Controller drives one scroll surface. OnPositionBatch, Trigger and every
// task passed to the Dispatcher must run on the same update queue; Snapshot,
// Render and Subscribe are safe from any goroutine.
type Controller struct {
	opts      Options
	renderer  ProgressRenderer
	onRefresh Action
	async     AsyncAction
	haptics   haptic.Pulser
	animator  Animator
	dispatch  Dispatcher
	log       *logrus.Entry
	ctx       context.Context
	inflight  sync.WaitGroup

	// Owned by the update queue.
	machine   Machine
	positions offset.Positions
	offset    float64
	percent   int
	cycle     uint64
	cycles    int
	ignored   int
	lastErr   error
	errSeq    int

	mu        sync.RWMutex
	published Snapshot
	pubErrSeq int
	rendered  string
	renderKey renderKey
	hasRender bool

	listenMu  sync.Mutex
	listeners map[int]func(Snapshot)
	nextID    int
}

type renderKey struct {
	state   State
	percent int
}

// New validates cfg and returns a controller in the Waiting state.
func New(cfg Config) (*Controller, error) {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("configure refresh: %w (got %v)", ErrInvalidThreshold, cfg.Threshold)
	}
	switch {
	case cfg.OnRefresh == nil && cfg.OnRefreshAsync == nil:
		return nil, fmt.Errorf("configure refresh: %w", ErrNoAction)
	case cfg.OnRefresh != nil && cfg.OnRefreshAsync != nil:
		return nil, fmt.Errorf("configure refresh: %w", ErrConflictingActions)
	case cfg.OnRefreshAsync != nil && (cfg.Dispatcher == nil || cfg.Dispatcher == Immediate):
		return nil, fmt.Errorf("configure refresh: %w", ErrNeedsDispatcher)
	}

	c := &Controller{
		opts: Options{
			Threshold:                            threshold,
			ShowsIndicators:                      cfg.ShowsIndicators,
			ShowsContentUnderProgressWhenLoading: cfg.ShowsContentUnderProgressWhenLoading,
			HapticsEnabled:                       cfg.HapticsEnabled,
			BackgroundColor:                      cfg.BackgroundColor,
		},
		renderer:  cfg.Renderer,
		onRefresh: cfg.OnRefresh,
		async:     cfg.OnRefreshAsync,
		haptics:   cfg.Haptics,
		animator:  cfg.Animator,
		dispatch:  cfg.Dispatcher,
		log:       cfg.Logger,
		ctx:       cfg.Context,
		listeners: make(map[int]func(Snapshot)),
	}
	if c.renderer == nil {
		c.renderer = TextRenderer
	}
	if c.haptics == nil {
		c.haptics = haptic.Nop{}
	}
	if c.animator == nil {
		c.animator = AnimatorFunc(nil)
	}
	if c.dispatch == nil {
		c.dispatch = Immediate
	}
	if c.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		c.log = logrus.NewEntry(discard)
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}

	c.published = c.snapshotLocal()
	c.renderLocked(c.published)
	return c, nil
}

// Options returns the configuration renderers need.
func (c *Controller) Options() Options {
	return c.opts
}

// OnPositionBatch folds one pass of position samples into the session. It is
// the only entry point for pull gestures.
func (c *Controller) OnPositionBatch(batch position.Batch) {
	res := offset.Compute(batch, c.positions, c.opts.Threshold)
	c.positions = res.Positions
	c.offset = res.Offset
	c.percent = res.Percent

	eff := c.machine.Transition(res.Offset, c.opts.Threshold)
	c.apply(eff)
	c.publish()
}

// Trigger starts a refresh without a pull. It is ignored unless Waiting.
func (c *Controller) Trigger() {
	eff := c.machine.Trigger()
	if eff == EffectNone {
		c.log.WithField("state", c.machine.State().String()).Debug("trigger ignored")
		return
	}
	c.apply(eff)
	c.publish()
}

// Snapshot returns the last published state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.published
}

// Render returns the renderer output for the last published state and percent.
func (c *Controller) Render() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rendered
}

// Subscribe registers fn to be called after every published change. The
// returned function removes the listener.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	c.listenMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.listenMu.Unlock()

	return func() {
		c.listenMu.Lock()
		delete(c.listeners, id)
		c.listenMu.Unlock()
	}
}

func (c *Controller) apply(eff Effect) {
	switch eff {
	case EffectNone:
		return
	case EffectPrimed:
		c.log.WithFields(logrus.Fields{"offset": c.offset, "threshold": c.opts.Threshold}).Debug("pull primed")
		c.pulse(haptic.Heavy)
	case EffectStartRefresh:
		c.cycle++
		c.cycles++
		c.log.WithField("cycle", c.cycle).Debug("refresh started")
		// Renderers see loading before the action runs.
		c.publish()
		c.invoke(c.cycle)
	case EffectFinished:
		c.log.WithField("cycle", c.cycle).Debug("refresh finished")
		c.pulse(haptic.Medium)
		c.animator.AnimateToRest()
	}
}

func (c *Controller) pulse(i haptic.Intensity) {
	if c.opts.HapticsEnabled {
		c.haptics.Pulse(i)
	}
}

func (c *Controller) invoke(cycle uint64) {
	complete := c.completion(cycle)
	if c.onRefresh != nil {
		c.onRefresh(func() { complete(nil) })
		return
	}

	action := c.async
	ctx := c.ctx
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		complete(c.runAsync(ctx, action))
	}()
}

// Wait blocks until every AsyncAction started by this controller returned.
// Cancel the configured Context first to cut a slow action short.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) runAsync(ctx context.Context, action AsyncAction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("stack", string(debug.Stack())).Errorf("panic in refresh action: %v", r)
			err = fmt.Errorf("refresh action panicked: %v", r)
		}
	}()
	return action(ctx)
}

// completion returns the one-shot continuation for cycle. Only the first
// call is honoured; it is marshalled onto the dispatcher.
func (c *Controller) completion(cycle uint64) func(error) {
	var called atomic.Bool
	return func(err error) {
		first := called.CompareAndSwap(false, true)
		c.dispatch.Dispatch(func() { c.finish(cycle, first, err) })
	}
}

func (c *Controller) finish(cycle uint64, first bool, err error) {
	if !first || cycle != c.cycle || c.machine.State() != Loading {
		c.ignored++
		c.log.WithFields(logrus.Fields{
			"cycle":   cycle,
			"current": c.cycle,
			"state":   c.machine.State().String(),
		}).Warn("ignored duplicate refresh completion")
		c.publish()
		return
	}

	c.lastErr = err
	c.errSeq++
	if err != nil {
		c.log.WithError(err).WithField("cycle", cycle).Error("refresh failed")
	}
	c.apply(c.machine.Complete())
	c.publish()
}

func (c *Controller) snapshotLocal() Snapshot {
	return Snapshot{
		State:              c.machine.State(),
		Percent:            c.percent,
		Offset:             c.offset,
		Threshold:          c.opts.Threshold,
		Cycles:             c.cycles,
		IgnoredCompletions: c.ignored,
		LastError:          c.lastErr,
	}
}

// publish stores the current snapshot. Listeners are only notified when
// something other than the raw offset moved.
func (c *Controller) publish() {
	next := c.snapshotLocal()

	c.mu.Lock()
	prev := c.published
	changed := c.errSeq != c.pubErrSeq ||
		prev.State != next.State ||
		prev.Percent != next.Percent ||
		prev.Cycles != next.Cycles ||
		prev.IgnoredCompletions != next.IgnoredCompletions
	c.published = next
	if !changed {
		c.mu.Unlock()
		return
	}
	c.pubErrSeq = c.errSeq
	c.renderLocked(next)
	c.mu.Unlock()

	c.listenMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.listeners))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.listenMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// renderLocked calls the renderer only when state or percent moved.
func (c *Controller) renderLocked(s Snapshot) {
	key := renderKey{state: s.State, percent: s.Percent}
	if c.hasRender && key == c.renderKey {
		return
	}
	c.rendered = c.renderer(s.State, s.Percent)
	c.renderKey = key
	c.hasRender = true
}
