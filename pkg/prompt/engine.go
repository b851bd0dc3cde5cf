package prompt

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the engine's position in the prompt lifecycle.
type State int

const (
	StateNew State = iota
	StateTimerRunning
	StateShown
	StateCooldown
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateTimerRunning:
		return "TIMER_RUNNING"
	case StateShown:
		return "SHOWN"
	case StateCooldown:
		return "COOLDOWN"
	case StateSubmitted:
		return "SUBMITTED"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrInvalidRating rejects submissions before any network call is made.
	ErrInvalidRating = errors.New("a rating between 1 and 5 is required")
	// ErrDisabled is returned when the engine has no auth context.
	ErrDisabled = errors.New("feedback prompt is disabled")
	// ErrAlreadySubmitted is returned for submissions after the terminal state.
	ErrAlreadySubmitted = errors.New("feedback already given")
)

// Event is a unit of input to the engine's reducer.
type Event interface{ isEvent() }

// LoginEvent starts a session: it records the login timestamp once,
// begins the periodic check and reconciles against the server.
type LoginEvent struct{}

// TimerTick is the periodic local threshold check.
type TimerTick struct{}

// ShowDelayElapsed fires after the UX delay following a positive remote
// decision.
type ShowDelayElapsed struct{}

// DismissRequested hides the prompt and starts the cooldown.
type DismissRequested struct{}

// SubmitRequested carries a validated submission into the reducer.
type SubmitRequested struct {
	Rating  int
	Comment string

	result chan error
}

// RemoteStatusReceived delivers the outcome of a server status query.
type RemoteStatusReceived struct {
	Status Status
	Err    error
}

type submitResult struct {
	err    error
	result chan error
}

type successHideElapsed struct{}

func (LoginEvent) isEvent()           {}
func (TimerTick) isEvent()            {}
func (ShowDelayElapsed) isEvent()     {}
func (DismissRequested) isEvent()     {}
func (SubmitRequested) isEvent()      {}
func (RemoteStatusReceived) isEvent() {}
func (submitResult) isEvent()         {}
func (successHideElapsed) isEvent()   {}

// Config bundles the engine's dependencies. Username and API are required;
// without them the engine is disabled and Start is a no-op.
type Config struct {
	Username  string
	Store     Store
	API       StatusAPI
	Presenter Presenter
	Clock     Clock
	Logger    *zap.Logger
}

// Engine decides whether to present the feedback prompt for one user. All
// events flow through a single goroutine, so transitions are serialized and
// the decision path needs no locks.
type Engine struct {
	username  string
	store     Store
	api       StatusAPI
	presenter Presenter
	clock     Clock
	logger    *zap.Logger

	disabled bool
	events   chan Event
	done     chan struct{}
	once     sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	// loop-owned; mu guards only the snapshots read by State and Visible.
	mu      sync.Mutex
	state   State
	visible bool

	checking  bool
	tickTimer Timer
	showTimer Timer
	hideTimer Timer
}

// New constructs an Engine. A missing username or API disables it.
func New(cfg Config) *Engine {
	e := &Engine{
		username:  cfg.Username,
		store:     cfg.Store,
		api:       cfg.API,
		presenter: cfg.Presenter,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		disabled:  cfg.Username == "" || cfg.API == nil,
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
		state:     StateNew,
	}
	if e.store == nil {
		e.store = NewMemoryStore()
	}
	if e.presenter == nil {
		e.presenter = nopPresenter{}
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Start launches the event loop and dispatches the login event. Calling
// Start on a disabled engine does nothing.
func (e *Engine) Start(ctx context.Context) {
	if e.disabled {
		e.logger.Debug("feedback prompt disabled, no auth context")
		return
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	go e.run()
	e.Dispatch(LoginEvent{})
}

// Close stops the event loop and all pending timers. Safe to call more
// than once.
func (e *Engine) Close() {
	e.once.Do(func() {
		if e.cancel != nil {
			e.cancel()
		}
		close(e.done)
	})
}

// Dispatch queues an event for the reducer. Events dispatched after Close
// are dropped.
func (e *Engine) Dispatch(ev Event) {
	if e.disabled {
		return
	}
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Visible reports whether the prompt is currently presented.
func (e *Engine) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// Dismiss hides the prompt and starts the cooldown. The server is notified
// best-effort.
func (e *Engine) Dismiss() {
	e.Dispatch(DismissRequested{})
}

// Submit validates the rating, sends the feedback and waits for the
// outcome. A rating outside 1..5 is rejected before any network call.
func (e *Engine) Submit(ctx context.Context, rating int, comment string) error {
	if e.disabled {
		return ErrDisabled
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	result := make(chan error, 1)
	e.Dispatch(SubmitRequested{Rating: rating, Comment: comment, result: result})

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrDisabled
	}
}

// TrackActivity notifies the server of user activity, fire-and-forget.
func (e *Engine) TrackActivity() {
	if e.disabled {
		return
	}
	go func() {
		if err := e.api.TrackActivity(e.ctx); err != nil {
			e.logger.Warn("activity tracking failed", zap.Error(err))
		}
	}()
}

func (e *Engine) run() {
	for {
		select {
		case ev := <-e.events:
			e.reduce(ev)
		case <-e.done:
			e.stopTimers()
			return
		}
	}
}

// reduce applies one event to the engine. It runs only on the loop
// goroutine.
func (e *Engine) reduce(ev Event) {
	switch ev := ev.(type) {
	case LoginEvent:
		e.reduceLogin()
	case TimerTick:
		e.reduceTick()
	case RemoteStatusReceived:
		e.reduceRemoteStatus(ev)
	case ShowDelayElapsed:
		e.reduceShowDelay()
	case DismissRequested:
		e.reduceDismiss()
	case SubmitRequested:
		e.reduceSubmit(ev)
	case submitResult:
		e.reduceSubmitResult(ev)
	case successHideElapsed:
		e.setVisible(false)
		e.presenter.HidePrompt()
	}
}

func (e *Engine) reduceLogin() {
	if e.localHasGiven() {
		e.terminal()
		return
	}

	// Record the login timestamp once; a prior one survives re-login.
	if _, ok := e.loginTime(); !ok {
		e.setTimestamp(loginTimeKey(e.username))
	}

	if e.inCooldown() {
		e.setState(StateCooldown)
	} else {
		e.setState(StateTimerRunning)
		e.startStatusQuery()
	}
	e.scheduleTick()
}

func (e *Engine) reduceTick() {
	if e.State() == StateSubmitted {
		return
	}
	e.scheduleTick()

	if e.Visible() {
		return
	}
	if e.localHasGiven() {
		e.terminal()
		return
	}
	if e.inCooldown() {
		e.setState(StateCooldown)
		return
	}
	e.setState(StateTimerRunning)

	if loginAt, ok := e.loginTime(); ok && e.clock.Now().Sub(loginAt) >= LoginThreshold {
		e.show()
	}
}

func (e *Engine) reduceRemoteStatus(ev RemoteStatusReceived) {
	e.checking = false
	if ev.Err != nil {
		// Uncertain state never forces a prompt.
		e.logger.Warn("feedback status check failed", zap.Error(ev.Err))
		return
	}
	if ev.Status.HasGivenFeedback {
		if err := e.store.Set(e.ctx, hasGivenKey(e.username), "true"); err != nil {
			e.logger.Warn("persisting feedback flag failed", zap.Error(err))
		}
		e.terminal()
		return
	}
	if ev.Status.ShouldShowFeedback && !e.Visible() && !e.inCooldown() && e.State() != StateSubmitted {
		e.scheduleShow()
	}
}

func (e *Engine) reduceShowDelay() {
	if e.State() == StateSubmitted || e.Visible() || e.inCooldown() {
		return
	}
	e.show()
}

func (e *Engine) reduceDismiss() {
	if !e.Visible() {
		return
	}
	e.setVisible(false)
	e.presenter.HidePrompt()
	e.setTimestamp(dismissTimeKey(e.username))
	e.setState(StateCooldown)

	go func() {
		if err := e.api.DismissFeedback(e.ctx); err != nil {
			e.logger.Warn("dismiss notification failed", zap.Error(err))
		}
	}()
}

func (e *Engine) reduceSubmit(ev SubmitRequested) {
	if e.State() == StateSubmitted {
		e.reply(ev.result, ErrAlreadySubmitted)
		return
	}

	go func() {
		err := e.api.SubmitFeedback(e.ctx, ev.Rating, ev.Comment)
		e.Dispatch(submitResult{err: err, result: ev.result})
	}()
}

func (e *Engine) reduceSubmitResult(ev submitResult) {
	if ev.err != nil {
		e.presenter.SubmitFailed(ev.err.Error())
		e.reply(ev.result, ev.err)
		return
	}

	if err := e.store.Set(e.ctx, hasGivenKey(e.username), "true"); err != nil {
		e.logger.Warn("persisting feedback flag failed", zap.Error(err))
	}
	if err := e.store.Delete(e.ctx, loginTimeKey(e.username)); err != nil {
		e.logger.Warn("clearing login timestamp failed", zap.Error(err))
	}
	e.terminal()
	e.presenter.ShowSuccess()
	e.hideTimer = e.clock.AfterFunc(SuccessHideDelay, func() {
		e.Dispatch(successHideElapsed{})
	})
	e.reply(ev.result, nil)
}

func (e *Engine) reply(result chan error, err error) {
	if result != nil {
		result <- err
	}
}

// show presents the prompt at most once; the visible flag guards against
// the timer path and the remote path resolving together.
func (e *Engine) show() {
	if e.Visible() || e.State() == StateSubmitted {
		return
	}
	e.setVisible(true)
	e.setState(StateShown)
	e.presenter.ShowPrompt()
}

// terminal enters SUBMITTED and stops periodic work.
func (e *Engine) terminal() {
	e.setState(StateSubmitted)
	if e.tickTimer != nil {
		e.tickTimer.Stop()
		e.tickTimer = nil
	}
	if e.showTimer != nil {
		e.showTimer.Stop()
		e.showTimer = nil
	}
}

func (e *Engine) scheduleTick() {
	if e.tickTimer != nil {
		e.tickTimer.Stop()
	}
	e.tickTimer = e.clock.AfterFunc(CheckInterval, func() {
		e.Dispatch(TimerTick{})
	})
}

func (e *Engine) scheduleShow() {
	if e.showTimer != nil {
		e.showTimer.Stop()
	}
	e.showTimer = e.clock.AfterFunc(ShowDelay, func() {
		e.Dispatch(ShowDelayElapsed{})
	})
}

func (e *Engine) startStatusQuery() {
	if e.checking {
		return
	}
	e.checking = true
	go func() {
		status, err := e.api.FeedbackStatus(e.ctx)
		e.Dispatch(RemoteStatusReceived{Status: status, Err: err})
	}()
}

func (e *Engine) stopTimers() {
	for _, t := range []Timer{e.tickTimer, e.showTimer, e.hideTimer} {
		if t != nil {
			t.Stop()
		}
	}
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Engine) setVisible(v bool) {
	e.mu.Lock()
	e.visible = v
	e.mu.Unlock()
}

func (e *Engine) localHasGiven() bool {
	value, ok, err := e.store.Get(e.ctx, hasGivenKey(e.username))
	if err != nil {
		e.logger.Warn("reading feedback flag failed", zap.Error(err))
		return false
	}
	return ok && value == "true"
}

func (e *Engine) loginTime() (time.Time, bool) {
	return e.timestamp(loginTimeKey(e.username))
}

func (e *Engine) inCooldown() bool {
	dismissedAt, ok := e.timestamp(dismissTimeKey(e.username))
	if !ok {
		return false
	}
	return e.clock.Now().Sub(dismissedAt) < DismissCooldown
}

func (e *Engine) timestamp(key string) (time.Time, bool) {
	value, ok, err := e.store.Get(e.ctx, key)
	if err != nil {
		e.logger.Warn("reading timestamp failed", zap.String("key", key), zap.Error(err))
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		e.logger.Warn("invalid stored timestamp", zap.String("key", key), zap.Error(err))
		return time.Time{}, false
	}
	return at, true
}

func (e *Engine) setTimestamp(key string) {
	value := e.clock.Now().Format(time.RFC3339Nano)
	if err := e.store.Set(e.ctx, key, value); err != nil {
		e.logger.Warn("persisting timestamp failed", zap.String("key", key), zap.Error(err))
	}
}
