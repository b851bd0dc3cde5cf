package prompt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *fakeClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock and fires every due timer.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.deadline.After(c.now) {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

func (c *fakeClock) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type fakeAPI struct {
	mu           sync.Mutex
	status       Status
	statusErr    error
	submitErr    error
	statusCalls  int
	submitCalls  int
	dismissCalls int
	trackCalls   int
}

func (a *fakeAPI) FeedbackStatus(context.Context) (Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusCalls++
	return a.status, a.statusErr
}

func (a *fakeAPI) SubmitFeedback(context.Context, int, string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.submitCalls++
	return a.submitErr
}

func (a *fakeAPI) DismissFeedback(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dismissCalls++
	return nil
}

func (a *fakeAPI) TrackActivity(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.trackCalls++
	return nil
}

func (a *fakeAPI) counts() (status, submit, dismiss int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusCalls, a.submitCalls, a.dismissCalls
}

type fakePresenter struct {
	mu        sync.Mutex
	shows     int
	hides     int
	successes int
	failures  []string
}

func (p *fakePresenter) ShowPrompt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shows++
}

func (p *fakePresenter) HidePrompt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hides++
}

func (p *fakePresenter) ShowSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.successes++
}

func (p *fakePresenter) SubmitFailed(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures = append(p.failures, message)
}

func (p *fakePresenter) counts() (shows, hides, successes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows, p.hides, p.successes
}

type engineFixture struct {
	engine    *Engine
	store     *MemoryStore
	api       *fakeAPI
	presenter *fakePresenter
	clock     *fakeClock
}

func newFixture(t *testing.T, username string) *engineFixture {
	t.Helper()
	f := &engineFixture{
		store:     NewMemoryStore(),
		api:       &fakeAPI{},
		presenter: &fakePresenter{},
		clock:     newFakeClock(),
	}
	f.engine = New(Config{
		Username:  username,
		Store:     f.store,
		API:       f.api,
		Presenter: f.presenter,
		Clock:     f.clock,
	})
	t.Cleanup(f.engine.Close)
	return f
}

func (f *engineFixture) seedLoginAt(t *testing.T, at time.Time) {
	t.Helper()
	err := f.store.Set(context.Background(), loginTimeKey("alice"), at.Format(time.RFC3339Nano))
	require.NoError(t, err)
}

func (f *engineFixture) seedDismissAt(t *testing.T, at time.Time) {
	t.Helper()
	err := f.store.Set(context.Background(), dismissTimeKey("alice"), at.Format(time.RFC3339Nano))
	require.NoError(t, err)
}

func waitForState(t *testing.T, e *Engine, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return e.State() == want },
		time.Second, 2*time.Millisecond, "expected state %s, got %s", want, e.State())
}

func TestEngineDisabledWithoutUsername(t *testing.T) {
	f := newFixture(t, "")

	f.engine.Start(context.Background())
	assert.Equal(t, StateNew, f.engine.State())

	err := f.engine.Submit(context.Background(), 5, "great")
	assert.ErrorIs(t, err, ErrDisabled)

	status, submit, dismiss := f.api.counts()
	assert.Zero(t, status+submit+dismiss)
}

func TestEngineLocalFlagIsTerminal(t *testing.T) {
	f := newFixture(t, "alice")
	require.NoError(t, f.store.Set(context.Background(), hasGivenKey("alice"), "true"))

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateSubmitted)

	f.engine.Dispatch(TimerTick{})
	f.engine.Dispatch(TimerTick{})

	assert.Never(t, func() bool { return f.engine.Visible() }, 100*time.Millisecond, 10*time.Millisecond)
	shows, _, _ := f.presenter.counts()
	assert.Zero(t, shows)

	statusCalls, _, _ := f.api.counts()
	assert.Zero(t, statusCalls, "terminal state queries nothing")
}

func TestEngineShowsAfterLoginThreshold(t *testing.T) {
	f := newFixture(t, "alice")
	f.seedLoginAt(t, f.clock.Now().Add(-LoginThreshold))

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateTimerRunning)

	f.engine.Dispatch(TimerTick{})
	waitForState(t, f.engine, StateShown)
	assert.True(t, f.engine.Visible())

	// Repeated ticks must not re-present.
	f.engine.Dispatch(TimerTick{})
	f.engine.Dispatch(TimerTick{})
	assert.Never(t, func() bool {
		shows, _, _ := f.presenter.counts()
		return shows > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestEngineBelowThresholdStaysHidden(t *testing.T) {
	f := newFixture(t, "alice")
	f.seedLoginAt(t, f.clock.Now().Add(-time.Minute))

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateTimerRunning)

	f.engine.Dispatch(TimerTick{})
	assert.Never(t, func() bool { return f.engine.Visible() }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestEngineDismissStartsCooldown(t *testing.T) {
	f := newFixture(t, "alice")
	f.seedLoginAt(t, f.clock.Now().Add(-LoginThreshold))

	f.engine.Start(context.Background())
	f.engine.Dispatch(TimerTick{})
	waitForState(t, f.engine, StateShown)

	f.engine.Dismiss()
	waitForState(t, f.engine, StateCooldown)
	assert.False(t, f.engine.Visible())

	require.Eventually(t, func() bool {
		_, _, dismisses := f.api.counts()
		return dismisses == 1
	}, time.Second, 2*time.Millisecond)

	// 30 seconds in, still suppressed.
	f.clock.Advance(30 * time.Second)
	f.engine.Dispatch(TimerTick{})
	assert.Never(t, func() bool { return f.engine.Visible() }, 100*time.Millisecond, 10*time.Millisecond)

	// Past the cooldown the threshold path re-evaluates and shows again.
	f.clock.Advance(31 * time.Second)
	f.engine.Dispatch(TimerTick{})
	waitForState(t, f.engine, StateShown)
}

func TestEngineRemoteConfirmationIsTerminal(t *testing.T) {
	f := newFixture(t, "alice")
	f.api.status = Status{HasGivenFeedback: true}

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateSubmitted)

	value, ok, err := f.store.Get(context.Background(), hasGivenKey("alice"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	f.engine.Dispatch(TimerTick{})
	assert.Never(t, func() bool { return f.engine.Visible() }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestEngineRemoteShouldShowDelaysPresentation(t *testing.T) {
	f := newFixture(t, "alice")
	f.api.status = Status{ShouldShowFeedback: true}

	f.engine.Start(context.Background())

	// The show is scheduled, not immediate.
	require.Eventually(t, func() bool { return f.clock.pendingTimers() >= 2 },
		time.Second, 2*time.Millisecond)
	assert.False(t, f.engine.Visible())

	f.clock.Advance(ShowDelay)
	waitForState(t, f.engine, StateShown)

	shows, _, _ := f.presenter.counts()
	assert.Equal(t, 1, shows)
}

func TestEngineRemoteFailureStaysSilent(t *testing.T) {
	f := newFixture(t, "alice")
	f.api.statusErr = errors.New("connection refused")

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateTimerRunning)

	assert.Never(t, func() bool { return f.engine.Visible() }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestEngineDismissCooldownBlocksRemoteShow(t *testing.T) {
	f := newFixture(t, "alice")
	f.api.status = Status{ShouldShowFeedback: true}
	f.seedDismissAt(t, f.clock.Now().Add(-10*time.Second))

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateCooldown)

	statusCalls, _, _ := f.api.counts()
	assert.Zero(t, statusCalls, "no remote query during cooldown")
	assert.Never(t, func() bool { return f.engine.Visible() }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestSubmitRejectsInvalidRating(t *testing.T) {
	f := newFixture(t, "alice")
	f.engine.Start(context.Background())

	for _, rating := range []int{0, -1, 6} {
		err := f.engine.Submit(context.Background(), rating, "x")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	_, submits, _ := f.api.counts()
	assert.Zero(t, submits, "invalid ratings never reach the network")
}

func TestSubmitSuccess(t *testing.T) {
	f := newFixture(t, "alice")
	f.seedLoginAt(t, f.clock.Now().Add(-LoginThreshold))

	f.engine.Start(context.Background())
	f.engine.Dispatch(TimerTick{})
	waitForState(t, f.engine, StateShown)

	err := f.engine.Submit(context.Background(), 5, "great")
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, f.engine.State())

	value, ok, err := f.store.Get(context.Background(), hasGivenKey("alice"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	_, ok, err = f.store.Get(context.Background(), loginTimeKey("alice"))
	require.NoError(t, err)
	assert.False(t, ok, "login timestamp is cleared after submission")

	_, _, successes := f.presenter.counts()
	assert.Equal(t, 1, successes)

	// The success affordance auto-hides.
	f.clock.Advance(SuccessHideDelay)
	require.Eventually(t, func() bool { return !f.engine.Visible() },
		time.Second, 2*time.Millisecond)
}

func TestSubmitFailureSurfacesServerMessage(t *testing.T) {
	f := newFixture(t, "alice")
	f.seedLoginAt(t, f.clock.Now().Add(-LoginThreshold))
	f.api.submitErr = errors.New("Rating must be between 1 and 5")

	f.engine.Start(context.Background())
	f.engine.Dispatch(TimerTick{})
	waitForState(t, f.engine, StateShown)

	err := f.engine.Submit(context.Background(), 3, "ok")
	require.Error(t, err)

	assert.Equal(t, StateShown, f.engine.State(), "failed submission keeps the prompt open")
	assert.True(t, f.engine.Visible())

	f.presenter.mu.Lock()
	failures := append([]string(nil), f.presenter.failures...)
	f.presenter.mu.Unlock()
	require.Len(t, failures, 1)
	assert.Equal(t, "Rating must be between 1 and 5", failures[0])
}

func TestSubmitAfterSubmittedIsRejected(t *testing.T) {
	f := newFixture(t, "alice")
	require.NoError(t, f.store.Set(context.Background(), hasGivenKey("alice"), "true"))

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateSubmitted)

	err := f.engine.Submit(context.Background(), 4, "again")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestLoginTimestampIsIdempotent(t *testing.T) {
	f := newFixture(t, "alice")
	earlier := f.clock.Now().Add(-2 * time.Minute)
	f.seedLoginAt(t, earlier)

	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateTimerRunning)

	value, ok, err := f.store.Get(context.Background(), loginTimeKey("alice"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, earlier.Format(time.RFC3339Nano), value, "existing login timestamp survives re-login")
}

func TestDismissWhenHiddenIsNoop(t *testing.T) {
	f := newFixture(t, "alice")
	f.engine.Start(context.Background())
	waitForState(t, f.engine, StateTimerRunning)

	f.engine.Dismiss()

	assert.Never(t, func() bool {
		_, _, dismisses := f.api.counts()
		return dismisses > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}
