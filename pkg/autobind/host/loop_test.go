package host

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/pkg/autobind"
)

func TestLoop_CallbacksArmedDuringTickRunNext(t *testing.T) {
	loop := NewLoop()
	var order []string

	loop.RunLater(func() {
		order = append(order, "first")
		loop.RunLater(func() { order = append(order, "rearmed") })
	})
	loop.RunLater(func() { order = append(order, "second") })

	assert.Equal(t, 2, loop.Tick())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, loop.Pending())

	assert.Equal(t, 1, loop.Tick())
	assert.Equal(t, []string{"first", "second", "rearmed"}, order)
	assert.Zero(t, loop.Tick())
}

func TestLoop_Drain(t *testing.T) {
	loop := NewLoop()
	remaining := 5
	var step func()
	step = func() {
		remaining--
		if remaining > 0 {
			loop.RunLater(step)
		}
	}
	loop.RunLater(step)

	assert.Equal(t, 3, loop.Drain(3))
	assert.Equal(t, 2, loop.Drain(10))
	assert.Zero(t, remaining)
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	loop := NewLoop()
	ran := make(chan struct{}, 1)
	loop.RunLater(func() { ran <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, time.Millisecond) }()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoop_DrivesSchedulerThroughBuild(t *testing.T) {
	dir := t.TempDir()
	prefs := NewFilePrefs(dir + "/prefs.yaml")
	build := NewBuildLock(dir + "/" + DefaultBuildLockFile)
	loop := NewLoop()

	root := autobind.NewNode("Root")
	owner := autobind.NewOwner(root, autobind.AutoSuffix)
	ids := &singleIdentity{owner: owner}
	binder := &countingBinder{}

	scheduler := autobind.NewScheduler(binder, ids, prefs, build, loop)

	release, err := build.Acquire()
	require.NoError(t, err)

	require.NoError(t, scheduler.Enqueue(owner))
	loop.Tick()
	loop.Tick()
	assert.Zero(t, binder.calls)
	assert.Equal(t, autobind.StateAwaitingReadiness, scheduler.State("root"))

	require.NoError(t, release())
	loop.Drain(10)
	assert.Equal(t, 1, binder.calls)
	assert.Equal(t, autobind.StateResolved, scheduler.State("root"))
	assert.Empty(t, prefs.Get(autobind.PendingBindIDsKey, ""))
}

type singleIdentity struct{ owner *autobind.Owner }

func (s *singleIdentity) IDOf(*autobind.Owner) string { return "root" }

func (s *singleIdentity) ResolveID(id string) *autobind.Owner {
	if id == "root" {
		return s.owner
	}
	return nil
}

type countingBinder struct{ calls int }

func (c *countingBinder) BindOne(*autobind.Owner) bool {
	c.calls++
	return true
}
