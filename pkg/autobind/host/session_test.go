package host

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/pkg/autobind"
)

func TestNewSession_RequiresIdentity(t *testing.T) {
	_, err := NewSession(SessionConfig{Root: t.TempDir()})
	assert.Error(t, err)
}

func TestNewSession_Defaults(t *testing.T) {
	root := t.TempDir()
	owner := autobind.NewOwner(autobind.NewNode("Root"), autobind.AutoSuffix)

	session, err := NewSession(SessionConfig{Root: root, Identity: &singleIdentity{owner: owner}})
	require.NoError(t, err)

	assert.Equal(t, ProjectPrefsPath(root), session.Prefs.Path())
	assert.Equal(t, filepath.Join(root, DefaultBuildLockFile), session.BuildLock.Path())
	assert.Equal(t, autobind.DefaultMaxAttempts, session.Scheduler.MaxAttempts())
}

func TestSession_SurvivesRestart(t *testing.T) {
	root := t.TempDir()

	// the generating process queues the owner and exits without ticking
	before := autobind.NewOwner(autobind.NewNode("Root"), autobind.AutoSuffix)
	cli, err := NewSession(SessionConfig{Root: root, Identity: &singleIdentity{owner: before}, Binder: &countingBinder{}})
	require.NoError(t, err)
	require.NoError(t, cli.Scheduler.Enqueue(before))
	assert.Equal(t, "root", cli.Prefs.Get(autobind.PendingBindIDsKey, ""))

	// the restarted host rebuilds its scene and resumes
	after := autobind.NewOwner(autobind.NewNode("Root"), autobind.AutoSuffix)
	binder := &countingBinder{}
	hostSession, err := NewSession(SessionConfig{
		Root:        root,
		Identity:    &singleIdentity{owner: after},
		Binder:      binder,
		MaxAttempts: 5,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resumed, err := hostSession.Resume(ctx, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, resumed)
	assert.Equal(t, 1, binder.calls)
	assert.Equal(t, autobind.StateResolved, hostSession.Scheduler.State("root"))
	assert.Empty(t, hostSession.Prefs.Get(autobind.PendingBindIDsKey, ""))
}

func TestSession_ResumeNothingPending(t *testing.T) {
	session, err := NewSession(SessionConfig{Root: t.TempDir(), Identity: &singleIdentity{}})
	require.NoError(t, err)

	resumed, err := session.Resume(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, resumed)
}
