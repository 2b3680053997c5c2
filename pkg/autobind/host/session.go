package host

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/toyz/autobind/pkg/autobind"
)

// DefaultTickInterval paces readiness polling
const DefaultTickInterval = 100 * time.Millisecond

// SessionConfig configures NewSession. Only Identity is required.
type SessionConfig struct {
	Root          string // project root, defaults to "."
	PrefsPath     string // defaults to ProjectPrefsPath(Root)
	BuildLockPath string // defaults to Root/DefaultBuildLockFile
	Identity      autobind.IdentityService
	Binder        autobind.OwnerBinder // defaults to a Binder over DefaultRegistry
	Logger        autobind.Logger
	MaxAttempts   int
}

// Session is the scheduler wired to file backed collaborators. A host
// creates one at start and calls Resume; the CLI uses one to enqueue.
type Session struct {
	Prefs     *FilePrefs
	BuildLock *BuildLock
	Loop      *Loop
	Scheduler *autobind.Scheduler
}

// NewSession builds a session from cfg
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Identity == nil {
		return nil, fmt.Errorf("session needs an identity service")
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = ProjectPrefsPath(cfg.Root)
	}
	if cfg.BuildLockPath == "" {
		cfg.BuildLockPath = filepath.Join(cfg.Root, DefaultBuildLockFile)
	}
	if cfg.Logger == nil {
		cfg.Logger = autobind.NopLogger
	}
	if cfg.Binder == nil {
		cfg.Binder = autobind.NewBinder(nil, cfg.Logger)
	}

	opts := []autobind.SchedulerOption{autobind.WithLogger(cfg.Logger)}
	if cfg.MaxAttempts > 0 {
		opts = append(opts, autobind.WithMaxAttempts(cfg.MaxAttempts))
	}

	s := &Session{
		Prefs:     NewFilePrefs(cfg.PrefsPath),
		BuildLock: NewBuildLock(cfg.BuildLockPath),
		Loop:      NewLoop(),
	}
	s.Scheduler = autobind.NewScheduler(cfg.Binder, cfg.Identity, s.Prefs, s.BuildLock, s.Loop, opts...)
	return s, nil
}

// Resume picks up the owners queued before the last restart and polls until
// each is bound or timed out. It returns the number of owners resumed.
func (s *Session) Resume(ctx context.Context, interval time.Duration) (int, error) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	n, err := s.Scheduler.ProcessPending()
	if err != nil {
		return 0, err
	}
	return n, s.Loop.RunUntilIdle(ctx, interval)
}
