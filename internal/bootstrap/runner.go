// Package bootstrap drives process startup and shutdown around the GUI
// session: logging first, then the working directory, then the controller.
package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"opencv-filtering/internal/app"
	"opencv-filtering/internal/logger"
	"opencv-filtering/internal/validation"
)

const component = "Bootstrap"

// ErrAlreadyRun is returned by every Run after the first.
var ErrAlreadyRun = errors.New("bootstrap runner already used")

// Deps are the collaborators the runner orchestrates. Nil ResolveDir and
// Chdir fall back to ExecutableDir and os.Chdir.
type Deps struct {
	InitLogging   func() (logger.Logger, error)
	ResolveDir    func() (string, error)
	Chdir         func(dir string) error
	NewRoot       func() (app.Root, error)
	NewController func(root app.Root, log logger.Logger) (app.Controller, error)
}

// Runner executes a single application session.
type Runner struct {
	deps Deps

	mu      sync.Mutex
	state   State
	claimed bool
}

// New returns a Runner that has not started yet.
func New(deps Deps) *Runner {
	if deps.ResolveDir == nil {
		deps.ResolveDir = ExecutableDir
	}
	if deps.Chdir == nil {
		deps.Chdir = os.Chdir
	}
	return &Runner{deps: deps}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

func (r *Runner) claim() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimed {
		return false
	}
	r.claimed = true
	return true
}

// Run executes one session. A validation failure anywhere in construction or
// the run loop ends with a ValidationRejected outcome and a nil error; any
// other error is returned as is. Once logging is up, "finish software" is
// logged exactly once on every way out, panics included.
func (r *Runner) Run(ctx context.Context) (outcome app.Outcome, err error) {
	if !r.claim() {
		return app.Outcome{}, ErrAlreadyRun
	}

	log, err := r.deps.InitLogging()
	if err != nil {
		r.setState(Finalized)
		return app.Outcome{}, errors.Wrap(err, "cannot initialize logging")
	}
	r.setState(LoggingInitialized)

	log.Info(component, "start software", map[string]interface{}{
		"version": app.AppVersion,
	})

	defer func() {
		fields := map[string]interface{}{
			"state":   r.State().String(),
			"outcome": outcome.String(),
		}
		if err != nil {
			fields["failed"] = true
		}
		log.Info(component, "finish software", fields)
		r.setState(Finalized)
	}()

	dir, err := r.deps.ResolveDir()
	if err != nil {
		return app.Outcome{}, errors.Wrap(err, "cannot resolve application directory")
	}
	if err := r.deps.Chdir(dir); err != nil {
		return app.Outcome{}, errors.Wrapf(err, "cannot change into %s", dir)
	}
	r.setState(DirectoryResolved)

	log.Debug(component, "working directory pinned", map[string]interface{}{
		"dir": dir,
	})

	root, err := r.deps.NewRoot()
	if err != nil {
		return r.settle(app.Outcome{}, err)
	}

	controller, err := r.deps.NewController(root, log)
	if err != nil {
		return r.settle(app.Outcome{}, err)
	}

	r.setState(Running)
	return r.settle(controller.Run(ctx))
}

func (r *Runner) settle(outcome app.Outcome, err error) (app.Outcome, error) {
	if err != nil {
		verr, ok := validation.As(err)
		if !ok {
			return app.Outcome{}, err
		}
		r.setState(ValidationFailed)
		return app.Rejected(verr.Error()), nil
	}

	if outcome.IsRejected() {
		r.setState(ValidationFailed)
		return outcome, nil
	}

	r.setState(Completed)
	return outcome, nil
}

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "cannot locate executable")
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrapf(err, "cannot resolve %s", exe)
	}
	return filepath.Dir(resolved), nil
}
