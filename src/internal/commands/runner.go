package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/princess-rosella/spu-md5/src/internal/log"
)

// RestartableRunner supervises a long-running function, restarting it with
// exponential backoff when it fails or panics.
type RestartableRunner struct {
	name    string
	runFunc func(ctx context.Context) error
	opts    RunnerConfig

	mu           sync.RWMutex
	running      bool
	cancel       context.CancelFunc
	done         chan struct{}
	lastError    error
	restartCount int
}

// RunnerConfig contains configuration for RestartableRunner.
type RunnerConfig struct {
	Name           string
	MaxRestarts    int           // 0 = unlimited restarts
	RestartBackoff time.Duration // Initial backoff (default: 1s)
	MaxBackoff     time.Duration // Max backoff (default: 30s)
	StopTimeout    time.Duration // Wait limit in Stop (default: 30s)
}

// NewRestartableRunner creates a new restartable runner.
func NewRestartableRunner(cfg RunnerConfig, runFunc func(ctx context.Context) error) *RestartableRunner {
	if cfg.RestartBackoff == 0 {
		cfg.RestartBackoff = 1 * time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.StopTimeout == 0 {
		cfg.StopTimeout = 30 * time.Second
	}

	return &RestartableRunner{
		name:    cfg.Name,
		runFunc: runFunc,
		opts:    cfg,
	}
}

// Start launches the supervise loop in a goroutine.
func (r *RestartableRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("%s is already running", r.name)
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true
	r.restartCount = 0
	r.lastError = nil

	go r.loop(runCtx, r.done)

	return nil
}

// Done is closed when the loop exits, either after Stop or after giving up.
func (r *RestartableRunner) Done() <-chan struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.done
}

// Stop cancels the function and waits for the loop to exit.
func (r *RestartableRunner) Stop() error {
	r.mu.RLock()
	cancel, done := r.cancel, r.done
	r.mu.RUnlock()

	if done == nil {
		return nil
	}

	cancel()

	select {
	case <-done:
	case <-time.After(r.opts.StopTimeout):
		return fmt.Errorf("%s: timeout waiting for stop", r.name)
	}
	return nil
}

// IsRunning returns true while the loop is active.
func (r *RestartableRunner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// LastError returns the error of the most recent run.
func (r *RestartableRunner) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastError
}

// RestartCount returns the number of restarts that have occurred.
func (r *RestartableRunner) RestartCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.restartCount
}

func (r *RestartableRunner) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(done)
	}()

	backoff := r.opts.RestartBackoff

	for ctx.Err() == nil {
		err := r.runOnce(ctx)

		r.mu.Lock()
		r.lastError = err
		r.mu.Unlock()

		if err == nil {
			log.Infof("%s: exited cleanly", r.name)
			return
		}
		if ctx.Err() != nil {
			log.Infof("%s: stopped", r.name)
			return
		}

		r.mu.Lock()
		r.restartCount++
		restarts := r.restartCount
		r.mu.Unlock()

		if r.opts.MaxRestarts > 0 && restarts >= r.opts.MaxRestarts {
			log.Errorf("%s: max restarts (%d) reached, giving up. Last error: %v", r.name, r.opts.MaxRestarts, err)
			return
		}

		log.Errorf("%s: failed: %v. Restarting in %v (restart #%d)", r.name, err, backoff, restarts)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, r.opts.MaxBackoff)
	}
}

func (r *RestartableRunner) runOnce(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()

	return r.runFunc(ctx)
}
