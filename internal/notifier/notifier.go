// Package notifier reports lead stage changes to the remote store. Reports are
// fire-and-forget: Notify never blocks on the network and failures are logged,
// counted and handed to an optional hook, never returned to the caller.
package notifier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"leadboard/internal/model"
)

var (
	ErrSaturated = errors.New("stage notifier is saturated")
	ErrClosed    = errors.New("stage notifier is closed")
)

// Writer persists one stage update.
type Writer interface {
	WriteStage(ctx context.Context, u model.StageUpdate) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, u model.StageUpdate) error

func (f WriterFunc) WriteStage(ctx context.Context, u model.StageUpdate) error { return f(ctx, u) }

type Config struct {
	Workers        int
	Buffer         int
	Timeout        time.Duration
	HandoffTimeout time.Duration
	UserID         string
}

// Stats are cumulative counters since the notifier started.
type Stats struct {
	Sent    uint64 `json:"sent"`
	Failed  uint64 `json:"failed"`
	Dropped uint64 `json:"dropped"`
}

// FailureHook observes every update that could not be delivered. It is the
// place to plug retries or reconciliation; the notifier itself does neither.
type FailureHook func(u model.StageUpdate, err error)

type Option func(*Notifier)

func WithFailureHook(h FailureHook) Option {
	return func(n *Notifier) { n.onFailure = h }
}

type Notifier struct {
	cfg       Config
	writer    Writer
	logger    *log.Logger
	onFailure FailureHook

	mu     sync.RWMutex
	closed bool
	jobs   chan model.StageUpdate
	wg     sync.WaitGroup

	sent    atomic.Uint64
	failed  atomic.Uint64
	dropped atomic.Uint64
}

// New starts the worker pool.
func New(writer Writer, cfg Config, logger *log.Logger, opts ...Option) *Notifier {
	if writer == nil {
		panic("notifier: writer is required")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = cfg.Workers * 16
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	n := &Notifier{
		cfg:    cfg,
		writer: writer,
		logger: logger,
		jobs:   make(chan model.StageUpdate, cfg.Buffer),
	}
	for _, opt := range opts {
		opt(n)
	}
	for i := 0; i < cfg.Workers; i++ {
		n.wg.Add(1)
		go n.worker(i)
	}
	logger.Infof("stage notifier started, workers: %d, buffer: %d, timeout: %v", cfg.Workers, cfg.Buffer, cfg.Timeout)
	return n
}

// Notify queues a stage update for leadID and returns immediately.
func (n *Notifier) Notify(leadID int64, stage model.Stage) {
	u := model.StageUpdate{LeadID: leadID, Stage: stage, UserID: n.cfg.UserID}
	if err := n.enqueue(u); err != nil {
		n.dropped.Add(1)
		n.fail(u, -1, err)
	}
}

func (n *Notifier) enqueue(u model.StageUpdate) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrClosed
	}

	select {
	case n.jobs <- u:
		return nil
	default:
	}
	if n.cfg.HandoffTimeout <= 0 {
		return ErrSaturated
	}

	timer := time.NewTimer(n.cfg.HandoffTimeout)
	defer timer.Stop()
	select {
	case n.jobs <- u:
		return nil
	case <-timer.C:
		return ErrSaturated
	}
}

func (n *Notifier) worker(id int) {
	defer n.wg.Done()
	for u := range n.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), n.cfg.Timeout)
		err := n.writer.WriteStage(ctx, u)
		cancel()

		if err != nil {
			n.failed.Add(1)
			n.fail(u, id, err)
			continue
		}
		n.sent.Add(1)
		n.logger.WithFields(log.Fields{
			"lead_id": u.LeadID,
			"stage":   u.Stage.String(),
			"worker":  id,
		}).Debug("stage update delivered")
	}
}

func (n *Notifier) fail(u model.StageUpdate, worker int, err error) {
	n.logger.WithError(err).WithFields(log.Fields{
		"lead_id": u.LeadID,
		"stage":   u.Stage.String(),
		"worker":  worker,
	}).Error("stage update failed")
	if n.onFailure != nil {
		n.onFailure(u, err)
	}
}

// Shutdown stops accepting updates and waits for queued ones to finish or for
// ctx to expire.
func (n *Notifier) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.jobs)
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) Stats() Stats {
	return Stats{
		Sent:    n.sent.Load(),
		Failed:  n.failed.Load(),
		Dropped: n.dropped.Load(),
	}
}
