package lookup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/diogo/wikichat/internal/api"
	"github.com/diogo/wikichat/internal/models"
)

// ErrClosed is returned by Submit after Close
var ErrClosed = errors.New("dispatcher is closed")

// Result is the outcome of one lookup, addressed to the placeholder that
// was shown while it ran
type Result struct {
	RequestID     string
	PlaceholderID string
	Query         string
	Text          string
	Err           error
	Cancelled     bool
	Elapsed       time.Duration
}

// Dispatcher runs lookups in the background with bounded concurrency and
// posts every Result on a single channel. The consumer of Results is the
// only party that touches UI state.
type Dispatcher struct {
	client    api.WikiClientInterface
	sentences int
	timeout   time.Duration
	sem       *semaphore.Weighted
	results   chan Result
	logger    *zap.Logger

	root   context.Context
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
	closed   bool
}

// Option configures a Dispatcher
type Option func(*dispatcherConfig)

type dispatcherConfig struct {
	maxConcurrent int
	timeout       time.Duration
	sentences     int
	buffer        int
	logger        *zap.Logger
}

// WithMaxConcurrent caps how many lookups talk to the network at once
func WithMaxConcurrent(n int) Option {
	return func(c *dispatcherConfig) {
		if n > 0 {
			c.maxConcurrent = n
		}
	}
}

// WithTimeout bounds each lookup. Zero disables the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *dispatcherConfig) {
		c.timeout = d
	}
}

// WithSentences sets the summary length
func WithSentences(n int) Option {
	return func(c *dispatcherConfig) {
		if n > 0 {
			c.sentences = n
		}
	}
}

// WithResultBuffer sets the capacity of the results channel
func WithResultBuffer(n int) Option {
	return func(c *dispatcherConfig) {
		if n >= 0 {
			c.buffer = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *dispatcherConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewDispatcher creates a Dispatcher backed by client
func NewDispatcher(client api.WikiClientInterface, opts ...Option) *Dispatcher {
	cfg := &dispatcherConfig{
		maxConcurrent: 4,
		timeout:       20 * time.Second,
		sentences:     models.DefaultSentences,
		buffer:        16,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	root, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		client:    client,
		sentences: cfg.sentences,
		timeout:   cfg.timeout,
		sem:       semaphore.NewWeighted(int64(cfg.maxConcurrent)),
		results:   make(chan Result, cfg.buffer),
		logger:    cfg.logger,
		root:      root,
		cancel:    cancel,
		done:      make(chan struct{}),
		inflight:  make(map[string]context.CancelFunc),
	}
}

// Results returns the channel every lookup outcome is posted on.
// It is closed by Close once all workers have exited.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Submit starts a lookup for query and returns its request ID without
// waiting for it. placeholderID is echoed back in the Result.
func (d *Dispatcher) Submit(query, placeholderID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", ErrClosed
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(d.root)
	d.inflight[id] = cancel
	d.wg.Add(1)

	go d.run(ctx, Result{RequestID: id, PlaceholderID: placeholderID, Query: query})

	d.logger.Debug("lookup submitted",
		zap.String("request_id", id),
		zap.String("query", query))
	return id, nil
}

// run performs one lookup and posts its Result
func (d *Dispatcher) run(ctx context.Context, res Result) {
	defer d.wg.Done()
	defer d.forget(res.RequestID)

	start := time.Now()

	if err := d.sem.Acquire(ctx, 1); err != nil {
		res.Err = err
		res.Text = Describe(err)
	} else {
		lookupCtx := ctx
		cancel := func() {}
		if d.timeout > 0 {
			lookupCtx, cancel = context.WithTimeout(ctx, d.timeout)
		}
		res.Text, res.Err = Answer(lookupCtx, d.client, res.Query, d.sentences)
		cancel()
		d.sem.Release(1)
	}

	res.Cancelled = ctx.Err() != nil
	res.Elapsed = time.Since(start)

	fields := []zap.Field{
		zap.String("request_id", res.RequestID),
		zap.String("query", res.Query),
		zap.Duration("elapsed", res.Elapsed),
		zap.Bool("cancelled", res.Cancelled),
	}
	if res.Err != nil {
		d.logger.Info("lookup failed", append(fields, zap.Error(res.Err))...)
	} else {
		d.logger.Info("lookup resolved", fields...)
	}

	select {
	case d.results <- res:
	case <-d.done:
	}
}

// forget drops the cancel func of a finished request
func (d *Dispatcher) forget(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cancel, ok := d.inflight[id]; ok {
		cancel()
		delete(d.inflight, id)
	}
}

// InFlight returns the number of lookups that have not posted a result yet
func (d *Dispatcher) InFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight)
}

// CancelAll cancels every running lookup and returns how many were cancelled.
// Cancelled lookups still post a Result with Cancelled set.
func (d *Dispatcher) CancelAll() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, cancel := range d.inflight {
		cancel()
		n++
	}
	if n > 0 {
		d.logger.Debug("lookups cancelled", zap.Int("count", n))
	}
	return n
}

// Close cancels all lookups, waits for them to exit and closes Results.
// Results not yet consumed are discarded.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.cancel()
	close(d.done)
	d.mu.Unlock()

	d.wg.Wait()
	close(d.results)
}
