package classifier

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

const (
	defaultClassifyTimeout = 10 * time.Second
	defaultBatchTimeout    = 60 * time.Second
	defaultInitTimeout     = 120 * time.Second
)

// ClientConfig holds classifier client configuration.
type ClientConfig struct {
	ClassifyTimeout time.Duration // per single-item request
	BatchTimeout    time.Duration // per batch request
	InitTimeout     time.Duration // worker startup + anchor embedding
}

// Client is the caller-side facade over the worker. It lazily starts the
// worker on first use, couples its own readiness to model readiness, and
// multiplexes concurrent requests by correlation ID. An explicit handle
// owned by whoever creates it, not package-level state.
type Client struct {
	factory func() *Classifier

	classifyTimeout time.Duration
	batchTimeout    time.Duration
	initTimeout     time.Duration

	mu      sync.Mutex
	session *session
}

// session is one worker lifetime. Terminate drops the session; the next
// call builds a fresh one.
type session struct {
	worker   *Worker
	nextID   atomic.Uint64
	mu       sync.Mutex
	pending  map[uint64]chan Response
	initDone chan struct{}
	initErr  error
}

// NewClient creates a classifier client. The factory builds a fresh
// Classifier per worker lifetime so a terminated client can be reused.
func NewClient(factory func() *Classifier, cfg ClientConfig) *Client {
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = defaultClassifyTimeout
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = defaultBatchTimeout
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = defaultInitTimeout
	}
	return &Client{
		factory:         factory,
		classifyTimeout: cfg.ClassifyTimeout,
		batchTimeout:    cfg.BatchTimeout,
		initTimeout:     cfg.InitTimeout,
	}
}

// ClassifyItem classifies a single item name.
func (c *Client) ClassifyItem(ctx context.Context, text string) (domain.ClassificationResult, error) {
	resp, err := c.roundTrip(ctx, Request{Type: MessageClassify, Text: text}, c.classifyTimeout)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	if resp.Result == nil {
		return domain.ClassificationResult{}, domain.APIError("classify response missing result", nil)
	}
	return *resp.Result, nil
}

// ClassifyBatch classifies items, returning results in input order.
func (c *Client) ClassifyBatch(ctx context.Context, items []string) ([]domain.ClassificationResult, error) {
	if len(items) == 0 {
		return []domain.ClassificationResult{}, nil
	}
	resp, err := c.roundTrip(ctx, Request{Type: MessageClassifyBatch, Items: items}, c.batchTimeout)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Terminate tears down the worker and resets the client. In-flight requests
// are abandoned and observe their per-request timeout. The next call
// recreates the worker from scratch.
func (c *Client) Terminate() {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()
	if s != nil {
		s.worker.Stop()
	}
}

// ensureSession returns the live session, starting the worker and the
// initialization handshake on first use. Concurrent callers share one
// handshake instead of each triggering their own.
func (c *Client) ensureSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session
	}

	s := &session{
		worker:   StartWorker(c.factory()),
		pending:  make(map[uint64]chan Response),
		initDone: make(chan struct{}),
	}
	c.session = s

	go s.dispatch()
	go c.handshake(s)
	return s
}

// handshake waits for the worker's ready signal, then issues INITIALIZE and
// records the outcome. Client readiness is coupled to model readiness.
func (c *Client) handshake(s *session) {
	defer close(s.initDone)

	select {
	case <-s.worker.Ready():
	case <-time.After(c.initTimeout):
		s.initErr = domain.InitializationError("worker did not signal ready", nil)
		return
	}

	id := s.nextID.Add(1)
	ch := s.register(id)
	if !s.worker.Send(Request{ID: id, Type: MessageInitialize}) {
		s.unregister(id)
		s.initErr = domain.InitializationError("worker stopped before initialization", nil)
		return
	}

	select {
	case resp := <-ch:
		if !resp.Success {
			s.initErr = domain.InitializationError(resp.Message, nil)
		}
	case <-time.After(c.initTimeout):
		s.unregister(id)
		s.initErr = domain.InitializationError("initialization timed out", nil)
	}
}

// roundTrip awaits the initialization handshake, then performs one
// correlated request/response exchange with a per-request timeout.
func (c *Client) roundTrip(ctx context.Context, req Request, timeout time.Duration) (Response, error) {
	s := c.ensureSession()

	select {
	case <-s.initDone:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	if s.initErr != nil {
		// Drop the failed session so the next call can retry from scratch.
		c.dropSession(s)
		return Response{}, s.initErr
	}

	req.ID = s.nextID.Add(1)
	ch := s.register(req.ID)
	if !s.worker.Send(req) {
		s.unregister(req.ID)
		return Response{}, domain.APIError("classifier worker is stopped", nil)
	}

	select {
	case resp := <-ch:
		if resp.Type == MessageError {
			return Response{}, domain.APIError(resp.Err, nil)
		}
		return resp, nil
	case <-time.After(timeout):
		s.unregister(req.ID)
		return Response{}, domain.TimeoutError("classify request timed out", nil)
	case <-ctx.Done():
		s.unregister(req.ID)
		return Response{}, ctx.Err()
	}
}

func (c *Client) dropSession(s *session) {
	c.mu.Lock()
	if c.session == s {
		c.session = nil
	}
	c.mu.Unlock()
	s.worker.Stop()
}

// dispatch routes worker responses to their pending callers by ID. Exits
// when the worker stops; undelivered responses are dropped and their callers
// observe the per-request timeout.
func (s *session) dispatch() {
	for {
		select {
		case resp := <-s.worker.Responses():
			s.mu.Lock()
			ch, ok := s.pending[resp.ID]
			delete(s.pending, resp.ID)
			s.mu.Unlock()
			if ok {
				ch <- resp
			}
		case <-s.worker.Done():
			return
		}
	}
}

func (s *session) register(id uint64) chan Response {
	ch := make(chan Response, 1)
	s.mu.Lock()
	s.pending[id] = ch
	s.mu.Unlock()
	return ch
}

func (s *session) unregister(id uint64) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}
