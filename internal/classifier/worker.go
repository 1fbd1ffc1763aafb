package classifier

import (
	"context"
	"fmt"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

// The worker runs the Classifier on a dedicated goroutine so model loading
// and inference never block the caller. All interaction is message passing
// over channels; no classifier state is shared with the caller.

// MessageType identifies a worker request or response kind.
type MessageType string

const (
	MessageInitialize    MessageType = "INITIALIZE"
	MessageClassify      MessageType = "CLASSIFY"
	MessageClassifyBatch MessageType = "CLASSIFY_BATCH"
	MessageError         MessageType = "ERROR"
)

// Request is one message sent to the worker. ID is an opaque correlation
// identifier assigned by the caller and echoed back on the response.
type Request struct {
	ID    uint64
	Type  MessageType
	Text  string
	Items []string
}

// Response is the worker's reply to a Request with the same ID.
type Response struct {
	ID      uint64
	Type    MessageType
	Success bool
	Message string
	Result  *domain.ClassificationResult
	Results []domain.ClassificationResult
	Err     string
}

// Worker hosts a Classifier behind a request/response message loop.
type Worker struct {
	requests  chan Request
	responses chan Response
	ready     chan struct{}
	cancel    context.CancelFunc
	done      chan struct{}
}

// StartWorker launches the message loop. The ready channel closes as soon as
// the loop is live, before the model itself has loaded; model loading happens
// on the first MessageInitialize.
func StartWorker(cls *Classifier) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		requests:  make(chan Request),
		responses: make(chan Response, 16),
		ready:     make(chan struct{}),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go w.run(ctx, cls)
	return w
}

// Ready closes once the worker's message loop is accepting requests.
func (w *Worker) Ready() <-chan struct{} { return w.ready }

// Responses returns the channel the worker replies on.
func (w *Worker) Responses() <-chan Response { return w.responses }

// Done closes once the worker's message loop has exited.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Send delivers a request to the worker. Returns false if the worker has
// been stopped.
func (w *Worker) Send(req Request) bool {
	select {
	case w.requests <- req:
		return true
	case <-w.done:
		return false
	}
}

// Stop tears down the worker. In-flight requests are abandoned; their
// responses are never delivered.
func (w *Worker) Stop() {
	w.cancel()
}

func (w *Worker) run(ctx context.Context, cls *Classifier) {
	defer close(w.done)
	close(w.ready)

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.requests:
			w.reply(ctx, w.handle(ctx, cls, req))
		}
	}
}

func (w *Worker) handle(ctx context.Context, cls *Classifier, req Request) Response {
	switch req.Type {
	case MessageInitialize:
		if err := cls.Initialize(ctx); err != nil {
			return Response{ID: req.ID, Type: MessageInitialize, Success: false, Message: err.Error()}
		}
		return Response{ID: req.ID, Type: MessageInitialize, Success: true, Message: "classifier ready"}

	case MessageClassify:
		result, err := cls.Classify(ctx, req.Text)
		if err != nil {
			return Response{ID: req.ID, Type: MessageError, Err: err.Error()}
		}
		return Response{ID: req.ID, Type: MessageClassify, Success: true, Result: &result}

	case MessageClassifyBatch:
		results, err := cls.ClassifyBatch(ctx, req.Items)
		if err != nil {
			return Response{ID: req.ID, Type: MessageError, Err: err.Error()}
		}
		return Response{ID: req.ID, Type: MessageClassifyBatch, Success: true, Results: results}

	default:
		// Unknown requests still answer with the caller's correlation ID so
		// the right pending operation fails instead of timing out.
		return Response{ID: req.ID, Type: MessageError, Err: fmt.Sprintf("unknown message type %q", req.Type)}
	}
}

func (w *Worker) reply(ctx context.Context, resp Response) {
	select {
	case w.responses <- resp:
	case <-ctx.Done():
	}
}
