package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylangamachefl/grocery-deal-finder/internal/embedding"
)

func startTestWorker(t *testing.T) *Worker {
	t.Helper()
	w := StartWorker(newTestClassifier())
	t.Cleanup(w.Stop)

	select {
	case <-w.Ready():
	case <-time.After(time.Second):
		t.Fatal("worker never signalled ready")
	}
	return w
}

func awaitResponse(t *testing.T, w *Worker) Response {
	t.Helper()
	select {
	case resp := <-w.Responses():
		return resp
	case <-time.After(5 * time.Second):
		t.Fatal("no response from worker")
		return Response{}
	}
}

func TestWorker_ReadyBeforeInitialize(t *testing.T) {
	// Ready fires when the loop is live, before any model loading.
	startTestWorker(t)
}

func TestWorker_InitializeHandshake(t *testing.T) {
	w := startTestWorker(t)

	require.True(t, w.Send(Request{ID: 1, Type: MessageInitialize}))
	resp := awaitResponse(t, w)

	assert.Equal(t, uint64(1), resp.ID)
	assert.True(t, resp.Success)
}

func TestWorker_Classify(t *testing.T) {
	w := startTestWorker(t)

	require.True(t, w.Send(Request{ID: 7, Type: MessageClassify, Text: "Coca-Cola 12-pack"}))
	resp := awaitResponse(t, w)

	assert.Equal(t, uint64(7), resp.ID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "Beverages", resp.Result.ParentCategory)
}

func TestWorker_ClassifyBatchOrder(t *testing.T) {
	w := startTestWorker(t)

	items := []string{"whole milk gallon", "Coca-Cola 12-pack", "ground beef 1lb"}
	require.True(t, w.Send(Request{ID: 3, Type: MessageClassifyBatch, Items: items}))
	resp := awaitResponse(t, w)

	assert.Equal(t, uint64(3), resp.ID)
	require.Len(t, resp.Results, len(items))
	assert.Equal(t, "Beverages", resp.Results[1].ParentCategory)
}

func TestWorker_UnknownMessageEchoesID(t *testing.T) {
	w := startTestWorker(t)

	require.True(t, w.Send(Request{ID: 42, Type: MessageType("BOGUS")}))
	resp := awaitResponse(t, w)

	assert.Equal(t, uint64(42), resp.ID)
	assert.Equal(t, MessageError, resp.Type)
	assert.NotEmpty(t, resp.Err)
}

func TestWorker_InitializeFailureReported(t *testing.T) {
	failing := embedding.NewFailingMockClient(assert.AnError)
	w := StartWorker(New(failing, Config{}))
	t.Cleanup(w.Stop)
	<-w.Ready()

	require.True(t, w.Send(Request{ID: 9, Type: MessageInitialize}))
	resp := awaitResponse(t, w)

	assert.Equal(t, uint64(9), resp.ID)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestWorker_SendAfterStop(t *testing.T) {
	w := startTestWorker(t)
	w.Stop()

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.False(t, w.Send(Request{ID: 1, Type: MessageClassify, Text: "x"}))
}
