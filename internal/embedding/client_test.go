package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_Deterministic(t *testing.T) {
	c := NewMockClient(64)

	a, err := c.EmbedSingle(context.Background(), "Coca-Cola 12-pack")
	require.NoError(t, err)
	b, err := c.EmbedSingle(context.Background(), "Coca-Cola 12-pack")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestMockClient_Normalized(t *testing.T) {
	c := NewMockClient(64)

	v, err := c.EmbedSingle(context.Background(), "Whole Milk Gallon")
	require.NoError(t, err)

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestMockClient_SimilarTextsLandCloser(t *testing.T) {
	c := NewMockClient(384)
	ctx := context.Background()

	cola, err := c.EmbedSingle(ctx, "Coca-Cola 12-pack cans")
	require.NoError(t, err)
	colaAgain, err := c.EmbedSingle(ctx, "Coca-Cola 24-pack cans")
	require.NoError(t, err)
	unrelated, err := c.EmbedSingle(ctx, "Laundry Detergent Pods")
	require.NoError(t, err)

	assert.Greater(t, dot(cola, colaAgain), dot(cola, unrelated))
}

func TestMockClient_SharedTokensDominate(t *testing.T) {
	c := NewMockClient(384)
	ctx := context.Background()

	item, err := c.EmbedSingle(ctx, "Coca-Cola 12-pack")
	require.NoError(t, err)
	soda, err := c.EmbedSingle(ctx, "Soda & Soft Drinks: Coke, Pepsi, Energy drinks, Sprite, root beer, ginger ale, 12-pack cans")
	require.NoError(t, err)
	oils, err := c.EmbedSingle(ctx, "Oils & Vinegar: olive oil, vegetable oil, canola oil, balsamic vinegar, cooking spray")
	require.NoError(t, err)

	// The shared "12-pack" wording must outweigh incidental trigram
	// collisions with unrelated anchor texts.
	assert.Greater(t, dot(item, soda), dot(item, oils))
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func TestClient_Embed(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/v1/embeddings", r.URL.Path)

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// Answer out of order to exercise index-based reassembly.
		resp := embeddingResponse{Data: []embeddingData{
			{Index: 1, Embedding: []float32{0, 1}},
			{Index: 0, Embedding: []float32{1, 0}},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/v1", Dimension: 2})
	require.NoError(t, err)

	vectors, err := c.Embed(context.Background(), []string{"milk", "soda"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 0}, vectors[0])
	assert.Equal(t, []float32{0, 1}, vectors[1])
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClient_EmbedAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "auth"}}`))
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), []string{"milk"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestClient_EmbedMissingVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := embeddingResponse{Data: []embeddingData{{Index: 0, Embedding: []float32{1}}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), []string{"milk", "soda"})
	require.Error(t, err)
}

func TestClient_EmptyInput(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)

	vectors, err := c.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}
