package analytics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/digest-api/internal/ports"
)

func testEvent() ports.Event {
	return ports.Event{
		Name:   "digest_feedback",
		UserID: "user-1",
		Properties: map[string]any{
			"digestRating": 5,
			"musicRating":  3,
		},
	}
}

func TestClientCapture(t *testing.T) {
	received := make(chan map[string]any, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg map[string]any
		require.NoError(t, json.Unmarshal(body, &msg))
		received <- msg
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		CaptureURL: server.URL,
		APIKey:     "key-1",
		Source:     "digest-api",
	})
	require.NoError(t, err)

	require.NoError(t, client.Capture(context.Background(), testEvent()))

	msg := <-received
	assert.Equal(t, "digest_feedback", msg["event"])
	assert.Equal(t, "user-1", msg["distinct_id"])
	assert.Equal(t, "key-1", msg["api_key"])
	assert.Equal(t, "digest-api", msg["source"])
	assert.NotEmpty(t, msg["timestamp"])

	props, ok := msg["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), props["digestRating"])
}

func TestClientCaptureRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(Config{CaptureURL: server.URL, RetryLimit: 3})
	require.NoError(t, err)

	require.NoError(t, client.Capture(context.Background(), testEvent()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientCaptureExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(Config{CaptureURL: server.URL, RetryLimit: 1})
	require.NoError(t, err)

	err = client.Capture(context.Background(), testEvent())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientProjection(t *testing.T) {
	received := make(chan map[string]any, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg map[string]any
		require.NoError(t, json.Unmarshal(body, &msg))
		received <- msg
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		CaptureURL: server.URL,
		Projection: "{rating: digestRating}",
	})
	require.NoError(t, err)

	require.NoError(t, client.Capture(context.Background(), testEvent()))

	msg := <-received
	props, ok := msg["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), props["rating"])
	assert.NotContains(t, props, "musicRating")
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{CaptureURL: "https://collector.example.com", Projection: "not ["})
	assert.Error(t, err)
}
