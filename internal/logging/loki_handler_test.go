package logging_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ccontarino/apluz-backend/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lokiPushRequest struct {
	Streams []struct {
		Stream map[string]string `json:"stream"`
		Values [][]string        `json:"values"`
	} `json:"streams"`
}

func TestLokiHandler(t *testing.T) {
	var receivedBody []byte
	var receivedBodyMu sync.Mutex

	// Create a mock Loki server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		receivedBodyMu.Lock()
		receivedBody = body
		receivedBodyMu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	labels := map[string]string{"app": "apluz-backend"}
	handler := logging.NewLokiHandler(server.URL, labels, 1, true, slog.LevelInfo)
	defer handler.Close()

	logger := slog.New(handler)

	logger.Info("property created", "property_id", "42")

	// Closing the handler triggers a final flush
	err := handler.Close()
	require.NoError(t, err)

	receivedBodyMu.Lock()
	defer receivedBodyMu.Unlock()

	require.NotEmpty(t, receivedBody, "Loki server did not receive any request")

	var pushReq lokiPushRequest
	err = json.Unmarshal(receivedBody, &pushReq)
	require.NoError(t, err)

	require.Len(t, pushReq.Streams, 1)
	stream := pushReq.Streams[0]

	assert.Equal(t, labels, stream.Stream)
	require.Len(t, stream.Values, 1)
	value := stream.Values[0]

	require.Len(t, value, 2)
	assert.NotEmpty(t, value[0])

	var logLine map[string]interface{}
	err = json.Unmarshal([]byte(value[1]), &logLine)
	require.NoError(t, err)

	assert.Equal(t, "INFO", logLine["level"])
	assert.Equal(t, "property created", logLine["msg"])
	assert.Equal(t, "42", logLine["property_id"])
}

func TestLokiHandler_Batching(t *testing.T) {
	var receivedBodies [][]byte
	var receivedBodiesMu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		receivedBodiesMu.Lock()
		receivedBodies = append(receivedBodies, body)
		receivedBodiesMu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	// Batch size of 2: the first message must stay buffered
	handler := logging.NewLokiHandler(server.URL, nil, 2, true, slog.LevelInfo)
	defer handler.Close()

	logger := slog.New(handler)

	logger.Info("message 1")
	time.Sleep(100 * time.Millisecond)

	receivedBodiesMu.Lock()
	assert.Empty(t, receivedBodies, "Loki server should not have received any request yet")
	receivedBodiesMu.Unlock()

	logger.Info("message 2")
	time.Sleep(100 * time.Millisecond)

	receivedBodiesMu.Lock()
	assert.Len(t, receivedBodies, 1, "Loki server should have received one request")
	receivedBodiesMu.Unlock()

	var pushReq lokiPushRequest
	err := json.Unmarshal(receivedBodies[0], &pushReq)
	require.NoError(t, err)

	require.Len(t, pushReq.Streams, 1)
	stream := pushReq.Streams[0]
	require.Len(t, stream.Values, 2)

	var logLine1, logLine2 map[string]interface{}
	err = json.Unmarshal([]byte(stream.Values[0][1]), &logLine1)
	require.NoError(t, err)
	err = json.Unmarshal([]byte(stream.Values[1][1]), &logLine2)
	require.NoError(t, err)

	assert.Equal(t, "message 1", logLine1["msg"])
	assert.Equal(t, "message 2", logLine2["msg"])
}

func TestLokiHandler_WithAttrs(t *testing.T) {
	var receivedBody []byte
	var receivedBodyMu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		receivedBodyMu.Lock()
		receivedBody = body
		receivedBodyMu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	handler := logging.NewLokiHandler(server.URL, nil, 1, true, slog.LevelInfo)
	defer handler.Close()

	logger := slog.New(handler).With("request_id", "abc-123")
	logger.Info("listing fetched")

	require.NoError(t, handler.Close())

	receivedBodyMu.Lock()
	defer receivedBodyMu.Unlock()

	var pushReq lokiPushRequest
	require.NoError(t, json.Unmarshal(receivedBody, &pushReq))
	require.Len(t, pushReq.Streams, 1)
	require.Len(t, pushReq.Streams[0].Values, 1)

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(pushReq.Streams[0].Values[0][1]), &logLine))

	// Persistent attrs from With() must survive on every record
	assert.Equal(t, "abc-123", logLine["request_id"])
	assert.Equal(t, "listing fetched", logLine["msg"])
}

func TestLokiHandler_DisabledDropsRecords(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	handler := logging.NewLokiHandler(server.URL, nil, 0, false, slog.LevelInfo)
	logger := slog.New(handler)

	logger.Info("should not be sent")
	require.NoError(t, handler.Close())

	assert.Zero(t, requestCount, "disabled handler must not contact Loki")
}
