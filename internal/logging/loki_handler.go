package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// LokiHandler is a custom slog.Handler that sends logs directly to Loki via HTTP.
// It batches logs and sends them asynchronously to avoid blocking the application.
type LokiHandler struct {
	url       string
	labels    map[string]string
	client    *http.Client
	batch     *sharedBatch
	batchSize int
	enabled   bool
	level     slog.Level
	attrs     []slog.Attr
	group     string
}

// sharedBatch is shared across handler clones produced by WithAttrs/WithGroup
// so all of them feed the same buffer and timer.
type sharedBatch struct {
	mu         sync.Mutex
	entries    []lokiEntry
	flushTimer *time.Timer
}

type lokiEntry struct {
	timestamp time.Time
	line      string
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLokiHandler creates a new handler that sends logs to Loki.
// url: Loki endpoint (e.g., "http://localhost:3100")
// labels: Static labels to attach to all logs (e.g., {"app": "apluz-backend"})
// batchSize: Number of logs to batch before sending (0 = send immediately)
func NewLokiHandler(url string, labels map[string]string, batchSize int, enabled bool, level slog.Level) *LokiHandler {
	if labels == nil {
		labels = make(map[string]string)
	}

	h := &LokiHandler{
		url:       url + "/loki/api/v1/push",
		labels:    labels,
		client:    &http.Client{Timeout: 5 * time.Second},
		batch:     &sharedBatch{entries: make([]lokiEntry, 0, batchSize)},
		batchSize: batchSize,
		enabled:   enabled,
		level:     level,
	}

	// Periodic flush every 5 seconds so short batches still leave the process
	if batchSize > 0 && enabled {
		h.batch.flushTimer = time.AfterFunc(5*time.Second, h.periodicFlush)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled && level >= h.level
}

// Handle handles the Record.
func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.enabled {
		return nil
	}

	logData := map[string]interface{}{
		"time":  r.Time.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}

	// Persistent attributes from WithAttrs, then the record's own
	for _, a := range h.attrs {
		logData[h.attrKey(a.Key)] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		logData[h.attrKey(a.Key)] = a.Value.Any()
		return true
	})

	logJSON, err := json.Marshal(logData)
	if err != nil {
		return fmt.Errorf("failed to marshal log to JSON: %w", err)
	}

	entry := lokiEntry{
		timestamp: r.Time,
		line:      string(logJSON),
	}

	h.batch.mu.Lock()
	h.batch.entries = append(h.batch.entries, entry)
	shouldFlush := len(h.batch.entries) >= h.batchSize && h.batchSize > 0
	h.batch.mu.Unlock()

	if shouldFlush || h.batchSize == 0 {
		return h.flush()
	}

	return nil
}

func (h *LokiHandler) attrKey(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

// WithAttrs returns a new Handler whose attributes consist of
// both the receiver's attributes and the arguments.
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.attrs = append(clone.attrs, attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group appended to
// the receiver's existing groups.
func (h *LokiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group == "" {
		clone.group = name
	} else {
		clone.group = h.group + "." + name
	}
	return &clone
}

// flush sends all batched logs to Loki
func (h *LokiHandler) flush() error {
	h.batch.mu.Lock()
	if len(h.batch.entries) == 0 {
		h.batch.mu.Unlock()
		return nil
	}

	entries := make([]lokiEntry, len(h.batch.entries))
	copy(entries, h.batch.entries)
	h.batch.entries = h.batch.entries[:0]
	h.batch.mu.Unlock()

	// Loki expects [timestamp_in_nanoseconds, log_line]
	values := make([][]string, len(entries))
	for i, entry := range entries {
		values[i] = []string{
			fmt.Sprintf("%d", entry.timestamp.UnixNano()),
			entry.line,
		}
	}

	pushReq := lokiPushRequest{
		Streams: []lokiStream{
			{
				Stream: h.labels,
				Values: values,
			},
		},
	}

	return h.sendToLoki(pushReq)
}

// sendToLoki sends the push request to Loki via HTTP
func (h *LokiHandler) sendToLoki(req lokiPushRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", h.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		// Don't fail the application if Loki is down
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	return nil
}

// periodicFlush is called by the timer to flush logs periodically
func (h *LokiHandler) periodicFlush() {
	_ = h.flush()
	h.batch.mu.Lock()
	if h.batch.flushTimer != nil {
		h.batch.flushTimer.Reset(5 * time.Second)
	}
	h.batch.mu.Unlock()
}

// Close flushes any remaining logs and stops the periodic flush timer
func (h *LokiHandler) Close() error {
	h.batch.mu.Lock()
	if h.batch.flushTimer != nil {
		h.batch.flushTimer.Stop()
	}
	h.batch.mu.Unlock()
	return h.flush()
}
