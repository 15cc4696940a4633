package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	eventTypeStateChange = "state-change"
	eventTypeHeartbeat   = "heartbeat"
	heartbeatInterval    = 30 * time.Second
)

type eventPayload struct {
	Scope string    `json:"scope"`
	At    time.Time `json:"at"`
}

// handleEvents streams state-change events as server-sent events until the
// client disconnects. Heartbeats keep intermediaries from closing an idle
// stream.
func (h *httpHandler) handleEvents(c *gin.Context) {
	events, cancel := h.store.Subscribe(c.Request.Context())
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			encoded, err := json.Marshal(eventPayload{Scope: string(event.Scope), At: event.At})
			if err != nil {
				h.logger.Error("failed to encode change event", zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", eventTypeStateChange, encoded)
			c.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", eventTypeHeartbeat)
			c.Writer.Flush()
		}
	}
}
