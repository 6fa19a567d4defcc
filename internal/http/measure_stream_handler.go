package http

import (
	"net/http"
	"time"

	"probe-metrics/internal/events"
	"probe-metrics/internal/notifiers"
	"probe-metrics/internal/shared/loggers"

	"github.com/gorilla/websocket"
)

const (
	streamWriteWait    = 10 * time.Second
	streamPongWait     = 60 * time.Second
	streamPingInterval = streamPongWait * 9 / 10
	streamBuffer       = 256
)

type measureStreamHandler struct {
	hub      notifiers.Hub
	upgrader websocket.Upgrader
}

// NewMeasureStreamHandler serves GET /measures/stream: every measure
// notification is relayed as a JSON text message. The optional "probe" query
// parameter restricts the stream to one probe.
func NewMeasureStreamHandler(hub notifiers.Hub) http.Handler {
	return &measureStreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *measureStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := loggers.Ctx(r.Context())
	probe := r.URL.Query().Get("probe")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	notifications, unsubscribe := h.hub.Subscribe(streamBuffer)
	defer unsubscribe()

	metricStreamConnections.WithLabelValues().Inc()
	defer metricStreamConnections.WithLabelValues().Dec()
	logger.Debug().Str(loggers.FieldProbe, probe).Msg("measure stream opened")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		case notification, ok := <-notifications:
			if !ok {
				return
			}
			if !matchesProbe(notification, probe) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(notification); err != nil {
				logger.Debug().Err(err).Msg("measure stream write failed")
				return
			}
			metricStreamMessagesTotal.WithLabelValues(notification.Event).Inc()
		}
	}
}

func matchesProbe(notification notifiers.Notification, probe string) bool {
	if probe == "" {
		return true
	}
	measure, ok := notification.Payload.(events.MeasureEvent)
	return ok && measure.Probe == probe
}
