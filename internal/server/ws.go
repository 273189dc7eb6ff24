package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nileshs31/Project-ARMagic/internal/app"
	"github.com/nileshs31/Project-ARMagic/internal/geom"
	"github.com/nileshs31/Project-ARMagic/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StreamHandler classifies strokes streamed over a WebSocket connection.
// Each connection is its own drawing session: the client sends points as
// they are drawn and an end message when the stroke is finished.
type StreamHandler struct {
	app *app.App
}

// NewStreamHandler creates a new StreamHandler with the given application.
func NewStreamHandler(a *app.App) *StreamHandler {
	return &StreamHandler{app: a}
}

// streamMessage is one client-to-server message. Type is "point" to append
// to the current stroke, "end" to classify and reset it, or "cancel" to
// discard it.
type streamMessage struct {
	Type     string    `json:"type"`
	Point    geom.Vec3 `json:"point"`
	Strategy string    `json:"strategy"`
}

type streamResult struct {
	Type   string              `json:"type"`
	Result *app.Classification `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// ServeHTTP handles WebSocket upgrade requests and runs the session loop.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	var stroke []geom.Vec3

	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "point":
			stroke = append(stroke, msg.Point)

		case "end":
			result, err := h.app.Classify(gesture.Strategy(msg.Strategy), stroke)
			stroke = nil
			if err != nil {
				conn.WriteJSON(streamResult{Type: "error", Error: err.Error()})
				continue
			}
			if err := conn.WriteJSON(streamResult{Type: "result", Result: &result}); err != nil {
				return
			}

		case "cancel":
			stroke = nil

		default:
			conn.WriteJSON(streamResult{Type: "error", Error: "unknown message type"})
		}
	}
}
