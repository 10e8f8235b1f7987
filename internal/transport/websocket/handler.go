package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/events"
)

// Handler pushes catalog and price changes to storefront clients so open
// pages can re-render without polling.
type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	EventBus *events.EventBus[any]
}

type Message struct {
	EventType string      `json:"event-type"`
	Data      interface{} `json:"data"`
}

// NewHandler creates a websocket push handler. allowedOrigins is the same
// origin list the CORS middleware honors; requests without an Origin header
// (non-browser clients) are always accepted.
func NewHandler(log hclog.Logger, eventBus *events.EventBus[any], allowedOrigins []string) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		Log:      log,
		EventBus: eventBus,
	}
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	// Subscribe to events
	subscriber := h.EventBus.Subscribe()
	defer h.EventBus.Unsubscribe(subscriber)

	// Create a done channel to signal when the connection is closed
	done := make(chan struct{})

	// Handle incoming requests (if any)
	go h.readPump(conn, done)

	// Listen for events and send them to the WebSocket client
	for {
		select {
		case event := <-subscriber:
			var message Message
			switch e := event.(type) {
			case events.PriceChanged:
				message = Message{EventType: "price_changed", Data: e}
			case events.ProductAdded:
				message = Message{EventType: "product_added", Data: e}
			case events.ProductUpdated:
				message = Message{EventType: "product_updated", Data: e}
			case events.ProductDeleted:
				message = Message{EventType: "product_deleted", Data: e}
			case events.PromotionAdded:
				message = Message{EventType: "promotion_added", Data: e}
			case events.PromotionUpdated:
				message = Message{EventType: "promotion_updated", Data: e}
			case events.PromotionDeleted:
				message = Message{EventType: "promotion_deleted", Data: e}
			default:
				h.Log.Warn("Unknown event type", "event", e)
				continue
			}

			payload, err := json.Marshal(message)
			if err != nil {
				h.Log.Error("Error marshalling message", "error", err)
				continue
			}

			err = conn.WriteMessage(websocket.TextMessage, payload)
			if err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				// Connection might be closed, exit the loop
				return
			}
		case <-done:
			h.Log.Info("WebSocket connection closed by the client")
			return
		}
	}
}

func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			break
		}
	}
}
