package stream

import (
	"encoding/json"
	"log"

	"backend-routenav/internal/navigation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// PositionSink receives device location fixes read off the websocket.
// *navigation.Manager satisfies it.
type PositionSink interface {
	Submit(id string, pos navigation.Position) error
}

// RegisterRoutes mounts the bidirectional navigation socket: guidance
// snapshots go out, device position fixes come in.
func RegisterRoutes(r fiber.Router, hub *Hub, sink PositionSink) {
	r.Get("/ws/:sessionID", websocket.New(func(c *websocket.Conn) {
		sessionID := c.Params("sessionID")
		client := hub.Register(sessionID)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			if sink == nil {
				continue
			}
			var pos navigation.Position
			if err := json.Unmarshal(msg, &pos); err != nil {
				continue
			}
			if err := sink.Submit(sessionID, pos); err != nil {
				log.Printf("session %s: position rejected: %v", sessionID, err)
			}
		}

		// Unregister first: it closes Send, which releases the writer even
		// when the session never broadcasts again.
		hub.Unregister(client)
		<-done
	}))
}
