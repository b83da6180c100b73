package user

import (
	"log"
	"net/http"
	"time"

	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (tighten in production)
		return true
	},
}

// CartWebSocket pushes the mirror's state to the user's open tabs after
// each mutation. Best effort: a dropped socket is just closed, the local
// cart stays authoritative either way.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	pubsub := database.Redis.Subscribe(ctx, cartKey(userID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]any{
		"type":    "connected",
		"message": "Cart synchronization active",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}
			cart := loadCart(ctx, userID)
			items := cart.Items
			if items == nil {
				items = []models.CartItem{}
			}
			err := conn.WriteJSON(map[string]any{
				"type":  "cart_updated",
				"items": items,
				"total": cart.Total(),
				"count": cart.Count(),
			})
			if err != nil {
				log.Printf("❌ WebSocket write failed: %v", err)
				return
			}
		case <-ctx.Done():
			return
		case <-time.After(30 * time.Second):
			// Keepalive ping
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
