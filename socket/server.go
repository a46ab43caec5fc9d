package socket

import (
	"context"
	"log"

	"github.com/Barbaracwx/telegram-sportsfinder/services"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server the bot gateway
// subscribes to. The gateway registers each user session into a room
// keyed by user id; outbound notifications are broadcast to that room.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Gateway joins a per-user room to receive that user's prompts
	server.OnEvent("/", "register", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("❌ Invalid userId in register request")
			return
		}
		log.Printf("👥 Session %s registered for user %s\n", c.ID(), userID)
		c.Join(userRoom(userID))
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", reason)
	})

	return server
}

// BindChatRelay wires inbound "sendMessage" events from the gateway to
// the chat relay, so text between matched players flows without an
// extra HTTP round trip.
func BindChatRelay(server *socketio.Server, chat *services.ChatService) {
	server.OnEvent("/", "sendMessage", func(c socketio.Conn, message map[string]string) {
		senderID := message["userId"]
		text := message["text"]
		if senderID == "" || text == "" {
			log.Println("❌ Invalid sendMessage payload")
			return
		}
		if err := chat.RelayMessage(context.Background(), senderID, text); err != nil {
			log.Printf("failed to relay message from %s: %v\n", senderID, err)
		}
	})
}

func userRoom(userID string) string {
	return "user:" + userID
}
