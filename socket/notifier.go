package socket

import (
	"context"
	"fmt"

	"github.com/Barbaracwx/telegram-sportsfinder/models"

	socketio "github.com/googollee/go-socket.io"
)

// PushNotifier delivers prompts to the bot gateway over the Socket.IO
// channel. It implements services.Notifier.
type PushNotifier struct {
	Server *socketio.Server
}

// Notify broadcasts a prompt to the user's room. The gateway turns the
// payload into a Telegram message, rendering choices as inline buttons
// and echoing the picked token back through the callback intent.
func (n *PushNotifier) Notify(_ context.Context, userID, text string, choices []models.Choice) error {
	payload := map[string]interface{}{
		"userId": userID,
		"text":   text,
	}
	if len(choices) > 0 {
		payload["choices"] = choices
	}

	if ok := n.Server.BroadcastToRoom("/", userRoom(userID), "notify", payload); !ok {
		return fmt.Errorf("no gateway session registered for user %s", userID)
	}
	return nil
}
