package services

import (
	"context"

	"github.com/Barbaracwx/telegram-sportsfinder/models"
)

// Notifier delivers a text prompt to one user, optionally with a set
// of choice buttons. Delivery itself is the transport gateway's job;
// the production implementation pushes over the Socket.IO channel the
// gateway subscribes to.
type Notifier interface {
	Notify(ctx context.Context, userID, text string, choices []models.Choice) error
}
