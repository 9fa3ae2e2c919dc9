package controllers

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/models"
	"MoodDiaryGo/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BotController struct {
	conversation *services.Conversation
}

func NewBotController(conversation *services.Conversation) *BotController {
	return &BotController{conversation: conversation}
}

// HandleEvent receives one inbound conversation event from the gateway
// and returns the ordered replies for it.
func (bc *BotController) HandleEvent(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	var event models.InboundEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event: " + err.Error()})
		return
	}

	collector := &ReplyCollector{}
	ctx := WithCollector(c.Request.Context(), collector)

	err := bc.conversation.HandleEvent(ctx, uid.(string), event)
	if err != nil {
		code := classify(err)
		if code == "" {
			config.Logger.Errorw("event handling failed",
				"uid", uid,
				"eventType", event.Type,
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "internal error",
				"events": collector.Events(),
			})
			return
		}
		// Recovered locally: the rejection reply is already in the
		// buffer, the gateway just relays it.
		c.JSON(http.StatusOK, gin.H{
			"code":   code,
			"events": collector.Events(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": collector.Events()})
}

// classify maps the engine's recoverable errors to stable codes for
// the gateway; everything else is an internal failure.
func classify(err error) string {
	switch {
	case errors.Is(err, services.ErrDuplicateEntry):
		return "duplicate_entry"
	case errors.Is(err, services.ErrNoEntryToUpdate):
		return "no_entry_to_update"
	case errors.Is(err, services.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, services.ErrNoActiveSession):
		return "no_active_session"
	default:
		return ""
	}
}
