package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/audit"
	"github.com/shelfwise/circulation/internal/notify"
)

// NotificationsController handles delivery channel selection and the audit trail.
type NotificationsController struct {
	bridge *notify.Bridge
	audit  *audit.Service
}

// NewNotificationsController creates a new NotificationsController.
func NewNotificationsController(bridge *notify.Bridge, auditService *audit.Service) *NotificationsController {
	return &NotificationsController{bridge: bridge, audit: auditService}
}

type setChannelRequest struct {
	Channel string `json:"channel" binding:"required"`
}

// GetChannel reports the active delivery channel.
func (nc *NotificationsController) GetChannel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"channel":   nc.bridge.ActiveChannel(),
		"available": notify.ChannelNames(),
	})
}

// SetChannel switches the delivery channel for all subsequent events.
func (nc *NotificationsController) SetChannel(c *gin.Context) {
	var req setChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := nc.bridge.SetChannel(req.Channel); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channel": nc.bridge.ActiveChannel()})
}

// RecentEvents returns the newest audit trail entries.
func (nc *NotificationsController) RecentEvents(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		limit = parsed
	}

	events, err := nc.audit.Recent(limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}
