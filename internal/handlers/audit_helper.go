package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/menuvi/menuvi/internal/audit"
	"github.com/menuvi/menuvi/internal/middleware"
)

func currentUserID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func dispatchAudit(
	c *gin.Context,
	d *audit.Dispatcher,
	restaurantID uint,
	action string,
	entity string,
	entityID uint,
	meta any,
) {
	if d == nil {
		return
	}
	d.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		UserID:       currentUserID(c),
		Action:       action,
		Entity:       entity,
		EntityID:     &entityID,
		Metadata:     meta,
	})
}
