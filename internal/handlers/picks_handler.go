package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/middleware"
	"github.com/menuvi/menuvi/internal/models"
	"github.com/menuvi/menuvi/internal/session"
)

// SessionCookie identifies the browser session holding the picks shortlist.
const SessionCookie = "menuvi_session"

type PicksHandler struct {
	db    *gorm.DB
	store session.Store
}

func NewPicksHandler(db *gorm.DB, store session.Store) *PicksHandler {
	return &PicksHandler{db: db, store: store}
}

// --------- Responses ---------

type picksGroup struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// --------- Handlers ---------

// List returns the tenant's picks grouped by category, categories in
// first-seen order of the shortlist. Ids that no longer resolve under this
// tenant are silently dropped.
func (h *PicksHandler) List(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	sess, _, err := h.loadSession(c)
	if err != nil {
		httperr.Internal(c, "session_error", "Could not load your picks.")
		return
	}

	pickIDs := sess.TenantPicks(restaurant.Slug)

	groups := []picksGroup{}
	if len(pickIDs) > 0 {
		var items []models.MenuItem
		if err := h.db.
			Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("menu_items.id IN ? AND categories.restaurant_id = ?", pickIDs, restaurant.ID).
			Find(&items).Error; err != nil {

			httperr.Internal(c, "failed_to_list_picks", "Could not load your picks.")
			return
		}

		byID := make(map[uint]models.MenuItem, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}

		catNames := make(map[uint]string)
		groupIndex := make(map[string]int)
		for _, id := range pickIDs {
			item, ok := byID[id]
			if !ok {
				continue
			}
			name, ok := catNames[item.CategoryID]
			if !ok {
				var cat models.Category
				if err := h.db.First(&cat, item.CategoryID).Error; err != nil {
					continue
				}
				name = cat.Name
				catNames[item.CategoryID] = name
			}
			idx, ok := groupIndex[name]
			if !ok {
				idx = len(groups)
				groupIndex[name] = idx
				groups = append(groups, picksGroup{Category: name})
			}
			groups[idx].Items = append(groups[idx].Items, item)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"picks":       pickIDs,
		"by_category": groups,
	})
}

// Add puts an item on the shortlist. Duplicate adds are no-ops.
func (h *PicksHandler) Add(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	item, ok := findTenantItem(h.db, restaurant.ID, c.Param("itemID"))
	if !ok {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	sess, sid, err := h.loadSession(c)
	if err != nil {
		httperr.Internal(c, "session_error", "Could not update your picks.")
		return
	}

	sess.AddPick(restaurant.Slug, item.ID)
	if err := h.store.Save(c.Request.Context(), sid, sess); err != nil {
		httperr.Internal(c, "session_error", "Could not update your picks.")
		return
	}

	h.respond(c, restaurant.Slug, len(sess.TenantPicks(restaurant.Slug)))
}

// Remove drops an item from the shortlist; absent ids are a no-op.
func (h *PicksHandler) Remove(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	sess, sid, err := h.loadSession(c)
	if err != nil {
		httperr.Internal(c, "session_error", "Could not update your picks.")
		return
	}

	itemID, ok := parseUint(c.Param("itemID"))
	if ok {
		sess.RemovePick(restaurant.Slug, itemID)
		if err := h.store.Save(c.Request.Context(), sid, sess); err != nil {
			httperr.Internal(c, "session_error", "Could not update your picks.")
			return
		}
	}

	h.respond(c, restaurant.Slug, len(sess.TenantPicks(restaurant.Slug)))
}

// Clear empties the tenant's shortlist.
func (h *PicksHandler) Clear(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	sess, sid, err := h.loadSession(c)
	if err != nil {
		httperr.Internal(c, "session_error", "Could not clear your picks.")
		return
	}

	sess.ClearPicks(restaurant.Slug)
	if err := h.store.Save(c.Request.Context(), sid, sess); err != nil {
		httperr.Internal(c, "session_error", "Could not clear your picks.")
		return
	}

	h.respond(c, restaurant.Slug, 0)
}

// --------- helpers ---------

// loadSession returns the caller's session, minting a session cookie on
// first contact.
func (h *PicksHandler) loadSession(c *gin.Context) (*session.Session, string, error) {
	sid, err := c.Cookie(SessionCookie)
	if err != nil || sid == "" {
		sid = uuid.NewString()
		c.SetCookie(SessionCookie, sid, 0, "/", "", false, true)
	}

	sess, err := h.store.Get(c.Request.Context(), sid)
	if err != nil {
		return nil, "", err
	}
	return sess, sid, nil
}

// respond answers JSON for script-driven calls and redirects plain form
// posts back where they came from.
func (h *PicksHandler) respond(c *gin.Context, slug string, count int) {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "count": count})
		return
	}

	dest := c.GetHeader("Referer")
	if dest == "" {
		dest = "/" + slug + "/picks"
	}
	c.Redirect(http.StatusFound, dest)
}

func parseUint(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
