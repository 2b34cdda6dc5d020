package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/httpresp"
	"github.com/menuvi/menuvi/internal/middleware"
	"github.com/menuvi/menuvi/internal/models"
)

const searchLimit = 50

type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

// Directory lists every restaurant, ordered by name.
func (h *PublicHandler) Directory(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.db.Order("name ASC").Find(&restaurants).Error; err != nil {
		httperr.Internal(c, "failed_to_list_restaurants", "Could not load the directory.")
		return
	}
	httpresp.List(c, restaurants)
}

// Landing returns the tenant's branding plus category counts per menu type.
func (h *PublicHandler) Landing(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	counts := map[string]int64{}
	for _, menuType := range []string{models.MenuTypeDining, models.MenuTypeBeverages} {
		var n int64
		h.db.Model(&models.Category{}).
			Where("restaurant_id = ? AND menu_type = ?", restaurant.ID, menuType).
			Count(&n)
		counts[menuType] = n
	}

	httpresp.OK(c, gin.H{
		"restaurant":      restaurant,
		"category_counts": counts,
	})
}

// Menu lists the categories of one menu type with their available items.
// An unknown menu type bounces back to the landing page.
func (h *PublicHandler) Menu(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	menuType := c.Param("menuType")
	if !models.ValidMenuType(menuType) {
		c.Redirect(http.StatusFound, "/"+restaurant.Slug+"/")
		return
	}

	var categories []models.Category
	err := h.db.
		Where("restaurant_id = ? AND menu_type = ?", restaurant.ID, menuType).
		Order("sort_order ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("available = ?", true).Order("sort_order ASC")
		}).
		Find(&categories).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_menu", "Could not load the menu.")
		return
	}

	httpresp.OK(c, gin.H{
		"menu_type":  menuType,
		"categories": categories,
	})
}

// Category returns one category and its available items. Ids belonging to
// another tenant answer 404, same as ids that do not exist.
func (h *PublicHandler) Category(c *gin.Context) {
	restaurant := middleware.Tenant(c)
	id := c.Param("id")

	var category models.Category
	if err := h.db.
		Where("id = ? AND restaurant_id = ?", id, restaurant.ID).
		First(&category).Error; err != nil {

		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var items []models.MenuItem
	if err := h.db.
		Where("category_id = ? AND available = ?", category.ID, true).
		Order("sort_order ASC").
		Find(&items).Error; err != nil {

		httperr.Internal(c, "failed_to_list_items", "Could not load the category.")
		return
	}

	httpresp.OK(c, gin.H{
		"category": category,
		"items":    items,
	})
}

// Item returns one item's detail, available or not.
func (h *PublicHandler) Item(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	item, ok := findTenantItem(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	httpresp.OK(c, gin.H{
		"item":          item,
		"price_display": item.PriceDisplay(),
	})
}

// Search matches available item names case-insensitively, capped at 50
// results. No matches is a normal empty response, not an error.
func (h *PublicHandler) Search(c *gin.Context) {
	restaurant := middleware.Tenant(c)
	q := strings.TrimSpace(c.Query("q"))

	var results []models.MenuItem
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		err := h.db.
			Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.restaurant_id = ?", restaurant.ID).
			Where("menu_items.available = ?", true).
			Where("LOWER(menu_items.name) LIKE ?", like).
			Order("menu_items.name ASC").
			Limit(searchLimit).
			Find(&results).Error
		if err != nil {
			httperr.Internal(c, "failed_to_search", "Search failed.")
			return
		}
	}

	httpresp.Search(c, q, results)
}

// findTenantItem loads an item and verifies, through its category, that it
// belongs to the tenant. Cross-tenant ids look exactly like missing ones.
func findTenantItem(db *gorm.DB, restaurantID uint, id string) (*models.MenuItem, bool) {
	var item models.MenuItem
	err := db.
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Where("menu_items.id = ? AND categories.restaurant_id = ?", id, restaurantID).
		First(&item).Error
	if err != nil {
		return nil, false
	}
	return &item, true
}
